package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiFlag  string
	userFlag string
	saveFlag string
	rootCmd  = &cobra.Command{
		Use:   "bookerctl",
		Short: "CLI client for the booker REST API",
	}
)

func main() {
	rootCmd.PersistentFlags().StringVarP(&apiFlag, "api", "a", "http://localhost:8080", "Booker service base URL")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "User ID")
	rootCmd.PersistentFlags().StringVarP(&saveFlag, "save", "s", "", "Save ID")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func requireUser() error {
	if userFlag == "" {
		return fmt.Errorf("--user required")
	}
	return nil
}

func requireSession() error {
	if userFlag == "" || saveFlag == "" {
		return fmt.Errorf("--user and --save required")
	}
	return nil
}
