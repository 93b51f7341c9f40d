package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the default template dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doPostJSON("/api/seed", nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(seedCmd)

	datasetsCmd := &cobra.Command{
		Use:   "datasets",
		Short: "List template datasets",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := doGet("/api/datasets")
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(datasetsCmd)

	savesCmd := &cobra.Command{Use: "saves", Short: "Save-game operations"}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List your saves",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			data, err := doGet(fmt.Sprintf("/api/users/%s/saves", userFlag))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	savesCmd.AddCommand(listCmd)

	var datasetID, saveName string
	newCmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game from a dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireUser(); err != nil {
				return err
			}
			if datasetID == "" {
				return fmt.Errorf("--dataset required")
			}
			data, err := doPostJSON(fmt.Sprintf("/api/users/%s/saves", userFlag), map[string]string{
				"datasetId": datasetID,
				"saveName":  saveName,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	newCmd.Flags().StringVarP(&datasetID, "dataset", "d", "", "Dataset ID (required)")
	newCmd.Flags().StringVarP(&saveName, "name", "n", "", "Save name")
	_ = newCmd.MarkFlagRequired("dataset")
	savesCmd.AddCommand(newCmd)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the loaded world snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			data, err := doGet(sessionPath(""))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	savesCmd.AddCommand(showCmd)

	exitCmd := &cobra.Command{
		Use:   "exit",
		Short: "Exit the loaded session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			if _, err := doPostJSON(sessionPath("/exit"), nil); err != nil {
				return err
			}
			return nil
		},
	}
	savesCmd.AddCommand(exitCmd)

	rootCmd.AddCommand(savesCmd)
}
