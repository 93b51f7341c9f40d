package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	advanceCmd := &cobra.Command{
		Use:   "advance-day",
		Short: "End the current day and move the calendar forward",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			data, err := doPostJSON(sessionPath("/advance-day"), nil)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(advanceCmd)

	var cardFile string
	runShowCmd := &cobra.Command{
		Use:   "run-show SHOW_ID",
		Short: "Run a show with a booked card",
		Long:  "Runs a show. The card is a JSON file holding the positional segments array; null entries are empty slots.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			raw, err := os.ReadFile(cardFile)
			if err != nil {
				return err
			}
			var segments json.RawMessage
			if err := json.Unmarshal(raw, &segments); err != nil {
				return fmt.Errorf("card file is not valid JSON: %w", err)
			}
			data, err := doPostJSON(sessionPath("/shows/"+args[0]+"/run"), map[string]json.RawMessage{
				"segments": segments,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	runShowCmd.Flags().StringVarP(&cardFile, "card", "c", "", "Path to the card JSON file (required)")
	_ = runShowCmd.MarkFlagRequired("card")
	rootCmd.AddCommand(runShowCmd)

	var participants []string
	storylineCmd := &cobra.Command{
		Use:   "storyline NAME",
		Short: "Create a storyline between performers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			// Participants are "id:name" pairs.
			payload := make([]map[string]string, 0, len(participants))
			for _, p := range participants {
				id, name, ok := strings.Cut(p, ":")
				if !ok {
					return fmt.Errorf("participant %q must be id:name", p)
				}
				payload = append(payload, map[string]string{"id": id, "name": name})
			}
			data, err := doPostJSON(sessionPath("/storylines"), map[string]interface{}{
				"name":         args[0],
				"participants": payload,
			})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	storylineCmd.Flags().StringArrayVarP(&participants, "participant", "p", nil, "Participant as id:name (repeat; at least 2)")
	rootCmd.AddCommand(storylineCmd)

	readCmd := &cobra.Command{
		Use:   "read-messages",
		Short: "Mark all locker-room messages as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			if _, err := doPostJSON(sessionPath("/messages/read"), nil); err != nil {
				return err
			}
			return nil
		},
	}
	rootCmd.AddCommand(readCmd)

	adviceCmd := &cobra.Command{
		Use:   "advice QUESTION",
		Short: "Ask the creative assistant for booking advice",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			data, err := doPostJSON(sessionPath("/advice"), map[string]string{"question": args[0]})
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(adviceCmd)

	careerCmd := &cobra.Command{
		Use:   "career WRESTLER_ID",
		Short: "Show a wrestler's career ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			data, err := doGet(sessionPath("/wrestlers/" + args[0] + "/career"))
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(os.Stdout, string(data))
			return nil
		},
	}
	rootCmd.AddCommand(careerCmd)
}
