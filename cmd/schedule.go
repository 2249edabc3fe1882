package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/tollfee/core/fee"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the fee charged for each period of the day",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, b := range fee.Bands() {
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s-%s  %d\n", fee.Clock(b.Start), fee.Clock(b.End-1), b.Amount); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scheduleCmd)
}
