package cmd

import "github.com/spf13/cobra"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the fee API over HTTP",
	RunE:  run,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
