package cmd

import (
	"github.com/spf13/cobra"
)

const app = "hackokai"

var rootCmd = &cobra.Command{
	Use:   app,
	Short: "hackokai is the QR-driven career matching service for campus placements",
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
