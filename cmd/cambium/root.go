package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cambium",
	Short: "Cambium verifies declarative state machines",
	Long: `Cambium validates state machine definitions: it checks that declared
transitions form a consistent graph, cross-checks them against an authored
summary, and generates builder stubs for missing structure.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
