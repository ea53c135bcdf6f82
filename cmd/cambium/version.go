package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/cambium"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cambium",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("cambium version %s\n", cambium.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
