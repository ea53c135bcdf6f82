package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/cambium/internal/presentation"
	"github.com/aretw0/cambium/pkg/summary"
)

var skeletonCmd = &cobra.Command{
	Use:   "skeleton <definition.yaml>",
	Short: "Generate builder stubs for states the summary declares but the definition lacks",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		machine, doc, err := loadMachine(args[0])
		if err != nil {
			fmt.Println(presentation.Failure("skeleton failed"))
			fmt.Println(err)
			os.Exit(1)
		}
		if doc.Summary == nil {
			fmt.Println(presentation.Failure("definition has no summary section"))
			os.Exit(1)
		}
		stubs, err := summary.Scaffold(machine, doc.Summary)
		if err != nil {
			fmt.Println(presentation.Failure("skeleton failed"))
			fmt.Println(err)
			os.Exit(1)
		}
		if stubs == "" {
			fmt.Println(presentation.Success("nothing missing, the definition covers the whole summary"))
			return
		}
		fmt.Println(presentation.Heading("Missing states:"))
		fmt.Println()
		fmt.Print(stubs)
	},
}

func init() {
	rootCmd.AddCommand(skeletonCmd)
}
