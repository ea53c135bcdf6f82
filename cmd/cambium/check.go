package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/cambium/internal/presentation"
	"github.com/aretw0/cambium/pkg/summary"
)

var checkCmd = &cobra.Command{
	Use:   "check <definition.yaml>",
	Short: "Diff the implemented graph against the embedded summary",
	Long: `Completes the machine and compares the transition graph it implements
against the definition's summary section, reporting every disagreement.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		machine, doc, err := loadMachine(args[0])
		if err != nil {
			fmt.Println(presentation.Failure("check failed"))
			fmt.Println(err)
			os.Exit(1)
		}
		if doc.Summary == nil {
			fmt.Println(presentation.Failure("definition has no summary section"))
			os.Exit(1)
		}
		if err := summary.Check(machine, doc.Summary); err != nil {
			fmt.Println(presentation.Failure("summary does not match the implementation"))
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(presentation.Success("summary matches the implementation"))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
