package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/cambium/internal/compiler"
	"github.com/aretw0/cambium/internal/presentation"
	"github.com/aretw0/cambium/pkg/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate <definition.yaml>",
	Short: "Check a machine definition for consistency",
	Long: `Compiles the definition and completes the machine, reporting duplicate
state names or slugs, unresolved output states and duplicated outputs.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		machine, _, err := loadMachine(args[0])
		if err != nil {
			fmt.Println(presentation.Failure("validation failed"))
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Println(presentation.Success("machine %s is valid (%d states)", machine.Name(), len(machine.States())))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// loadMachine compiles a definition file and completes the machine. An
// embedded summary section is parsed but not verified; the check command
// diffs it explicitly.
func loadMachine(path string) (*domain.Machine, *compiler.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read definition: %w", err)
	}
	doc, err := compiler.Parse(data)
	if err != nil {
		return nil, nil, err
	}

	b, err := doc.Builder()
	if err != nil {
		return nil, doc, err
	}
	m, err := b.Complete()
	return m, doc, err
}
