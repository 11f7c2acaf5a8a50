package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opdetect/opqa/internal/scenario"
)

var validateCmd = &cobra.Command{
	Use:   "validate <suite-file>",
	Short: "Parse and validate a suite file without running analysis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		suite, err := scenario.LoadSuite(args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Suite %q is valid: %d scenarios\n",
			suite.Name, len(suite.Scenarios))
		return nil
	},
}
