package main

import (
	"github.com/spf13/cobra"

	"github.com/opdetect/opqa/internal/scenario"
	"github.com/opdetect/opqa/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <suite-file>",
	Short: "Validate a suite file and save it into the local store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		suite, err := scenario.LoadSuite(args[0])
		if err != nil {
			return err
		}

		s, err := store.Open(cfg.Store.Path, logger)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.SaveSuite(cmd.Context(), suite); err != nil {
			return err
		}

		logger.WithField("suite", suite.Name).
			WithField("scenarios", len(suite.Scenarios)).
			Info("suite imported")
		return nil
	},
}
