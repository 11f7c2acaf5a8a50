package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opdetect/opqa/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List scenario suites in the local store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open(cfg.Store.Path, logger)
		if err != nil {
			return err
		}
		defer s.Close()

		infos, err := s.ListSuites(cmd.Context())
		if err != nil {
			return err
		}

		if len(infos) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No suites stored. Use 'opqa import' to add one.")
			return nil
		}

		for _, info := range infos {
			fmt.Fprintf(cmd.OutOrStdout(), "%-30s %4d scenarios  stored %s\n",
				info.Name, info.ScenarioCount, info.StoredAt.Local().Format("2006-01-02 15:04"))
		}
		return nil
	},
}
