package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/opdetect/opqa/internal/analyzer"
	"github.com/opdetect/opqa/internal/detector"
	"github.com/opdetect/opqa/internal/scenario"
	"github.com/opdetect/opqa/internal/store"
)

var (
	analyzeMetrics   string
	analyzeFromStore string
	analyzeJSONPath  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [suite-file]",
	Short: "Run the detector against a scenario suite and report quality metrics",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeMetrics, "metrics", "m", "",
		"comma-separated metrics to compute (default: all)")
	analyzeCmd.Flags().StringVar(&analyzeFromStore, "from-store", "",
		"analyze a suite from the local store instead of a file")
	analyzeCmd.Flags().StringVar(&analyzeJSONPath, "json", "",
		"also write raw results as JSON to this path")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	suite, err := resolveSuite(cmd, args)
	if err != nil {
		return err
	}

	metrics, err := parseMetricsFlag(analyzeMetrics)
	if err != nil {
		return err
	}

	logger.WithField("suite", suite.Name).
		WithField("scenarios", len(suite.Scenarios)).
		Debug("starting analysis")

	qa := analyzer.New(detector.NewHeuristic(cfg.Detector))
	for _, sc := range suite.Scenarios {
		qa.AddScenario(sc)
	}

	results, err := qa.RunAnalysis(cmd.Context(), metrics...)
	if err != nil {
		return err
	}

	if cfg.Report.Color {
		color.New(color.FgCyan, color.Bold).Fprintf(cmd.OutOrStdout(),
			"Suite: %s (%d scenarios)\n\n", suite.Name, len(suite.Scenarios))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Suite: %s (%d scenarios)\n\n",
			suite.Name, len(suite.Scenarios))
	}
	fmt.Fprintln(cmd.OutOrStdout(), qa.GenerateReport(results))

	if analyzeJSONPath != "" {
		if err := writeResultsJSON(analyzeJSONPath, results); err != nil {
			return err
		}
		logger.WithField("path", analyzeJSONPath).Info("results written")
	}

	return nil
}

func resolveSuite(cmd *cobra.Command, args []string) (*scenario.Suite, error) {
	if analyzeFromStore != "" {
		s, err := store.Open(cfg.Store.Path, logger)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		return s.GetSuite(cmd.Context(), analyzeFromStore)
	}

	if len(args) == 0 {
		return nil, fmt.Errorf("either a suite file or --from-store is required")
	}
	return scenario.LoadSuite(args[0])
}

func parseMetricsFlag(flag string) ([]analyzer.AnalysisMetric, error) {
	if flag == "" {
		return nil, nil
	}

	var metrics []analyzer.AnalysisMetric
	for _, part := range strings.Split(flag, ",") {
		m, err := analyzer.ParseMetric(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}

func writeResultsJSON(path string, results map[analyzer.AnalysisMetric]analyzer.QualityResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	return nil
}
