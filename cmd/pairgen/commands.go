// Copyright (C) 2026 Pairgen Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath string
	logLevel   string
	logDir     string
	logJSON    bool

	promptsPath  string
	outputPath   string
	systemList   []string
	formatName   string
	strategyName string
	metricName   string

	rootCmd = &cobra.Command{
		Use:   "pairgen",
		Short: "Build preference-pair datasets from a post-edited MT corpus",
		Long: `pairgen reshapes a static bilingual corpus (machine translation
hypotheses, a human post-edited reference, and quality-estimation scores)
into preference-pair JSONL for preference-optimization training.`,
		SilenceUsage: true,
	}

	buildCmd = &cobra.Command{
		Use:   "build [segments.json]",
		Short: "Build preference pairs and write them as JSONL",
		Args:  cobra.ExactArgs(1),
		RunE:  runBuild, // Defined in cmd_build.go
	}

	statsCmd = &cobra.Command{
		Use:   "stats [segments.json]",
		Short: "Report corpus coverage for the configured systems and metric",
		Args:  cobra.ExactArgs(1),
		RunE:  runStats, // Defined in cmd_stats.go
	}

	validateCmd = &cobra.Command{
		Use:   "validate [segments.json]",
		Short: "Check a corpus release against the format invariants",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate, // Defined in cmd_validate.go
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to pairgen.yaml (default: ./pairgen.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "also write JSON logs into this directory")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit stderr logs as JSON")

	for _, cmd := range []*cobra.Command{buildCmd, statsCmd} {
		cmd.Flags().StringSliceVarP(&systemList, "systems", "s", nil, "translation systems to consider, in order")
		cmd.Flags().StringVarP(&metricName, "metric", "m", "", "score family: comet (higher is better) or metricx (error metric)")
	}
	buildCmd.Flags().StringVarP(&promptsPath, "prompts", "p", "", "prompt file (omit to synthesize prompts from source text)")
	buildCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output JSONL file (default: stdout)")
	buildCmd.Flags().StringVarP(&formatName, "format", "f", "", "output shape: conversation or flat")
	buildCmd.Flags().StringVar(&strategyName, "strategy", "", "selection strategy: all, hardest or easiest")
	statsCmd.Flags().StringVarP(&promptsPath, "prompts", "p", "", "prompt file to measure prompt coverage against")
	validateCmd.Flags().StringVarP(&promptsPath, "prompts", "p", "", "prompt file to validate alongside the segments")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(validateCmd)
}
