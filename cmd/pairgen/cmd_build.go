// Copyright (C) 2026 Pairgen Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mtpe/pairgen/pkg/corpus"
	"github.com/mtpe/pairgen/pkg/jsonl"
	"github.com/mtpe/pairgen/pkg/logging"
	"github.com/mtpe/pairgen/pkg/pairs"
	"github.com/mtpe/pairgen/pkg/ux"
)

// newLogger builds the run logger from the persistent flags.
func newLogger() (*logging.Logger, error) {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Config{
		Level:   level,
		LogDir:  logDir,
		Service: "pairgen",
		JSON:    logJSON,
	})
}

func runBuild(cmd *cobra.Command, args []string) error {
	base, err := newLogger()
	if err != nil {
		return err
	}
	defer base.Close()
	logger := base.With("run_id", uuid.NewString())

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	opts, format, err := resolveOptions(cfg)
	if err != nil {
		return err
	}

	segments, err := corpus.LoadSegments(args[0])
	if err != nil {
		logger.Error("corpus rejected", "error", err)
		return err
	}
	prompts, err := corpus.LoadPrompts(promptsPath)
	if err != nil {
		logger.Error("prompt file rejected", "error", err)
		return err
	}
	logger.Info("corpus loaded",
		"segments", len(segments),
		"prompts", len(prompts),
		"systems", opts.Systems,
		"strategy", opts.Strategy,
		"metric", opts.Metric,
		"format", format,
	)

	built, err := pairs.Build(segments, prompts, opts)
	if err != nil {
		return err
	}

	cov, err := pairs.Measure(segments, prompts, opts)
	if err != nil {
		return err
	}
	if cov.MissingPrompts > 0 {
		logger.Warn("segments without a prompt record use the synthesized default",
			"segments", cov.MissingPrompts)
	}
	if opts.Strategy != pairs.StrategyAll && cov.SkippedUnscored > 0 {
		logger.Warn("segments skipped: no scored hypothesis under scoring strategy",
			"segments", cov.SkippedUnscored, "metric", opts.Metric)
	}

	shaped := pairs.ShapeAll(built, format)
	if outputPath == "" {
		if err := jsonl.Write(os.Stdout, shaped); err != nil {
			return err
		}
	} else {
		if err := jsonl.WriteFile(outputPath, shaped); err != nil {
			return err
		}
	}
	logger.Info("dataset written", "pairs", len(built), "output", orStdout(outputPath))

	if outputPath != "" {
		ux.Title("Build complete")
		ux.Row("Segments", cov.Segments)
		ux.Row("Pairs", len(built))
		ux.Row("Output", outputPath)
		ux.Success(fmt.Sprintf("wrote %d pairs", len(built)))
	}
	return nil
}

func orStdout(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}
