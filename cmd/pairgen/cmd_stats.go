// Copyright (C) 2026 Pairgen Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mtpe/pairgen/pkg/corpus"
	"github.com/mtpe/pairgen/pkg/pairs"
	"github.com/mtpe/pairgen/pkg/ux"
)

func runStats(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Close()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	opts, _, err := resolveOptions(cfg)
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

	cov, err := pairs.Measure(segments, prompts, opts)
	if err != nil {
		return err
	}

	ux.Title(fmt.Sprintf("Corpus coverage (metric: %s)", opts.Metric))
	ux.Row("Segments", cov.Segments)
	ux.Row("Missing prompts", cov.MissingPrompts)
	ux.Row("Unscored segments", cov.SkippedUnscored)
	for _, sc := range cov.Systems {
		ux.Row(sc.System, fmt.Sprintf("present %d, usable %d, scored %d", sc.Present, sc.Usable, sc.Scored))
	}
	if cov.SkippedUnscored > 0 {
		ux.Warning(fmt.Sprintf("hardest/easiest would skip %d of %d segments", cov.SkippedUnscored, cov.Segments))
	}
	return nil
}
