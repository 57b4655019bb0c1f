// Copyright (C) 2026 Pairgen Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mtpe/pairgen/pkg/corpus"
	"github.com/mtpe/pairgen/pkg/pairs"
)

// defaultConfigPath is probed when --config is not given. A missing default
// file is fine; a missing explicit --config path is an error.
const defaultConfigPath = "pairgen.yaml"

// Config carries the corpus-release defaults. There are deliberately no
// built-in system names: the system list describes a particular corpus and
// belongs next to it, not in the binary.
type Config struct {
	Systems  []string `yaml:"systems"`
	Strategy string   `yaml:"strategy"`
	Metric   string   `yaml:"metric"`
	Format   string   `yaml:"format"`
}

func loadConfig(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// resolveOptions merges flags over config-file values over hard defaults
// and parses the result. Flags win; the config file supplies what flags
// leave empty; format defaults to conversation, strategy to all, metric to
// comet. The system list has no default at all.
func resolveOptions(cfg Config) (pairs.Options, pairs.Format, error) {
	systems := systemList
	if len(systems) == 0 {
		systems = cfg.Systems
	}

	pick := func(flag, file, fallback string) string {
		if flag != "" {
			return flag
		}
		if file != "" {
			return file
		}
		return fallback
	}

	strategy, err := pairs.ParseStrategy(pick(strategyName, cfg.Strategy, string(pairs.StrategyAll)))
	if err != nil {
		return pairs.Options{}, "", err
	}
	metric, err := corpus.ParseMetric(pick(metricName, cfg.Metric, string(corpus.MetricCOMET)))
	if err != nil {
		return pairs.Options{}, "", err
	}
	format, err := pairs.ParseFormat(pick(formatName, cfg.Format, string(pairs.FormatConversation)))
	if err != nil {
		return pairs.Options{}, "", err
	}

	opts := pairs.Options{Systems: systems, Strategy: strategy, Metric: metric}
	if err := opts.Validate(); err != nil {
		return pairs.Options{}, "", fmt.Errorf("%w (set systems via --systems or %s)", err, defaultConfigPath)
	}
	return opts, format, nil
}
