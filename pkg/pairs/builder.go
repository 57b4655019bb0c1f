// Copyright (C) 2026 Pairgen Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package pairs builds preference pairs from a loaded corpus.
//
// Each pair opposes the human post-edited reference (chosen) to one system
// hypothesis (rejected). The builder walks the segments once, in input
// order, and applies a per-segment selection strategy over the configured
// systems:
//
//   - all: every present hypothesis that differs from the reference
//   - hardest: the single scored hypothesis closest to the reference
//     (the most confusable reject)
//   - easiest: the single scored hypothesis furthest from the reference
//
// "Closest" and "furthest" respect the metric family's direction: COMET is
// higher-is-better, MetricX is an error metric and lower-is-better. Segments
// with no scored candidate are skipped under hardest/easiest. Ties between
// equal scores resolve to the first occurrence in the configured system
// order.
package pairs

import (
	"fmt"

	"github.com/mtpe/pairgen/pkg/corpus"
)

// Strategy selects which hypotheses of a segment become pairs.
type Strategy string

const (
	StrategyAll     Strategy = "all"
	StrategyHardest Strategy = "hardest"
	StrategyEasiest Strategy = "easiest"
)

// ParseStrategy converts a user-supplied strategy name into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyAll, StrategyHardest, StrategyEasiest:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("unknown strategy %q (want %q, %q or %q)",
			s, StrategyAll, StrategyHardest, StrategyEasiest)
	}
}

// Options configures one builder run. The zero value is not usable: Systems
// must name at least one system, and the selectors must hold parsed values.
type Options struct {
	// Systems lists the translation systems to consider, in the order that
	// governs both output order under StrategyAll and tie-breaking under the
	// scoring strategies.
	Systems []string

	Strategy Strategy
	Metric   corpus.Metric
}

// Validate reports the first configuration defect.
func (o Options) Validate() error {
	if len(o.Systems) == 0 {
		return fmt.Errorf("no systems configured")
	}
	seen := make(map[string]bool, len(o.Systems))
	for _, sys := range o.Systems {
		if sys == "" {
			return fmt.Errorf("empty system name")
		}
		if seen[sys] {
			return fmt.Errorf("duplicate system %q", sys)
		}
		seen[sys] = true
	}
	if _, err := ParseStrategy(string(o.Strategy)); err != nil {
		return err
	}
	if _, err := corpus.ParseMetric(string(o.Metric)); err != nil {
		return err
	}
	return nil
}

// Pair is one preference pair before shaping: the resolved prompt, the
// reference as the preferred text, and one hypothesis as the non-preferred
// text. SegmentID and System identify the provenance for logs and reports;
// the output shapes do not carry them.
type Pair struct {
	SegmentID int
	System    string
	Prompt    string
	Chosen    string
	Rejected  string
}

// prefer reports whether score a should displace the current pick b. Strict
// comparison keeps the first occurrence on ties.
type prefer func(a, b float64) bool

// comparator maps strategy x metric direction onto the pick rule once per
// run. hardest wants the best-quality reject, easiest the worst; what
// "best" means flips with the metric direction.
func comparator(s Strategy, m corpus.Metric) prefer {
	higher := func(a, b float64) bool { return a > b }
	lower := func(a, b float64) bool { return a < b }
	if (s == StrategyHardest) == m.HigherIsBetter() {
		return higher
	}
	return lower
}

// Build transforms segments into preference pairs. Segment order is
// preserved; within a segment, StrategyAll emits pairs in configured system
// order. Hypotheses whose text is empty or identical to the reference never
// produce a pair.
func Build(segments []corpus.Segment, prompts corpus.PromptIndex, opts Options) ([]Pair, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	var pick prefer
	if opts.Strategy != StrategyAll {
		pick = comparator(opts.Strategy, opts.Metric)
	}

	var out []Pair
	for _, seg := range segments {
		prompt := prompts.Resolve(seg)
		candidates := collect(seg, opts.Systems, opts.Metric)

		switch opts.Strategy {
		case StrategyAll:
			for _, h := range candidates {
				out = append(out, makePair(seg, prompt, h))
			}
		default:
			var selected *corpus.Hypothesis
			for i, h := range candidates {
				if h.Score == nil {
					continue
				}
				if selected == nil || pick(*h.Score, *selected.Score) {
					selected = &candidates[i]
				}
			}
			// No scored candidate: the segment contributes nothing under a
			// scoring strategy.
			if selected != nil {
				out = append(out, makePair(seg, prompt, *selected))
			}
		}
	}
	return out, nil
}

// collect gathers the segment's usable hypotheses in configured system
// order: present, non-empty, and distinct from the reference.
func collect(seg corpus.Segment, systems []string, metric corpus.Metric) []corpus.Hypothesis {
	var hyps []corpus.Hypothesis
	for _, sys := range systems {
		o, ok := seg.Output(sys)
		if !ok || o.Text == "" || o.Text == seg.PostEdited {
			continue
		}
		hyps = append(hyps, corpus.Hypothesis{System: sys, Text: o.Text, Score: o.Score(metric)})
	}
	return hyps
}

func makePair(seg corpus.Segment, prompt string, h corpus.Hypothesis) Pair {
	return Pair{
		SegmentID: seg.ID,
		System:    h.System,
		Prompt:    prompt,
		Chosen:    seg.PostEdited,
		Rejected:  h.Text,
	}
}
