// Copyright (C) 2026 Pairgen Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package pairs

import (
	"fmt"

	"github.com/mtpe/pairgen/pkg/corpus"
)

// SystemCoverage counts one system's contribution to the corpus under a
// given metric family.
type SystemCoverage struct {
	System string

	// Present counts segments with a non-empty hypothesis for the system.
	Present int

	// Usable counts present hypotheses that also differ from the reference,
	// i.e. the ones StrategyAll would emit.
	Usable int

	// Scored counts usable hypotheses carrying a score in the selected
	// metric family.
	Scored int
}

// Coverage summarizes, for one system list and metric family, how much of
// the corpus the builder can actually use. SkippedUnscored is the number of
// segments the scoring strategies would drop entirely; it is the coverage
// gap a caller accepts when training on hardest/easiest selections.
type Coverage struct {
	Segments        int
	MissingPrompts  int
	Systems         []SystemCoverage
	SkippedUnscored int
}

// Measure computes corpus coverage for the configured systems and metric.
// The strategy in opts does not influence the numbers; SkippedUnscored
// always describes what hardest/easiest would skip.
func Measure(segments []corpus.Segment, prompts corpus.PromptIndex, opts Options) (Coverage, error) {
	if err := opts.Validate(); err != nil {
		return Coverage{}, fmt.Errorf("invalid options: %w", err)
	}

	cov := Coverage{Segments: len(segments)}
	// Size the slice up front: the per-system pointers below must not be
	// invalidated by append reallocating the backing array.
	cov.Systems = make([]SystemCoverage, len(opts.Systems))
	perSystem := make(map[string]*SystemCoverage, len(opts.Systems))
	for i, sys := range opts.Systems {
		cov.Systems[i] = SystemCoverage{System: sys}
		perSystem[sys] = &cov.Systems[i]
	}

	for _, seg := range segments {
		if _, ok := prompts[seg.ID]; !ok {
			cov.MissingPrompts++
		}
		scored := 0
		for _, sys := range opts.Systems {
			o, ok := seg.Output(sys)
			if !ok || o.Text == "" {
				continue
			}
			sc := perSystem[sys]
			sc.Present++
			if o.Text == seg.PostEdited {
				continue
			}
			sc.Usable++
			if o.Score(opts.Metric) != nil {
				sc.Scored++
				scored++
			}
		}
		if scored == 0 {
			cov.SkippedUnscored++
		}
	}
	return cov, nil
}
