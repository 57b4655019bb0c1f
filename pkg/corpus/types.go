// Copyright (C) 2026 Pairgen Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package corpus defines the data model for the post-editing corpus and the
// loaders that turn its static JSON files into typed records.
//
// A corpus release consists of two files:
//
//   - a segment file: one object per source segment, carrying the source
//     text, the human post-edited reference, and a sparse set of per-system
//     fields ("<System>" for the hypothesis text, "<System>_COMET_QE_Score"
//     and "<System>_MetricX_QE_Score" for the quality-estimation scores)
//   - a prompt file: one object per segment id with the exact prompt that
//     elicited one system's hypothesis
//
// Loading converts the sparse, dynamically keyed segment objects into an
// explicit list of per-system entries so that nothing downstream ever does a
// string-keyed field lookup.
package corpus

import "fmt"

// Metric names one of the two quality-estimation score families carried by
// the corpus.
type Metric string

const (
	// MetricCOMET is the COMET-QE family. Higher scores are better.
	MetricCOMET Metric = "comet"

	// MetricMetricX is the MetricX-QE family. It is an error-style metric:
	// lower scores are better.
	MetricMetricX Metric = "metricx"
)

// ParseMetric converts a user-supplied metric name into a Metric.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricCOMET, MetricMetricX:
		return Metric(s), nil
	default:
		return "", fmt.Errorf("unknown metric %q (want %q or %q)", s, MetricCOMET, MetricMetricX)
	}
}

// HigherIsBetter reports the direction of the metric family.
func (m Metric) HigherIsBetter() bool {
	return m == MetricCOMET
}

// SystemOutput is one translation system's contribution to a segment: its
// hypothesis text (empty when the system produced nothing for this segment)
// and its optional quality-estimation scores. A nil score means the field was
// absent from the corpus; zero is a valid score value.
type SystemOutput struct {
	System  string
	Text    string
	COMET   *float64
	MetricX *float64
}

// Score returns the score for the given metric family, or nil when the
// corpus carries none.
func (o SystemOutput) Score(m Metric) *float64 {
	if m == MetricMetricX {
		return o.MetricX
	}
	return o.COMET
}

// Segment is one source-language unit of the corpus: the source text, the
// human post-edited reference, and every system's output for it.
//
// Outputs is ordered by system name so that a loaded corpus is deterministic
// regardless of JSON key order; selection order is imposed later by the
// caller's configured system list.
type Segment struct {
	ID         int
	Text       string
	PostEdited string
	Outputs    []SystemOutput
}

// Output returns the named system's output and whether the segment carries
// any field for that system at all.
func (s Segment) Output(system string) (SystemOutput, bool) {
	for _, o := range s.Outputs {
		if o.System == system {
			return o, true
		}
	}
	return SystemOutput{}, false
}

// Hypothesis is a derived value: one system's candidate translation for one
// segment, with the score read from the selected metric family. It is built
// at transformation time and never persisted.
type Hypothesis struct {
	System string
	Text   string
	Score  *float64
}

// Prompt is one record of the prompt file: the exact prompt text that was
// used to elicit a hypothesis for the segment with the matching id.
type Prompt struct {
	ID     int    `json:"id"`
	Prompt string `json:"prompt"`
}

// PromptIndex is a lookup from segment id to prompt text.
type PromptIndex map[int]string

// Resolve returns the recorded prompt for the segment, falling back to a
// default prompt synthesized from the segment's source text when the prompt
// file has no record for its id.
func (p PromptIndex) Resolve(seg Segment) string {
	if text, ok := p[seg.ID]; ok {
		return text
	}
	return DefaultPrompt(seg.Text)
}

// DefaultPrompt synthesizes the fallback prompt for a segment whose id has
// no record in the prompt file.
func DefaultPrompt(source string) string {
	return "Translate the following text into the target language, preserving meaning and register.\n\n" + source
}
