// Copyright (C) 2026 Pairgen Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package corpus

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mtpe/pairgen/pkg/jsonl"
)

const (
	cometSuffix   = "_COMET_QE_Score"
	metricxSuffix = "_MetricX_QE_Score"
)

// reservedKeys are the segment object keys that are not system fields.
var reservedKeys = map[string]bool{
	"id":               true,
	"text":             true,
	"post_edited_text": true,
}

// segmentFields carries the fixed (non-system) part of a segment object.
// Pointers distinguish "absent" from zero values so validation can fail fast
// on records the corpus must never ship (missing id, missing or empty
// reference).
type segmentFields struct {
	ID         *int    `json:"id" validate:"required"`
	Text       string  `json:"text"`
	PostEdited *string `json:"post_edited_text" validate:"required,min=1"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// UnmarshalJSON decodes one sparse segment object into the typed Segment.
// Keys outside the fixed set are interpreted as per-system fields: a bare
// system name carries the hypothesis text, and the "_COMET_QE_Score" /
// "_MetricX_QE_Score" suffixed variants carry that system's scores.
func (s *Segment) UnmarshalJSON(data []byte) error {
	var fixed segmentFields
	if err := json.Unmarshal(data, &fixed); err != nil {
		return err
	}
	if err := validate.Struct(fixed); err != nil {
		return fmt.Errorf("malformed segment: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	outputs := map[string]*SystemOutput{}
	entry := func(system string) *SystemOutput {
		if o, ok := outputs[system]; ok {
			return o
		}
		o := &SystemOutput{System: system}
		outputs[system] = o
		return o
	}

	for key, value := range raw {
		if reservedKeys[key] {
			continue
		}
		switch {
		case strings.HasSuffix(key, cometSuffix):
			var score float64
			if err := json.Unmarshal(value, &score); err != nil {
				return fmt.Errorf("segment %d: field %q: %w", *fixed.ID, key, err)
			}
			entry(strings.TrimSuffix(key, cometSuffix)).COMET = &score
		case strings.HasSuffix(key, metricxSuffix):
			var score float64
			if err := json.Unmarshal(value, &score); err != nil {
				return fmt.Errorf("segment %d: field %q: %w", *fixed.ID, key, err)
			}
			entry(strings.TrimSuffix(key, metricxSuffix)).MetricX = &score
		default:
			var text string
			if err := json.Unmarshal(value, &text); err != nil {
				return fmt.Errorf("segment %d: field %q: %w", *fixed.ID, key, err)
			}
			entry(key).Text = text
		}
	}

	s.ID = *fixed.ID
	s.Text = fixed.Text
	s.PostEdited = *fixed.PostEdited
	s.Outputs = s.Outputs[:0]
	for _, o := range outputs {
		s.Outputs = append(s.Outputs, *o)
	}
	// JSON object key order is not observable through a map; sort so a loaded
	// segment is always deterministic.
	sort.Slice(s.Outputs, func(i, j int) bool { return s.Outputs[i].System < s.Outputs[j].System })
	return nil
}

// ReadSegments decodes a JSON array of segment objects and enforces the
// corpus invariants (ids unique, references non-empty). Any malformed record
// fails the whole read; there is no partial result.
func ReadSegments(r io.Reader) ([]Segment, error) {
	var segments []Segment
	if err := json.NewDecoder(r).Decode(&segments); err != nil {
		return nil, fmt.Errorf("decode segments: %w", err)
	}
	if err := checkUniqueIDs(segments); err != nil {
		return nil, err
	}
	return segments, nil
}

// ReadSegmentsJSONL decodes a line-delimited segment file, one object per
// line, under the same invariants as ReadSegments.
func ReadSegmentsJSONL(r io.Reader) ([]Segment, error) {
	var segments []Segment
	err := jsonl.Scan(r, func(line json.RawMessage) error {
		var seg Segment
		if err := json.Unmarshal(line, &seg); err != nil {
			return err
		}
		segments = append(segments, seg)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("decode segments: %w", err)
	}
	if err := checkUniqueIDs(segments); err != nil {
		return nil, err
	}
	return segments, nil
}

func checkUniqueIDs(segments []Segment) error {
	seen := make(map[int]bool, len(segments))
	for _, seg := range segments {
		if seen[seg.ID] {
			return fmt.Errorf("duplicate segment id %d", seg.ID)
		}
		seen[seg.ID] = true
	}
	return nil
}

// LoadSegments reads the segment file at path. A ".jsonl" extension selects
// the line-delimited format; everything else is read as a JSON array.
func LoadSegments(path string) ([]Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open segment file: %w", err)
	}
	defer f.Close()

	read := ReadSegments
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		read = ReadSegmentsJSONL
	}
	segments, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return segments, nil
}

// ReadPrompts decodes a JSON array of prompt records into a PromptIndex.
// A duplicate id is a corpus defect and fails the read.
func ReadPrompts(r io.Reader) (PromptIndex, error) {
	var prompts []Prompt
	if err := json.NewDecoder(r).Decode(&prompts); err != nil {
		return nil, fmt.Errorf("decode prompts: %w", err)
	}
	index := make(PromptIndex, len(prompts))
	for _, p := range prompts {
		if _, ok := index[p.ID]; ok {
			return nil, fmt.Errorf("duplicate prompt id %d", p.ID)
		}
		index[p.ID] = p.Prompt
	}
	return index, nil
}

// LoadPrompts reads the prompt file at path. An empty path yields an empty
// index: every segment then falls back to the default prompt.
func LoadPrompts(path string) (PromptIndex, error) {
	if path == "" {
		return PromptIndex{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open prompt file: %w", err)
	}
	defer f.Close()
	index, err := ReadPrompts(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return index, nil
}
