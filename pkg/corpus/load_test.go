// Copyright (C) 2026 Pairgen Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Fixtures
// =============================================================================

// sparseSegmentJSON returns one segment object in the corpus wire format:
// fixed keys plus dynamically keyed per-system fields.
func sparseSegmentJSON() string {
	return `[{
		"id": 7,
		"text": "Hello",
		"post_edited_text": "Bonjour",
		"SysA": "Bonjour",
		"SysA_COMET_QE_Score": 0.9,
		"SysB": "Salut",
		"SysB_COMET_QE_Score": 0.5,
		"SysB_MetricX_QE_Score": 3.2,
		"SysC": "Allo"
	}]`
}

// =============================================================================
// Segment Decoding
// =============================================================================

func TestReadSegments_SparseObject(t *testing.T) {
	segments, err := ReadSegments(strings.NewReader(sparseSegmentJSON()))
	require.NoError(t, err)
	require.Len(t, segments, 1)

	seg := segments[0]
	assert.Equal(t, 7, seg.ID)
	assert.Equal(t, "Hello", seg.Text)
	assert.Equal(t, "Bonjour", seg.PostEdited)
	require.Len(t, seg.Outputs, 3)

	a, ok := seg.Output("SysA")
	require.True(t, ok)
	assert.Equal(t, "Bonjour", a.Text)
	require.NotNil(t, a.COMET)
	assert.Equal(t, 0.9, *a.COMET)
	assert.Nil(t, a.MetricX)

	b, ok := seg.Output("SysB")
	require.True(t, ok)
	require.NotNil(t, b.MetricX)
	assert.Equal(t, 3.2, *b.MetricX)

	c, ok := seg.Output("SysC")
	require.True(t, ok)
	assert.Equal(t, "Allo", c.Text)
	assert.Nil(t, c.COMET)
	assert.Nil(t, c.MetricX)
}

func TestReadSegments_OutputsSortedBySystem(t *testing.T) {
	segments, err := ReadSegments(strings.NewReader(`[{
		"id": 1, "post_edited_text": "ref",
		"SysZ": "z", "SysA": "a", "SysM": "m"
	}]`))
	require.NoError(t, err)
	var names []string
	for _, o := range segments[0].Outputs {
		names = append(names, o.System)
	}
	assert.Equal(t, []string{"SysA", "SysM", "SysZ"}, names)
}

func TestReadSegments_ScoreWithoutTextKeepsEntry(t *testing.T) {
	segments, err := ReadSegments(strings.NewReader(`[{
		"id": 1, "post_edited_text": "ref",
		"SysA_MetricX_QE_Score": 0
	}]`))
	require.NoError(t, err)
	o, ok := segments[0].Output("SysA")
	require.True(t, ok)
	assert.Empty(t, o.Text)
	// Zero is a real score, not "absent".
	require.NotNil(t, o.MetricX)
	assert.Equal(t, 0.0, *o.MetricX)
}

// =============================================================================
// Fail-Fast Validation
// =============================================================================

func TestReadSegments_MissingIDFailsRun(t *testing.T) {
	_, err := ReadSegments(strings.NewReader(`[{"post_edited_text": "ref"}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed segment")
}

func TestReadSegments_MissingReferenceFailsRun(t *testing.T) {
	_, err := ReadSegments(strings.NewReader(`[{"id": 1, "text": "src"}]`))
	require.Error(t, err)
}

func TestReadSegments_EmptyReferenceFailsRun(t *testing.T) {
	_, err := ReadSegments(strings.NewReader(`[{"id": 1, "post_edited_text": ""}]`))
	require.Error(t, err)
}

func TestReadSegments_DuplicateIDFailsRun(t *testing.T) {
	_, err := ReadSegments(strings.NewReader(`[
		{"id": 1, "post_edited_text": "a"},
		{"id": 1, "post_edited_text": "b"}
	]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate segment id 1")
}

func TestReadSegments_NonNumericScoreFailsRun(t *testing.T) {
	_, err := ReadSegments(strings.NewReader(`[{
		"id": 1, "post_edited_text": "ref",
		"SysA_COMET_QE_Score": "high"
	}]`))
	require.Error(t, err)
}

// =============================================================================
// Prompts
// =============================================================================

func TestReadPrompts_IndexAndDuplicates(t *testing.T) {
	index, err := ReadPrompts(strings.NewReader(`[
		{"id": 1, "prompt": "Translate: Hello"},
		{"id": 2, "prompt": "Translate: Bye"}
	]`))
	require.NoError(t, err)
	assert.Equal(t, "Translate: Hello", index[1])

	_, err = ReadPrompts(strings.NewReader(`[
		{"id": 1, "prompt": "a"},
		{"id": 1, "prompt": "b"}
	]`))
	require.Error(t, err)
}

func TestPromptIndex_ResolveFallsBackToSourceText(t *testing.T) {
	index := PromptIndex{1: "recorded prompt"}
	assert.Equal(t, "recorded prompt", index.Resolve(Segment{ID: 1, Text: "Hello"}))

	fallback := index.Resolve(Segment{ID: 2, Text: "Hello"})
	assert.Contains(t, fallback, "Hello")
	assert.Equal(t, DefaultPrompt("Hello"), fallback)

	// No prompt record and no source text still resolves, to an instruction
	// with nothing appended.
	assert.Equal(t, DefaultPrompt(""), index.Resolve(Segment{ID: 3}))
}

// =============================================================================
// File Loading
// =============================================================================

func TestLoadSegments_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segments.json")
	require.NoError(t, os.WriteFile(path, []byte(sparseSegmentJSON()), 0o644))

	segments, err := LoadSegments(path)
	require.NoError(t, err)
	assert.Len(t, segments, 1)

	_, err = LoadSegments(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestLoadSegments_JSONLFile(t *testing.T) {
	content := `{"id": 1, "post_edited_text": "ref", "SysA": "alpha", "SysA_COMET_QE_Score": 0.7}
{"id": 2, "post_edited_text": "ref2", "SysA": "beta"}
`
	path := filepath.Join(t.TempDir(), "segments.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	segments, err := LoadSegments(path)
	require.NoError(t, err)
	require.Len(t, segments, 2)
	assert.Equal(t, 1, segments[0].ID)
	o, ok := segments[1].Output("SysA")
	require.True(t, ok)
	assert.Equal(t, "beta", o.Text)
}

func TestReadSegmentsJSONL_Invariants(t *testing.T) {
	// Same fail-fast rules as the array format.
	_, err := ReadSegmentsJSONL(strings.NewReader(
		"{\"id\": 1, \"post_edited_text\": \"a\"}\n{\"id\": 1, \"post_edited_text\": \"b\"}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate segment id 1")

	_, err = ReadSegmentsJSONL(strings.NewReader("{\"id\": 1, \"post_edited_text\": \"\"}\n"))
	require.Error(t, err)
}

func TestLoadPrompts_EmptyPathMeansNoPrompts(t *testing.T) {
	index, err := LoadPrompts("")
	require.NoError(t, err)
	assert.Empty(t, index)
}

// =============================================================================
// Metric Semantics
// =============================================================================

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric("comet")
	require.NoError(t, err)
	assert.True(t, m.HigherIsBetter())

	m, err = ParseMetric("metricx")
	require.NoError(t, err)
	assert.False(t, m.HigherIsBetter())

	_, err = ParseMetric("bleu")
	require.Error(t, err)
}
