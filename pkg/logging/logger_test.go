// Copyright (C) 2026 Pairgen Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{"info", LevelInfo, true},
		{"warn", LevelWarn, true},
		{"error", LevelError, true},
		{"verbose", LevelInfo, false},
		{"", LevelInfo, false},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if tt.ok {
			require.NoError(t, err, tt.in)
			assert.Equal(t, tt.want, got)
		} else {
			assert.Error(t, err, tt.in)
		}
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestNew_FileLogging(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, err := New(Config{LogDir: dir, Service: "test", Quiet: true})
	require.NoError(t, err)

	logger.Info("hello", "key", "value")
	require.NoError(t, logger.Close())

	name := "test_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"service":"test"`)
}

func TestNew_UnwritableLogDirFails(t *testing.T) {
	// A file where a directory should be.
	path := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	_, err := New(Config{LogDir: path})
	require.Error(t, err)
}

func TestLevelFiltering(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(Config{Level: LevelWarn, LogDir: dir, Service: "filter", Quiet: true})
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept")
	require.NoError(t, logger.Close())

	name := "filter_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestWith_CarriesAttributes(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(Config{LogDir: dir, Service: "child", Quiet: true})
	require.NoError(t, err)

	logger.With("run_id", "abc123").Info("tagged")
	require.NoError(t, logger.Close())

	name := "child_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"run_id":"abc123"`)
}

func TestClose_SafeWithoutFile(t *testing.T) {
	logger := Default()
	assert.NoError(t, logger.Close())
	assert.NoError(t, logger.Close())
}
