// Copyright (C) 2026 Pairgen Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides styled terminal output for the pairgen CLI.
//
// Everything here writes to stderr: stdout is reserved for the dataset
// itself so `pairgen build` can be piped.
package ux

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	ColorAccent  = lipgloss.Color("#7D56F4")
	ColorSuccess = lipgloss.Color("#04B575")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
	ColorMuted   = lipgloss.Color("#6C7086")
)

// Styles provides the pre-configured lipgloss styles used by the commands.
var Styles = struct {
	Title   lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Key     lipgloss.Style
}{
	Title:   lipgloss.NewStyle().Bold(true).Foreground(ColorAccent),
	Bold:    lipgloss.NewStyle().Bold(true),
	Muted:   lipgloss.NewStyle().Foreground(ColorMuted),
	Success: lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning: lipgloss.NewStyle().Foreground(ColorWarning),
	Error:   lipgloss.NewStyle().Foreground(ColorError),
	Key:     lipgloss.NewStyle().Foreground(ColorMuted).Width(22),
}

// Title prints a styled section title.
func Title(text string) {
	fmt.Fprintln(os.Stderr, Styles.Title.Render(text))
}

// Success prints a success line with a checkmark.
func Success(text string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", Styles.Success.Render("✓"), text)
}

// Warning prints a warning line.
func Warning(text string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", Styles.Warning.Render("⚠"), Styles.Warning.Render(text))
}

// Error prints an error line.
func Error(text string) {
	fmt.Fprintf(os.Stderr, "%s %s\n", Styles.Error.Render("✗"), Styles.Error.Render(text))
}

// Row prints an aligned key/value line for summary reports.
func Row(key string, value any) {
	fmt.Fprintf(os.Stderr, "  %s %v\n", Styles.Key.Render(key), value)
}
