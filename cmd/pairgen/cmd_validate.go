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
	"github.com/mtpe/pairgen/pkg/ux"
)

// runValidate runs the fail-fast corpus checks without producing output.
// Loading already enforces every invariant (ids present and unique,
// references non-empty, score fields numeric), so validation is loading.
func runValidate(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Close()

	segments, err := corpus.LoadSegments(args[0])
	if err != nil {
		ux.Error(err.Error())
		return err
	}
	prompts, err := corpus.LoadPrompts(promptsPath)
	if err != nil {
		ux.Error(err.Error())
		return err
	}

	logger.Info("corpus valid", "segments", len(segments), "prompts", len(prompts))
	ux.Success(fmt.Sprintf("%d segments, %d prompts: all invariants hold", len(segments), len(prompts)))
	return nil
}
