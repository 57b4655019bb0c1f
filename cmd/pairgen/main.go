// Copyright (C) 2026 Pairgen Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import "os"

func main() {
	// Execute the root command. Cobra handles parsing the arguments and
	// printing the error; our job is only the exit code.
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
