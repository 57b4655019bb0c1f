// Copyright (C) 2026 Pairgen Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package jsonl writes and scans line-delimited JSON.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Write encodes each value as one JSON line. The whole sequence is written
// through a single buffered writer; the first encode error aborts the write.
func Write[T any](w io.Writer, values []T) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	for i, v := range values {
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode line %d: %w", i+1, err)
		}
	}
	return bw.Flush()
}

// WriteFile writes the values as JSONL to path, creating or truncating it.
func WriteFile[T any](path string, values []T) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, values); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Scan calls fn with each non-empty line's raw JSON. Lines are limited to
// 16MiB, well above any single corpus record.
func Scan(r io.Reader, fn func(line json.RawMessage) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if !json.Valid(line) {
			return fmt.Errorf("line %d: invalid JSON", n)
		}
		if err := fn(json.RawMessage(line)); err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}
	}
	return sc.Err()
}
