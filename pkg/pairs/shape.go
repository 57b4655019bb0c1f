// Copyright (C) 2026 Pairgen Contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package pairs

import (
	"fmt"
	"strings"
)

// Format selects the serialized shape of a pair.
type Format string

const (
	// FormatConversation nests the pair in conversational turns with
	// role/content messages.
	FormatConversation Format = "conversation"

	// FormatFlat is the plain prompt/chosen/rejected object.
	FormatFlat Format = "flat"
)

// ParseFormat converts a user-supplied format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatConversation, FormatFlat:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format %q (want %q or %q)", s, FormatConversation, FormatFlat)
	}
}

// Translation texts are wrapped in fixed tags in both shapes so a training
// consumer can strip any text the model emits around the translation proper.
const (
	translationOpen  = "<translation>"
	translationClose = "</translation>"
)

// WrapTranslation wraps a translation text in the fixed output tags.
func WrapTranslation(text string) string {
	return translationOpen + text + translationClose
}

// UnwrapTranslation strips the fixed output tags, reporting whether the text
// was wrapped.
func UnwrapTranslation(text string) (string, bool) {
	if !strings.HasPrefix(text, translationOpen) || !strings.HasSuffix(text, translationClose) {
		return text, false
	}
	return strings.TrimSuffix(strings.TrimPrefix(text, translationOpen), translationClose), true
}

// Message is one conversational turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Turn wraps a message list, matching the conversational training shape.
type Turn struct {
	Messages []Message `json:"messages"`
}

// ConversationPair is the conversational output shape: the prompt as a user
// turn, the chosen and rejected translations as assistant turns.
type ConversationPair struct {
	Input              Turn `json:"input"`
	PreferredOutput    Turn `json:"preferred_output"`
	NonPreferredOutput Turn `json:"non_preferred_output"`
}

// FlatPair is the flat output shape.
type FlatPair struct {
	Prompt   string `json:"prompt"`
	Chosen   string `json:"chosen"`
	Rejected string `json:"rejected"`
}

// Conversation shapes the pair conversationally.
func (p Pair) Conversation() ConversationPair {
	return ConversationPair{
		Input:              Turn{Messages: []Message{{Role: "user", Content: p.Prompt}}},
		PreferredOutput:    Turn{Messages: []Message{{Role: "assistant", Content: WrapTranslation(p.Chosen)}}},
		NonPreferredOutput: Turn{Messages: []Message{{Role: "assistant", Content: WrapTranslation(p.Rejected)}}},
	}
}

// Flat shapes the pair as a plain prompt/chosen/rejected object.
func (p Pair) Flat() FlatPair {
	return FlatPair{
		Prompt:   p.Prompt,
		Chosen:   WrapTranslation(p.Chosen),
		Rejected: WrapTranslation(p.Rejected),
	}
}

// Shape returns the serializable value for the pair in the given format.
func Shape(p Pair, f Format) any {
	if f == FormatFlat {
		return p.Flat()
	}
	return p.Conversation()
}

// ShapeAll shapes a built pair sequence for serialization, preserving order.
func ShapeAll(ps []Pair, f Format) []any {
	shaped := make([]any, len(ps))
	for i, p := range ps {
		shaped[i] = Shape(p, f)
	}
	return shaped
}
