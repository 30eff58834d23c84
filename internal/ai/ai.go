// Package ai builds prompts for the language model, validates what comes
// back and substitutes static content when generation fails.
package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Result carries generated content and where it came from.
// Content generation never fails; a failed model call yields SourceFallback.
type Result[T any] struct {
	Value  T
	Source Source
}

func modelResult[T any](v T) Result[T] {
	return Result[T]{Value: v, Source: SourceModel}
}

func fallbackResult[T any](v T) Result[T] {
	return Result[T]{Value: v, Source: SourceFallback}
}

// StripCodeFences removes a leading ```json or ``` marker and a trailing ```.
func StripCodeFences(s string) string {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

var errNotArray = errors.New("expected a JSON array")

// decodeResponse strips fences and decodes raw into v.
func decodeResponse(raw string, v any) error {
	return json.Unmarshal([]byte(StripCodeFences(raw)), v)
}

// isArray reports whether raw holds a JSON array.
func isArray(raw json.RawMessage) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("["))
}
