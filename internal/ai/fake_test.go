package ai

import (
	"context"

	"github.com/macromind/backend/internal/llm"
)

// fakeLLM returns reply and err for every call and records requests.
type fakeLLM struct {
	reply    string
	err      error
	requests []llm.Request
}

func (f *fakeLLM) Complete(_ context.Context, req llm.Request) (string, error) {
	f.requests = append(f.requests, req)
	return f.reply, f.err
}
