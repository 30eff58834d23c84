package service

import (
	"context"
	"errors"

	"github.com/macromind/backend/internal/authclient"
	"github.com/macromind/backend/internal/llm"
)

type fakeCompleter struct {
	reply string
	err   error
	calls int
}

func (f *fakeCompleter) Complete(_ context.Context, _ llm.Request) (string, error) {
	f.calls++
	return f.reply, f.err
}

// unconfigured behaves like a client with no API key.
var unconfigured = &fakeCompleter{err: llm.ErrNotConfigured}

type fakeProfiles struct {
	profile *authclient.Profile
	err     error
	tokens  []string
}

func (f *fakeProfiles) Profile(_ context.Context, bearerToken string) (*authclient.Profile, error) {
	f.tokens = append(f.tokens, bearerToken)
	return f.profile, f.err
}

var errAuthDown = errors.New("auth service unavailable")

var llm503 = &llm.StatusError{StatusCode: 503, Body: "overloaded"}
