package storage

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	cfg "github.com/macromind/backend/internal/config"
)

// fakeS3 records object writes and deletes made through path-style requests.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodHead:
		w.WriteHeader(http.StatusOK)
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = string(body)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(f.objects, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestNewWithoutBucket(t *testing.T) {
	_, err := New(context.Background(), &cfg.Config{})
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestS3StorageAgainstCompatibleEndpoint(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	ctx := context.Background()
	s, err := NewS3Storage(ctx, S3Config{
		Region:               "us-east-1",
		Bucket:               "avatars",
		AccessKey:            "test-access",
		SecretKey:            "test-secret",
		Endpoint:             srv.URL,
		PresignExpiryPublic:  time.Hour,
		PresignExpiryPrivate: time.Minute,
	})
	if err != nil {
		t.Fatalf("NewS3Storage: %v", err)
	}

	if err := s.Delete(ctx, "public/avatars/missing.png"); err != nil {
		t.Errorf("Delete: %v", err)
	}

	url := s.URL(ctx, "public/avatars/a.png", true)
	if !strings.HasPrefix(url, srv.URL+"/avatars/public/avatars/a.png") {
		t.Errorf("URL = %q", url)
	}
	if !strings.Contains(url, "X-Amz-Expires=3600") {
		t.Errorf("public URL not presigned for an hour: %q", url)
	}
}
