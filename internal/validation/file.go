package validation

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

var (
	ErrFileTooLarge = errors.New("file too large")
	ErrFileType     = errors.New("unsupported file type")
)

// ImageRules maps each accepted content type to the extensions allowed for it.
type ImageRules struct {
	MaxBytes int64
	Types    map[string][]string
}

// AvatarRules accepts JPEG, PNG and WebP images up to 5MB.
var AvatarRules = ImageRules{
	MaxBytes: 5 << 20,
	Types: map[string][]string{
		"image/jpeg": {".jpg", ".jpeg"},
		"image/png":  {".png"},
		"image/webp": {".webp"},
	},
}

// Image checks an uploaded image against rules and returns the content type
// sniffed from its first bytes. The client-supplied Content-Type is ignored.
func Image(header *multipart.FileHeader, rules ImageRules) (string, error) {
	if header.Size > rules.MaxBytes {
		return "", fmt.Errorf("%w: maximum size is %d MB", ErrFileTooLarge, rules.MaxBytes>>20)
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	head := make([]byte, 512)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	contentType := http.DetectContentType(head[:n])
	exts, ok := rules.Types[contentType]
	if !ok {
		return "", fmt.Errorf("%w: detected %s", ErrFileType, contentType)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !slices.Contains(exts, ext) {
		return "", fmt.Errorf("%w: extension %q does not match %s", ErrFileType, ext, contentType)
	}

	return contentType, nil
}
