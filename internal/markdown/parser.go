package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/frontmatter"
)

var delimiter = []byte("---")

// Document is one rendered markdown source.
type Document struct {
	HTML []byte
	// Text is the markdown body without frontmatter, for plain-text alternatives.
	Text []byte
}

type Parser struct {
	md goldmark.Markdown
}

func NewParser() *Parser {
	return &Parser{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
				&frontmatter.Extender{},
			),
			goldmark.WithRendererOptions(
				goldmarkhtml.WithHardWraps(),
				goldmarkhtml.WithXHTML(),
			),
		),
	}
}

// Render converts source to HTML. When meta is non-nil the frontmatter is
// decoded into it; a source without frontmatter leaves meta untouched.
func (p *Parser) Render(source []byte, meta any) (*Document, error) {
	ctx := parser.NewContext()
	var html bytes.Buffer

	err := p.md.Convert(source, &html, parser.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("convert markdown: %w", err)
	}

	if data := frontmatter.Get(ctx); data != nil && meta != nil {
		err = data.Decode(meta)
		if err != nil {
			return nil, fmt.Errorf("decode frontmatter: %w", err)
		}
	}

	return &Document{HTML: html.Bytes(), Text: Body(source)}, nil
}

// Body returns source without its frontmatter block, trimmed.
func Body(source []byte) []byte {
	trimmed := bytes.TrimLeft(source, "\r\n")
	if !bytes.HasPrefix(trimmed, delimiter) {
		return bytes.TrimSpace(source)
	}

	rest := trimmed[len(delimiter):]
	end := bytes.Index(rest, append([]byte("\n"), delimiter...))
	if end == -1 {
		return bytes.TrimSpace(source)
	}
	return bytes.TrimSpace(rest[end+1+len(delimiter):])
}
