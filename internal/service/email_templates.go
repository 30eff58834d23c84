package service

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/macromind/backend/internal/markdown"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed emails/*.md
var emailFS embed.FS

var emailTemplates = template.Must(template.ParseFS(emailFS, "emails/*.md"))

// renderedEmail is one message in both HTML and plain text.
type renderedEmail struct {
	Subject string
	HTML    string
	Text    string
}

// greetingName title-cases a stored full name, falling back to "there".
func greetingName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "there"
	}
	return cases.Title(language.English).String(name)
}

// renderEmail fills the named markdown template and converts it to HTML.
// The subject comes from the template's frontmatter.
func renderEmail(parser *markdown.Parser, name, recipient, appName string) (*renderedEmail, error) {
	var source bytes.Buffer
	err := emailTemplates.ExecuteTemplate(&source, name+".md", struct {
		Name    string
		AppName string
	}{
		Name:    greetingName(recipient),
		AppName: appName,
	})
	if err != nil {
		return nil, fmt.Errorf("execute email template %s: %w", name, err)
	}

	var meta struct {
		Subject string `yaml:"subject"`
	}
	doc, err := parser.Render(source.Bytes(), &meta)
	if err != nil {
		return nil, fmt.Errorf("render email template %s: %w", name, err)
	}
	if meta.Subject == "" {
		return nil, fmt.Errorf("email template %s has no subject", name)
	}

	return &renderedEmail{
		Subject: meta.Subject,
		HTML:    string(doc.HTML),
		Text:    string(doc.Text),
	}, nil
}
