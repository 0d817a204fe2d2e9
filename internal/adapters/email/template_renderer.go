package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	"text/template"

	"orplanning/internal/domain"
)

//go:embed templates/*
var templateFS embed.FS

// Every template name has three files: <name>_subject.txt, <name>.txt and <name>.html.
var (
	textTemplates = template.Must(template.ParseFS(templateFS, "templates/*.txt"))
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html"))
)

type templateRenderer struct{}

// NewTemplateRenderer returns an EmailTemplateRenderer over the embedded alert templates.
func NewTemplateRenderer() domain.EmailTemplateRenderer {
	return templateRenderer{}
}

// Render executes the subject, html and text templates of name with data.
func (templateRenderer) Render(name string, data any) (subject, htmlBody, textBody string, err error) {
	if subject, err = execText(name+"_subject.txt", data); err != nil {
		return "", "", "", fmt.Errorf("render %s subject: %w", name, err)
	}
	if textBody, err = execText(name+".txt", data); err != nil {
		return "", "", "", fmt.Errorf("render %s text: %w", name, err)
	}
	t := htmlTemplates.Lookup(name + ".html")
	if t == nil {
		return "", "", "", fmt.Errorf("render %s html: template not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", "", "", fmt.Errorf("render %s html: %w", name, err)
	}
	return strings.TrimSpace(subject), buf.String(), textBody, nil
}

func execText(file string, data any) (string, error) {
	t := textTemplates.Lookup(file)
	if t == nil {
		return "", fmt.Errorf("template %s not found", file)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
