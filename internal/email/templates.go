package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"
)

//go:embed templates/*.html
var templateFS embed.FS

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
	CTALabel   string
	CTAURL     string
}

type leadAlertEmailData struct {
	baseEmailData
	LeadAlert
	KindLabel string
}

type visitEmailData struct {
	baseEmailData
	Visit
}

type alertWelcomeEmailData struct {
	baseEmailData
	ConsumerName string
}

// Every page template is parsed together with base.html once, on first use.
var loadTemplates = sync.OnceValues(func() (map[string]*template.Template, error) {
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	set := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		name := path.Base(page)
		if name == "base.html" {
			continue
		}
		tmpl, err := template.New("base.html").ParseFS(templateFS, "templates/base.html", page)
		if err != nil {
			return nil, fmt.Errorf("parse email template %s: %w", name, err)
		}
		set[name] = tmpl
	}
	return set, nil
})

func renderEmailTemplate(name string, data any) (string, error) {
	set, err := loadTemplates()
	if err != nil {
		return "", err
	}
	tmpl, ok := set[name]
	if !ok {
		return "", fmt.Errorf("unknown email template %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}
