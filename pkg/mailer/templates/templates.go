package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	htmpl "html/template"
	"io/fs"
	"reflect"
	"strings"
	"sync"
	texttpl "text/template"
)

//go:embed *.tmpl
var FS embed.FS

const Welcome = "welcome"

// ErrUnknownTemplate is returned by Render for a name with no embedded files.
var ErrUnknownTemplate = errors.New("unknown email template")

// EmailData is the data every template may reference.
type EmailData struct {
	Name           string `json:"Name"`
	Email          string `json:"Email"`
	RecipientEmail string `json:"RecipientEmail"`
	Type           string `json:"Type"`
	Role           string `json:"Role"`

	CompanyName string `json:"CompanyName"`
	AppName     string `json:"AppName"`

	AppURL     string `json:"AppURL"`
	SupportURL string `json:"SupportURL"`
}

// ToMap flattens d for EmailJob.Data, which travels as JSON anyway.
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports {{ .Value | default "Fallback" }}; zero values fall back.
func defaultFn(fallback, value any) any {
	if s, ok := value.(string); ok {
		if strings.TrimSpace(s) == "" {
			return fallback
		}
		return s
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.IsZero() {
		return fallback
	}
	return value
}

var funcs = map[string]any{"default": defaultFn}

// set is the three parts of one email.
type set struct {
	subject *texttpl.Template
	text    *texttpl.Template
	html    *htmpl.Template
}

var (
	loadOnce sync.Once
	sets     map[string]set
	loadErr  error
)

// load parses every <name>.{subject,text,html}.tmpl triple in FS once.
func load() (map[string]set, error) {
	loadOnce.Do(func() {
		names, err := fs.Glob(FS, "*.subject.tmpl")
		if err != nil {
			loadErr = err
			return
		}
		sets = make(map[string]set, len(names))
		for _, n := range names {
			name := strings.TrimSuffix(n, ".subject.tmpl")
			var s set
			if s.subject, err = texttpl.New(n).Funcs(funcs).ParseFS(FS, n); err != nil {
				loadErr = fmt.Errorf("parse %s: %w", n, err)
				return
			}
			if s.text, err = texttpl.New(name + ".text.tmpl").Funcs(funcs).ParseFS(FS, name+".text.tmpl"); err != nil {
				loadErr = fmt.Errorf("parse %s text: %w", name, err)
				return
			}
			if s.html, err = htmpl.New(name + ".html.tmpl").Funcs(funcs).ParseFS(FS, name+".html.tmpl"); err != nil {
				loadErr = fmt.Errorf("parse %s html: %w", name, err)
				return
			}
			sets[name] = s
		}
	})
	return sets, loadErr
}

// Render produces the subject, plain text and HTML bodies of template name.
func Render(name string, data any) (subject, text, html string, err error) {
	all, err := load()
	if err != nil {
		return "", "", "", err
	}
	s, ok := all[name]
	if !ok {
		return "", "", "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	var sb, tb, hb bytes.Buffer
	if err := s.subject.Execute(&sb, data); err != nil {
		return "", "", "", fmt.Errorf("exec %s subject: %w", name, err)
	}
	if err := s.text.Execute(&tb, data); err != nil {
		return "", "", "", fmt.Errorf("exec %s text: %w", name, err)
	}
	if err := s.html.Execute(&hb, data); err != nil {
		return "", "", "", fmt.Errorf("exec %s html: %w", name, err)
	}
	return strings.TrimSpace(sb.String()), tb.String(), hb.String(), nil
}
