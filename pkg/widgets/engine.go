package widgets

import (
	"embed"
	"fmt"
	"io/fs"
	"sync"

	"github.com/goliatone/go-parsley/pkg/render/template"
	"github.com/goliatone/go-parsley/pkg/render/template/gotemplate"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

var (
	defaultEngineOnce sync.Once
	defaultEngine     template.TemplateRenderer
	defaultEngineErr  error
)

// TemplatesFS exposes the built-in widget templates rooted at their directory.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// DefaultTemplates returns the shared engine loaded with the built-in widget
// templates.
func DefaultTemplates() (template.TemplateRenderer, error) {
	defaultEngineOnce.Do(func() {
		engine, err := gotemplate.New(gotemplate.WithFS(TemplatesFS()))
		if err != nil {
			defaultEngineErr = fmt.Errorf("widgets: configure templates: %w", err)
			return
		}
		defaultEngine = engine
	})
	return defaultEngine, defaultEngineErr
}
