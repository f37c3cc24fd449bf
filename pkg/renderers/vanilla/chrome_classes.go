package vanilla

import (
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ChromeClass is a typed identifier for the CSS classes wrapped around
// rendered controls.
type ChromeClass string

const (
	ClassForm     ChromeClass = "parsley-form"
	ClassField    ChromeClass = "parsley-field"
	ClassRequired ChromeClass = "parsley-field-required"
	ClassInvalid  ChromeClass = "parsley-field-invalid"
	ClassHelp     ChromeClass = "parsley-help"
	ClassErrors   ChromeClass = "parsley-errors"
	ClassActions  ChromeClass = "parsley-actions"
)

func (c ChromeClass) String() string {
	return string(c)
}

// Theme keys read by the renderer. Tokens named ClassTokenPrefix+role replace
// the chrome class for that role ("forms.class.field").
const (
	PartialForm      = "forms.form"
	PartialField     = "forms.field"
	AssetStylesheet  = "forms.stylesheet"
	ClassTokenPrefix = "forms.class."
)

var chromeRoles = map[string]ChromeClass{
	"form":     ClassForm,
	"field":    ClassField,
	"required": ClassRequired,
	"invalid":  ClassInvalid,
	"help":     ClassHelp,
	"errors":   ClassErrors,
	"actions":  ClassActions,
}

// chromeClasses resolves the class used for every role, letting theme tokens
// override the defaults.
func chromeClasses(cfg *theme.RendererConfig) map[string]string {
	classes := make(map[string]string, len(chromeRoles))
	for role, class := range chromeRoles {
		classes[role] = class.String()
		if cfg == nil {
			continue
		}
		if override := strings.TrimSpace(cfg.Tokens[ClassTokenPrefix+role]); override != "" {
			classes[role] = override
		}
	}
	return classes
}
