package orchestrator

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-parsley/pkg/renderers/vanilla"
)

// WithThemeSelector resolves a go-theme selection for every request so
// renderers receive partials, tokens and asset URLs.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeFallbacks overrides the partials used when the selected theme does
// not name one.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		if len(fallbacks) == 0 {
			return
		}
		o.themeFallbacks = copyStrings(fallbacks)
	}
}

func defaultThemeFallbacks() map[string]string {
	return map[string]string{
		vanilla.PartialForm:  "form",
		vanilla.PartialField: "field.tmpl",
	}
}

func (o *Orchestrator) resolveTheme(req Request) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	selection, err := o.themeSelector.Select(req.ThemeName, req.ThemeVariant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	if selection == nil {
		return nil, nil
	}
	return rendererConfig(selection, o.themeFallbacks), nil
}

// rendererConfig flattens a selection: fallbacks, then manifest, then variant.
// Tokens without a dotted namespace also become CSS custom properties.
func rendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: copyStrings(fallbacks),
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}
	if cfg.Partials == nil {
		cfg.Partials = map[string]string{}
	}

	var layers []theme.Assets
	if manifest := selection.Manifest; manifest != nil {
		mergeStrings(cfg.Partials, manifest.Templates)
		mergeStrings(cfg.Tokens, manifest.Tokens)
		layers = append(layers, manifest.Assets)
		if variant, ok := manifest.Variants[selection.Variant]; ok {
			mergeStrings(cfg.Partials, variant.Templates)
			mergeStrings(cfg.Tokens, variant.Tokens)
			layers = append(layers, variant.Assets)
		}
	}
	for key, value := range cfg.Tokens {
		if strings.Contains(key, ".") {
			continue
		}
		cfg.CSSVars["--"+key] = value
	}
	cfg.AssetURL = assetResolver(layers)
	return cfg
}

// assetResolver maps asset keys to URLs. Later layers win; a layer without a
// prefix inherits the previous one.
func assetResolver(layers []theme.Assets) func(string) string {
	urls := make(map[string]string)
	prefix := ""
	for _, layer := range layers {
		if p := strings.TrimSpace(layer.Prefix); p != "" {
			prefix = p
		}
		for key, file := range layer.Files {
			urls[key] = joinAsset(prefix, file)
		}
	}
	return func(key string) string {
		return urls[key]
	}
}

func joinAsset(prefix, file string) string {
	file = strings.TrimSpace(file)
	if file == "" || prefix == "" || strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
		return file
	}
	return strings.TrimRight(prefix, "/") + "/" + file
}

func mergeStrings(dst, src map[string]string) {
	for key, value := range src {
		dst[key] = value
	}
}

func copyStrings(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	mergeStrings(out, in)
	return out
}
