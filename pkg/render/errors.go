package render

import (
	"sort"
	"strings"

	"github.com/goliatone/go-parsley/pkg/model"
)

// ErrorMapping splits a server error payload into field-level and form-level
// messages keyed by dotted field paths.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MapErrors normalises a server error payload against form. Keys may use
// dotted or JSON pointer paths and may carry the form's HTML prefix; keys that
// match no field (including "__all__" and "non_field_errors") become form-level
// messages so nothing is lost.
func MapErrors(form *model.Form, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string][]string)}
	if len(payload) == 0 {
		mapping.Fields = nil
		return mapping
	}

	paths := make(map[string]struct{})
	if form != nil {
		collectPaths(form.Fields, "", paths)
	}

	for _, key := range sortedKeys(payload) {
		messages := normalizeMessages(payload[key])
		if len(messages) == 0 {
			continue
		}
		path, ok := matchPath(form, key, paths)
		if !ok {
			mapping.Form = append(mapping.Form, messages...)
			continue
		}
		mapping.Fields[path] = append(mapping.Fields[path], messages...)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func matchPath(form *model.Form, raw string, paths map[string]struct{}) (string, bool) {
	key := strings.TrimSpace(raw)
	switch strings.ToLower(key) {
	case "", "__all__", "non_field_errors", "form":
		return "", false
	}

	key = strings.TrimPrefix(key, "#")
	key = strings.Trim(strings.ReplaceAll(key, "/", "."), ".")
	if form != nil && form.Prefix != "" {
		key = strings.TrimPrefix(key, strings.TrimSpace(form.Prefix)+"-")
	}

	segments := strings.Split(key, ".")
	for end := len(segments); end > 0; end-- {
		candidate := strings.Join(segments[:end], ".")
		if _, ok := paths[candidate]; ok {
			return candidate, true
		}
	}
	return "", false
}

func collectPaths(fields []*model.Field, parent string, dest map[string]struct{}) {
	for _, field := range fields {
		if field == nil || strings.TrimSpace(field.Name) == "" {
			continue
		}
		path := field.Name
		if parent != "" {
			path = parent + "." + field.Name
		}
		dest[path] = struct{}{}
		collectPaths(field.Fields, path, dest)
	}
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
