package openapi

import (
	"errors"
	"sort"
)

// Document wraps the raw OpenAPI payload and its origin so callers never see
// kin-openapi types.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument copies raw into a Document.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("openapi: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("openapi: raw document is empty")
	}
	return Document{source: src, raw: append([]byte(nil), raw...)}, nil
}

// MustNewDocument panics if the document cannot be created.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

func (d Document) Source() Source {
	return d.source
}

// Raw returns a copy of the payload.
func (d Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Operation is the subset of an OpenAPI operation needed to build a form.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	RequestBody Schema
	// Extensions holds the operation's x-parsley block, if any.
	Extensions map[string]any
}

// Schema is a request body or property schema. Bounds are nil when the
// document does not declare them.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Title       string
	Description string
	Default     any
	Required    []string
	Properties  map[string]Schema
	Items       *Schema
	Enum        []any
	Pattern     string
	MinLength   *int
	MaxLength   *int
	Minimum     *float64
	Maximum     *float64
	Extensions  map[string]any
}

// IsRequired reports whether name is listed in the schema's required set.
func (s Schema) IsRequired(name string) bool {
	for _, candidate := range s.Required {
		if candidate == name {
			return true
		}
	}
	return false
}

// PropertyNames lists properties in form order: the names given by an
// x-parsley "order" list first, then the rest alphabetically.
func (s Schema) PropertyNames() []string {
	remaining := make(map[string]struct{}, len(s.Properties))
	for name := range s.Properties {
		remaining[name] = struct{}{}
	}

	names := make([]string, 0, len(s.Properties))
	for _, name := range stringList(Extension(s.Extensions)["order"]) {
		if _, ok := remaining[name]; ok {
			names = append(names, name)
			delete(remaining, name)
		}
	}
	rest := make([]string, 0, len(remaining))
	for name := range remaining {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	return append(names, rest...)
}
