// Package jsonattrs renders a bound form as a JSON document mapping each field
// to its validation attributes, for clients that build their own markup.
package jsonattrs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-parsley/pkg/model"
	"github.com/goliatone/go-parsley/pkg/parsley"
	"github.com/goliatone/go-parsley/pkg/render"
)

// Name is the registry key of the renderer.
const Name = "attrs"

// Document is the JSON payload produced by Render.
type Document struct {
	Form      string                `json:"form"`
	Namespace string                `json:"namespace"`
	Fields    map[string]FieldAttrs `json:"fields"`
	Errors    map[string][]string   `json:"errors,omitempty"`
	Values    map[string]any        `json:"values,omitempty"`
}

// FieldAttrs describes one field. Composite children are nested under
// Children keyed by name.
type FieldAttrs struct {
	ID       string                `json:"id,omitempty"`
	Name     string                `json:"name"`
	Attrs    model.Attrs           `json:"attrs"`
	Children map[string]FieldAttrs `json:"children,omitempty"`
}

type Option func(*Renderer)

// WithIndent pretty prints the document.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer implements render.Renderer.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(_ context.Context, form *model.Form, options render.RenderOptions) ([]byte, error) {
	doc, err := Build(form, options)
	if err != nil {
		return nil, err
	}
	var out []byte
	if r.indent != "" {
		out, err = json.MarshalIndent(doc, "", r.indent)
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonattrs: encode: %w", err)
	}
	return out, nil
}

// Build assembles the document without encoding it.
func Build(form *model.Form, options render.RenderOptions) (Document, error) {
	if form == nil {
		return Document{}, fmt.Errorf("jsonattrs: form is nil")
	}
	doc := Document{
		Form:      form.Name,
		Namespace: parsley.Namespace(form),
		Fields:    make(map[string]FieldAttrs, len(form.Fields)),
		Values:    options.Values,
	}
	for _, field := range form.Fields {
		id, err := form.IDForLabel(field.Name)
		if err != nil {
			return Document{}, fmt.Errorf("jsonattrs: %w", err)
		}
		entry := describe(field, form.HTMLName(field.Name))
		entry.ID = id
		doc.Fields[field.Name] = entry
	}
	if mapped := render.MapErrors(form, options.Errors); len(mapped.Fields) > 0 || len(mapped.Form) > 0 {
		doc.Errors = mapped.Fields
		if len(mapped.Form) > 0 {
			if doc.Errors == nil {
				doc.Errors = make(map[string][]string)
			}
			doc.Errors["__all__"] = mapped.Form
		}
	}
	return doc, nil
}

func describe(field *model.Field, htmlName string) FieldAttrs {
	entry := FieldAttrs{Name: htmlName, Attrs: field.Attrs().Clone()}
	if entry.Attrs == nil {
		entry.Attrs = model.Attrs{}
	}
	// Choice groups carry the required marker on their options, not the field.
	if choice, ok := field.Widget.(model.ChoiceWidget); ok {
		if required, ok := choice.Renderer().(*parsley.RequiredChoiceRenderer); ok {
			entry.Attrs.Set(required.Namespace+"-required", true)
		}
	}
	if len(field.Fields) > 0 {
		entry.Children = make(map[string]FieldAttrs, len(field.Fields))
		for idx, child := range field.Fields {
			entry.Children[child.Name] = describe(child, fmt.Sprintf("%s_%d", htmlName, idx))
		}
	}
	return entry
}
