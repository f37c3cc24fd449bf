package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-parsley/pkg/fields"
	"github.com/goliatone/go-parsley/pkg/model"
	"github.com/goliatone/go-parsley/pkg/widgets"
)

// Forms builds one form per operation that declares an object request body.
// Operations without a usable body are skipped.
func Forms(operations map[string]Operation) (map[string]*model.Form, error) {
	out := make(map[string]*model.Form, len(operations))
	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		op := operations[id]
		if len(op.RequestBody.Properties) == 0 {
			continue
		}
		form, err := FormFromOperation(op)
		if err != nil {
			return nil, err
		}
		out[id] = form
	}
	return out, nil
}

// FormFromOperation converts the operation's request body into a form named
// after the operation. The operation's x-parsley block ("namespace" and
// "extras") becomes the form metadata.
func FormFromOperation(op Operation) (*model.Form, error) {
	if strings.TrimSpace(op.ID) == "" {
		return nil, fmt.Errorf("openapi: operation id is required")
	}
	form, err := model.NewForm(op.ID)
	if err != nil {
		return nil, err
	}

	body := op.RequestBody
	for _, name := range body.PropertyNames() {
		field, err := FieldFromSchema(name, body.Properties[name], body.IsRequired(name))
		if err != nil {
			return nil, fmt.Errorf("openapi: operation %q: %w", op.ID, err)
		}
		if field == nil {
			continue
		}
		if err := form.Add(field); err != nil {
			return nil, fmt.Errorf("openapi: operation %q: %w", op.ID, err)
		}
	}

	if ext := Extension(op.Extensions); len(ext) > 0 {
		namespace, _ := ext["namespace"].(string)
		form.Meta = &model.Meta{
			Namespace: strings.TrimSpace(namespace),
			Extras:    nestedMap(ext["extras"]),
		}
	}
	return form, nil
}

// FieldFromSchema maps a property schema onto a field. It returns nil for
// shapes forms cannot express, such as arrays of objects.
func FieldFromSchema(name string, schema Schema, required bool) (*model.Field, error) {
	options := schemaOptions(schema, required)
	ext := Extension(schema.Extensions)

	switch {
	case schema.Type == "object" || len(schema.Properties) > 0:
		children := make([]*model.Field, 0, len(schema.Properties))
		for _, childName := range schema.PropertyNames() {
			child, err := FieldFromSchema(childName, schema.Properties[childName], schema.IsRequired(childName))
			if err != nil {
				return nil, err
			}
			if child != nil {
				children = append(children, child)
			}
		}
		if len(children) == 0 {
			return nil, nil
		}
		return fields.Composite(name, children, options...), nil

	case len(schema.Enum) > 0:
		return fields.Choice(name, enumChoices(schema.Enum, ext), options...), nil

	case schema.Type == "array":
		if schema.Items == nil || len(schema.Items.Enum) == 0 {
			return nil, nil
		}
		itemExt := Extension(schema.Items.Extensions)
		if itemExt == nil {
			itemExt = ext
		}
		return fields.MultipleChoice(name, enumChoices(schema.Items.Enum, itemExt), options...), nil

	case schema.Type == "boolean":
		return fields.Boolean(name, options...), nil

	case schema.Type == "integer":
		return fields.Integer(name, options...), nil

	case schema.Type == "number":
		if schema.Format == "float" {
			return fields.Float(name, options...), nil
		}
		return fields.Decimal(name, options...), nil
	}

	switch strings.ToLower(schema.Format) {
	case "email":
		return fields.Email(name, options...), nil
	case "uri", "url":
		return fields.URL(name, options...), nil
	case "password":
		options = append(options, fields.WithWidget(widgets.PasswordInput()))
	}
	if schema.Pattern != "" {
		if flag, _ := ext["flags"].(string); strings.Contains(flag, "i") {
			options = append(options, fields.IgnoreCase())
		}
		field, err := fields.Regex(name, schema.Pattern, options...)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		return field, nil
	}
	return fields.Char(name, options...), nil
}

func schemaOptions(schema Schema, required bool) []fields.Option {
	var options []fields.Option
	if required {
		options = append(options, fields.Required())
	}
	if schema.Title != "" {
		options = append(options, fields.Label(schema.Title))
	}
	if schema.Description != "" {
		options = append(options, fields.HelpText(schema.Description))
	}
	if schema.Default != nil {
		options = append(options, fields.Initial(schema.Default))
	}
	if schema.MinLength != nil && *schema.MinLength > 0 {
		options = append(options, fields.MinLength(*schema.MinLength))
	}
	if schema.MaxLength != nil && *schema.MaxLength > 0 {
		options = append(options, fields.MaxLength(*schema.MaxLength))
	}
	if schema.Minimum != nil {
		options = append(options, fields.MinValue(*schema.Minimum))
	}
	if schema.Maximum != nil {
		options = append(options, fields.MaxValue(*schema.Maximum))
	}

	ext := Extension(schema.Extensions)
	if label, ok := ext["label"].(string); ok && label != "" {
		options = append(options, fields.Label(label))
	}
	if messages := stringMap(ext["messages"]); len(messages) > 0 {
		options = append(options, fields.Messages(messages))
	}
	return options
}

// enumChoices labels each enum value from the x-parsley "labels" map, falling
// back to the value itself.
func enumChoices(values []any, ext map[string]any) []model.Choice {
	labels := stringMap(ext["labels"])
	choices := make([]model.Choice, 0, len(values))
	for _, raw := range values {
		value := model.FormatValue(raw)
		label := labels[value]
		if label == "" {
			label = value
		}
		choices = append(choices, model.Choice{Value: value, Label: label})
	}
	return choices
}
