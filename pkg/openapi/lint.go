package openapi

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/goliatone/go-parsley/pkg/model"
)

// Violation is a problem found by Lint. Location is a " > " separated path
// from the operation to the offending key.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

var (
	operationExtensionKeys = []string{"extras", "namespace"}
	schemaExtensionKeys    = []string{"flags", "label", "labels", "messages", "order"}
	messageKinds           = []string{
		model.MessageInvalid,
		model.MessageMaxLength,
		model.MessageMaxValue,
		model.MessageMinLength,
		model.MessageMinValue,
		model.MessageRequired,
	}
)

// Lint checks the x-parsley blocks and patterns of every operation and
// returns the violations sorted by location.
func Lint(operations map[string]Operation) []Violation {
	ids := make([]string, 0, len(operations))
	for id := range operations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var result []Violation
	for _, id := range ids {
		op := operations[id]
		base := []string{"operation", id}
		result = append(result, lintOperationExtension(base, op)...)
		result = append(result, lintSchema(appendPath(base, "requestBody"), op.RequestBody)...)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Location == result[j].Location {
			return result[i].Message < result[j].Message
		}
		return result[i].Location < result[j].Location
	})
	return result
}

func lintOperationExtension(path []string, op Operation) []Violation {
	raw, present := op.Extensions[ExtensionKey]
	if !present {
		return nil
	}
	path = appendPath(path, ExtensionKey)
	ext, ok := raw.(map[string]any)
	if !ok {
		return []Violation{violation(path, "%s must be an object, found %T", ExtensionKey, raw)}
	}

	var result []Violation
	for _, key := range sortedAnyKeys(ext) {
		value := ext[key]
		switch key {
		case "namespace":
			if _, ok := value.(string); !ok {
				result = append(result, violation(appendPath(path, key), "must be a string, found %T", value))
			}
		case "extras":
			result = append(result, lintExtras(appendPath(path, key), value, op.RequestBody)...)
		default:
			result = append(result, unsupportedKey(path, key, operationExtensionKeys))
		}
	}
	return result
}

func lintExtras(path []string, value any, body Schema) []Violation {
	extras, ok := value.(map[string]any)
	if !ok {
		return []Violation{violation(path, "must be an object, found %T", value)}
	}

	var result []Violation
	for _, fieldName := range sortedAnyKeys(extras) {
		fieldPath := appendPath(path, fieldName)
		if _, ok := body.Properties[fieldName]; !ok {
			result = append(result, violation(fieldPath, "field %q is not a request body property", fieldName))
		}
		rules, ok := extras[fieldName].(map[string]any)
		if !ok {
			result = append(result, violation(fieldPath, "must be an object, found %T", extras[fieldName]))
			continue
		}
		target, present := rules["equalto"]
		if !present {
			continue
		}
		name, ok := target.(string)
		if !ok {
			result = append(result, violation(appendPath(fieldPath, "equalto"), "must be a field name, found %T", target))
			continue
		}
		if _, ok := body.Properties[name]; !ok {
			result = append(result, violation(appendPath(fieldPath, "equalto"), "target field %q does not exist", name))
		}
	}
	return result
}

func lintSchema(path []string, schema Schema) []Violation {
	var result []Violation
	result = append(result, lintSchemaExtension(path, schema)...)

	if schema.Pattern != "" {
		if _, err := regexp.Compile(schema.Pattern); err != nil {
			result = append(result, violation(appendPath(path, "pattern"), "invalid pattern: %v", err))
		}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		result = append(result, lintSchema(appendPath(path, "properties."+name), schema.Properties[name])...)
	}
	if schema.Items != nil {
		result = append(result, lintSchema(appendPath(path, "items"), *schema.Items)...)
	}
	return result
}

func lintSchemaExtension(path []string, schema Schema) []Violation {
	raw, present := schema.Extensions[ExtensionKey]
	if !present {
		return nil
	}
	path = appendPath(path, ExtensionKey)
	ext, ok := raw.(map[string]any)
	if !ok {
		return []Violation{violation(path, "%s must be an object, found %T", ExtensionKey, raw)}
	}

	var result []Violation
	for _, key := range sortedAnyKeys(ext) {
		value := ext[key]
		keyPath := appendPath(path, key)
		switch key {
		case "label":
			if _, ok := value.(string); !ok {
				result = append(result, violation(keyPath, "must be a string, found %T", value))
			}
		case "flags":
			flags, ok := value.(string)
			if !ok {
				result = append(result, violation(keyPath, "must be a string, found %T", value))
			} else if strings.Trim(flags, "i") != "" {
				result = append(result, violation(keyPath, "unsupported flags %q (supported: i)", flags))
			}
		case "messages":
			result = append(result, lintMessages(keyPath, value)...)
		case "labels":
			result = append(result, lintLabels(keyPath, value, schema)...)
		case "order":
			result = append(result, lintOrder(keyPath, value, schema)...)
		default:
			result = append(result, unsupportedKey(path, key, schemaExtensionKeys))
		}
	}
	return result
}

func lintMessages(path []string, value any) []Violation {
	messages, ok := value.(map[string]any)
	if !ok {
		return []Violation{violation(path, "must be an object, found %T", value)}
	}
	var result []Violation
	for _, kind := range sortedAnyKeys(messages) {
		if !contains(messageKinds, kind) {
			result = append(result, violation(path, "unknown message kind %q (supported: %s)", kind, strings.Join(messageKinds, ", ")))
			continue
		}
		if _, ok := messages[kind].(string); !ok {
			result = append(result, violation(appendPath(path, kind), "must be a string, found %T", messages[kind]))
		}
	}
	return result
}

func lintLabels(path []string, value any, schema Schema) []Violation {
	labels, ok := value.(map[string]any)
	if !ok {
		return []Violation{violation(path, "must be an object, found %T", value)}
	}
	enum := schema.Enum
	if len(enum) == 0 && schema.Items != nil {
		enum = schema.Items.Enum
	}
	if len(enum) == 0 {
		return []Violation{violation(path, "labels require an enum")}
	}
	values := make([]string, 0, len(enum))
	for _, v := range enum {
		values = append(values, model.FormatValue(v))
	}

	var result []Violation
	for _, key := range sortedAnyKeys(labels) {
		if !contains(values, key) {
			result = append(result, violation(path, "label for %q does not match an enum value", key))
		}
	}
	return result
}

func lintOrder(path []string, value any, schema Schema) []Violation {
	if _, ok := value.([]any); !ok {
		if _, ok := value.([]string); !ok {
			return []Violation{violation(path, "must be a list of property names, found %T", value)}
		}
	}
	var result []Violation
	for _, name := range stringList(value) {
		if _, ok := schema.Properties[name]; !ok {
			result = append(result, violation(path, "property %q does not exist", name))
		}
	}
	return result
}

func unsupportedKey(path []string, key string, allowed []string) Violation {
	return violation(path, "unsupported %s key %q (supported: %s)", ExtensionKey, key, strings.Join(allowed, ", "))
}

func violation(path []string, format string, args ...any) Violation {
	return Violation{Location: strings.Join(path, " > "), Message: fmt.Sprintf(format, args...)}
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}

func sortedAnyKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
