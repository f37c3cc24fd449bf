package openapi

// ExtensionKey is the vendor extension read on schemas and operations.
const ExtensionKey = "x-parsley"

// Extension returns the x-parsley block of an extensions map, or nil.
func Extension(extensions map[string]any) map[string]any {
	if len(extensions) == 0 {
		return nil
	}
	block, _ := extensions[ExtensionKey].(map[string]any)
	return block
}

func stringList(value any) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func stringMap(value any) map[string]string {
	raw, ok := value.(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for key, item := range raw {
		if s, ok := item.(string); ok {
			out[key] = s
		}
	}
	return out
}

func nestedMap(value any) map[string]map[string]any {
	raw, ok := value.(map[string]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	out := make(map[string]map[string]any, len(raw))
	for key, item := range raw {
		if rules, ok := item.(map[string]any); ok {
			copied := make(map[string]any, len(rules))
			for rule, v := range rules {
				copied[rule] = v
			}
			out[key] = copied
		}
	}
	return out
}
