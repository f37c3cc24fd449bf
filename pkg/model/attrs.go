package model

import (
	"fmt"
	"html"
	"sort"
	"strconv"
	"strings"
)

// Attrs is the attribute bag a widget renders onto its element. Values are
// always strings; Set normalises booleans and numbers.
type Attrs map[string]string

// Set stores value under key, stringifying booleans as "true"/"false" and
// numbers in their shortest form.
func (a Attrs) Set(key string, value any) {
	if a == nil {
		return
	}
	a[key] = FormatValue(value)
}

// Get returns the value stored under key.
func (a Attrs) Get(key string) (string, bool) {
	if a == nil {
		return "", false
	}
	value, ok := a[key]
	return value, ok
}

// Clone returns a copy safe to mutate independently of the receiver.
func (a Attrs) Clone() Attrs {
	out := make(Attrs, len(a))
	for key, value := range a {
		out[key] = value
	}
	return out
}

// Merge copies every entry of other into a, overwriting existing keys.
func (a Attrs) Merge(other Attrs) Attrs {
	if a == nil {
		a = make(Attrs, len(other))
	}
	for key, value := range other {
		a[key] = value
	}
	return a
}

// Keys returns the attribute names sorted lexically.
func (a Attrs) Keys() []string {
	keys := make([]string, 0, len(a))
	for key := range a {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// HTML renders the bag as ` key="value"` pairs in key order with values
// escaped. Empty keys are skipped.
func (a Attrs) HTML() string {
	if len(a) == 0 {
		return ""
	}
	var builder strings.Builder
	for _, key := range a.Keys() {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		builder.WriteByte(' ')
		builder.WriteString(html.EscapeString(name))
		builder.WriteString(`="`)
		builder.WriteString(html.EscapeString(a[key]))
		builder.WriteByte('"')
	}
	return builder.String()
}

// FormatValue converts an attribute or rule value into its string form.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
