package openapix

import (
	"encoding/json"
	"strings"
)

// Marshaler serializes example values for schema documentation.
type Marshaler interface {
	Marshal(v any) ([]byte, error)
}

// MarshalerFunc adapts a function to [Marshaler].
type MarshalerFunc func(v any) ([]byte, error)

func (f MarshalerFunc) Marshal(v any) ([]byte, error) {
	return f(v)
}

// JSONMarshaler serializes with encoding/json, the same encoder the
// generated document is rendered with.
type JSONMarshaler struct{}

func (JSONMarshaler) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// FormatExample serializes v with m and, when the result is a JSON string
// literal, strips the outer pair of quotes. Escapes inside the string are
// left untouched.
func FormatExample(v any, m Marshaler) (string, error) {
	if m == nil {
		m = JSONMarshaler{}
	}
	b, err := m.Marshal(v)
	if err != nil {
		return "", err
	}
	s := string(b)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = s[1 : len(s)-1]
	}
	return s, nil
}
