package xmldoc

import (
	"reflect"
	"strings"

	"github.com/Gobd/openapix"
)

// Member identifier prefixes.
const (
	PrefixType     = "T"
	PrefixProperty = "P"
	PrefixField    = "F"
)

// MemberID computes the documentation key for a schema node: T:<type> when
// m is nil, otherwise P:<type>.<field> or F:<type>.<field> depending on the
// member kind. ok is false when no key can be formed.
func MemberID(t reflect.Type, m *openapix.Member) (id string, ok bool) {
	if m == nil {
		name := FullName(t)
		if name == "" {
			return "", false
		}
		return PrefixType + ":" + name, true
	}

	decl := FullName(m.DeclaringType)
	if decl == "" || m.Name == "" {
		return "", false
	}

	var prefix string
	switch m.Kind {
	case openapix.MemberProperty:
		prefix = PrefixProperty
	case openapix.MemberField:
		prefix = PrefixField
	default:
		return "", false
	}
	return prefix + ":" + decl + "." + m.Name, true
}

// FullName returns "<import path>.<name>" for a named type declared in a
// package, with type arguments dropped. Predeclared and unnamed types have
// no full name.
func FullName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" || t.PkgPath() == "" {
		return ""
	}
	name, _, _ := strings.Cut(t.Name(), "[")
	return t.PkgPath() + "." + name
}
