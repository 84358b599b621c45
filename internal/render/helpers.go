package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/Masterminds/sprig/v3"
	"github.com/iancoleman/strcase"
)

// Helpers is the set of functions available to every template.
type Helpers template.FuncMap

// NewHelpers returns sprig's text helpers plus the naming and encoding
// helpers extension templates rely on.
func NewHelpers() Helpers {
	h := Helpers(sprig.TxtFuncMap())
	h["pascalCase"] = PascalCase
	h["camelCase"] = CamelCase
	h["capitalize"] = Capitalize
	h["json"] = JSON
	h["lastSegment"] = LastSegment
	return h
}

// With returns a copy of h with fn registered under name.
func (h Helpers) With(name string, fn interface{}) Helpers {
	out := make(Helpers, len(h)+1)
	for k, v := range h {
		out[k] = v
	}
	out[name] = fn
	return out
}

// PascalCase converts "my-ext" to "MyExt".
func PascalCase(s string) string {
	return strcase.ToCamel(s)
}

// CamelCase converts "my-ext" to "myExt".
func CamelCase(s string) string {
	return strcase.ToLowerCamel(s)
}

// Capitalize upper-cases the first rune of s and leaves the rest alone.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// JSON encodes v as compact JSON without HTML escaping.
func JSON(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encoding %T as JSON: %w", v, err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// LastSegment returns the text after the final dot ("konveyor.java" → "java").
func LastSegment(s string) string {
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[i+1:]
	}
	return s
}
