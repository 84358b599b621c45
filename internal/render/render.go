package render

import (
	"bytes"
	"fmt"
	"regexp"
	"text/template"
)

// Renderer executes templates with a fixed helper registry.
type Renderer struct {
	helpers Helpers
}

// New creates a Renderer. A nil registry falls back to NewHelpers().
func New(helpers Helpers) *Renderer {
	if helpers == nil {
		helpers = NewHelpers()
	}
	return &Renderer{helpers: helpers}
}

// Error is returned when a template cannot be parsed or executed. Field is
// set when execution failed on a placeholder the data does not provide.
type Error struct {
	Template string
	Field    string
	Err      error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("rendering %s: missing field %q: %v", e.Template, e.Field, e.Err)
	}
	return fmt.Sprintf("rendering %s: %v", e.Template, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

var missingFieldPatterns = []*regexp.Regexp{
	regexp.MustCompile(`map has no entry for key "([^"]+)"`),
	regexp.MustCompile(`can't evaluate field (\w+)`),
	regexp.MustCompile(`nil pointer evaluating [^.]*\.(\w+)`),
}

// Render parses body as a template called name and executes it against data.
// Every placeholder must resolve; a missing map key or struct field is an
// *Error naming the field.
func (r *Renderer) Render(name, body string, data interface{}) (string, error) {
	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(template.FuncMap(r.helpers)).
		Parse(body)
	if err != nil {
		return "", &Error{Template: name, Err: err}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", &Error{Template: name, Field: missingField(err), Err: err}
	}
	return buf.String(), nil
}

func missingField(err error) string {
	msg := err.Error()
	for _, re := range missingFieldPatterns {
		if m := re.FindStringSubmatch(msg); m != nil {
			return m[1]
		}
	}
	return ""
}
