package patch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"
	"github.com/editor-extensions/extgen/internal/errdef"
)

// declarationAnchor matches the opening of a module-level literal assigned
// to name, e.g. "const ASSETS = {" or "export const VALID_EXTENSIONS = [".
func declarationAnchor(name string, open byte) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^[ \t]*(?:export[ \t]+)?(?:const|let|var)[ \t]+` +
		regexp.QuoteMeta(name) + `[ \t]*=[ \t]*` + regexp.QuoteMeta(string(open)))
}

// literalSource returns the source text of the literal opened by anchor.
func literalSource(src string, name string, anchor *regexp.Regexp) (string, error) {
	loc := anchor.FindStringIndex(src)
	if loc == nil {
		return "", errdef.New(errdef.CodeAnchorNotFound, "declaration of %s not found", name)
	}
	start := loc[1] - 1
	end, err := matchBracket(src, start)
	if err != nil {
		return "", errdef.Wrap(errdef.CodeMalformed, err, "reading %s", name)
	}
	return src[start : end+1], nil
}

// parseLiteral parses a JavaScript object or array literal.
func parseLiteral(name, literal string) (ast.Expression, error) {
	program, err := parser.ParseFile(nil, name, "const __literal = "+literal+";", 0)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeMalformed, err, "parsing %s", name)
	}
	if len(program.Body) != 1 {
		return nil, errdef.New(errdef.CodeMalformed, "%s is not a single literal", name)
	}
	decl, ok := program.Body[0].(*ast.LexicalDeclaration)
	if !ok || len(decl.List) != 1 {
		return nil, errdef.New(errdef.CodeMalformed, "%s is not a single literal", name)
	}
	return decl.List[0].Initializer, nil
}

// objectKeys returns the static property names of the object literal
// assigned to name in src.
func objectKeys(src, name string) ([]string, error) {
	literal, err := literalSource(src, name, declarationAnchor(name, '{'))
	if err != nil {
		return nil, err
	}
	expr, err := parseLiteral(name, literal)
	if err != nil {
		return nil, err
	}
	obj, ok := expr.(*ast.ObjectLiteral)
	if !ok {
		return nil, errdef.New(errdef.CodeMalformed, "%s is not an object literal", name)
	}

	var keys []string
	for _, prop := range obj.Value {
		switch p := prop.(type) {
		case *ast.PropertyKeyed:
			if p.Computed {
				continue
			}
			switch k := p.Key.(type) {
			case *ast.StringLiteral:
				keys = append(keys, k.Value.String())
			case *ast.NumberLiteral:
				keys = append(keys, k.Literal)
			}
		case *ast.PropertyShort:
			keys = append(keys, p.Name.Name.String())
		}
	}
	return keys, nil
}

// arrayStrings returns the string elements of the array literal assigned to
// name in src.
func arrayStrings(src, name string) ([]string, error) {
	literal, err := literalSource(src, name, declarationAnchor(name, '['))
	if err != nil {
		return nil, err
	}
	expr, err := parseLiteral(name, literal)
	if err != nil {
		return nil, err
	}
	arr, ok := expr.(*ast.ArrayLiteral)
	if !ok {
		return nil, errdef.New(errdef.CodeMalformed, "%s is not an array literal", name)
	}

	var values []string
	for _, el := range arr.Value {
		if s, ok := el.(*ast.StringLiteral); ok {
			values = append(values, s.Value.String())
		}
	}
	return values, nil
}

var closing = map[byte]byte{'{': '}', '[': ']', '(': ')'}

// matchBracket returns the index of the bracket closing the one at open.
// String, template and comment contents are skipped. Regular expression
// literals are not recognized.
func matchBracket(src string, open int) (int, error) {
	var stack []byte
	for i := open; i < len(src); i++ {
		c := src[i]
		switch {
		case c == '"' || c == '\'' || c == '`':
			end := skipString(src, i)
			if end < 0 {
				return -1, fmt.Errorf("unterminated string at offset %d", i)
			}
			i = end
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return -1, fmt.Errorf("unterminated comment at offset %d", i)
			}
			i += 2 + end + 1
		case c == '{' || c == '[' || c == '(':
			stack = append(stack, closing[c])
		case c == '}' || c == ']' || c == ')':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return -1, fmt.Errorf("unbalanced %q at offset %d", c, i)
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i, nil
			}
		}
	}
	return -1, fmt.Errorf("unclosed %q at offset %d", src[open], open)
}

// skipString returns the index of the quote closing the string that starts
// at i, or -1.
func skipString(src string, i int) int {
	quote := src[i]
	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case quote:
			return j
		case '\n':
			if quote != '`' {
				return -1
			}
		}
	}
	return -1
}
