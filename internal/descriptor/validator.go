package descriptor

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/extension.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/provider/binaryName")
	Message string // Human-readable error message
	Keyword string // Schema keyword that failed
}

// String renders the issue as "path: message".
func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// ValidationFailure is returned by LoadFile when a descriptor does not
// satisfy the schema.
type ValidationFailure struct {
	Path   string
	Issues []ValidationIssue
}

func (f *ValidationFailure) Error() string {
	msgs := make([]string, 0, len(f.Issues))
	for _, issue := range f.Issues {
		msgs = append(msgs, issue.String())
	}
	return fmt.Sprintf("descriptor %s is invalid: %s", f.Path, strings.Join(msgs, "; "))
}

// getSchema compiles the embedded JSON schema once and returns it.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshaling schema JSON: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource("extension.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("extension.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compiling schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// Validate validates raw descriptor bytes in the given format against the
// descriptor schema. The error return is for decoding or schema compilation
// failures; validation issues are returned in the ValidationResult.
func Validate(data []byte, format string) (*ValidationResult, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	var raw interface{}
	if err := unmarshal(data, format, &raw); err != nil {
		return nil, err
	}

	// Round-trip through JSON so the validator sees json.Number values and
	// plain string-keyed maps regardless of the source format.
	jsonData, err := json.Marshal(normalize(raw))
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = schema.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &ValidationResult{
		Valid:  false,
		Issues: extractIssues(validationErr),
	}, nil
}

// ValidateFile reads a descriptor file and validates it.
func ValidateFile(path string) (*ValidationResult, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Validate(data, format)
}

// extractIssues flattens the error tree into leaf issues ordered by
// instance path, without duplicates.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	issues := deduplicateIssues(leafIssues(ve, nil))
	if len(issues) == 0 {
		return []ValidationIssue{{Message: ve.Error()}}
	}
	sort.SliceStable(issues, func(i, j int) bool { return issues[i].Path < issues[j].Path })
	return issues
}

func leafIssues(ve *jsonschema.ValidationError, acc []ValidationIssue) []ValidationIssue {
	for _, cause := range ve.Causes {
		acc = leafIssues(cause, acc)
	}
	if len(ve.Causes) > 0 || ve.ErrorKind == nil {
		return acc
	}

	kwPath := ve.ErrorKind.KeywordPath()
	if len(kwPath) == 0 {
		return acc
	}
	switch keyword := kwPath[len(kwPath)-1]; keyword {
	case "allOf", "$ref":
		return acc
	default:
		var path string
		if len(ve.InstanceLocation) > 0 {
			path = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		return append(acc, ValidationIssue{
			Path:    path,
			Message: ve.ErrorKind.LocalizedString(printer),
			Keyword: keyword,
		})
	}
}

// deduplicateIssues drops repeats of the same path, keyword and message.
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[ValidationIssue]struct{}, len(issues))
	result := issues[:0:0]
	for _, issue := range issues {
		if _, ok := seen[issue]; ok {
			continue
		}
		seen[issue] = struct{}{}
		result = append(result, issue)
	}
	return result
}

// normalize converts decoder-specific values (YAML interface-keyed maps, TOML
// datetimes) into JSON-compatible types.
func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, v := range val {
			m[k] = normalize(v)
		}
		return m
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(val))
		for k, v := range val {
			m[fmt.Sprint(k)] = normalize(v)
		}
		return m
	case []interface{}:
		a := make([]interface{}, len(val))
		for i, v := range val {
			a[i] = normalize(v)
		}
		return a
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return val
	}
}
