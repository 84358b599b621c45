package descriptor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValidDescriptors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
	}{
		{"yaml", pythonYAML, FormatYAML},
		{"toml", rustTOML, FormatTOML},
		{"json", `{"id":"go","displayName":"Go","provider":{"name":"go","binaryName":"golang-provider"},"lsp":{"languageId":"go"}}`, FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate([]byte(tt.data), tt.format)
			require.NoError(t, err)
			assert.True(t, result.Valid, "issues: %v", result.Issues)
		})
	}
}

func TestValidateInvalidDescriptors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantPath string
	}{
		{
			name:     "missing provider",
			data:     "id: rust\ndisplayName: Rust\nlsp:\n  languageId: rust\n",
			wantPath: "",
		},
		{
			name:     "bad id",
			data:     "id: Rust_Ext\ndisplayName: Rust\nprovider: {name: r, binaryName: r}\nlsp: {languageId: rust}\n",
			wantPath: "/id",
		},
		{
			name:     "bad transport",
			data:     "id: rust\ndisplayName: Rust\nprovider: {name: r, binaryName: r, transport: carrier-pigeon}\nlsp: {languageId: rust}\n",
			wantPath: "/provider/transport",
		},
		{
			name:     "proxy port out of range",
			data:     "id: rust\ndisplayName: Rust\nprovider: {name: r, binaryName: r}\nlsp: {languageId: rust, proxyPort: 70000}\n",
			wantPath: "/lsp/proxyPort",
		},
		{
			name:     "unknown field",
			data:     "id: rust\ndisplayName: Rust\nprovider: {name: r, binaryName: r}\nlsp: {languageId: rust}\nextra: true\n",
			wantPath: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate([]byte(tt.data), FormatYAML)
			require.NoError(t, err)
			require.False(t, result.Valid)
			require.NotEmpty(t, result.Issues)

			if tt.wantPath != "" {
				var paths []string
				for _, issue := range result.Issues {
					paths = append(paths, issue.Path)
				}
				assert.Contains(t, paths, tt.wantPath)
			}
		})
	}
}

func TestValidateDecodeError(t *testing.T) {
	_, err := Validate([]byte("{not json"), FormatJSON)
	require.Error(t, err)
}

func TestIssuesAreDeduplicated(t *testing.T) {
	issues := deduplicateIssues([]ValidationIssue{
		{Path: "/id", Keyword: "pattern", Message: "m"},
		{Path: "/id", Keyword: "pattern", Message: "m"},
		{Path: "/displayName", Keyword: "minLength", Message: "m"},
	})
	assert.Len(t, issues, 2)
}

func TestValidationIssueString(t *testing.T) {
	assert.Equal(t, "/id: bad", ValidationIssue{Path: "/id", Message: "bad"}.String())
	assert.Equal(t, "bad", ValidationIssue{Message: "bad"}.String())
	f := &ValidationFailure{Path: "x.yaml", Issues: []ValidationIssue{{Path: "/id", Message: "bad"}}}
	assert.True(t, strings.HasPrefix(f.Error(), "descriptor x.yaml is invalid"))
}
