package descriptor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pythonYAML = heredoc.Doc(`
	id: python
	displayName: Python
	description: Python analysis support
	publisher: konveyor
	activation:
	  languages: [python]
	  filePatterns: ["**/*.py", "**/requirements.txt"]
	provider:
	  name: python-provider
	  binaryName: generic-external-provider
	  transport: socket
	lsp:
	  languageId: python
	  serverCommand: pylsp
	  proxyRequired: true
	  proxyPort: 8085
	dependencies:
	  - id: konveyor.konveyor-core
	    version: ">=0.2.0"
	providerConfig:
	  lspServerName: generic
	  workspaceFolders: 2
	analysis:
	  labelSelector: "konveyor.io/target=python"
	  enableDefaultRulesets: true
`)

var rustTOML = heredoc.Doc(`
	id = "rust"
	displayName = "Rust"

	[provider]
	name = "rust-provider"
	binaryName = "rust-external-provider"

	[lsp]
	languageId = "rust"
	serverCommand = "rust-analyzer"

	[providerConfig]
	cargoFeatures = ["default"]
`)

func writeDescriptor(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"ext.yaml", FormatYAML, false},
		{"ext.YML", FormatYAML, false},
		{"ext.json", FormatJSON, false},
		{"dir/ext.toml", FormatTOML, false},
		{"ext.ini", "", true},
		{"ext", "", true},
	}
	for _, tt := range tests {
		got, err := DetectFormat(tt.path)
		if tt.wantErr {
			assert.Error(t, err, tt.path)
			continue
		}
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestParseFileYAML(t *testing.T) {
	ext, err := ParseFile(writeDescriptor(t, "python.yaml", pythonYAML))
	require.NoError(t, err)

	assert.Equal(t, "python", ext.ID)
	assert.Equal(t, "Python", ext.DisplayName)
	assert.Equal(t, []string{"python"}, ext.Activation.Languages)
	assert.Equal(t, "generic-external-provider", ext.Provider.BinaryName)
	assert.True(t, ext.LSP.ProxyRequired)
	assert.Equal(t, 8085, ext.LSP.ProxyPort)
	require.Len(t, ext.Dependencies, 1)
	assert.Equal(t, "konveyor.konveyor-core", ext.Dependencies[0].ID)
	assert.Equal(t, "generic", ext.ProviderConfig["lspServerName"])
	assert.True(t, ext.Analysis.EnableDefaultRulesets)
}

func TestParseFileTOML(t *testing.T) {
	ext, err := ParseFile(writeDescriptor(t, "rust.toml", rustTOML))
	require.NoError(t, err)

	assert.Equal(t, "rust", ext.ID)
	assert.Equal(t, "rust-external-provider", ext.Provider.BinaryName)
	assert.False(t, ext.LSP.ProxyRequired)
	assert.Contains(t, ext.ProviderConfig, "cargoFeatures")
}

func TestParseFileJSON(t *testing.T) {
	content := `{"id":"go","displayName":"Go","provider":{"name":"go","binaryName":"golang-provider"},"lsp":{"languageId":"go"}}`
	ext, err := ParseFile(writeDescriptor(t, "go.json", content))
	require.NoError(t, err)
	assert.Equal(t, "golang-provider", ext.Provider.BinaryName)
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading file")
}

func TestParseFileMalformed(t *testing.T) {
	_, err := ParseFile(writeDescriptor(t, "bad.yaml", "id: [unterminated\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing descriptor")
}

func TestLoadFileRejectsInvalid(t *testing.T) {
	_, err := LoadFile(writeDescriptor(t, "bad.yaml", "id: Not_Valid\ndisplayName: X\n"))
	require.Error(t, err)

	var failure *ValidationFailure
	require.ErrorAs(t, err, &failure)
	assert.NotEmpty(t, failure.Issues)
	assert.Contains(t, err.Error(), "is invalid")
}

func TestLoadFileValid(t *testing.T) {
	ext, err := LoadFile(writeDescriptor(t, "python.yaml", pythonYAML))
	require.NoError(t, err)
	assert.Equal(t, "python", ext.ID)
}
