package render

import (
	"testing"

	"github.com/editor-extensions/extgen/internal/descriptor"
	"github.com/editor-extensions/extgen/internal/repoctx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testExtension() *descriptor.Extension {
	return &descriptor.Extension{
		ID:          "my-ext",
		DisplayName: "My Ext",
		Provider:    descriptor.Provider{Name: "my-provider", BinaryName: "my-bin"},
		LSP:         descriptor.LSP{LanguageID: "myext", ProxyRequired: true},
		ProviderConfig: map[string]interface{}{
			"lspServerName": "generic",
		},
	}
}

func testRepo() repoctx.Context {
	return repoctx.Context{
		Version:    "0.3.1",
		ReleaseTag: "v0.3.1",
		Org:        "konveyor",
		Repo:       "editor-extensions",
		Publisher:  "konveyor",
	}
}

func TestHelpers(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"pascal", PascalCase("my-ext"), "MyExt"},
		{"pascal single", PascalCase("python"), "Python"},
		{"camel", CamelCase("my-ext"), "myExt"},
		{"capitalize", Capitalize("hello world"), "Hello world"},
		{"capitalize empty", Capitalize(""), ""},
		{"capitalize keeps rest", Capitalize("jAVA"), "JAVA"},
		{"last segment", LastSegment("konveyor.java"), "java"},
		{"last segment no dot", LastSegment("java"), "java"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.got, tt.name)
	}
}

func TestJSONHelper(t *testing.T) {
	out, err := JSON(map[string]interface{}{"cmd": "a && b", "n": 1})
	require.NoError(t, err)
	assert.Equal(t, `{"cmd":"a && b","n":1}`, out)

	out, err = JSON([]string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, `["x","y"]`, out)
}

func TestRenderUsesHelpers(t *testing.T) {
	r := New(NewHelpers())
	out, err := r.Render("names", `{{ pascalCase .ID }} {{ camelCase .ID }} {{ .ID | upper }} {{ lastSegment "konveyor.java" }} {{ json .LSP.ProxyRequired }}`, NewContext(testExtension(), testRepo(), "vscode"))
	require.NoError(t, err)
	assert.Equal(t, "MyExt myExt MY-EXT java true", out)
}

func TestRenderDeterministic(t *testing.T) {
	body := `{{ .DisplayName }} {{ range $k, $v := .ProviderConfig }}{{ $k }}={{ $v }} {{ end }}{{ json .ProviderConfig }}`
	a, err := New(nil).Render("a", body, NewContext(testExtension(), testRepo(), "vscode"))
	require.NoError(t, err)
	b, err := New(nil).Render("a", body, NewContext(testExtension(), testRepo(), "vscode"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderMissingStructField(t *testing.T) {
	_, err := New(nil).Render("provider.ts.tmpl", `{{ .Nope }}`, NewContext(testExtension(), testRepo(), "vscode"))
	require.Error(t, err)

	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "provider.ts.tmpl", rerr.Template)
	assert.Equal(t, "Nope", rerr.Field)
	assert.Contains(t, err.Error(), "provider.ts.tmpl")
	assert.Contains(t, err.Error(), "Nope")
}

func TestRenderMissingMapKey(t *testing.T) {
	_, err := New(nil).Render("constants.ts.tmpl", `{{ .ProviderConfig.port }}`, NewContext(testExtension(), testRepo(), "vscode"))
	require.Error(t, err)

	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "port", rerr.Field)
}

func TestRenderParseError(t *testing.T) {
	_, err := New(nil).Render("broken.tmpl", `{{ .ID `, nil)
	require.Error(t, err)

	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	assert.Empty(t, rerr.Field)
	assert.Equal(t, "broken.tmpl", rerr.Template)
}

func TestRenderersDoNotShareHelpers(t *testing.T) {
	shout := New(NewHelpers().With("shout", func(s string) string { return s + "!" }))
	out, err := shout.Render("x", `{{ shout "hi" }}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "hi!", out)

	_, err = New(NewHelpers()).Render("x", `{{ shout "hi" }}`, nil)
	assert.Error(t, err)
}

func TestNewContext(t *testing.T) {
	ctx := NewContext(testExtension(), testRepo(), "vscode")

	assert.Equal(t, "MyExt", ctx.PascalName)
	assert.Equal(t, "myExt", ctx.CamelName)
	assert.Equal(t, "MY_EXT", ctx.ConstantName)
	assert.Equal(t, "vscode/my-ext", ctx.ExtensionDir)
	assert.Equal(t, "konveyor-my-ext", ctx.PackageName)
	assert.Equal(t, "0.3.1", ctx.Version)
	assert.Equal(t, "konveyor", ctx.Provider.Org)
	assert.Equal(t, "v0.3.1", ctx.Provider.ReleaseTag)
	assert.Equal(t, "stdio", ctx.Provider.Transport)
	assert.Equal(t, "My Ext language support", ctx.Description)
}

func TestNewContextDescriptorWins(t *testing.T) {
	ext := testExtension()
	ext.Publisher = "acme"
	ext.Version = "v2.0.0"
	ext.Provider.Org = "acme-labs"

	ctx := NewContext(ext, testRepo(), "extensions")
	assert.Equal(t, "acme", ctx.Publisher)
	assert.Equal(t, "2.0.0", ctx.Version)
	assert.Equal(t, "acme-labs", ctx.Provider.Org)
	assert.Equal(t, "extensions/my-ext", ctx.ExtensionDir)
}

func TestNewContextCopiesProviderConfig(t *testing.T) {
	ext := testExtension()
	ctx := NewContext(ext, testRepo(), "vscode")
	ctx.ProviderConfig["extra"] = true
	assert.NotContains(t, ext.ProviderConfig, "extra")
}
