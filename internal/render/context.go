package render

import (
	"path"
	"strings"

	"github.com/editor-extensions/extgen/internal/descriptor"
	"github.com/editor-extensions/extgen/internal/repoctx"
	"github.com/iancoleman/strcase"
)

// Context is the data every extension template is rendered against. It is
// built once per run and not modified afterwards.
type Context struct {
	ID          string
	DisplayName string
	Description string
	Publisher   string
	Version     string

	PascalName   string
	CamelName    string
	ConstantName string

	// ExtensionDir is the extension's directory relative to the repo root,
	// e.g. "vscode/python".
	ExtensionDir string
	PackageName  string

	Activation     descriptor.Activation
	Provider       descriptor.Provider
	LSP            descriptor.LSP
	Dependencies   []descriptor.Dependency
	ProviderConfig map[string]interface{}
	Analysis       descriptor.Analysis

	Repo repoctx.Context
}

// NewContext derives a template context from a validated descriptor and the
// repository facts. Descriptor values win; empty ones fall back to repo.
func NewContext(ext *descriptor.Extension, repo repoctx.Context, extensionsDir string) Context {
	ctx := Context{
		ID:           ext.ID,
		DisplayName:  ext.DisplayName,
		Description:  ext.Description,
		Publisher:    firstNonEmpty(ext.Publisher, repo.Publisher),
		Version:      firstNonEmpty(ext.Version, repo.Version),
		PascalName:   PascalCase(ext.ID),
		CamelName:    CamelCase(ext.ID),
		ConstantName: strcase.ToScreamingSnake(ext.ID),
		ExtensionDir: path.Join(extensionsDir, ext.ID),
		Activation:   ext.Activation,
		Provider:     ext.Provider,
		LSP:          ext.LSP,
		Dependencies: append([]descriptor.Dependency(nil), ext.Dependencies...),
		Analysis:     ext.Analysis,
		Repo:         repo,
	}
	ctx.Version = strings.TrimPrefix(ctx.Version, "v")
	if ctx.Description == "" {
		ctx.Description = ext.DisplayName + " language support"
	}
	ctx.PackageName = ext.ID
	if ctx.Publisher != "" {
		ctx.PackageName = strings.ToLower(ctx.Publisher) + "-" + ext.ID
	}

	ctx.Provider.Org = firstNonEmpty(ctx.Provider.Org, repo.Org)
	ctx.Provider.Repo = firstNonEmpty(ctx.Provider.Repo, repo.Repo)
	ctx.Provider.ReleaseTag = firstNonEmpty(ctx.Provider.ReleaseTag, repo.ReleaseTag)
	ctx.Provider.Transport = firstNonEmpty(ctx.Provider.Transport, "stdio")

	ctx.ProviderConfig = make(map[string]interface{}, len(ext.ProviderConfig))
	for k, v := range ext.ProviderConfig {
		ctx.ProviderConfig[k] = v
	}
	return ctx
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
