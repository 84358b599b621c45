package patch

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/editor-extensions/extgen/internal/descriptor"
)

var (
	assetsAnchor          = declarationAnchor("ASSETS", '{')
	extensionsAnchor      = declarationAnchor("EXTENSIONS", '{')
	validExtensionsAnchor = declarationAnchor("VALID_EXTENSIONS", '[')
)

func containsKey(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// entryBlock renders `"key": { field: value, ... },` one level deeper than
// the declaration, so it can follow the literal's opening brace.
func entryBlock(indent, key string, fields [][2]string) string {
	inner := indent + "  "
	s := "\n" + inner + strconv.Quote(key) + ": {\n"
	for _, f := range fields {
		s += inner + "  " + f[0] + ": " + strconv.Quote(f[1]) + ",\n"
	}
	return s + inner + "},"
}

func insertAfter(name string, anchor *regexp.Regexp, content []byte, block func(m Match) string) ([]byte, error) {
	out, err := InsertionRule{Name: name, Anchor: anchor, Position: After, Block: block}.Apply(string(content))
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// CollectAssetsRule registers the provider binary in the ASSETS table of
// the asset download script.
type CollectAssetsRule struct {
	Path     string
	ID       string
	Provider descriptor.Provider
}

func (r *CollectAssetsRule) Name() string   { return RuleCollectAssets }
func (r *CollectAssetsRule) Target() string { return r.Path }

func (r *CollectAssetsRule) Present(content []byte) (bool, error) {
	keys, err := objectKeys(string(content), "ASSETS")
	if err != nil {
		return false, err
	}
	return containsKey(keys, r.Provider.BinaryName), nil
}

func (r *CollectAssetsRule) Apply(content []byte) ([]byte, []string, error) {
	out, err := insertAfter("ASSETS", assetsAnchor, content, func(m Match) string {
		return entryBlock(m.Indent, r.Provider.BinaryName, [][2]string{
			{"extension", r.ID},
			{"org", r.Provider.Org},
			{"repo", r.Provider.Repo},
			{"releaseTag", r.Provider.ReleaseTag},
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return out, []string{fmt.Sprintf("Add %s to ASSETS", r.Provider.BinaryName)}, nil
}

// CopyDistRule registers the extension in the EXTENSIONS table of the
// dist copy script.
type CopyDistRule struct {
	Path        string
	ID          string
	Dir         string
	PackageName string
}

func (r *CopyDistRule) Name() string   { return RuleCopyDist }
func (r *CopyDistRule) Target() string { return r.Path }

func (r *CopyDistRule) Present(content []byte) (bool, error) {
	keys, err := objectKeys(string(content), "EXTENSIONS")
	if err != nil {
		return false, err
	}
	return containsKey(keys, r.ID), nil
}

func (r *CopyDistRule) Apply(content []byte) ([]byte, []string, error) {
	out, err := insertAfter("EXTENSIONS", extensionsAnchor, content, func(m Match) string {
		return entryBlock(m.Indent, r.ID, [][2]string{
			{"dir", r.Dir},
			{"packageName", r.PackageName},
		})
	})
	if err != nil {
		return nil, nil, err
	}
	return out, []string{fmt.Sprintf("Add %s to EXTENSIONS", r.ID)}, nil
}

// PackageExtensionsRule adds the extension to VALID_EXTENSIONS in the
// packaging script.
type PackageExtensionsRule struct {
	Path string
	ID   string
}

func (r *PackageExtensionsRule) Name() string   { return RulePackageExtensions }
func (r *PackageExtensionsRule) Target() string { return r.Path }

func (r *PackageExtensionsRule) Present(content []byte) (bool, error) {
	values, err := arrayStrings(string(content), "VALID_EXTENSIONS")
	if err != nil {
		return false, err
	}
	return containsKey(values, r.ID), nil
}

func (r *PackageExtensionsRule) Apply(content []byte) ([]byte, []string, error) {
	out, err := insertAfter("VALID_EXTENSIONS", validExtensionsAnchor, content, func(m Match) string {
		return "\n" + m.Indent + "  " + strconv.Quote(r.ID) + ","
	})
	if err != nil {
		return nil, nil, err
	}
	return out, []string{fmt.Sprintf("Add %q to VALID_EXTENSIONS", r.ID)}, nil
}
