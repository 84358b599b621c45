package patch

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Layout names the shared files of the host repository, relative to its
// root.
type Layout struct {
	ExtensionsDir     string
	Manifest          string
	CIWorkflow        string
	CollectAssets     string
	CopyDist          string
	PackageExtensions string
	Launch            string
	// Workspace is a glob; the first match at the root is patched.
	Workspace         string
}

// DefaultLayout returns the file locations of a standard checkout.
func DefaultLayout() Layout {
	return Layout{
		ExtensionsDir:     "vscode",
		Manifest:          "package.json",
		CIWorkflow:        ".github/workflows/ci-repo.yml",
		CollectAssets:     "scripts/collect-assets.js",
		CopyDist:          "scripts/copy-dist.js",
		PackageExtensions: "scripts/package-extensions.js",
		Launch:            ".vscode/launch.json",
		Workspace:         "*.code-workspace",
	}
}

// WithDefaults fills empty fields from DefaultLayout.
func (l Layout) WithDefaults() Layout {
	d := DefaultLayout()
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&l.ExtensionsDir, d.ExtensionsDir)
	fill(&l.Manifest, d.Manifest)
	fill(&l.CIWorkflow, d.CIWorkflow)
	fill(&l.CollectAssets, d.CollectAssets)
	fill(&l.CopyDist, d.CopyDist)
	fill(&l.PackageExtensions, d.PackageExtensions)
	fill(&l.Launch, d.Launch)
	fill(&l.Workspace, d.Workspace)
	return l
}

// FindWorkspaceFile returns the first file matching the layout's workspace
// glob, or "" when there is none.
func FindWorkspaceFile(fsys billy.Filesystem, pattern string) (string, error) {
	matches, err := util.Glob(fsys, pattern)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("finding workspace file %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", nil
	}
	sort.Strings(matches)
	return matches[0], nil
}
