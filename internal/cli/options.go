package cli

import (
	"fmt"
	"path/filepath"

	"github.com/editor-extensions/extgen/internal/config"
	"github.com/editor-extensions/extgen/internal/descriptor"
	"github.com/editor-extensions/extgen/internal/generator"
	"github.com/editor-extensions/extgen/internal/logging"
	"github.com/editor-extensions/extgen/internal/repoctx"
	"github.com/editor-extensions/extgen/internal/repofs"
	"github.com/editor-extensions/extgen/internal/scaffold"
)

// readRepo loads the user config and reads the repository context of the
// checkout at dir.
func readRepo(dir string) (string, repoctx.Context, error) {
	config.Load()

	root, err := filepath.Abs(dir)
	if err != nil {
		return "", repoctx.Context{}, fmt.Errorf("resolving repository path %s: %w", dir, err)
	}
	repo, err := repoctx.Reader{
		Root:     root,
		Fallback: config.Defaults(),
		Log:      logging.GetLogger("repoctx"),
	}.Read()
	if err != nil {
		return "", repoctx.Context{}, err
	}
	return root, repo, nil
}

// loadOptions assembles generator options from a descriptor path, the host
// repository directory and an optional template override directory.
func loadOptions(descriptorPath, repoDir, templatesDir string) (generator.Options, error) {
	if descriptorPath == "" {
		return generator.Options{}, fmt.Errorf("an extension descriptor is required (use -c/--config)")
	}
	ext, err := descriptor.LoadFile(descriptorPath)
	if err != nil {
		return generator.Options{}, err
	}

	root, repo, err := readRepo(repoDir)
	if err != nil {
		return generator.Options{}, err
	}

	opts := generator.Options{
		Extension: ext,
		FS:        repofs.Open(root),
		Repo:      repo,
		Layout:    config.Layout(),
		Log:       logging.GetLogger("generator"),
	}
	if templatesDir != "" {
		dir, err := filepath.Abs(templatesDir)
		if err != nil {
			return generator.Options{}, fmt.Errorf("resolving templates path %s: %w", templatesDir, err)
		}
		opts.Templates = scaffold.DirSource{FS: repofs.Open(dir)}
	}
	return opts, nil
}
