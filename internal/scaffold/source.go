package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

//go:embed templates/*.tmpl
var embeddedFS embed.FS

// ErrTemplateNotFound is returned by a Source that has no template with the
// requested name.
var ErrTemplateNotFound = errors.New("template not found")

// Source supplies template bodies by name.
type Source interface {
	Read(name string) (string, error)
}

// EmbeddedSource serves the templates compiled into the binary.
type EmbeddedSource struct{}

func (EmbeddedSource) Read(name string) (string, error) {
	data, err := fs.ReadFile(embeddedFS, path.Join("templates", name))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("reading embedded template %s: %w", name, err)
	}
	return string(data), nil
}

// DirSource serves templates from a directory, typically a checkout-local
// override of the embedded set.
type DirSource struct {
	FS billy.Filesystem
}

func (s DirSource) Read(name string) (string, error) {
	data, err := util.ReadFile(s.FS, name)
	if errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", name, err)
	}
	return string(data), nil
}

// EmbeddedNames lists the templates compiled into the binary.
func EmbeddedNames() ([]string, error) {
	entries, err := fs.ReadDir(embeddedFS, "templates")
	if err != nil {
		return nil, fmt.Errorf("listing embedded templates: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}
