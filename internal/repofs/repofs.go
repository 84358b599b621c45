// Package repofs wraps the target repository's file tree behind a
// billy.Filesystem so the engine can run against the real disk or an
// in-memory tree with the same code.
package repofs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

const (
	DirPerm  fs.FileMode = 0o755
	FilePerm fs.FileMode = 0o644
)

// Open returns a filesystem rooted at dir.
func Open(dir string) billy.Filesystem {
	return osfs.New(dir)
}

// Exists reports whether name exists. Errors other than "not exist" are
// returned so permission problems are not mistaken for absence.
func Exists(fsys billy.Basic, name string) (bool, error) {
	_, err := fsys.Stat(name)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", name, err)
}

// ReadFile reads name in full.
func ReadFile(fsys billy.Basic, name string) ([]byte, error) {
	data, err := util.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// WriteFile writes data to name through a temporary sibling and a rename, so
// a failed write never leaves a half-written file behind. Parent directories
// are created as needed. Existing files keep their permission bits.
func WriteFile(fsys billy.Filesystem, name string, data []byte) (err error) {
	dir := path.Dir(name)
	if err := fsys.MkdirAll(dir, DirPerm); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	mode := FilePerm
	if info, statErr := fsys.Stat(name); statErr == nil {
		mode = info.Mode().Perm()
	}

	// Single writer per repository, so a fixed temporary name is enough.
	tmp := path.Join(dir, "."+path.Base(name)+".extgen-tmp")
	f, err := fsys.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	defer func() {
		if err != nil {
			_ = fsys.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err = fsys.Rename(tmp, name); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}
