package patch

import (
	"fmt"
	"path"
	"strings"

	"github.com/editor-extensions/extgen/internal/errdef"
	"github.com/iancoleman/orderedmap"
)

// LaunchRule adds the extension to every debug configuration in
// .vscode/launch.json.
type LaunchRule struct {
	Path string
	Dir  string
}

func (r *LaunchRule) Name() string   { return RuleLaunch }
func (r *LaunchRule) Target() string { return r.Path }

func (r *LaunchRule) devPathArg() string {
	return "--extensionDevelopmentPath=${workspaceFolder}/" + r.Dir
}

func (r *LaunchRule) outFilesGlob() string {
	return "${workspaceFolder}/" + r.Dir + "/out/**/*.js"
}

// references reports whether s points into the extension directory.
func (r *LaunchRule) references(s string) bool {
	return strings.HasSuffix(s, "/"+r.Dir) || strings.Contains(s, "/"+r.Dir+"/")
}

func (r *LaunchRule) configurations(content []byte) (*orderedmap.OrderedMap, []interface{}, error) {
	doc, err := decodeObject(content)
	if err != nil {
		return nil, nil, err
	}
	configs, ok, err := list(doc, "configurations")
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, errdef.New(errdef.CodeAnchorNotFound, "%s has no configurations", r.Path)
	}
	return doc, configs, nil
}

func (r *LaunchRule) Present(content []byte) (bool, error) {
	_, configs, err := r.configurations(content)
	if err != nil {
		return false, err
	}
	for _, c := range configs {
		cfg, ok := c.(orderedmap.OrderedMap)
		if !ok {
			continue
		}
		for _, key := range []string{"args", "outFiles"} {
			items, _, err := list(&cfg, key)
			if err != nil {
				return false, err
			}
			for _, item := range items {
				if s, ok := item.(string); ok && r.references(s) {
					return true, nil
				}
			}
		}
	}
	return false, nil
}

func (r *LaunchRule) Apply(content []byte) ([]byte, []string, error) {
	doc, configs, err := r.configurations(content)
	if err != nil {
		return nil, nil, err
	}

	var changes []string
	for i, c := range configs {
		cfg, ok := c.(orderedmap.OrderedMap)
		if !ok {
			continue
		}
		name, _ := cfg.Get("name")
		for _, entry := range []struct{ key, value string }{
			{"args", r.devPathArg()},
			{"outFiles", r.outFilesGlob()},
		} {
			items, found, err := list(&cfg, entry.key)
			if err != nil {
				return nil, nil, err
			}
			if !found {
				continue
			}
			cfg.Set(entry.key, append(items, entry.value))
			changes = append(changes, fmt.Sprintf("Add %s to %s of %q", entry.value, entry.key, fmt.Sprint(name)))
		}
		configs[i] = cfg
	}
	if len(changes) == 0 {
		return nil, nil, errdef.New(errdef.CodeAnchorNotFound, "%s has no configuration with args or outFiles", r.Path)
	}
	doc.Set("configurations", configs)

	out, err := encodeObject(doc)
	if err != nil {
		return nil, nil, err
	}
	return out, changes, nil
}

// WorkspaceRule adds the extension directory to the folders of a
// .code-workspace file. Trailing commas in the file are tolerated.
type WorkspaceRule struct {
	Path string
	Dir  string
}

func (r *WorkspaceRule) Name() string   { return RuleWorkspace }
func (r *WorkspaceRule) Target() string { return r.Path }

func (r *WorkspaceRule) folders(content []byte) (*orderedmap.OrderedMap, []interface{}, error) {
	doc, err := decodeRelaxedObject(content)
	if err != nil {
		return nil, nil, err
	}
	folders, ok, err := list(doc, "folders")
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, errdef.New(errdef.CodeAnchorNotFound, "%s has no folders", r.Path)
	}
	return doc, folders, nil
}

func (r *WorkspaceRule) Present(content []byte) (bool, error) {
	_, folders, err := r.folders(content)
	if err != nil {
		return false, err
	}
	for _, f := range folders {
		folder, ok := f.(orderedmap.OrderedMap)
		if !ok {
			continue
		}
		if p, ok := folder.Get("path"); ok {
			if s, ok := p.(string); ok && path.Clean(s) == path.Clean(r.Dir) {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *WorkspaceRule) Apply(content []byte) ([]byte, []string, error) {
	doc, folders, err := r.folders(content)
	if err != nil {
		return nil, nil, err
	}

	folder := newObject()
	folder.Set("path", r.Dir)
	doc.Set("folders", append(folders, folder))

	out, err := encodeObject(doc)
	if err != nil {
		return nil, nil, err
	}
	return out, []string{fmt.Sprintf("Add folder %s", r.Dir)}, nil
}
