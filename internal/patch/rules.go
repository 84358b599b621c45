package patch

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/editor-extensions/extgen/internal/errdef"
	"github.com/editor-extensions/extgen/internal/render"
	"go.yaml.in/yaml/v3"
)

// Rule names, in the order they are applied.
const (
	RuleManifest          = "manifest"
	RuleCIWorkflow        = "ci-workflow"
	RuleCollectAssets     = "collect-assets"
	RuleCopyDist          = "copy-dist"
	RulePackageExtensions = "package-extensions"
	RuleLaunch            = "launch"
	RuleWorkspace         = "workspace"
)

// Rules returns every rule for the extension described by ctx, in
// application order. workspaceFile is the resolved workspace file, or "".
func Rules(ctx render.Context, layout Layout, workspaceFile string) []Rule {
	return []Rule{
		&ManifestRule{Path: layout.Manifest, ID: ctx.ID, Dir: ctx.ExtensionDir},
		&CIWorkflowRule{Path: layout.CIWorkflow, ID: ctx.ID, DisplayName: ctx.DisplayName},
		&CollectAssetsRule{Path: layout.CollectAssets, ID: ctx.ID, Provider: ctx.Provider},
		&CopyDistRule{Path: layout.CopyDist, ID: ctx.ID, Dir: ctx.ExtensionDir, PackageName: ctx.PackageName},
		&PackageExtensionsRule{Path: layout.PackageExtensions, ID: ctx.ID},
		&LaunchRule{Path: layout.Launch, Dir: ctx.ExtensionDir},
		&WorkspaceRule{Path: workspaceFile, Dir: ctx.ExtensionDir},
	}
}

// ManifestRule adds the extension to the root package.json workspaces and
// registers its packaging script.
type ManifestRule struct {
	Path string
	ID   string
	Dir  string
}

func (r *ManifestRule) Name() string   { return RuleManifest }
func (r *ManifestRule) Target() string { return r.Path }

func (r *ManifestRule) scriptName() string { return "package-" + r.ID }

func (r *ManifestRule) Present(content []byte) (bool, error) {
	doc, err := decodeObject(content)
	if err != nil {
		return false, err
	}
	workspaces, _, err := list(doc, "workspaces")
	if err != nil {
		return false, err
	}
	return containsString(workspaces, r.Dir), nil
}

func (r *ManifestRule) Apply(content []byte) ([]byte, []string, error) {
	doc, err := decodeObject(content)
	if err != nil {
		return nil, nil, err
	}
	workspaces, ok, err := list(doc, "workspaces")
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, errdef.New(errdef.CodeAnchorNotFound, "%s has no workspaces list", r.Path)
	}

	workspaces = append(workspaces, r.Dir)
	sort.SliceStable(workspaces, func(i, j int) bool {
		return fmt.Sprint(workspaces[i]) < fmt.Sprint(workspaces[j])
	})
	doc.Set("workspaces", workspaces)
	changes := []string{fmt.Sprintf("Add %s to workspaces", r.Dir)}

	scripts, found, err := object(doc, "scripts")
	if err != nil {
		return nil, nil, err
	}
	if !found {
		scripts = *newObject()
	}
	if _, exists := scripts.Get(r.scriptName()); !exists {
		scripts.Set(r.scriptName(), "npm run package --workspace="+r.Dir)
		doc.Set("scripts", scripts)
		changes = append(changes, fmt.Sprintf("Add script %s", r.scriptName()))
	}

	out, err := encodeObject(doc)
	if err != nil {
		return nil, nil, err
	}
	return out, changes, nil
}

// CIWorkflowRule adds a packaging step to the CI workflow ahead of the VSIX
// upload step.
type CIWorkflowRule struct {
	Path        string
	ID          string
	DisplayName string
}

var uploadStepAnchor = regexp.MustCompile(`(?m)^[ \t]*- name:[ \t]*["']?Upload VSIX artifacts["']?[ \t]*$`)

func (r *CIWorkflowRule) Name() string   { return RuleCIWorkflow }
func (r *CIWorkflowRule) Target() string { return r.Path }

// Present looks for the package script as a whole token, so "java" is not
// satisfied by a "package-javascript" step.
func (r *CIWorkflowRule) Present(content []byte) (bool, error) {
	script := regexp.MustCompile(`(?:^|[^\w-])package-` + regexp.QuoteMeta(r.ID) + `(?:[^\w-]|$)`)
	return script.Match(content), nil
}

func (r *CIWorkflowRule) Apply(content []byte) ([]byte, []string, error) {
	name, err := yamlScalar(fmt.Sprintf("Package %s extension", r.DisplayName))
	if err != nil {
		return nil, nil, err
	}
	rule := InsertionRule{
		Name:     "Upload VSIX artifacts step",
		Anchor:   uploadStepAnchor,
		Position: Before,
		Block: func(m Match) string {
			return fmt.Sprintf("%s- name: %s\n%s  run: npm run package-%s\n",
				m.Indent, name, m.Indent, r.ID)
		},
	}
	out, err := rule.Apply(string(content))
	if err != nil {
		return nil, nil, err
	}

	var check interface{}
	if err := yaml.Unmarshal([]byte(out), &check); err != nil {
		return nil, nil, errdef.Wrap(errdef.CodeMalformed, err, "workflow is not valid YAML after inserting step")
	}
	return []byte(out), []string{fmt.Sprintf("Add step running package-%s before artifact upload", r.ID)}, nil
}

// yamlScalar renders s as a single-line YAML scalar, quoted when plain style
// would change its meaning.
func yamlScalar(s string) (string, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encoding %q as YAML: %w", s, err)
	}
	scalar := strings.TrimSuffix(string(out), "\n")
	if strings.Contains(scalar, "\n") {
		// Folded or block output; a double-quoted scalar stays on one line.
		return strconv.Quote(s), nil
	}
	return scalar, nil
}
