package repoctx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/rs/zerolog"
)

// CSharpTagPrefix marks release tags of the C# provider.
const CSharpTagPrefix = "csharp-"

// Context holds repository facts. Every field has a usable value after Read.
type Context struct {
	Version          string `json:"version"`
	ReleaseTag       string `json:"releaseTag"`
	CSharpReleaseTag string `json:"csharpReleaseTag,omitempty"`
	Org              string `json:"org"`
	Repo             string `json:"repo"`
	RulesetOrg       string `json:"rulesetOrg"`
	RulesetRepo      string `json:"rulesetRepo"`
	Publisher        string `json:"publisher"`
}

// Defaults returns the values used when the repository does not provide one.
func Defaults() Context {
	return Context{
		Version:     "0.1.0",
		Org:         "konveyor",
		Repo:        "editor-extensions",
		RulesetOrg:  "konveyor",
		RulesetRepo: "rulesets",
		Publisher:   "konveyor",
	}
}

// Merge returns c with empty fields filled from fallback.
func (c Context) Merge(fallback Context) Context {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&c.Version, fallback.Version)
	fill(&c.ReleaseTag, fallback.ReleaseTag)
	fill(&c.CSharpReleaseTag, fallback.CSharpReleaseTag)
	fill(&c.Org, fallback.Org)
	fill(&c.Repo, fallback.Repo)
	fill(&c.RulesetOrg, fallback.RulesetOrg)
	fill(&c.RulesetRepo, fallback.RulesetRepo)
	fill(&c.Publisher, fallback.Publisher)
	return c
}

// Reader extracts a Context from a repository checkout.
type Reader struct {
	Root string
	// Overrides take precedence over anything read from the repository.
	Overrides Context
	// Fallback fills fields the repository does not provide, ahead of Defaults.
	Fallback Context
	Log      zerolog.Logger
}

// Read collects what the repository knows about itself. A missing git
// directory, remote, tag or manifest is not an error: the field falls back
// to Defaults. Unreadable files are.
func (r Reader) Read() (Context, error) {
	var found Context

	version, err := r.manifestVersion()
	if err != nil {
		return Context{}, err
	}
	found.Version = version

	repo, err := git.PlainOpenWithOptions(r.Root, &git.PlainOpenOptions{DetectDotGit: true})
	switch {
	case errors.Is(err, git.ErrRepositoryNotExists):
		r.Log.Debug().Str("root", r.Root).Msg("not a git repository, using defaults")
	case err != nil:
		return Context{}, fmt.Errorf("opening git repository at %s: %w", r.Root, err)
	default:
		tags, err := tagNames(repo)
		if err != nil {
			return Context{}, err
		}
		found.ReleaseTag = HighestReleaseTag(tags)
		found.CSharpReleaseTag = HighestPrefixedTag(tags, CSharpTagPrefix)

		if remote, err := repo.Remote("origin"); err == nil && len(remote.Config().URLs) > 0 {
			found.Org, found.Repo = ParseRemoteURL(remote.Config().URLs[0])
		} else {
			r.Log.Debug().Msg("no origin remote, using default org/repo")
		}
	}

	ctx := r.Overrides.Merge(found).Merge(r.Fallback).Merge(Defaults())
	if ctx.ReleaseTag == "" {
		ctx.ReleaseTag = "v" + strings.TrimPrefix(ctx.Version, "v")
	}
	r.Log.Debug().
		Str("version", ctx.Version).
		Str("releaseTag", ctx.ReleaseTag).
		Str("org", ctx.Org).
		Str("repo", ctx.Repo).
		Msg("repository context")
	return ctx, nil
}

func (r Reader) manifestVersion() (string, error) {
	path := filepath.Join(r.Root, "package.json")
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	var manifest struct {
		Version string `json:"version"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		r.Log.Warn().Err(err).Str("path", path).Msg("ignoring unparsable root manifest")
		return "", nil
	}
	return manifest.Version, nil
}

func tagNames(repo *git.Repository) ([]string, error) {
	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return names, nil
}

// HighestReleaseTag returns the greatest tag of the form vX.Y.Z, ignoring
// pre-releases. It returns "" when there is none.
func HighestReleaseTag(tags []string) string {
	var best *semver.Version
	bestName := ""
	for _, name := range tags {
		if !strings.HasPrefix(name, "v") {
			continue
		}
		v, err := semver.StrictNewVersion(strings.TrimPrefix(name, "v"))
		if err != nil || v.Prerelease() != "" {
			continue
		}
		if best == nil || v.GreaterThan(best) {
			best, bestName = v, name
		}
	}
	return bestName
}

// HighestPrefixedTag returns the greatest semver tag starting with prefix,
// e.g. "csharp-v0.2.0". It returns "" when there is none.
func HighestPrefixedTag(tags []string, prefix string) string {
	type tagged struct {
		name string
		v    *semver.Version
	}
	var candidates []tagged
	for _, name := range tags {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}
		v, err := semver.NewVersion(rest)
		if err != nil {
			continue
		}
		candidates = append(candidates, tagged{name, v})
	}
	if len(candidates) == 0 {
		return ""
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].v.GreaterThan(candidates[j].v)
	})
	return candidates[0].name
}

// ParseRemoteURL extracts org and repo from a git remote URL. It understands
// https://host/org/repo(.git), ssh://git@host/org/repo.git and the scp-like
// git@host:org/repo.git form. Unrecognized URLs yield empty strings.
func ParseRemoteURL(raw string) (org, repo string) {
	raw = strings.TrimSpace(raw)
	var p string
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", ""
		}
		p = u.Path
	} else if i := strings.Index(raw, ":"); i >= 0 {
		p = raw[i+1:]
	} else {
		return "", ""
	}

	p = strings.TrimSuffix(strings.Trim(p, "/"), ".git")
	parts := strings.Split(p, "/")
	if len(parts) < 2 {
		return "", ""
	}
	return parts[len(parts)-2], parts[len(parts)-1]
}
