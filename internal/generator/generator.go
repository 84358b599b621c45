package generator

import (
	"github.com/editor-extensions/extgen/internal/descriptor"
	"github.com/editor-extensions/extgen/internal/errdef"
	"github.com/editor-extensions/extgen/internal/ledger"
	"github.com/editor-extensions/extgen/internal/patch"
	"github.com/editor-extensions/extgen/internal/render"
	"github.com/editor-extensions/extgen/internal/repoctx"
	"github.com/editor-extensions/extgen/internal/repofs"
	"github.com/editor-extensions/extgen/internal/scaffold"
	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"
)

// Options configure a run.
type Options struct {
	Extension *descriptor.Extension
	// FS is rooted at the host repository.
	FS        billy.Filesystem
	Templates scaffold.Source
	Helpers   render.Helpers
	Repo      repoctx.Context
	Layout    patch.Layout
	DryRun    bool
	Force     bool
	Log       zerolog.Logger
}

// Result is what a run produced. Operations are in the order they were
// staged: new files first, then edits.
type Result struct {
	Success    bool
	Operations []ledger.FileOperation
	Issues     []ledger.Issue
	Errors     []string
	Outcomes   []patch.Outcome
	Context    render.Context
}

// Creates returns the create operations of the run.
func (r *Result) Creates() []ledger.FileOperation { return r.filter(ledger.Create) }

// Modifies returns the modify operations of the run.
func (r *Result) Modifies() []ledger.FileOperation { return r.filter(ledger.Modify) }

func (r *Result) filter(kind ledger.Kind) []ledger.FileOperation {
	var out []ledger.FileOperation
	for _, op := range r.Operations {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Run generates the extension. Fatal errors stop the run and are reported
// in the result; files written before the failure stay on disk.
func Run(opts Options) *Result {
	opts = withDefaults(opts)
	log := opts.Log.With().Str("extension", opts.Extension.ID).Bool("dryRun", opts.DryRun).Logger()
	l := ledger.New()
	ctx := render.NewContext(opts.Extension, opts.Repo, opts.Layout.ExtensionsDir)
	result := &Result{Context: ctx}

	finish := func() *Result {
		result.Success = l.Success()
		result.Operations = l.Operations()
		result.Issues = l.Issues()
		result.Errors = l.Errors()
		return result
	}

	if err := checkTarget(opts.FS, ctx.ExtensionDir, opts.Force); err != nil {
		log.Debug().Err(err).Msg("pre-condition failed")
		l.Fail(err)
		return finish()
	}

	emitter := &scaffold.Emitter{
		FS:       opts.FS,
		Source:   opts.Templates,
		Renderer: render.New(opts.Helpers),
		DryRun:   opts.DryRun,
		Log:      log,
	}
	if err := emitter.Emit(ctx, l); err != nil {
		l.Fail(err)
		return finish()
	}

	rules, err := buildRules(opts, ctx)
	if err != nil {
		l.Fail(err)
		return finish()
	}
	runner := &patch.Runner{FS: opts.FS, DryRun: opts.DryRun, Log: log}
	for _, rule := range rules {
		out, err := runner.Run(rule, l)
		result.Outcomes = append(result.Outcomes, out)
		if err != nil {
			l.Fail(err)
			return finish()
		}
	}

	log.Info().
		Int("creates", len(l.Creates())).
		Int("modifies", len(l.Modifies())).
		Int("issues", len(l.Issues())).
		Msg("generation finished")
	return finish()
}

// Status reports, per shared file, whether the extension is already wired
// in. Nothing is written.
func Status(opts Options) ([]patch.Outcome, error) {
	opts = withDefaults(opts)
	ctx := render.NewContext(opts.Extension, opts.Repo, opts.Layout.ExtensionsDir)
	rules, err := buildRules(opts, ctx)
	if err != nil {
		return nil, err
	}

	runner := &patch.Runner{FS: opts.FS, DryRun: true, Log: opts.Log}
	outcomes := make([]patch.Outcome, 0, len(rules))
	for _, rule := range rules {
		out, err := runner.Check(rule)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

func withDefaults(opts Options) Options {
	opts.Layout = opts.Layout.WithDefaults()
	opts.Repo = opts.Repo.Merge(repoctx.Defaults())
	if opts.Templates == nil {
		opts.Templates = scaffold.EmbeddedSource{}
	}
	if opts.Helpers == nil {
		opts.Helpers = render.NewHelpers()
	}
	return opts
}

func checkTarget(fsys billy.Filesystem, dir string, force bool) error {
	exists, err := repofs.Exists(fsys, dir)
	if err != nil {
		return errdef.Wrap(errdef.CodeFilesystem, err, "")
	}
	if exists && !force {
		return errdef.New(errdef.CodePrecondition, "extension directory %s already exists (use --force to overwrite)", dir)
	}
	return nil
}

func buildRules(opts Options, ctx render.Context) ([]patch.Rule, error) {
	workspace, err := patch.FindWorkspaceFile(opts.FS, opts.Layout.Workspace)
	if err != nil {
		return nil, errdef.Wrap(errdef.CodeFilesystem, err, "")
	}
	return patch.Rules(ctx, opts.Layout, workspace), nil
}
