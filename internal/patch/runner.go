package patch

import (
	"fmt"

	"github.com/editor-extensions/extgen/internal/errdef"
	"github.com/editor-extensions/extgen/internal/ledger"
	"github.com/editor-extensions/extgen/internal/repofs"
	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"
)

// Runner applies rules to a repository file tree.
type Runner struct {
	FS     billy.Filesystem
	DryRun bool
	Log    zerolog.Logger
}

// Run evaluates rule and, when its change is missing, applies it. Applied
// rules stage a modify operation; in dry-run mode the operation carries a
// diff and nothing is written. Rules that cannot be applied safely are
// recorded as ledger issues. Only I/O failures are returned as errors.
func (r *Runner) Run(rule Rule, l *ledger.Ledger) (Outcome, error) {
	out, old, updated, err := r.evaluate(rule)
	if err != nil || out.Status != StatusPending {
		if out.Status.Skipped() {
			l.AddIssue(ledger.Issue{Path: out.Path, Rule: out.Rule, Reason: out.Reason})
		}
		return out, err
	}

	op := ledger.FileOperation{
		Kind:        ledger.Modify,
		Path:        out.Path,
		Description: fmt.Sprintf("Update %s (%s)", out.Path, rule.Name()),
		Changes:     out.Changes,
	}
	if r.DryRun {
		op.Diff = Diff(out.Path, string(old), string(updated))
	} else if err := repofs.WriteFile(r.FS, out.Path, updated); err != nil {
		return out, errdef.Wrap(errdef.CodeFilesystem, err, "")
	}

	out.Status = StatusApplied
	l.Add(op)
	r.Log.Debug().Str("rule", out.Rule).Str("path", out.Path).Bool("dryRun", r.DryRun).Msg("staged modify")
	return out, nil
}

// Check evaluates rule without writing anything. A rule whose change is
// missing and could be applied reports StatusPending.
func (r *Runner) Check(rule Rule) (Outcome, error) {
	out, _, _, err := r.evaluate(rule)
	return out, err
}

func (r *Runner) evaluate(rule Rule) (out Outcome, old, updated []byte, err error) {
	out = Outcome{Rule: rule.Name(), Path: rule.Target()}
	log := r.Log.With().Str("rule", out.Rule).Str("path", out.Path).Logger()

	if out.Path == "" {
		out.Status = StatusFileMissing
		log.Debug().Msg("no target file, skipping")
		return out, nil, nil, nil
	}
	exists, err := repofs.Exists(r.FS, out.Path)
	if err != nil {
		return out, nil, nil, errdef.Wrap(errdef.CodeFilesystem, err, "")
	}
	if !exists {
		out.Status = StatusFileMissing
		log.Debug().Msg("target missing, skipping")
		return out, nil, nil, nil
	}

	old, err = repofs.ReadFile(r.FS, out.Path)
	if err != nil {
		return out, nil, nil, errdef.Wrap(errdef.CodeFilesystem, err, "")
	}

	present, err := rule.Present(old)
	if err != nil {
		return skip(out, err, log), old, nil, nil
	}
	if present {
		out.Status = StatusAlreadyPresent
		log.Debug().Msg("change already present")
		return out, old, nil, nil
	}

	updated, changes, err := rule.Apply(old)
	if err != nil {
		return skip(out, err, log), old, nil, nil
	}
	out.Status = StatusPending
	out.Changes = changes
	return out, old, updated, nil
}

func skip(out Outcome, err error, log zerolog.Logger) Outcome {
	out.Status = StatusMalformed
	if errdef.Is(err, errdef.CodeAnchorNotFound) {
		out.Status = StatusAnchorMissing
	}
	out.Reason = err.Error()
	log.Warn().Err(err).Str("status", string(out.Status)).Msg("skipping patch")
	return out
}
