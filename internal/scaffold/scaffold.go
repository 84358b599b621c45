package scaffold

import (
	"errors"
	"fmt"
	"path"

	"github.com/editor-extensions/extgen/internal/errdef"
	"github.com/editor-extensions/extgen/internal/ledger"
	"github.com/editor-extensions/extgen/internal/render"
	"github.com/editor-extensions/extgen/internal/repofs"
	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"
)

// Mapping ties a template to the file it produces.
type Mapping struct {
	Template string
	// Output is relative to the repository root.
	Output string
	// Enabled is false when the mapping's condition does not hold.
	Enabled bool
}

// Mappings returns the extension's files in emission order.
func Mappings(ctx render.Context) []Mapping {
	dir := ctx.ExtensionDir
	return []Mapping{
		{Template: "package.json.tmpl", Output: path.Join(dir, "package.json"), Enabled: true},
		{Template: "tsconfig.json.tmpl", Output: path.Join(dir, "tsconfig.json"), Enabled: true},
		{Template: "webpack.config.js.tmpl", Output: path.Join(dir, "webpack.config.js"), Enabled: true},
		{Template: "vscodeignore.tmpl", Output: path.Join(dir, ".vscodeignore"), Enabled: true},
		{Template: "README.md.tmpl", Output: path.Join(dir, "README.md"), Enabled: true},
		{Template: "extension.ts.tmpl", Output: path.Join(dir, "src", "extension.ts"), Enabled: true},
		{Template: "provider.ts.tmpl", Output: path.Join(dir, "src", "provider.ts"), Enabled: true},
		{Template: "constants.ts.tmpl", Output: path.Join(dir, "src", "constants.ts"), Enabled: true},
		{Template: "proxyServer.ts.tmpl", Output: path.Join(dir, "src", "proxyServer.ts"), Enabled: ctx.LSP.ProxyRequired},
	}
}

// Emitter renders and stages the extension's new files.
type Emitter struct {
	FS       billy.Filesystem
	Source   Source
	Renderer *render.Renderer
	DryRun   bool
	Log      zerolog.Logger
}

// Emit processes every enabled mapping in order. A missing template becomes
// a placeholder operation; render and write failures stop emission.
func (e *Emitter) Emit(ctx render.Context, l *ledger.Ledger) error {
	for _, m := range Mappings(ctx) {
		if !m.Enabled {
			e.Log.Debug().Str("template", m.Template).Msg("mapping disabled, skipping")
			continue
		}
		if err := e.emit(ctx, m, l); err != nil {
			return err
		}
	}
	return nil
}

func (e *Emitter) emit(ctx render.Context, m Mapping, l *ledger.Ledger) error {
	body, err := e.Source.Read(m.Template)
	if errors.Is(err, ErrTemplateNotFound) {
		e.Log.Warn().Str("template", m.Template).Msg("template missing, staging placeholder")
		l.Add(ledger.FileOperation{
			Kind:        ledger.Create,
			Path:        m.Output,
			Description: fmt.Sprintf("template %s not found; create this file manually", m.Template),
			Placeholder: true,
		})
		return nil
	}
	if err != nil {
		return errdef.Wrap(errdef.CodeTemplate, err, "loading template %s", m.Template)
	}

	content, err := e.Renderer.Render(m.Template, body, ctx)
	if err != nil {
		return errdef.Wrap(errdef.CodeRender, err, "")
	}

	op := ledger.FileOperation{
		Kind:        ledger.Create,
		Path:        m.Output,
		Description: fmt.Sprintf("Create %s from %s", path.Base(m.Output), m.Template),
		Changes:     []string{fmt.Sprintf("rendered %d bytes", len(content))},
	}
	if e.DryRun {
		op.Content = content
	} else {
		if err := repofs.WriteFile(e.FS, m.Output, []byte(content)); err != nil {
			return errdef.Wrap(errdef.CodeFilesystem, err, "")
		}
	}

	e.Log.Debug().Str("path", m.Output).Bool("dryRun", e.DryRun).Msg("staged create")
	l.Add(op)
	return nil
}
