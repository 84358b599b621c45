// Package ui prints generation results: one line per staged file with a
// create or modify icon, the change summaries beneath it and, in preview
// mode, the rendered content or diff in a box.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/editor-extensions/extgen/internal/generator"
	"github.com/editor-extensions/extgen/internal/ledger"
	"github.com/editor-extensions/extgen/internal/patch"
	"github.com/fatih/color"
)

// maxPreviewLines bounds the content shown for a created file in preview.
const maxPreviewLines = 40

var (
	green = color.New(color.FgGreen, color.Bold).SprintFunc()
	amber = color.New(color.FgYellow, color.Bold).SprintFunc()
	red   = color.New(color.FgRed, color.Bold).SprintFunc()
	dim   = color.New(color.Faint).SprintFunc()

	box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
)

// Printer writes human-readable reports.
type Printer struct {
	Out io.Writer
}

// New returns a Printer writing to out.
func New(out io.Writer) *Printer {
	return &Printer{Out: out}
}

// Result prints every operation of a run followed by issues and errors.
func (p *Printer) Result(r *generator.Result, dryRun bool) {
	if dryRun {
		fmt.Fprintln(p.Out, dim("Preview: no files were written."))
	}
	for _, op := range r.Operations {
		p.operation(op, dryRun)
	}

	if len(r.Issues) > 0 {
		fmt.Fprintln(p.Out)
		fmt.Fprintln(p.Out, "Skipped patches:")
		for _, issue := range r.Issues {
			fmt.Fprintf(p.Out, "  %s %s (%s): %s\n", red("!"), issue.Path, issue.Rule, issue.Reason)
		}
	}
	for _, msg := range r.Errors {
		fmt.Fprintf(p.Out, "%s %s\n", red("!"), msg)
	}

	fmt.Fprintln(p.Out)
	fmt.Fprintln(p.Out, Summary(r))
}

func (p *Printer) operation(op ledger.FileOperation, dryRun bool) {
	icon := green("+")
	if op.Kind == ledger.Modify {
		icon = amber("~")
	}
	if op.Placeholder {
		icon = red("!")
	}
	fmt.Fprintf(p.Out, "%s %s\n", icon, op.Path)
	if op.Placeholder {
		fmt.Fprintf(p.Out, "    %s\n", op.Description)
	}
	for _, change := range op.Changes {
		fmt.Fprintf(p.Out, "    %s\n", dim(change))
	}

	if !dryRun {
		return
	}
	switch {
	case op.Diff != "":
		fmt.Fprintln(p.Out, box.Render(colorDiff(strings.TrimRight(op.Diff, "\n"))))
	case op.Content != "":
		fmt.Fprintln(p.Out, box.Render(truncate(strings.TrimRight(op.Content, "\n"), maxPreviewLines)))
	}
}

// Status prints one line per rule.
func (p *Printer) Status(outcomes []patch.Outcome) {
	for _, out := range outcomes {
		path := out.Path
		if path == "" {
			path = "(not found)"
		}
		fmt.Fprintf(p.Out, "%-20s %-18s %s\n", out.Rule, statusLabel(out.Status), path)
		if out.Reason != "" {
			fmt.Fprintf(p.Out, "%-20s %s\n", "", dim(out.Reason))
		}
	}
}

// Summary returns a one-line count of a run's operations.
func Summary(r *generator.Result) string {
	if !r.Success {
		return color.RedString("Generation failed.")
	}
	return fmt.Sprintf("%d file(s) created, %d file(s) modified, %d issue(s).",
		len(r.Creates()), len(r.Modifies()), len(r.Issues))
}

func statusLabel(s patch.Status) string {
	switch s {
	case patch.StatusAlreadyPresent:
		return color.GreenString(string(s))
	case patch.StatusPending:
		return color.YellowString(string(s))
	case patch.StatusAnchorMissing, patch.StatusMalformed:
		return color.RedString(string(s))
	default:
		return dim(string(s))
	}
}

func colorDiff(diff string) string {
	lines := strings.Split(diff, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = color.New(color.Bold).Sprint(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = color.GreenString(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = color.RedString(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = color.CyanString(line)
		}
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, max int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= max {
		return s
	}
	return strings.Join(lines[:max], "\n") + fmt.Sprintf("\n… %d more line(s)", len(lines)-max)
}
