package ledger

// Kind distinguishes newly created files from edits to existing ones.
type Kind string

const (
	Create Kind = "create"
	Modify Kind = "modify"
)

// FileOperation describes one staged change. Content is set only for preview
// creates and Diff only for preview modifies; in apply mode the write already
// happened and the operation just records it.
type FileOperation struct {
	Kind        Kind
	Path        string // relative to the repository root, slash separated
	Description string
	Changes     []string
	Content     string
	Diff        string
	Placeholder bool // template was missing; file needs manual follow-up
}

// Issue records a patch that was skipped because its target could not be
// edited safely (anchor missing, unparsable document).
type Issue struct {
	Path   string
	Rule   string
	Reason string
}

// Ledger accumulates operations for a single run. It is not safe for
// concurrent use; a run is strictly sequential.
type Ledger struct {
	ops    []FileOperation
	issues []Issue
	errs   []string
	failed bool
}

// New returns an empty ledger.
func New() *Ledger {
	return &Ledger{}
}

// Add appends an operation. Operations are never mutated after being added.
func (l *Ledger) Add(op FileOperation) {
	op.Changes = append([]string(nil), op.Changes...)
	l.ops = append(l.ops, op)
}

// AddIssue records a non-fatal skipped patch.
func (l *Ledger) AddIssue(issue Issue) {
	l.issues = append(l.issues, issue)
}

// Fail marks the run as failed and records the error message verbatim.
func (l *Ledger) Fail(err error) {
	if err == nil {
		return
	}
	l.failed = true
	l.errs = append(l.errs, err.Error())
}

// Operations returns a copy of all operations in the order they were added.
func (l *Ledger) Operations() []FileOperation {
	out := make([]FileOperation, len(l.ops))
	copy(out, l.ops)
	return out
}

// Creates returns only the create operations, in order.
func (l *Ledger) Creates() []FileOperation {
	return l.filter(Create)
}

// Modifies returns only the modify operations, in order.
func (l *Ledger) Modifies() []FileOperation {
	return l.filter(Modify)
}

func (l *Ledger) filter(kind Kind) []FileOperation {
	var out []FileOperation
	for _, op := range l.ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Find returns the first operation staged for path.
func (l *Ledger) Find(path string) (FileOperation, bool) {
	for _, op := range l.ops {
		if op.Path == path {
			return op, true
		}
	}
	return FileOperation{}, false
}

// Issues returns the recorded issues in order.
func (l *Ledger) Issues() []Issue {
	out := make([]Issue, len(l.issues))
	copy(out, l.issues)
	return out
}

// Errors returns the fatal error messages in order.
func (l *Ledger) Errors() []string {
	out := make([]string, len(l.errs))
	copy(out, l.errs)
	return out
}

// Success reports whether no fatal error was recorded.
func (l *Ledger) Success() bool {
	return !l.failed
}
