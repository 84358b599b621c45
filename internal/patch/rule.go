package patch

// Rule is one idempotent edit to an existing file.
type Rule interface {
	// Name identifies the rule in logs and issues.
	Name() string
	// Target is the file path relative to the repository root. An empty
	// target means the file could not be located.
	Target() string
	// Present reports whether content already carries the change.
	Present(content []byte) (bool, error)
	// Apply returns the edited content and a summary of each change.
	Apply(content []byte) ([]byte, []string, error)
}

// Status is the result of evaluating a rule against the repository.
type Status string

const (
	StatusApplied        Status = "applied"
	StatusPending        Status = "pending"
	StatusAlreadyPresent Status = "already-present"
	StatusFileMissing    Status = "file-missing"
	StatusAnchorMissing  Status = "anchor-missing"
	StatusMalformed      Status = "malformed"
)

// Skipped reports whether the rule was not applied because its target could
// not be edited safely.
func (s Status) Skipped() bool {
	return s == StatusAnchorMissing || s == StatusMalformed
}

// Outcome records what happened to a single rule.
type Outcome struct {
	Rule    string
	Path    string
	Status  Status
	Reason  string
	Changes []string
}
