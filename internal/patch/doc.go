// Package patch edits the host repository's shared files so a new extension
// is part of its build. Each edit is a Rule: it knows its target file, can
// tell whether its change is already there, and can compute the new content.
// A Runner applies the common protocol to every rule: skip missing files,
// skip satisfied rules, record unsafe edits as issues, and either write the
// result or stage a diff for preview.
package patch
