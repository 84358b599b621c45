// Package scaffold emits the new files of a generated extension. Each entry
// of the ordered mapping list is read from a template source, rendered and
// staged on the ledger as a create operation; outside preview mode the file
// is also written to the target repository.
package scaffold
