// Package errdef defines the typed error codes used across extgen so callers
// can tell a missing anchor from a malformed file or an I/O failure without
// matching on message text.
package errdef
