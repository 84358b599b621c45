// Package generator runs one extension generation: it checks that the
// extension directory is free, renders the extension's files and wires the
// extension into the host repository's shared files. Preview and apply runs
// follow the same steps; a preview writes nothing.
package generator
