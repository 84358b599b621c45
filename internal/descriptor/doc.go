// Package descriptor handles parsing and validation of extension descriptors,
// the configuration file that describes the extension to scaffold (identifier,
// provider, LSP settings, dependencies, analysis settings). Descriptors may be
// written in YAML, JSON or TOML and are validated against an embedded JSON
// Schema before they reach the generator.
package descriptor
