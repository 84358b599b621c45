// Package render turns template bodies into file contents. A Renderer is
// built from an explicit Helpers registry, so two renderers never share
// template state.
package render
