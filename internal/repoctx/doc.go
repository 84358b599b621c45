// Package repoctx reads facts about the host repository (version, release
// tags, origin org/repo) that extension templates use as defaults.
package repoctx
