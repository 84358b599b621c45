package patch

import (
	"github.com/aymanbagabas/go-udiff"
)

// Diff renders a unified diff between two versions of path. It returns ""
// when the contents are equal.
func Diff(path, oldContent, newContent string) string {
	if oldContent == newContent {
		return ""
	}
	return udiff.Unified("a/"+path, "b/"+path, oldContent, newContent)
}
