package errdef

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(CodeFilesystem, nil, "write %s", "x"))
}

func TestWrapKeepsMessageVerbatim(t *testing.T) {
	base := fmt.Errorf("open package.json: %w", fs.ErrPermission)
	err := Wrap(CodeFilesystem, base, "")
	assert.Equal(t, base.Error(), err.Error())
	assert.True(t, errors.Is(err, fs.ErrPermission))
	assert.Equal(t, CodeFilesystem, CodeOf(err))
}

func TestIsWalksNestedCodes(t *testing.T) {
	inner := New(CodeAnchorNotFound, "anchor %q not found", "ASSETS")
	outer := Wrap(CodeMalformed, inner, "collect-assets")

	assert.True(t, Is(outer, CodeMalformed))
	assert.True(t, Is(outer, CodeAnchorNotFound))
	assert.False(t, Is(outer, CodeFilesystem))
	assert.Equal(t, "collect-assets: anchor \"ASSETS\" not found", outer.Error())
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("boom")))
	assert.False(t, Is(nil, CodeUnknown))
}

func TestNewEmptyCode(t *testing.T) {
	err := New("", "oops")
	assert.Equal(t, CodeUnknown, CodeOf(err))
}
