package patch

import (
	"encoding/json"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/editor-extensions/extgen/internal/errdef"
	"github.com/editor-extensions/extgen/internal/testrepo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripTrailingCommas(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"object", `{"a": 1,}`, `{"a": 1}`},
		{"array", `[1, 2,]`, `[1, 2]`},
		{"whitespace before close", "[1,\n  \n]", "[1\n  \n]"},
		{"nested", `{"a": [1,], "b": {"c": 2,},}`, `{"a": [1], "b": {"c": 2}}`},
		{"untouched", `{"a": [1, 2]}`, `{"a": [1, 2]}`},
		{"comma inside string", `{"name": "a, ]b",}`, `{"name": "a, ]b"}`},
		{"escaped quote in string", `["say \",}\"",]`, `["say \",}\""]`},
		{"unterminated string", `{"a": "x,}`, `{"a": "x,}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(StripTrailingCommas([]byte(tt.in))))
		})
	}
}

func TestRelaxedRoundTripKeepsFolders(t *testing.T) {
	rule := &WorkspaceRule{Path: testrepo.Workspace, Dir: "vscode/python"}
	out, changes, err := rule.Apply([]byte(testrepo.WorkspaceContent))
	require.NoError(t, err)
	assert.Equal(t, []string{"Add folder vscode/python"}, changes)

	want := heredoc.Doc(`
		{
		  "folders": [
		    {
		      "path": "."
		    },
		    {
		      "path": "vscode/core",
		      "name": "core"
		    },
		    {
		      "path": "vscode/java"
		    },
		    {
		      "path": "vscode/python"
		    }
		  ],
		  "settings": {
		    "editor.formatOnSave": true
		  }
		}
	`)
	assert.Equal(t, want, string(out))
}

func TestRelaxedRoundTripKeepsStringContent(t *testing.T) {
	rule := &WorkspaceRule{Path: testrepo.Workspace, Dir: "vscode/python"}
	out, _, err := rule.Apply([]byte(`{"folders":[{"path":".","name":"a, ]b"}],}`))
	require.NoError(t, err)

	var doc struct {
		Folders []struct {
			Path string `json:"path"`
			Name string `json:"name"`
		} `json:"folders"`
	}
	require.NoError(t, json.Unmarshal(out, &doc))
	require.Len(t, doc.Folders, 2)
	assert.Equal(t, "a, ]b", doc.Folders[0].Name)
	assert.Equal(t, "vscode/python", doc.Folders[1].Path)
}

func TestRelaxedParseRejectsComments(t *testing.T) {
	content := heredoc.Doc(`
		{
		  // local folders
		  "folders": [{ "path": "." },],
		}
	`)
	_, err := decodeRelaxedObject([]byte(content))
	require.Error(t, err)
	assert.True(t, errdef.Is(err, errdef.CodeMalformed))
}

func TestEncodeObjectDoesNotEscapeHTML(t *testing.T) {
	doc, err := decodeObject([]byte(`{"scripts":{"dev":"a && b <c>"}}`))
	require.NoError(t, err)
	out, err := encodeObject(doc)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"scripts\": {\n    \"dev\": \"a && b <c>\"\n  }\n}\n", string(out))
}

func TestEncodeObjectKeepsNumberText(t *testing.T) {
	doc, err := decodeObject([]byte(`{"id":12345678901234567890,"nested":{"port":8085,"ratio":1.50},"list":[1e3,{"n":-0}]}`))
	require.NoError(t, err)
	out, err := encodeObject(doc)
	require.NoError(t, err)

	want := heredoc.Doc(`
		{
		  "id": 12345678901234567890,
		  "nested": {
		    "port": 8085,
		    "ratio": 1.50
		  },
		  "list": [
		    1e3,
		    {
		      "n": -0
		    }
		  ]
		}
	`)
	assert.Equal(t, want, string(out))
}
