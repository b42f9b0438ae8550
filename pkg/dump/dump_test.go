package dump

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteUsedTagsEachFileAndSection(t *testing.T) {
	var buf bytes.Buffer
	WriteUsed(&buf, []File{
		{Path: "main.o", Sections: []string{".text$main", ".text$helper"}},
	})

	out := buf.String()
	assert.Contains(t, out, "<USED>")
	assert.Contains(t, out, `<FILE name="main.o">`)
	assert.Contains(t, out, "<SECTION>.text$main</SECTION>")
	assert.Contains(t, out, "<SECTION>.text$helper</SECTION>")
	assert.Contains(t, out, "</USED>")
}

func TestWriteUnusedEmptyFile(t *testing.T) {
	var buf bytes.Buffer
	WriteUnused(&buf, []File{{Path: "main.o"}})

	out := buf.String()
	assert.Contains(t, out, "<UNUSED>")
	assert.Contains(t, out, `<FILE name="main.o">`)
	assert.NotContains(t, out, "<SECTION>")
}

func TestWriteMapIncludesDependencies(t *testing.T) {
	var buf bytes.Buffer
	WriteMap(&buf, []MapFile{
		{
			Path: "main.o",
			Sections: []MapEntry{
				{Name: ".text$main", Color: 1, Edges: []string{".text$helper"}},
			},
		},
	})

	out := buf.String()
	assert.Contains(t, out, `<SECTION name=".text$main" color="1">`)
	assert.Contains(t, out, "<DEPENDS>.text$helper</DEPENDS>")
}

func TestWriteMapYAMLRoundTrips(t *testing.T) {
	files := []MapFile{
		{
			Path: "main.o",
			Sections: []MapEntry{
				{Name: ".text$main", Color: 1},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMapYAML(&buf, files))
	assert.Contains(t, buf.String(), "path: main.o")
	assert.Contains(t, buf.String(), "name: .text$main")
}
