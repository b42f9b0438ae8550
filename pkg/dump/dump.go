// Package dump renders the deadstrip analysis result for human and
// machine consumption: the tagged text format the original tool printed
// for --duse/--ddis/--dmap, plus a structured YAML form of the dependency
// map.
package dump

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// File pairs an object file's path with one partition (used or unused)
// of its sections, for the <FILE> blocks WriteUsed/WriteUnused emit.
type File struct {
	Path     string
	Sections []string
}

// WriteUsed renders the <USED> block for a set of files.
func WriteUsed(w io.Writer, files []File) {
	writeSectionList(w, "USED", files)
}

// WriteUnused renders the <UNUSED> block for a set of files.
func WriteUnused(w io.Writer, files []File) {
	writeSectionList(w, "UNUSED", files)
}

func writeSectionList(w io.Writer, tag string, files []File) {
	fmt.Fprintf(w, "\n<%s>\n", tag)
	for _, f := range files {
		fmt.Fprintf(w, "\t<FILE name=\"%s\">\n", f.Path)
		for _, s := range f.Sections {
			fmt.Fprintf(w, "\t\t<SECTION>%s</SECTION>\n", s)
		}
		fmt.Fprintln(w, "\t</FILE>")
	}
	fmt.Fprintf(w, "</%s>\n", tag)
}

// MapEntry describes one section's color and dependency edges.
type MapEntry struct {
	Name  string   `yaml:"name"`
	Color uint32   `yaml:"color"`
	Edges []string `yaml:"edges,omitempty"`
}

// MapFile is one object file's section dependency map.
type MapFile struct {
	Path     string     `yaml:"path"`
	Sections []MapEntry `yaml:"sections"`
}

// WriteMap renders the dependency map in the original tool's tagged text
// form (<FILE>/<SECTION>/<DEPENDS>).
func WriteMap(w io.Writer, files []MapFile) {
	fmt.Fprintln(w, "\n<MAP>")
	for _, f := range files {
		fmt.Fprintf(w, "\t<FILE name=\"%s\">\n", f.Path)
		for _, s := range f.Sections {
			fmt.Fprintf(w, "\t\t<SECTION name=\"%s\" color=\"%d\">\n", s.Name, s.Color)
			for _, d := range s.Edges {
				fmt.Fprintf(w, "\t\t\t<DEPENDS>%s</DEPENDS>\n", d)
			}
			fmt.Fprintln(w, "\t\t</SECTION>")
		}
		fmt.Fprintln(w, "\t</FILE>")
	}
	fmt.Fprintln(w, "</MAP>")
}

// WriteMapYAML renders the dependency map as YAML, an alternative to the
// tagged text form for tooling that would rather not parse pseudo-XML.
func WriteMapYAML(w io.Writer, files []MapFile) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(files)
}
