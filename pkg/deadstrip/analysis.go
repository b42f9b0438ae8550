package deadstrip

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Analysis is the explicit, resettable context for one dependency-analysis
// run: the section graph, the symbol index, and the unknown-source queue.
// Calling Compute drops any state left over from a previous run before
// building the new one, so a single Analysis value can be reused across
// independent runs in the same process.
type Analysis struct {
	graph   *Graph
	symbols *SymbolIndex
	unknown []NodeID
}

// NewAnalysis returns an Analysis ready for Collect/Compute.
func NewAnalysis() *Analysis {
	return &Analysis{graph: NewGraph()}
}

// Collect runs pass 1 for a single object file: it advances d to that
// file's SECTIONS table and records every section whose name begins with
// a recognized grouping prefix. Collect must be called once per object
// file, in the order their blocks appear in the stream d wraps.
func (a *Analysis) Collect(obj *ObjectFile, d *DumpReader) {
	collectSections(obj, d)
}

// relocHeaderPrefix is the case-sensitive keyword that opens a relocation
// block; only lines with this prefix are examined for the bracketed
// section name.
const relocHeaderPrefix = "RELOCATION RECORDS FOR ["

// Compute runs pass 2: it resets the section graph, symbol index and
// unknown-source queue, indexes every inventoried section (rewriting each ObjectFile's
// entries to their stripped keys), rescans r for relocation blocks to
// build the dependency graph, and finally colors every unknown-source
// target with ColorWeaklyLive. r must be a fresh or rewound view of the
// same stream content Collect consumed.
func (a *Analysis) Compute(objs []*ObjectFile, r io.Reader) error {
	a.graph = NewGraph()
	a.symbols = NewSymbolIndex(estimateSections(objs))
	a.unknown = nil

	for _, obj := range objs {
		for i, full := range obj.Sections() {
			key, _ := StripGroupingPrefix(full)
			if _, exists := a.symbols.Get(key); !exists {
				id := a.graph.NewNode(full)
				a.symbols.Set(id, key)
			}
			obj.setAt(i, key)
		}
	}

	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "RELOCATION") {
			continue
		}

		name, err := parseRelocHeader(line)
		if err != nil {
			return err
		}

		key, _ := StripGroupingPrefix(name)
		srcID, found := a.symbols.Get(key)

		if !found && isWeakSection(key) {
			continue
		}

		if !scanner.Scan() { // caption row, e.g. "OFFSET TYPE VALUE"
			break
		}

		for scanner.Scan() {
			row := scanner.Text()
			if strings.TrimSpace(row) == "" {
				break
			}

			fields := strings.Fields(row)
			if len(fields) < 3 {
				continue
			}

			targetID, ok := a.symbols.Get(NormalizeSymbol(fields[2]))
			if !ok {
				continue
			}

			if found {
				a.graph.Connect(srcID, targetID)
			} else {
				a.unknown = append(a.unknown, targetID)
			}
		}
	}

	for _, id := range a.unknown {
		a.graph.Colorize(id, ColorWeaklyLive)
	}

	return nil
}

func parseRelocHeader(line string) (string, error) {
	rest := strings.TrimPrefix(line, relocHeaderPrefix)
	if rest == line {
		return "", fmt.Errorf("deadstrip: malformed relocation header: %q", line)
	}

	end := strings.IndexByte(rest, ']')
	if end <= 0 {
		return "", fmt.Errorf("deadstrip: malformed relocation header: %q", line)
	}

	return rest[:end], nil
}

func estimateSections(objs []*ObjectFile) int {
	total := 0
	for _, obj := range objs {
		total += obj.Len()
	}
	return total
}

// ColorizeSeed colors the section registered under name, if any, with c.
// An unresolved seed is silently ignored: it may name a symbol in a
// non-inventoried section.
func (a *Analysis) ColorizeSeed(name string, c uint32) {
	if id, ok := a.symbols.Get(name); ok {
		a.graph.Colorize(id, c)
	}
}

// Used returns obj's inventoried sections that survive (non-zero color),
// by their full, unstripped names, in inventory order.
func (a *Analysis) Used(obj *ObjectFile) []string {
	var out []string
	for _, key := range obj.Sections() {
		if id, ok := a.symbols.Get(key); ok && a.graph.Color(id) != 0 {
			out = append(out, a.graph.Name(id))
		}
	}
	return out
}

// Unused returns obj's inventoried sections that do not survive (color
// zero), by their full, unstripped names, in inventory order.
func (a *Analysis) Unused(obj *ObjectFile) []string {
	var out []string
	for _, key := range obj.Sections() {
		if id, ok := a.symbols.Get(key); ok && a.graph.Color(id) == 0 {
			out = append(out, a.graph.Name(id))
		}
	}
	return out
}

// SectionInfo describes one section's color and dependency edges, for the
// diagnostic dependency-map dump.
type SectionInfo struct {
	Name  string
	Color uint32
	Edges []string
}

// Sections returns per-section info for obj's inventory, in inventory
// order, resolving each out-edge to its target's full name.
func (a *Analysis) Sections(obj *ObjectFile) []SectionInfo {
	out := make([]SectionInfo, 0, obj.Len())

	for _, key := range obj.Sections() {
		id, ok := a.symbols.Get(key)
		if !ok {
			continue
		}

		edgeIDs := a.graph.Edges(id)
		edges := make([]string, len(edgeIDs))
		for i, e := range edgeIDs {
			edges[i] = a.graph.Name(e)
		}

		out = append(out, SectionInfo{
			Name:  a.graph.Name(id),
			Color: a.graph.Color(id),
			Edges: edges,
		})
	}

	return out
}
