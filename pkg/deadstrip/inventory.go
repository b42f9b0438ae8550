package deadstrip

// ObjectFile is the per-file ordered inventory built by Analysis.Collect.
// Before Analysis.Compute runs, its entries are full section names (e.g.
// ".text$main"); Compute rewrites each entry in place to the prefix-stripped
// symbol-index key, so the inventory and the index stay in lockstep.
type ObjectFile struct {
	Path     string
	sections []string
}

// NewObjectFile creates an empty inventory for the file at path.
func NewObjectFile(path string) *ObjectFile {
	return &ObjectFile{Path: path}
}

// add appends a section name discovered in this file's section table.
func (o *ObjectFile) add(name string) {
	o.sections = append(o.sections, name)
}

// Sections returns the inventory in file order.
func (o *ObjectFile) Sections() []string {
	return o.sections
}

// setAt rewrites entry i in place.
func (o *ObjectFile) setAt(i int, v string) {
	o.sections[i] = v
}

// Len returns the number of inventoried sections.
func (o *ObjectFile) Len() int {
	return len(o.sections)
}
