package catalog

import "errors"

// ErrSectionNotFound is returned for an anchor that names no section.
var ErrSectionNotFound = errors.New("section not found")

// TOCEntry is one line of the table of contents.
type TOCEntry struct {
	// Name is the section heading.
	Name string `json:"name"`

	// Anchor is the jump target for the section. It equals Name.
	Anchor string `json:"anchor"`
}

// TableOfContents lists section names in catalog order.
func (c *Catalog) TableOfContents() []TOCEntry {
	out := make([]TOCEntry, len(c.sections))
	for i, s := range c.sections {
		out[i] = TOCEntry{Name: s.Name, Anchor: Anchor(s.Name)}
	}
	return out
}

// Resolve returns the section a table-of-contents anchor points to.
func (c *Catalog) Resolve(anchor string) (Section, bool) {
	return c.Section(anchor)
}

// Anchor returns the jump target for a section name.
func Anchor(name string) string {
	return name
}
