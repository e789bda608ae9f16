package catalog

import "strings"

// Entry is one lesson: an explanation and an optional snippet.
type Entry struct {
	// Explanation is markdown text describing a language feature.
	Explanation string `yaml:"explanation" json:"explanation"`

	// Code is the runnable snippet. Empty means the entry has no run action.
	Code string `yaml:"code,omitempty" json:"code,omitempty"`
}

// Runnable reports whether the entry carries a snippet.
func (e Entry) Runnable() bool {
	return e.Code != ""
}

// Summary returns the first non-empty line of the explanation with leading
// markdown heading markers removed.
func (e Entry) Summary() string {
	for _, line := range strings.Split(e.Explanation, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "# "))
		if line != "" {
			return line
		}
	}
	return ""
}

// Section is a named, ordered group of entries.
type Section struct {
	// Name is unique within a catalog and is also its navigation anchor.
	Name string `json:"name"`

	// Entries are in document order.
	Entries []Entry `json:"entries"`
}

func (s Section) clone() Section {
	entries := make([]Entry, len(s.Entries))
	copy(entries, s.Entries)
	return Section{Name: s.Name, Entries: entries}
}

// Catalog is the ordered, immutable collection of sections.
type Catalog struct {
	sections []Section
	byName   map[string]int
}

func newCatalog(sections []Section) *Catalog {
	c := &Catalog{
		sections: sections,
		byName:   make(map[string]int, len(sections)),
	}
	for i, s := range sections {
		c.byName[s.Name] = i
	}
	return c
}

// Len returns the number of sections.
func (c *Catalog) Len() int {
	return len(c.sections)
}

// Sections returns a copy of all sections in order.
func (c *Catalog) Sections() []Section {
	out := make([]Section, len(c.sections))
	for i, s := range c.sections {
		out[i] = s.clone()
	}
	return out
}

// Section returns the section with the given name.
func (c *Catalog) Section(name string) (Section, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Section{}, false
	}
	return c.sections[i].clone(), true
}

// FirstEntry returns the first entry of the first non-empty section.
func (c *Catalog) FirstEntry() (Entry, bool) {
	for _, s := range c.sections {
		if len(s.Entries) > 0 {
			return s.Entries[0], true
		}
	}
	return Entry{}, false
}
