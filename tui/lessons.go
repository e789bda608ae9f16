package tui

import "github.com/TheTrio/EspressoPlayground/catalog"

// lessonItem is one row of the lessons pane: a section heading or an entry.
type lessonItem struct {
	section string
	header  bool
	index   int
	entry   catalog.Entry
}

func (it lessonItem) label() string {
	if it.header {
		return it.section
	}
	summary := it.entry.Summary()
	if summary == "" {
		summary = "(untitled)"
	}
	if it.entry.Runnable() {
		return "▶ " + summary
	}
	return "  " + summary
}

// lessonItems flattens the table of contents and each section's entries.
func lessonItems(c *catalog.Catalog) []lessonItem {
	if c == nil {
		return nil
	}
	var items []lessonItem
	for _, toc := range c.TableOfContents() {
		s, ok := c.Resolve(toc.Anchor)
		if !ok {
			continue
		}
		items = append(items, lessonItem{section: s.Name, header: true})
		for i, e := range s.Entries {
			items = append(items, lessonItem{section: s.Name, index: i, entry: e})
		}
	}
	return items
}
