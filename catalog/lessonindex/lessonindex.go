// Package lessonindex makes catalog lessons searchable.
//
// Every entry of a catalog is registered as a discoverable record in a
// tooldiscovery index: the section becomes the namespace, the entry its
// name, and the explanation its description and documentation. Runnable
// entries carry their snippet as a documented example.
package lessonindex

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonwraymond/tooldiscovery/index"
	"github.com/jonwraymond/tooldiscovery/search"
	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/TheTrio/EspressoPlayground/catalog"
)

// ErrLessonNotFound is returned for an id that names no lesson.
var ErrLessonNotFound = errors.New("lesson not found")

// DefaultLimit caps search results when the caller passes no limit.
const DefaultLimit = 10

// Hit is one search result.
type Hit struct {
	// ID identifies the lesson, as "<section-slug>:entry_<n>".
	ID string `json:"id"`

	// Section is the section name, usable as a navigation anchor.
	Section string `json:"section"`

	// Entry is the zero-based position of the entry within its section.
	Entry int `json:"entry"`

	// Summary is the first line of the explanation.
	Summary string `json:"summary"`

	// Runnable reports whether the lesson has a snippet.
	Runnable bool `json:"runnable"`
}

type lessonRef struct {
	section string
	entry   int
	data    catalog.Entry
}

// Index is a read-only search index over one catalog.
type Index struct {
	idx     index.Index
	docs    *tooldoc.InMemoryStore
	lessons map[string]lessonRef
}

// New indexes every entry of c.
func New(c *catalog.Catalog) (*Index, error) {
	idx := index.NewInMemoryIndex(index.IndexOptions{
		Searcher: search.NewBM25Searcher(search.BM25Config{}),
	})
	docs := tooldoc.NewInMemoryStore(tooldoc.StoreOptions{Index: idx})
	li := &Index{idx: idx, docs: docs, lessons: make(map[string]lessonRef)}

	used := make(map[string]bool)
	for _, s := range c.Sections() {
		namespace := uniqueNamespace(Slug(s.Name), used)

		for i, e := range s.Entries {
			if err := li.register(namespace, s.Name, i, e); err != nil {
				return nil, err
			}
		}
	}
	return li, nil
}

// uniqueNamespace returns base, or base with the smallest numeric suffix not
// yet in used, and marks the result as used.
func uniqueNamespace(base string, used map[string]bool) string {
	namespace := base
	for n := 2; used[namespace]; n++ {
		namespace = fmt.Sprintf("%s_%d", base, n)
	}
	used[namespace] = true
	return namespace
}

func (li *Index) register(namespace, section string, i int, e catalog.Entry) error {
	name := fmt.Sprintf("entry_%d", i+1)
	tags := strings.Fields(strings.ToLower(section))
	if e.Runnable() {
		tags = append(tags, "runnable")
	}

	tool := model.Tool{
		Tool: mcp.Tool{
			Name:        name,
			Title:       section,
			Description: e.Explanation,
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		Namespace: namespace,
		Tags:      model.NormalizeTags(tags),
	}
	if err := li.idx.RegisterTool(tool, model.NewLocalBackend(namespace+"-"+name)); err != nil {
		return fmt.Errorf("lessonindex: register %s entry %d: %w", section, i, err)
	}

	id := namespace + ":" + name
	doc := tooldoc.DocEntry{Summary: e.Summary(), Notes: e.Explanation}
	if e.Runnable() {
		doc.Examples = []tooldoc.ToolExample{{Title: e.Summary(), Args: map[string]any{"code": e.Code}}}
	}
	if err := li.docs.RegisterDoc(id, doc); err != nil {
		return fmt.Errorf("lessonindex: document %s: %w", id, err)
	}

	li.lessons[id] = lessonRef{section: section, entry: i, data: e}
	return nil
}

// Len returns the number of indexed lessons.
func (li *Index) Len() int {
	return len(li.lessons)
}

// Search returns lessons matching query, best match first.
func (li *Index) Search(query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	summaries, err := li.idx.Search(query, limit)
	if err != nil {
		return nil, fmt.Errorf("lessonindex: search %q: %w", query, err)
	}

	hits := make([]Hit, 0, len(summaries))
	for _, s := range summaries {
		ref, ok := li.lessons[s.ID]
		if !ok {
			continue
		}
		hits = append(hits, ref.hit(s.ID))
	}
	return hits, nil
}

// Lookup returns the hit and entry for a lesson id.
func (li *Index) Lookup(id string) (Hit, catalog.Entry, error) {
	ref, ok := li.lessons[id]
	if !ok {
		return Hit{}, catalog.Entry{}, fmt.Errorf("%w: %s", ErrLessonNotFound, id)
	}
	hit := ref.hit(id)
	if doc, err := li.docs.DescribeTool(id, tooldoc.DetailSummary); err == nil && doc.Summary != "" {
		hit.Summary = doc.Summary
	}
	return hit, ref.data, nil
}

// Snippet returns the documented snippet of a runnable lesson.
func (li *Index) Snippet(id string) (string, error) {
	if _, ok := li.lessons[id]; !ok {
		return "", fmt.Errorf("%w: %s", ErrLessonNotFound, id)
	}
	examples, err := li.docs.ListExamples(id, 1)
	if err != nil {
		return "", fmt.Errorf("lessonindex: examples for %s: %w", id, err)
	}
	if len(examples) == 0 {
		return "", nil
	}
	code, _ := examples[0].Args["code"].(string)
	return code, nil
}

func (r lessonRef) hit(id string) Hit {
	return Hit{
		ID:       id,
		Section:  r.section,
		Entry:    r.entry,
		Summary:  r.data.Summary(),
		Runnable: r.data.Runnable(),
	}
}

// Slug turns a section name into an identifier made of lower-case letters,
// digits and underscores.
func Slug(name string) string {
	lower := cases.Lower(language.Und).String(name)
	var b strings.Builder
	underscore := false
	for _, r := range lower {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "_")
	if slug == "" {
		return "section"
	}
	return slug
}
