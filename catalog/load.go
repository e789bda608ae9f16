package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Errors returned by the loaders.
var (
	// ErrInvalidCatalog indicates a document that is not a mapping of section
	// names to entry lists.
	ErrInvalidCatalog = errors.New("invalid catalog")

	// ErrDuplicateSection indicates two sections with the same name.
	ErrDuplicateSection = errors.New("duplicate section name")
)

//go:embed lessons.json
var defaultDocument []byte

// Default returns the catalog bundled with the playground.
func Default() *Catalog {
	c, err := Parse(defaultDocument)
	if err != nil {
		panic(fmt.Sprintf("catalog: bundled lessons are invalid: %v", err))
	}
	return c
}

// LoadFile reads and parses a catalog document from path.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	return Parse(data)
}

// Load reads and parses a catalog document from r.
func Load(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("catalog: read: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON or YAML catalog document, keeping section order.
func Parse(data []byte) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty document", ErrInvalidCatalog)
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must map section names to entries (line %d)",
			ErrInvalidCatalog, root.Line)
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("%w: no sections", ErrInvalidCatalog)
	}

	sections := make([]Section, 0, len(root.Content)/2)
	seen := make(map[string]int, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		name := key.Value
		if key.Kind != yaml.ScalarNode || name == "" {
			return nil, fmt.Errorf("%w: section name must be a non-empty string (line %d)",
				ErrInvalidCatalog, key.Line)
		}
		if first, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q (lines %d and %d)", ErrDuplicateSection, name, first, key.Line)
		}
		seen[name] = key.Line

		entries, err := decodeEntries(name, value)
		if err != nil {
			return nil, err
		}
		sections = append(sections, Section{Name: name, Entries: entries})
	}
	return newCatalog(sections), nil
}

func decodeEntries(section string, node *yaml.Node) ([]Entry, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: section %q must be a list of entries (line %d)",
			ErrInvalidCatalog, section, node.Line)
	}

	entries := make([]Entry, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: entry in section %q must be a mapping (line %d)",
				ErrInvalidCatalog, section, item.Line)
		}
		var e Entry
		if err := item.Decode(&e); err != nil {
			return nil, fmt.Errorf("%w: entry in section %q: %v", ErrInvalidCatalog, section, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
