package labels

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"cplinfo/internal/xmltree"
)

// Namespace is the SMPTE ST 400 registry document namespace.
const Namespace = "http://www.smpte-ra.org/schemas/400/2012"

//go:embed smpte_ul_labels.xml
var embeddedRegistry []byte

// Registry maps Universal Label identifier strings to display names.
type Registry struct {
	entries map[string]string
}

// Load parses a registry document from r.
func Load(r io.Reader) (*Registry, error) {
	root, err := xmltree.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("load label registry: %w", err)
	}

	entries := make(map[string]string)
	for _, entry := range root.FindAll(xmltree.Name{Space: Namespace, Local: "Entry"}) {
		ul, okUL := entry.ChildText(xmltree.Name{Space: Namespace, Local: "UL"})
		name, okName := entry.ChildText(xmltree.Name{Space: Namespace, Local: "Name"})
		if !okUL || !okName {
			continue
		}
		ul = strings.TrimSpace(ul)
		if ul == "" {
			continue
		}
		entries[ul] = name
	}

	return &Registry{entries: entries}, nil
}

// LoadFile parses a registry document from disk.
func LoadFile(path string) (*Registry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open label registry: %w", err)
	}
	defer file.Close()
	return Load(file)
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	reg, err := Load(strings.NewReader(string(embeddedRegistry)))
	if err != nil {
		// The embedded document is compiled in; a parse failure is a build defect.
		panic(fmt.Sprintf("labels: embedded registry invalid: %v", err))
	}
	return reg
})

// Default returns the registry built from the embedded label set.
func Default() *Registry {
	return defaultRegistry()
}

// Lookup resolves a UL identifier to its display name. The second return
// value reports whether the identifier is known.
func (r *Registry) Lookup(ul string) (string, bool) {
	if r == nil {
		return "", false
	}
	label, ok := r.entries[strings.TrimSpace(ul)]
	return label, ok
}

// Len reports the number of registry entries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}
