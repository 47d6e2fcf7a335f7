package catalog

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Entry is one leaf major in the catalog index, carrying the category and
// subject names that were in effect at its position in the source file.
type Entry struct {
	Code     string
	Name     string
	Category string
	Subject  string
}

// Index is the in-memory major catalog, parsed once at startup from the flat
// text file and shared read-only across requests. Reload swaps the contents
// atomically if the source file changes.
type Index struct {
	path string

	mu      sync.RWMutex
	entries map[string]Entry
	// leaves preserves file order so candidate selection is stable
	// across identical files.
	leaves []Entry
}

// NewIndex parses the catalog file at path. An unreadable file is an error;
// callers should treat it as fatal at startup.
func NewIndex(path string) (*Index, error) {
	idx := &Index{path: path}
	if err := idx.Reload(); err != nil {
		return nil, err
	}
	return idx, nil
}

// Reload re-parses the source file and swaps the index contents.
func (idx *Index) Reload() error {
	entries, leaves, err := parseFile(idx.path)
	if err != nil {
		return err
	}

	idx.mu.Lock()
	idx.entries = entries
	idx.leaves = leaves
	idx.mu.Unlock()
	return nil
}

// Get returns the leaf entry for code, if present.
func (idx *Index) Get(code string) (Entry, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	e, ok := idx.entries[code]
	return e, ok
}

// Leaves returns all leaf majors in file order. The returned slice must not
// be mutated.
func (idx *Index) Leaves() []Entry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.leaves
}

// Len returns the number of leaf majors in the index.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// parseFile streams the catalog file line by line. Each line is
// "<code> <name...>"; a 2-character code opens a category, a 4-character code
// opens a subject, and codes of 6+ characters are leaf majors stamped with
// the currently open category and subject. Blank lines are skipped, as are
// codes of any other length.
func parseFile(path string) (map[string]Entry, []Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	entries := make(map[string]Entry)
	var leaves []Entry
	var currentCategory, currentSubject string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		code := parts[0]
		name := strings.Join(parts[1:], " ")

		switch {
		case len(code) == 2:
			currentCategory = name
		case len(code) == 4:
			currentSubject = name
		case len(code) >= 6:
			e := Entry{
				Code:     code,
				Name:     name,
				Category: currentCategory,
				Subject:  currentSubject,
			}
			entries[code] = e
			leaves = append(leaves, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("read catalog file: %w", err)
	}

	return entries, leaves, nil
}
