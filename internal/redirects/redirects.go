// Package redirects loads the single-hop rename table mapping legacy wiki
// paths to their current locations.
package redirects

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Entry is one redirect: the destination path as written (it may carry its
// own #fragment) and the source line number for diagnostics.
type Entry struct {
	Destination string
	Line        int
}

// Table maps lower-cased legacy paths to their redirect entries, making
// lookups case-insensitive. Destinations keep their original casing.
type Table map[string]Entry

// entryPattern matches one `key: value` line, either side optionally quoted.
// Lines that do not match are comments or padding and are skipped.
var entryPattern = regexp.MustCompile(`^\s*"?([^":#]+?)"?\s*:\s*"?([^"]+?)"?\s*$`)

// Load reads the redirect table line by line, preserving line numbers. Later
// entries silently overwrite earlier ones with the same key.
func Load(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening redirect table: %w", err)
	}
	defer f.Close()

	table := make(Table)
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		m := entryPattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		table[strings.ToLower(m[1])] = Entry{Destination: m[2], Line: lineno}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading redirect table: %w", err)
	}
	return table, nil
}

// Lookup resolves a wiki-root-relative path against the table.
func (t Table) Lookup(location string) (Entry, bool) {
	entry, ok := t[strings.ToLower(location)]
	return entry, ok
}
