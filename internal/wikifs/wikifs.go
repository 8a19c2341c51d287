// Package wikifs captures the filesystem layout convention of the wiki: a
// wiki/ tree of per-article directories holding one Markdown file per
// language, and a news/ tree of dated posts under per-year directories.
package wikifs

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Original is the canonical language file every article directory holds.
const Original = "en.md"

// IsArticleFile reports whether name is a per-language article filename:
// a two-letter code, a three-letter code, or language-REGION ("pt-br"),
// followed by ".md". The code must parse as a well-formed language tag.
func IsArticleFile(name string) bool {
	if !strings.HasSuffix(name, ".md") {
		return false
	}
	code := strings.TrimSuffix(name, ".md")
	switch len(code) {
	case 2, 3:
	case 5:
		if code[2] != '-' {
			return false
		}
	default:
		return false
	}
	_, err := language.Parse(code)
	return err == nil
}

// IsOriginal reports whether the path names an English original.
func IsOriginal(p string) bool {
	return path.Base(filepath.ToSlash(p)) == Original
}

// IsTranslation reports whether the path names a non-English article file.
func IsTranslation(p string) bool {
	name := path.Base(filepath.ToSlash(p))
	return name != Original && IsArticleFile(name)
}

// IsNewsPost reports whether the path names a dated news post.
func IsNewsPost(p string) bool {
	p = filepath.ToSlash(p)
	return strings.HasPrefix(path.Dir(p), "news") && strings.HasSuffix(p, ".md")
}

// NewsYear extracts the YYYY year prefix of a news post slug, "" if absent.
func NewsYear(slug string) string {
	if len(slug) < 5 || slug[4] != '-' {
		return ""
	}
	for _, c := range slug[:4] {
		if c < '0' || c > '9' {
			return ""
		}
	}
	return slug[:4]
}

// LanguageName returns the human-readable name of an article filename's
// language code, or "" when it has none.
func LanguageName(name string) string {
	code := strings.TrimSuffix(name, ".md")
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	return display.English.Languages().Name(tag)
}

// Tree is a one-pass snapshot of every file and directory under the wiki
// root, indexed by lower-cased path. It answers existence queries in both
// case-sensitive and case-insensitive modes without further directory
// listings, which OS-level checks cannot do portably.
type Tree struct {
	root  string
	paths map[string]string
}

// NewTree walks root once and records every path below it. Hidden entries
// (".git" and friends) are skipped.
func NewTree(root string) (*Tree, error) {
	t := &Tree{root: root, paths: make(map[string]string)}

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && strings.HasPrefix(d.Name(), ".") && p != root {
			return filepath.SkipDir
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		t.paths[strings.ToLower(rel)] = rel
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking wiki root %s: %w", root, err)
	}
	return t, nil
}

// Root returns the directory the tree was built from.
func (t *Tree) Root() string { return t.root }

// Exists reports whether the slash-separated root-relative path exists.
// In case-insensitive mode a path that differs from the real entry only in
// casing still counts, which catches casing typos cheaply.
func (t *Tree) Exists(rel string, caseSensitive bool) bool {
	canonical, ok := t.paths[strings.ToLower(path.Clean(rel))]
	if !ok {
		return false
	}
	if caseSensitive {
		return canonical == path.Clean(rel)
	}
	return true
}

// Canonical returns the real casing of a path, looked up case-insensitively.
func (t *Tree) Canonical(rel string) (string, bool) {
	canonical, ok := t.paths[strings.ToLower(path.Clean(rel))]
	return canonical, ok
}

// Articles lists every per-language article file under wiki/, sorted.
func (t *Tree) Articles() []string {
	return t.list(func(p string) bool {
		return strings.HasPrefix(p, "wiki/") && IsArticleFile(path.Base(p))
	})
}

// NewsPosts lists every dated post under news/, sorted.
func (t *Tree) NewsPosts() []string {
	return t.list(IsNewsPost)
}

// Translations lists every non-English article file under wiki/, sorted.
func (t *Tree) Translations() []string {
	return t.list(func(p string) bool {
		return strings.HasPrefix(p, "wiki/") && IsTranslation(p)
	})
}

func (t *Tree) list(keep func(string) bool) []string {
	var out []string
	for _, p := range t.paths {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
