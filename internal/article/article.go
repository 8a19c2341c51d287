// Package article builds the in-memory model of a wiki document: the lines
// that carry links or reference definitions, the reference table, the anchor
// identifiers the document exposes, and its front matter.
package article

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/wikicheck/internal/frontmatter"
	"git.home.luguber.info/inful/wikicheck/internal/markdown"
)

// sitemapLocation is never checked or even recorded: the sitemap page links
// to everything and is maintained separately.
const sitemapLocation = "/wiki/Sitemap"

// Line is a cached article line: the raw text plus the links found on it.
// Links inside comments or code are already discarded.
type Line struct {
	Raw   string
	Links []markdown.Link
}

// Article is the unit of link resolution. Only lines bearing at least one
// link or reference definition are retained; everything else is discarded
// during the single parsing pass to bound memory. Articles are immutable
// once built and are cached across resolution calls within a checking run.
type Article struct {
	Directory string
	Filename  string

	Lines       map[int]Line
	References  map[string]markdown.Reference
	Identifiers map[string]int
	FrontMatter frontmatter.Fields
}

// Path returns the slash-separated file path the article was parsed from.
func (a *Article) Path() string {
	return path.Join(a.Directory, a.Filename)
}

// Parse reads an article in one top-to-bottom pass, extracting links,
// identifiers and references as it goes. Anything inside <!-- HTML comments -->
// or code blocks, single-line or multi-line, is skipped.
//
// root is the directory holding the wiki tree; rel is the article's
// slash-separated path below it ("wiki/Beatmap/en.md"). All paths the model
// exposes stay relative to root so that resolution never depends on the
// process working directory.
func Parse(root, rel string) (*Article, error) {
	rel = filepath.ToSlash(rel)
	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, fmt.Errorf("reading article: %w", err)
	}

	fm, err := frontmatter.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing front matter of %s: %w", rel, err)
	}

	a := &Article{
		Directory:   path.Dir(rel),
		Filename:    path.Base(rel),
		Lines:       make(map[int]Line),
		References:  make(map[string]markdown.Reference),
		Identifiers: make(map[string]int),
		FrontMatter: fm,
	}

	inComment := false
	inCode := false
	slugCount := make(map[string]int)

	for i, raw := range strings.Split(string(content), "\n") {
		lineno := i + 1
		line := strings.TrimRight(raw, "\r")

		comments, nextInComment := markdown.ScanComments(line, inComment)
		blocks, nextInCode := markdown.ScanCodeBlocks(line, inCode)
		inComment, inCode = nextInComment, nextInCode

		suppressed := func(index int) bool {
			return markdown.InComment(index, comments) || markdown.InCodeBlock(index, blocks)
		}

		var links []markdown.Link
		for _, link := range markdown.FindLinks(line) {
			if link.RawLocation == sitemapLocation || suppressed(link.Start) {
				continue
			}
			links = append(links, link)
		}

		if slug, pos, ok := markdown.ExtractIdentifier(line); ok && !suppressed(pos) {
			slugCount[slug]++
			if _, dup := a.Identifiers[slug]; dup {
				slug = fmt.Sprintf("%s.%d", slug, slugCount[slug]-1)
			}
			a.Identifiers[slug] = lineno
		}

		isReference := false
		if strings.HasPrefix(line, "[") && !suppressed(0) {
			if ref, ok := markdown.ExtractReference(line, lineno); ok {
				a.References[ref.Name] = ref
				isReference = true
			}
		}

		if len(links) > 0 || isReference {
			a.Lines[lineno] = Line{Raw: line, Links: links}
		}
	}

	return a, nil
}
