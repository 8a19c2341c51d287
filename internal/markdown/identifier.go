package markdown

import (
	"regexp"
	"strings"
)

// Explicit anchor tags, which take priority over any slug derived from
// heading text and may appear on non-heading lines:
//
//	## How to play better {#get-good}
//	A regular line, but with an anchor. {id=tag}
var (
	anchorHashPattern = regexp.MustCompile(`\{#([^{}\s]+)\}`)
	anchorIDPattern   = regexp.MustCompile(`\{id=([^{}\s]+)\}`)
)

// ExtractIdentifier derives the anchor a Markdown renderer assigns to a line:
// either an explicit {#id} / {id=...} tag, or the slug of an ATX heading of
// level 2 and below (document titles produce no anchors). pos is the byte
// offset of the identifier source within the line, for comment suppression.
func ExtractIdentifier(line string) (identifier string, pos int, ok bool) {
	line = strings.TrimRight(line, "\r\n")

	for _, pattern := range []*regexp.Regexp{anchorHashPattern, anchorIDPattern} {
		if m := pattern.FindStringSubmatchIndex(line); m != nil {
			return line[m[2]:m[3]], m[2], true
		}
	}

	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level < 2 || level > 6 || level >= len(line) || line[level] != ' ' {
		return "", 0, false
	}

	slug := slugify(line[level+1:])
	if slug == "" {
		return "", 0, false
	}
	return slug, 0, true
}

// slugify reproduces the renderer's heading-to-anchor derivation: links keep
// only their display text, images vanish, backslash escapes collapse, the
// result is lower-cased and internal whitespace runs become single hyphens.
// Letters, digits and punctuation survive verbatim.
func slugify(text string) string {
	links := FindLinks(text)
	for i := len(links) - 1; i >= 0; i-- {
		l := links[i]
		start := l.Start
		replacement := l.Title
		if start > 0 && text[start-1] == '!' {
			start--
			replacement = ""
		}
		text = text[:start] + replacement + text[l.End+1:]
	}

	text = unescape(text)
	text = strings.ToLower(text)
	return strings.Join(strings.Fields(text), "-")
}

// unescape resolves backslash escapes the way the renderer does: a backslash
// before ASCII punctuation drops out, a doubled backslash collapses to one,
// and a backslash before anything else stays literal.
func unescape(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] != '\\' || i+1 >= len(text) {
			b.WriteByte(text[i])
			continue
		}
		next := text[i+1]
		if isASCIIPunctuation(next) {
			b.WriteByte(next)
			i++
			continue
		}
		b.WriteByte('\\')
	}
	return b.String()
}

func isASCIIPunctuation(c byte) bool {
	switch {
	case c >= '!' && c <= '/':
		return true
	case c >= ':' && c <= '@':
		return true
	case c >= '[' && c <= '`':
		return true
	case c >= '{' && c <= '~':
		return true
	}
	return false
}
