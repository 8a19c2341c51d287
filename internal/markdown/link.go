package markdown

import (
	"net/url"
	"strings"
)

// Link is a parsed occurrence of Markdown link or image syntax on one line.
//
//	See [Difficulty Names](/wiki/Beatmap/Difficulty#naming-conventions)
//	    ^ Start                                                       ^ End
//
// Start and End are byte offsets into the line, inclusive of the Markdown
// punctuation; End addresses the closing delimiter. A leading "!" (image
// syntax) is not part of the span. Links are immutable once constructed.
type Link struct {
	Start int
	End   int

	// Title is the display text between the first bracket pair.
	Title string

	// RawLocation is the target exactly as written; Location is its parsed
	// form, nil when it is not a valid URL reference.
	RawLocation string
	Location    *url.URL

	// AltText is the optional quoted title attribute of an inline link,
	// without the surrounding quotes.
	AltText string

	// IsReference marks a [text][name] link whose target is a reference
	// definition found elsewhere in the document.
	IsReference bool
}

// Raw returns the location as written.
func (l Link) Raw() string { return l.RawLocation }

// URL returns the parsed location, or nil if it did not parse.
func (l Link) URL() *url.URL { return l.Location }

// Span returns the link's first and last byte offsets within its line.
func (l Link) Span() (start, end int) { return l.Start, l.End }

// ParseLocation parses a raw link target as a URL reference. Parsing is
// structural only; a nil result marks a location the resolver should treat
// as malformed.
func ParseLocation(raw string) *url.URL {
	u, err := url.Parse(raw)
	if err != nil {
		return nil
	}
	return u
}

type scanState int

const (
	stateIdle scanState = iota
	stateBracket
	stateInline
	stateReference
)

// FindLink returns the first link found in line at or after the from offset.
//
// The scanner is a character-level state machine: a bracketed segment with
// balanced nested brackets, followed immediately by either "(target)" with
// balanced parentheses (inline) or "[name]" (reference-style). Candidates
// whose closing delimiter never appears do not match.
func FindLink(line string, from int) (Link, bool) {
	state := stateIdle
	start := 0
	locStart := 0
	altStart := -1
	bracketDepth := 0
	parenDepth := 0

	for i := from; i < len(line); i++ {
		c := line[i]

		switch state {
		case stateIdle:
			if c == '[' {
				state = stateBracket
				bracketDepth = 1
				start = i
			}

		case stateBracket:
			if c == '[' {
				bracketDepth++
			} else if c == ']' {
				bracketDepth--
			}
			if bracketDepth != 0 {
				continue
			}
			// Bracket closed; an inline or reference target may follow.
			if i+1 >= len(line) {
				state = stateIdle
				continue
			}
			switch line[i+1] {
			case '(':
				state = stateInline
				locStart = i + 2
				altStart = -1
				parenDepth = 0
			case '[':
				state = stateReference
				locStart = i + 2
			default:
				state = stateIdle
			}

		case stateInline:
			if c == ' ' && altStart < 0 && i >= locStart && line[i-1] != '\\' {
				altStart = i
			}
			if c == '(' {
				parenDepth++
			} else if c == ')' {
				parenDepth--
			}
			if parenDepth != 0 {
				continue
			}
			end := i
			if altStart < 0 {
				altStart = end
			}
			raw := line[locStart:altStart]
			return Link{
				Start:       start,
				End:         end,
				Title:       line[start+1 : locStart-2],
				RawLocation: raw,
				Location:    ParseLocation(raw),
				AltText:     trimAltText(line[altStart:end]),
			}, true

		case stateReference:
			if c == '[' {
				bracketDepth++
			} else if c == ']' {
				bracketDepth--
			}
			if bracketDepth != 0 {
				continue
			}
			raw := line[locStart:i]
			return Link{
				Start:       start,
				End:         i,
				Title:       line[start+1 : locStart-2],
				RawLocation: raw,
				Location:    ParseLocation(raw),
				IsReference: true,
			}, true
		}
	}

	return Link{}, false
}

// FindLinks returns all non-overlapping links of the line, left to right.
func FindLinks(line string) []Link {
	var links []Link
	index := 0
	for {
		link, ok := FindLink(line, index)
		if !ok {
			return links
		}
		links = append(links, link)
		index = link.End + 1
	}
}

func trimAltText(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
