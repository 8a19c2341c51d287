package markdown

import "strings"

// Unbounded marks a comment or code block boundary that lies outside the
// current line: the span opened on an earlier line or closes on a later one.
const Unbounded = -1

// Comment is an HTML comment span within a single line.
//
// Content inside comments is discarded by the article parser. Multi-line
// comments set Start and/or End to Unbounded:
//
//	continuing from a previous line -->        Start = Unbounded
//	<!-- continuing to subsequent lines        End = Unbounded
//	whole line inside a comment                both Unbounded
type Comment struct {
	Start int
	End   int
}

// ScanComments finds all <!-- --> delimiter pairs in line, left to right.
//
// inMultiline tells the scanner that the line starts inside a comment opened
// on an earlier line; no new opening delimiter is sought until that comment
// closes. The returned flag reports whether a comment remains open at the end
// of the line, to be threaded into the next call by the caller.
func ScanComments(line string, inMultiline bool) ([]Comment, bool) {
	var comments []Comment
	index := 0

	for {
		start := Unbounded
		if !inMultiline {
			rel := strings.Index(line[index:], "<!--")
			if rel < 0 {
				return comments, false
			}
			start = index + rel
		}

		searchFrom := index
		if start != Unbounded {
			searchFrom = start
		}
		end := strings.Index(line[searchFrom:], "-->")
		if end >= 0 {
			end += searchFrom
			comments = append(comments, Comment{Start: start, End: end + 2})
			inMultiline = false
			index = end + 3
			continue
		}

		if start == Unbounded {
			// No opening or closing delimiter: the whole line is commented.
			comments = append(comments, Comment{Start: Unbounded, End: Unbounded})
			return comments, true
		}
		// Unmatched opening delimiter continues to subsequent lines.
		comments = append(comments, Comment{Start: start, End: Unbounded})
		return comments, true
	}
}

// InComment reports whether the character at index lies inside any of the
// comment spans. Unbounded boundaries extend to the line edges.
func InComment(index int, comments []Comment) bool {
	for _, c := range comments {
		left := c.Start
		right := c.End
		if left == Unbounded {
			left = 0
		}
		if right == Unbounded {
			right = int(^uint(0) >> 1)
		}
		if index >= left && index <= right {
			return true
		}
	}
	return false
}
