package markdown

import "sort"

// CodeBlock is a Markdown code region within a single line:
//
//	inline:    `text` or ``text with a ` inside``
//	fenced:    ``` followed by anything until the closing ```
//
// TagLen is the backtick run length of the delimiter. A fenced block that
// stays open past the end of the line has End = Unbounded; the line closing
// it has Start = Unbounded. Links inside code blocks are not checked.
type CodeBlock struct {
	Start  int
	End    int
	TagLen int
}

// Multiline reports whether the block opens a fence that continues past the
// end of its line.
func (b CodeBlock) Multiline() bool {
	return b.End == Unbounded && b.TagLen == 3
}

func (b CodeBlock) contains(other CodeBlock) bool {
	return b.Start < other.Start && b.End > other.End && b.TagLen > other.TagLen
}

type codeTag struct {
	start int
	len   int
}

// ScanCodeBlocks finds the code blocks of a single line.
//
// inMultiline tells the scanner the line starts inside an open fence; the
// returned flag reports whether a fence is open at the end of the line. Both
// are threaded between successive calls by the caller, keeping the scan of
// one line a pure function.
//
// An unmatched triple-backtick run opens a fenced block that takes priority
// over any inline blocks found before it, mirroring the renderer. When all
// runs on the line are balanced, blocks nested inside a wider fence are
// dropped: only maximal spans remain.
func ScanCodeBlocks(line string, inMultiline bool) ([]CodeBlock, bool) {
	var blocks []CodeBlock
	var stack []codeTag
	if inMultiline {
		stack = append(stack, codeTag{start: Unbounded, len: 3})
	}

	for i := 0; i < len(line); {
		if line[i] != '`' {
			i++
			continue
		}
		n := 0
		for i+n < len(line) && line[i+n] == '`' {
			n++
		}
		if len(stack) > 0 && stack[len(stack)-1].len == n {
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			blocks = append(blocks, CodeBlock{Start: open.start, End: i + open.len - 1, TagLen: open.len})
		} else {
			stack = append(stack, codeTag{start: i, len: n})
		}
		i += n
	}

	if len(stack) > 0 {
		open := stack[0]
		if open.len == 3 {
			// An open fence takes priority over everything before it.
			return []CodeBlock{{Start: open.start, End: Unbounded, TagLen: 3}}, true
		}
		// An unclosed inline span; a Markdown linter reports these, not us.
		return blocks, len(blocks) > 0 && blocks[0].Multiline()
	}

	// Larger blocks consume the smaller ones they enclose.
	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].Start != blocks[j].Start {
			return blocks[i].Start < blocks[j].Start
		}
		return blocks[i].End < blocks[j].End
	})
	var filtered []CodeBlock
	for i := 0; i < len(blocks); {
		filtered = append(filtered, blocks[i])
		i++
		for i < len(blocks) && filtered[len(filtered)-1].contains(blocks[i]) {
			i++
		}
	}
	return filtered, len(filtered) > 0 && filtered[0].Multiline()
}

// InCodeBlock reports whether a link starting at index would be rendered as
// code. Index positions strictly inside a block count, as does anything at or
// after the opening fence of a block that continues past the line.
func InCodeBlock(index int, blocks []CodeBlock) bool {
	for _, b := range blocks {
		start := b.Start
		if start == Unbounded {
			start = 0
		}
		switch {
		case b.Multiline() && index >= b.Start:
			return true
		case b.Start == Unbounded && index < b.End:
			return true
		case start < index && index < b.End:
			return true
		}
	}
	return false
}
