// Package report renders checker findings for humans and CI: a location, a
// short classified message, and the offending source text with the erroring
// span highlighted.
package report

import (
	"sort"

	"git.home.luguber.info/inful/wikicheck/internal/article"
	"git.home.luguber.info/inful/wikicheck/internal/linkcheck"
)

// Diagnostic is one reportable finding, self-contained enough to pinpoint
// the fix without re-reading the article.
type Diagnostic struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"` // 1-based
	Kind    string `json:"kind"`
	Message string `json:"message"`

	// Source is the raw article line; SpanStart/SpanEnd are the byte
	// offsets of the offending link within it, inclusive.
	Source    string `json:"source"`
	SpanStart int    `json:"span_start"`
	SpanEnd   int    `json:"span_end"`

	// Note carries secondary context, such as the reference definition a
	// failing reference-style link resolved through.
	Note string `json:"note,omitempty"`
}

// FromFindings flattens checker output into diagnostics ordered by line and
// column. redirectFile names the redirect table for redirect messages.
func FromFindings(a *article.Article, findings map[int][]linkcheck.Finding, redirectFile string) []Diagnostic {
	lineNumbers := make([]int, 0, len(findings))
	for lineno := range findings {
		lineNumbers = append(lineNumbers, lineno)
	}
	sort.Ints(lineNumbers)

	var diags []Diagnostic
	for _, lineno := range lineNumbers {
		for _, finding := range findings[lineno] {
			start, end := finding.Target.Span()
			d := Diagnostic{
				File:      a.Path(),
				Line:      lineno,
				Column:    start + 1,
				Kind:      linkcheck.Kind(finding.Err),
				Message:   linkcheck.Describe(finding.Err, redirectFile),
				Source:    a.Lines[lineno].Raw,
				SpanStart: start,
				SpanEnd:   end,
			}
			if ref := finding.Reference; ref != nil {
				d.Note = referenceNote(*ref)
			}
			diags = append(diags, d)
		}
	}
	return diags
}
