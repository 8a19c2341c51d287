package linkcheck

import (
	"sort"

	"git.home.luguber.info/inful/wikicheck/internal/article"
)

// CheckArticle resolves every link of every cached line, plus every
// reference definition in its own right, and returns the findings grouped by
// line number, left to right within a line.
//
// The input article is never mutated. The shared cache may gain newly parsed
// target articles as a side effect, which is deliberate: callers sharing one
// cache across a run avoid re-parsing documents visited as link targets.
func (e *Engine) CheckArticle(a *article.Article) (map[int][]Finding, error) {
	findings := make(map[int][]Finding)

	lineNumbers := make([]int, 0, len(a.Lines))
	for lineno := range a.Lines {
		lineNumbers = append(lineNumbers, lineno)
	}
	sort.Ints(lineNumbers)

	for _, lineno := range lineNumbers {
		for _, link := range a.Lines[lineno].Links {
			finding, err := e.Resolve(a, link)
			if err != nil {
				return nil, err
			}
			if finding != nil {
				findings[lineno] = append(findings[lineno], *finding)
			}
		}
	}

	// Definitions are targets too: a dead definition is broken even when
	// no link currently uses it.
	names := make([]string, 0, len(a.References))
	for name := range a.References {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return a.References[names[i]].Line < a.References[names[j]].Line
	})

	for _, name := range names {
		ref := a.References[name]
		finding, err := e.Resolve(a, ref)
		if err != nil {
			return nil, err
		}
		if finding != nil {
			findings[ref.Line] = append(findings[ref.Line], *finding)
		}
	}

	return findings, nil
}
