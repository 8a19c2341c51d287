package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// rendererSeesLink parses the source with goldmark and reports whether any
// link or image node survives, i.e. whether the renderer treats the link
// syntax as live rather than as code or literal text.
func rendererSeesLink(t *testing.T, source string) bool {
	t.Helper()
	doc := goldmark.New().Parser().Parse(gmtext.NewReader([]byte(source)))

	found := false
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if n.Kind() == ast.KindLink || n.Kind() == ast.KindImage {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return found
}

// scannerSeesLink runs our line scanners over the source and reports whether
// any link lands outside code blocks.
func scannerSeesLink(source string) bool {
	inCode := false
	for _, line := range strings.Split(source, "\n") {
		var blocks []CodeBlock
		blocks, inCode = ScanCodeBlocks(line, inCode)
		for _, link := range FindLinks(line) {
			if !InCodeBlock(link.Start, blocks) {
				return true
			}
		}
	}
	return false
}

// The scanners must agree with the renderer's notion of "this text is code"
// without running the renderer in production.
func TestScannerAgreesWithRenderer(t *testing.T) {
	for _, tc := range []struct {
		name   string
		source string
	}{
		{"plain link", "An [example](/wiki/Example)."},
		{"image", "Look: ![icon](/wiki/img/icon.png)"},
		{"inline code", "`[example](/wiki/Example)`"},
		{"wide inline code", "`` `[example](/wiki/Example)` ``"},
		{"link after code", "`code` then [example](/wiki/Example)"},
		{"fenced block", "```\n[example](/wiki/Example)\n```"},
		{"fenced block with info string", "```markdown\n[example](/wiki/Example)\n```\n"},
		{"link after closed fence", "```\ncode\n```\n\n[example](/wiki/Example)"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t,
				rendererSeesLink(t, tc.source),
				scannerSeesLink(tc.source),
				"scanner and renderer disagree on: %s", tc.source)
		})
	}
}
