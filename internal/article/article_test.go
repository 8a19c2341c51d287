package article

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeArticle(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestParse_ReadArticle(t *testing.T) {
	root := t.TempDir()
	writeArticle(t, root, "wiki/Article/en.md",
		"---\n"+
			"stub: true\n"+
			"tags:\n"+
			"  - k1\n"+
			"  - m1\n"+
			"---\n"+
			"\n"+
			"# An article\n"+
			"\n"+
			"Links! [Links](https://example.com)!\n"+
			"\n"+
			"Links, [zwo](/wiki/Article_two), [drei](Nested_article), [vier][vier_ref]!\n"+
			"\n"+
			"[Links][links_ref]!\n"+
			"\n"+
			"[links_ref]: https://example.com\n"+
			"\n"+
			"## List of references\n"+
			"\n"+
			"[vier_ref]: /wiki/Article_three \"Links!\"\n")

	a, err := Parse(root, "wiki/Article/en.md")
	require.NoError(t, err)

	require.Equal(t, "wiki/Article", a.Directory)
	require.Equal(t, "en.md", a.Filename)
	require.Equal(t, "wiki/Article/en.md", a.Path())

	require.Equal(t, map[string]int{"list-of-references": 18}, a.Identifiers)

	require.Len(t, a.References, 2)
	require.Equal(t, 16, a.References["links_ref"].Line)
	require.Equal(t, "https://example.com", a.References["links_ref"].RawLocation)
	require.Equal(t, 20, a.References["vier_ref"].Line)
	require.Equal(t, "/wiki/Article_three", a.References["vier_ref"].RawLocation)
	require.Equal(t, "Links!", a.References["vier_ref"].AltText)

	require.Equal(t, true, a.FrontMatter["stub"])
	require.Equal(t, []any{"k1", "m1"}, a.FrontMatter["tags"])

	// Link-bearing lines plus reference definition lines are retained.
	require.ElementsMatch(t, []int{10, 12, 14, 16, 20}, lineNumbers(a))
	require.Equal(t, "Links! [Links](https://example.com)!", a.Lines[10].Raw)
	require.Len(t, a.Lines[12].Links, 3)
	require.True(t, a.Lines[14].Links[0].IsReference)
}

func lineNumbers(a *Article) []int {
	nums := make([]int, 0, len(a.Lines))
	for n := range a.Lines {
		nums = append(nums, n)
	}
	return nums
}

func TestParse_CommentsSuppressLinksAndIdentifiers(t *testing.T) {
	root := t.TempDir()
	writeArticle(t, root, "wiki/Article/en.md",
		"# An article\n"+
			"\n"+
			"<!-- rewrite this? do we even need it?\n"+
			"    Hear the poetry:\n"+
			"-->\n"+
			"\n"+
			"Roses are [red](/wiki/Red),\n"+
			"Violets are [blue][blue_ref] ![](img/violet.png),\n"+
			"I've written a program\n"+
			"<!-- Which didn't have [a clue](/wiki/Clue) -->\n"+
			"But neither should you.\n"+
			"\n"+
			"<!--\n"+
			"Multiline [comments](/wiki/Comment)?\n"+
			"In my [test](/wiki/Not_a_test)?\n"+
			"\n"+
			"[blue_ref]: /wiki/Blue\n"+
			"A wild {id=identifier}\n"+
			"-->\n"+
			"\n"+
			"<!-- Another wild {#identifier} -->\n")

	a, err := Parse(root, "wiki/Article/en.md")
	require.NoError(t, err)

	require.Empty(t, a.References, "commented references are also skipped")
	require.Empty(t, a.FrontMatter)
	require.Empty(t, a.Identifiers)

	var locations []string
	for _, line := range a.Lines {
		for _, link := range line.Links {
			locations = append(locations, link.RawLocation)
		}
	}
	require.ElementsMatch(t, []string{"/wiki/Red", "img/violet.png", "blue_ref"}, locations)
}

func TestParse_RepeatingHeadings(t *testing.T) {
	root := t.TempDir()
	writeArticle(t, root, "wiki/Ranking_criteria/en.md",
		"# Ranking criteria\n"+
			"\n"+
			"## Section\n"+
			"\n"+
			"## Section\n"+
			"\n"+
			"## Something else\n"+
			"\n"+
			"## Random\n"+
			"\n"+
			"<!-- A {#random} comment -->\n"+
			"\n"+
			"## Tricky section {#random}\n"+
			"\n"+
			"## Section\n")

	a, err := Parse(root, "wiki/Ranking_criteria/en.md")
	require.NoError(t, err)

	require.Equal(t, map[string]int{
		"section":        3,
		"section.1":      5,
		"something-else": 7,
		"random":         9,
		"random.1":       13,
		"section.2":      15,
	}, a.Identifiers)
}

func TestParse_IgnoresCommentedLinks(t *testing.T) {
	root := t.TempDir()
	writeArticle(t, root, "wiki/Comments/en.md",
		"# Comments\n"+
			"\n"+
			"<!-- Don't mention [comments](/wiki/HTML#comment). -->\n"+
			"\n"+
			"<!-- Don't mention the [comments](/wiki/HTML#comment) at all.\n"+
			"    Yes, even if they span across several [lines](/wiki/Power_line).\n"+
			"    Please be [silent](/wiki/Silence) about that, okay? --> [Test](/wiki/Test)\n"+
			"\n"+
			"There is [no](/wiki/No) support<!-- for the [comments](/wiki/HTML#comment) --> on the wiki.\n")

	a, err := Parse(root, "wiki/Comments/en.md")
	require.NoError(t, err)
	require.ElementsMatch(t, []int{7, 9}, lineNumbers(a))

	require.Len(t, a.Lines[7].Links, 1)
	require.Equal(t, "/wiki/Test", a.Lines[7].Links[0].RawLocation)

	require.Len(t, a.Lines[9].Links, 1)
	require.Equal(t, "/wiki/No", a.Lines[9].Links[0].RawLocation)
}

func TestParse_IgnoresCodeBlocks(t *testing.T) {
	root := t.TempDir()
	writeArticle(t, root, "wiki/Code_blocks/en.md",
		"# Code blocks\n"+
			"\n"+
			"## Examples\n"+
			"\n"+
			"`[Inline](/wiki/Inline)` | `[b][i]Inline[/i][/b]`\n"+
			"\n"+
			"`` `[Also inline](/wiki/Also_inline)` ``\n"+
			"\n"+
			"Let's take a [break](/wiki/Gameplay/Break)!\n"+
			"\n"+
			"``Some`` [fun stuff](/wiki/Fun_stuff) ``here``.\n"+
			"\n"+
			"```\n"+
			"[Multiline](/wiki/Multiline)\n"+
			"[b][i]No[/i][/b]\n"+
			"```\n"+
			"\n"+
			"```markdown\n"+
			"[Multiline with syntax highlighting](/wiki/Multiline#syntax-highlighting)\n"+
			"[wow][wow_ref]\n"+
			"\n"+
			"[wow_ref]: /wiki/Wow\n"+
			"```\n")

	a, err := Parse(root, "wiki/Code_blocks/en.md")
	require.NoError(t, err)
	require.ElementsMatch(t, []int{9, 11}, lineNumbers(a))
	require.Empty(t, a.References, "fenced references are skipped")

	require.Len(t, a.Lines[9].Links, 1)
	require.Equal(t, "/wiki/Gameplay/Break", a.Lines[9].Links[0].RawLocation)

	require.Len(t, a.Lines[11].Links, 1)
	require.Equal(t, "/wiki/Fun_stuff", a.Lines[11].Links[0].RawLocation)
}

func TestParse_SitemapLinksNeverRecorded(t *testing.T) {
	root := t.TempDir()
	writeArticle(t, root, "wiki/Article/en.md",
		"# Article\n"+
			"\n"+
			"See the [sitemap](/wiki/Sitemap) and [rules](/wiki/Rules).\n")

	a, err := Parse(root, "wiki/Article/en.md")
	require.NoError(t, err)
	require.Len(t, a.Lines[3].Links, 1)
	require.Equal(t, "/wiki/Rules", a.Lines[3].Links[0].RawLocation)
}

func TestParse_MalformedFrontMatterFails(t *testing.T) {
	root := t.TempDir()
	writeArticle(t, root, "wiki/Article/en.md", "---\nkey: value\n# No closing delimiter\n")

	_, err := Parse(root, "wiki/Article/en.md")
	require.Error(t, err)
}
