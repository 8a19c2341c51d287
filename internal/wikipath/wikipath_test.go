package wikipath

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestClassify_ExternalLinks(t *testing.T) {
	site := DefaultSite()
	for _, raw := range []string{
		"https://example.com/page",
		"http://example.com",
		"https://osu.ppy.sh/community/forums",
		"mailto:accounts@example.com",
		"irc://cho.ppy.sh",
	} {
		rp := site.Classify(mustParse(t, raw), "wiki/Article")
		require.Equal(t, KindExternal, rp.Kind, raw)
	}
}

func TestClassify_SchemelessAuthorityIsMalformed(t *testing.T) {
	rp := DefaultSite().Classify(mustParse(t, "//example.com/page"), "wiki/Article")
	require.Equal(t, KindMalformed, rp.Kind)
}

func TestClassify_NilURLIsMalformed(t *testing.T) {
	rp := DefaultSite().Classify(nil, "wiki/Article")
	require.Equal(t, KindMalformed, rp.Kind)
}

func TestClassify_Fragment(t *testing.T) {
	rp := DefaultSite().Classify(mustParse(t, "#rules"), "wiki/Article")
	require.Equal(t, KindFragment, rp.Kind)
	require.Equal(t, "rules", rp.Fragment)
}

func TestClassify_AbsoluteWikiPath(t *testing.T) {
	rp := DefaultSite().Classify(mustParse(t, "/wiki/Beatmap/Difficulty#naming"), "wiki/Article")
	require.Equal(t, KindArticle, rp.Kind)
	require.Equal(t, "wiki/Beatmap/Difficulty", rp.Path)
	require.Equal(t, "naming", rp.Fragment)
}

func TestClassify_RelativeWikiPath(t *testing.T) {
	rp := DefaultSite().Classify(mustParse(t, "Difficulty"), "wiki/Beatmap")
	require.Equal(t, KindArticle, rp.Kind)
	require.Equal(t, "wiki/Beatmap/Difficulty", rp.Path)

	rp = DefaultSite().Classify(mustParse(t, "../Rules"), "wiki/Beatmap")
	require.Equal(t, KindArticle, rp.Kind)
	require.Equal(t, "wiki/Rules", rp.Path)
}

func TestClassify_LanguageFileIsMalformed(t *testing.T) {
	// Wiki links must name a directory, not a translation file.
	rp := DefaultSite().Classify(mustParse(t, "/wiki/Beatmap/en.md"), "wiki/Article")
	require.Equal(t, KindMalformed, rp.Kind)

	rp = DefaultSite().Classify(mustParse(t, "Difficulty/pt-br.md"), "wiki/Beatmap")
	require.Equal(t, KindMalformed, rp.Kind)
}

func TestClassify_NewsPost(t *testing.T) {
	site := DefaultSite()

	rp := site.Classify(mustParse(t, "https://osu.ppy.sh/home/news/2023-01-01-new-year"), "wiki/Article")
	require.Equal(t, KindNewsPost, rp.Kind)
	require.Equal(t, "news/2023/2023-01-01-new-year.md", rp.Path)

	rp = site.Classify(mustParse(t, "https://osu.ppy.sh/home/news/2023-01-01-new-year#prizes"), "wiki/Article")
	require.Equal(t, KindNewsPost, rp.Kind)
	require.Equal(t, "prizes", rp.Fragment)

	// A slug without a year prefix cannot map to a file.
	rp = site.Classify(mustParse(t, "https://osu.ppy.sh/home/news/new-year"), "wiki/Article")
	require.Equal(t, KindMalformed, rp.Kind)
}

func TestClassify_RepositoryFile(t *testing.T) {
	site := DefaultSite()

	rp := site.Classify(mustParse(t, "https://github.com/ppy/osu-wiki/blob/master/wiki/CONTRIBUTING.md"), "wiki/Article")
	require.Equal(t, KindRepositoryFile, rp.Kind)
	require.Equal(t, "wiki/CONTRIBUTING.md", rp.Path)

	rp = site.Classify(mustParse(t, "https://github.com/ppy/osu-wiki/tree/master/meta"), "wiki/Article")
	require.Equal(t, KindRepositoryFile, rp.Kind)
	require.Equal(t, "meta", rp.Path)

	// Other paths on the forge are plain external links.
	rp = site.Classify(mustParse(t, "https://github.com/ppy/osu-wiki/pulls"), "wiki/Article")
	require.Equal(t, KindExternal, rp.Kind)
}
