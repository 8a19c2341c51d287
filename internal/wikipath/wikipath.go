// Package wikipath normalizes parsed link locations into the wiki's path
// space: in-tree article paths, dated news posts, and files addressed
// through the repository browser.
package wikipath

import (
	"net/url"
	"path"
	"strings"

	"git.home.luguber.info/inful/wikicheck/internal/wikifs"
)

// Kind classifies where a link points after normalization.
type Kind int

const (
	// KindExternal is any URL with a scheme the checker does not recognize
	// as one of the site's own shapes. Always valid, never checked.
	KindExternal Kind = iota
	// KindFragment is a #section link into the citing document itself.
	KindFragment
	// KindArticle is an in-wiki path, absolute (/wiki/...) or relative to
	// the citing article's directory.
	KindArticle
	// KindNewsPost is a news URL on the site's own domain, mapped to the
	// news/<year>/<slug>.md convention.
	KindNewsPost
	// KindRepositoryFile is a repository-browser URL mapped to a
	// repository-relative path. The external host is case-sensitive, so
	// these are always checked byte-exact.
	KindRepositoryFile
	// KindMalformed marks a location the checker refuses to classify:
	// a scheme-less authority, an unparseable news slug, or a wiki path
	// naming a language file instead of an article directory.
	KindMalformed
)

// RepositoryPath is the resolved identity of a link target: its kind, the
// filesystem path relative to the wiki root, and the requested fragment.
type RepositoryPath struct {
	Kind     Kind
	Path     string
	Fragment string
}

// Site describes the URL shapes recognized as the wiki's own.
type Site struct {
	// Host is the wiki's public domain.
	Host string `yaml:"host"`
	// NewsPathPrefix is the URL path under which news posts are served.
	NewsPathPrefix string `yaml:"news_path_prefix"`
	// RepositoryPrefixes are the repository-browser URL prefixes that map
	// the remainder of the URL onto a repository-relative file path.
	RepositoryPrefixes []string `yaml:"repository_prefixes"`
}

// DefaultSite returns the shapes of the production wiki.
func DefaultSite() Site {
	return Site{
		Host:           "osu.ppy.sh",
		NewsPathPrefix: "/home/news/",
		RepositoryPrefixes: []string{
			"https://github.com/ppy/osu-wiki/blob/master/",
			"https://github.com/ppy/osu-wiki/tree/master/",
		},
	}
}

// Classify normalizes a parsed location against the citing article's
// directory and the site's recognized URL shapes. currentDir is the citing
// document's root-relative directory ("wiki/Beatmap" or "news/2023").
func (s Site) Classify(u *url.URL, currentDir string) RepositoryPath {
	if u == nil {
		return RepositoryPath{Kind: KindMalformed}
	}

	if u.Scheme == "http" || u.Scheme == "https" {
		if rp, ok := s.repositoryFile(u); ok {
			return rp
		}
		if u.Host == s.Host && strings.HasPrefix(u.Path, s.NewsPathPrefix) {
			return s.newsPost(u)
		}
		return RepositoryPath{Kind: KindExternal}
	}
	if u.Scheme != "" {
		// mailto, irc, or an obvious typo of a scheme. Either way the
		// target is not ours to check.
		return RepositoryPath{Kind: KindExternal}
	}
	if u.Host != "" {
		// An authority without a scheme is a typo, not a wiki path.
		return RepositoryPath{Kind: KindMalformed}
	}

	if u.Path == "" {
		return RepositoryPath{Kind: KindFragment, Fragment: u.Fragment}
	}

	rel := u.Path
	if strings.HasPrefix(rel, "/wiki/") {
		rel = strings.TrimPrefix(rel, "/")
	} else {
		rel = path.Join(currentDir, rel)
	}
	rel = path.Clean(rel)

	// Wiki links name article directories; a literal language filename is
	// a malformed link even when the file exists.
	if wikifs.IsArticleFile(path.Base(rel)) {
		return RepositoryPath{Kind: KindMalformed, Path: rel}
	}

	return RepositoryPath{Kind: KindArticle, Path: rel, Fragment: u.Fragment}
}

func (s Site) newsPost(u *url.URL) RepositoryPath {
	slug := strings.TrimPrefix(u.Path, s.NewsPathPrefix)
	slug = strings.TrimSuffix(slug, "/")
	year := wikifs.NewsYear(slug)
	if slug == "" || strings.Contains(slug, "/") || year == "" {
		return RepositoryPath{Kind: KindMalformed, Path: u.Path}
	}
	return RepositoryPath{
		Kind:     KindNewsPost,
		Path:     path.Join("news", year, slug+".md"),
		Fragment: u.Fragment,
	}
}

func (s Site) repositoryFile(u *url.URL) (RepositoryPath, bool) {
	base := u.Scheme + "://" + u.Host + u.Path
	for _, prefix := range s.RepositoryPrefixes {
		if rest, ok := strings.CutPrefix(base, prefix); ok {
			return RepositoryPath{
				Kind:     KindRepositoryFile,
				Path:     path.Clean(rest),
				Fragment: u.Fragment,
			}, true
		}
	}
	return RepositoryPath{}, false
}
