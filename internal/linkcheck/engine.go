// Package linkcheck resolves the links of parsed articles against the
// filesystem, the redirect table, and the anchor indexes of their targets,
// and reports every link that cannot be resolved.
package linkcheck

import (
	"net/url"
	"path"
	"strings"

	"git.home.luguber.info/inful/wikicheck/internal/article"
	"git.home.luguber.info/inful/wikicheck/internal/markdown"
	"git.home.luguber.info/inful/wikicheck/internal/redirects"
	"git.home.luguber.info/inful/wikicheck/internal/wikifs"
	"git.home.luguber.info/inful/wikicheck/internal/wikipath"
)

// Target is a checkable link occurrence: an inline or reference-style
// markdown.Link, or a markdown.Reference definition checked in its own right.
type Target interface {
	Raw() string
	URL() *url.URL
	Span() (start, end int)
}

// Finding pairs an offending link with its classified error. Reference is
// set when a reference-style link resolved through a definition, so
// diagnostics can point at both lines.
type Finding struct {
	Target    Target
	Reference *markdown.Reference
	Err       LinkError
}

// Engine decides link validity. It never mutates articles; its only side
// effect is populating the shared cache with lazily parsed link targets.
type Engine struct {
	tree      *wikifs.Tree
	redirects redirects.Table
	site      wikipath.Site
	cache     *Cache

	// caseSensitive makes filesystem existence checks byte-exact. The
	// default insensitive mode still resolves, catching casing typos
	// cheaply; repository-browser links are always checked byte-exact
	// because the external host is.
	caseSensitive bool
}

// NewEngine assembles a resolution engine for one checking run. The cache is
// owned by the caller and shared across articles.
func NewEngine(tree *wikifs.Tree, table redirects.Table, site wikipath.Site, cache *Cache, caseSensitive bool) *Engine {
	return &Engine{
		tree:          tree,
		redirects:     table,
		site:          site,
		cache:         cache,
		caseSensitive: caseSensitive,
	}
}

// Resolve checks a single link of the citing article. A nil Finding means
// the link is valid. The returned error is reserved for hard failures:
// a link target that exists but cannot be read or parsed.
func (e *Engine) Resolve(a *article.Article, target Target) (*Finding, error) {
	raw := target.Raw()
	loc := target.URL()

	var usedRef *markdown.Reference
	if link, ok := target.(markdown.Link); ok && link.IsReference {
		ref, found := a.References[raw]
		if !found {
			return &Finding{Target: target, Err: MissingReference{Name: raw}}, nil
		}
		usedRef = &ref
		raw, loc = ref.RawLocation, ref.Location
	}

	fail := func(err LinkError) *Finding {
		return &Finding{Target: target, Reference: usedRef, Err: err}
	}

	rp := e.site.Classify(loc, a.Directory)
	switch rp.Kind {
	case wikipath.KindExternal:
		return nil, nil

	case wikipath.KindMalformed:
		return fail(Malformed{Location: raw}), nil

	case wikipath.KindFragment:
		if rp.Fragment == "" {
			return nil, nil
		}
		if _, ok := a.Identifiers[rp.Fragment]; !ok {
			return fail(MissingIdentifier{Path: a.Path(), Identifier: rp.Fragment}), nil
		}
		return nil, nil

	case wikipath.KindRepositoryFile:
		if !e.tree.Exists(rp.Path, true) {
			return fail(NotFound{Location: rp.Path}), nil
		}
		// Browser fragments are line numbers and similar; not ours to check.
		return nil, nil

	case wikipath.KindNewsPost:
		return e.resolveNewsPost(fail, rp)

	case wikipath.KindArticle:
		return e.resolveArticle(a, fail, rp)

	default:
		return fail(Malformed{Location: raw}), nil
	}
}

func (e *Engine) resolveNewsPost(fail func(LinkError) *Finding, rp wikipath.RepositoryPath) (*Finding, error) {
	// News posts never redirect; the URL either matches a post or it doesn't.
	if !e.tree.Exists(rp.Path, e.caseSensitive) {
		return fail(NotFound{Location: rp.Path}), nil
	}
	if rp.Fragment == "" {
		return nil, nil
	}
	post, err := e.loadTarget(rp.Path)
	if err != nil {
		return nil, err
	}
	if _, ok := post.Identifiers[rp.Fragment]; !ok {
		return fail(MissingIdentifier{Path: post.Path(), Identifier: rp.Fragment}), nil
	}
	return nil, nil
}

func (e *Engine) resolveArticle(a *article.Article, fail func(LinkError) *Finding, rp wikipath.RepositoryPath) (*Finding, error) {
	rel := rp.Path
	fragment := rp.Fragment

	var redirect *redirects.Entry
	redirectSource := ""
	fragmentFromRedirect := false

	if !e.tree.Exists(rel, e.caseSensitive) {
		// Exactly one redirect hop is attempted; redirects never chain.
		source := strings.TrimPrefix(rel, "wiki/")
		entry, ok := e.redirects.Lookup(source)
		if !ok {
			return fail(NotFound{Location: "/" + rel}), nil
		}

		destination := entry.Destination
		destinationFragment := ""
		if i := strings.Index(destination, "#"); i >= 0 {
			destination, destinationFragment = destination[:i], destination[i+1:]
		}

		rel = path.Join("wiki", destination)
		if !e.tree.Exists(rel, e.caseSensitive) {
			return fail(BrokenRedirect{
				Location:            source,
				RedirectLine:        entry.Line,
				RedirectDestination: entry.Destination,
			}), nil
		}
		if destinationFragment != "" {
			// The redirect's own fragment wins over the citing link's.
			fragment = destinationFragment
			fragmentFromRedirect = true
		}
		redirect = &entry
		redirectSource = source
	}

	if fragment == "" {
		return nil, nil
	}

	// A section link needs the target article, which for a citing
	// translation is the same-language file when one exists, with the
	// English original as the recorded fallback.
	targetFile := rel + "/" + a.Filename
	noTranslation := false
	usingTranslation := a.Filename != wikifs.Original
	if usingTranslation && !e.tree.Exists(targetFile, e.caseSensitive) {
		noTranslation = true
		usingTranslation = false
	}
	if !usingTranslation {
		targetFile = rel + "/" + wikifs.Original
	}

	if !e.tree.Exists(targetFile, e.caseSensitive) {
		return fail(MissingIdentifier{Path: targetFile, Identifier: fragment, NoTranslation: noTranslation}), nil
	}

	targetArticle, err := e.loadTarget(targetFile)
	if err != nil {
		return nil, err
	}
	if _, ok := targetArticle.Identifiers[fragment]; ok {
		return nil, nil
	}

	translationOutdated := usingTranslation && targetArticle.FrontMatter.Outdated()
	if fragmentFromRedirect && redirect != nil {
		return fail(BrokenRedirectIdentifier{
			Location:            redirectSource,
			RedirectLine:        redirect.Line,
			RedirectDestination: redirect.Destination,
			Path:                targetArticle.Path(),
			Identifier:          fragment,
			NoTranslation:       noTranslation,
			TranslationOutdated: translationOutdated,
		}), nil
	}
	return fail(MissingIdentifier{
		Path:                targetArticle.Path(),
		Identifier:          fragment,
		NoTranslation:       noTranslation,
		TranslationOutdated: translationOutdated,
	}), nil
}

// loadTarget parses and caches a link target, normalizing the path to its
// real casing so case-insensitive hits share one cache entry.
func (e *Engine) loadTarget(rel string) (*article.Article, error) {
	if canonical, ok := e.tree.Canonical(rel); ok {
		rel = canonical
	}
	return e.cache.Get(e.tree.Root(), rel)
}
