package linkcheck

import "fmt"

// LinkError is one data-validity finding about a link. The variant set is
// closed: rendering and classification are single functions with exhaustive
// dispatch, so tests can enumerate every case.
type LinkError interface {
	linkError()
}

// Malformed marks a structural problem with the link itself: a scheme-less
// authority, an unparseable location, or a wiki link naming a language file
// instead of an article directory.
type Malformed struct {
	Location string
}

// NotFound means no file and no redirect resolves the location.
type NotFound struct {
	Location string
}

// BrokenRedirect means a redirect entry matched but its destination does not
// exist. It is reported against the redirect file's own line, not the citing
// article.
type BrokenRedirect struct {
	Location            string
	RedirectLine        int
	RedirectDestination string
}

// MissingReference is a reference-style link with no matching definition.
type MissingReference struct {
	Name string
}

// MissingIdentifier means the target document exists but exposes no such
// anchor. NoTranslation records that the check fell back to the English
// original because the citing article's language has no translation there;
// TranslationOutdated records that the translation exists but is flagged
// outdated in its front matter.
type MissingIdentifier struct {
	Path                string
	Identifier          string
	NoTranslation       bool
	TranslationOutdated bool
}

// BrokenRedirectIdentifier is a missing identifier reached through a
// redirect whose destination specified the fragment, carrying both contexts.
type BrokenRedirectIdentifier struct {
	Location            string
	RedirectLine        int
	RedirectDestination string
	Path                string
	Identifier          string
	NoTranslation       bool
	TranslationOutdated bool
}

func (Malformed) linkError()                {}
func (NotFound) linkError()                 {}
func (BrokenRedirect) linkError()           {}
func (MissingReference) linkError()         {}
func (MissingIdentifier) linkError()        {}
func (BrokenRedirectIdentifier) linkError() {}

// Kind returns the stable machine-readable name of a finding's variant.
func Kind(e LinkError) string {
	switch e.(type) {
	case Malformed:
		return "malformed-link"
	case NotFound:
		return "link-not-found"
	case BrokenRedirect:
		return "broken-redirect"
	case MissingReference:
		return "missing-reference"
	case MissingIdentifier:
		return "missing-identifier"
	case BrokenRedirectIdentifier:
		return "broken-redirect-identifier"
	default:
		return "unknown"
	}
}

// Describe renders a finding as a short human-readable message.
// redirectFile names the redirect table for broken-redirect diagnostics.
func Describe(e LinkError, redirectFile string) string {
	switch err := e.(type) {
	case Malformed:
		return fmt.Sprintf("incorrect link structure (typo?): %q", err.Location)
	case NotFound:
		return fmt.Sprintf("%q was not found", err.Location)
	case BrokenRedirect:
		return fmt.Sprintf("broken redirect (%s:%d: %s --> %s)",
			redirectFile, err.RedirectLine, err.Location, err.RedirectDestination)
	case MissingReference:
		return fmt.Sprintf("no corresponding reference found for %q", err.Name)
	case MissingIdentifier:
		return fmt.Sprintf("there is no %q in %s%s",
			err.Identifier, err.Path, translationNote(err.NoTranslation, err.TranslationOutdated))
	case BrokenRedirectIdentifier:
		return fmt.Sprintf("broken redirect (%s:%d: %s --> %s): there is no %q in %s%s",
			redirectFile, err.RedirectLine, err.Location, err.RedirectDestination,
			err.Identifier, err.Path, translationNote(err.NoTranslation, err.TranslationOutdated))
	default:
		return "unknown link error"
	}
}

func translationNote(noTranslation, outdated bool) string {
	switch {
	case noTranslation:
		return " (no translation available)"
	case outdated:
		return " (the translation is outdated)"
	}
	return ""
}
