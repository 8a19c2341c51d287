package markdown

import (
	"net/url"
	"strings"
)

// Reference is the definition half of a reference-style link, occupying a
// whole line:
//
//	[ref_name]: /wiki/Path/To/Article "Optional title"
//
// Names are looked up case-sensitively, exactly as written.
type Reference struct {
	Line        int
	Name        string
	RawLocation string
	Location    *url.URL
	AltText     string
}

// Raw returns the location as written.
func (r Reference) Raw() string { return r.RawLocation }

// URL returns the parsed location, or nil if it did not parse.
func (r Reference) URL() *url.URL { return r.Location }

// Span returns the byte offsets covering the definition on its line.
func (r Reference) Span() (start, end int) {
	end = len(r.Name) + 4 + len(r.RawLocation) - 1
	if r.AltText != "" {
		end += 3 + len(r.AltText)
	}
	return 0, end
}

// ExtractReference reads a reference definition from a line, assuming it
// occupies the whole line. The second return value is false when the line is
// not a definition.
func ExtractReference(line string, lineno int) (Reference, bool) {
	split := strings.Index(line, ":")
	if split < 1 || !strings.HasPrefix(line, "[") || line[split-1] != ']' {
		return Reference{}, false
	}
	if split+1 >= len(line) || line[split+1] != ' ' {
		return Reference{}, false
	}

	name := line[1 : split-1]
	rest := line[split+2:]

	location := rest
	altText := ""
	if space := strings.Index(rest, " "); space >= 0 {
		location = rest[:space]
		altText = strings.Trim(rest[space+1:], `"`)
	}

	return Reference{
		Line:        lineno,
		Name:        name,
		RawLocation: location,
		Location:    ParseLocation(location),
		AltText:     altText,
	}, true
}

// ExtractReferences collects every reference definition of a text, keyed by
// name. A name defined twice keeps its last definition.
func ExtractReferences(text string) map[string]Reference {
	references := make(map[string]Reference)
	for i, line := range strings.Split(text, "\n") {
		if ref, ok := ExtractReference(strings.TrimRight(line, "\r\n"), i+1); ok {
			references[ref.Name] = ref
		}
	}
	return references
}
