package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml front matter start delimiter found but closing delimiter is missing")

// Fields is the parsed YAML prologue of an article, treated as an opaque
// key/value store.
type Fields map[string]any

// Split separates YAML front matter (`---` delimited) from the Markdown body.
//
// If the document does not start with a delimiter line, had is false and body
// is the full input. An opening delimiter without a closing one is a hard
// error: the document cannot be checked meaningfully.
func Split(content []byte) (fm, body []byte, had bool, err error) {
	nl := detectNewline(content)

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// Allow the closing delimiter to end the file without a newline.
		tail := []byte(nl + "---")
		if bytes.HasSuffix(content[start:], tail) {
			return content[start : len(content)-len(tail)+len(nl)], nil, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	bodyStart := start + idx + len(closeSeq)
	return content[start:end], content[bodyStart:], true, nil
}

// Parse extracts and decodes the front matter of a document. Documents
// without front matter yield empty Fields.
func Parse(content []byte) (Fields, error) {
	raw, _, had, err := Split(content)
	if err != nil {
		return nil, err
	}
	if !had || len(raw) == 0 {
		return Fields{}, nil
	}

	var fields Fields
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = Fields{}
	}
	return fields, nil
}

// Bool reads a boolean flag, tolerating the string forms YAML authors use.
func (f Fields) Bool(key string) bool {
	switch v := f[key].(type) {
	case bool:
		return v
	case string:
		return v == "true" || v == "yes"
	}
	return false
}

// String reads a string value, or "" when absent or differently typed.
func (f Fields) String(key string) string {
	if s, ok := f[key].(string); ok {
		return s
	}
	return ""
}

// Outdated reports whether the article carries either of the outdated
// markers stamped by the translation bookkeeping tool.
func (f Fields) Outdated() bool {
	return f.Bool("outdated") || f.Bool("outdated_translation")
}

// OutdatedSince returns the commit hash recorded when the article was marked
// outdated, if any.
func (f Fields) OutdatedSince() string {
	return f.String("outdated_since")
}

func detectNewline(content []byte) string {
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			return "\r\n"
		}
		if content[i] == '\n' {
			return "\n"
		}
	}
	return "\n"
}
