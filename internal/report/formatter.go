package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"git.home.luguber.info/inful/wikicheck/internal/markdown"
)

// Formatter renders a batch of diagnostics.
type Formatter interface {
	Format(w io.Writer, diags []Diagnostic) error
}

// NewFormatter returns the formatter for an output format name.
func NewFormatter(format string, useColor bool) Formatter {
	if format == "json" {
		return &JSONFormatter{}
	}
	return NewTextFormatter(useColor)
}

// Styles holds the text formatter's lipgloss styles.
type Styles struct {
	Location lipgloss.Style
	Message  lipgloss.Style
	BadSpan  lipgloss.Style
	Note     lipgloss.Style
}

// DefaultStyles returns the colour scheme used when the terminal supports it.
func DefaultStyles() Styles {
	return Styles{
		Location: lipgloss.NewStyle().Bold(true),
		Message:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		BadSpan:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Underline(true),
		Note:     lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	}
}

// PlainStyles returns pass-through styles for dumb terminals and pipes.
func PlainStyles() Styles {
	return Styles{
		Location: lipgloss.NewStyle(),
		Message:  lipgloss.NewStyle(),
		BadSpan:  lipgloss.NewStyle(),
		Note:     lipgloss.NewStyle(),
	}
}

// TextFormatter renders human-readable, optionally coloured diagnostics.
type TextFormatter struct {
	styles Styles
}

// NewTextFormatter creates a text formatter.
func NewTextFormatter(useColor bool) *TextFormatter {
	styles := PlainStyles()
	if useColor {
		styles = DefaultStyles()
	}
	return &TextFormatter{styles: styles}
}

// Format writes one block per diagnostic: location and message, then the
// source line with the offending span highlighted.
func (f *TextFormatter) Format(w io.Writer, diags []Diagnostic) error {
	for _, d := range diags {
		location := fmt.Sprintf("%s:%d:%d", d.File, d.Line, d.Column)
		if _, err := fmt.Fprintf(w, "%s: %s\n",
			f.styles.Location.Render(location),
			f.styles.Message.Render(d.Message)); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  %s\n", f.highlight(d)); err != nil {
			return err
		}
		if d.Note != "" {
			if _, err := fmt.Fprintf(w, "  %s\n", f.styles.Note.Render("note: "+d.Note)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *TextFormatter) highlight(d Diagnostic) string {
	start, end := d.SpanStart, d.SpanEnd
	if start < 0 || end < start || end >= len(d.Source) {
		return d.Source
	}
	return d.Source[:start] +
		f.styles.BadSpan.Render(d.Source[start:end+1]) +
		d.Source[end+1:]
}

// JSONFormatter renders diagnostics as a JSON array for CI annotation.
type JSONFormatter struct{}

// Format writes the diagnostics as indented JSON.
func (f *JSONFormatter) Format(w io.Writer, diags []Diagnostic) error {
	if diags == nil {
		diags = []Diagnostic{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(diags)
}

func referenceNote(ref markdown.Reference) string {
	note := fmt.Sprintf("reference at line %d: [%s]: %s", ref.Line, ref.Name, ref.RawLocation)
	if ref.AltText != "" {
		note += fmt.Sprintf(" %q", ref.AltText)
	}
	return note
}
