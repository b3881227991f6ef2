package manifest

import "strings"

const (
	lf   = "\n"
	crlf = "\r\n"
)

// Document is a manifest held as ordered lines with their terminators
// stripped. Each line remembers its own terminator, so lines that no edit
// touches serialize back byte for byte even when a file mixes LF and CRLF.
// A final trailing newline belongs to the last line rather than being a
// blank line that a section scan could consume.
type Document struct {
	lines []string
	ends  []string // terminator after each line; "" only for an unterminated last line
	eol   string   // ending of the first terminated line
}

// Parse splits data into a Document. Bytes reproduces data exactly.
func Parse(data []byte) *Document {
	s := string(data)
	doc := &Document{eol: lf}
	if i := strings.IndexByte(s, '\n'); i > 0 && s[i-1] == '\r' {
		doc.eol = crlf
	}

	for line := range strings.Lines(s) {
		end := ""
		switch {
		case strings.HasSuffix(line, crlf):
			end = crlf
		case strings.HasSuffix(line, lf):
			end = lf
		}
		doc.lines = append(doc.lines, strings.TrimSuffix(line, end))
		doc.ends = append(doc.ends, end)
	}
	return doc
}

// Bytes serializes the document with each line's own terminator.
func (d *Document) Bytes() []byte {
	var b strings.Builder
	for i, line := range d.lines {
		b.WriteString(line)
		b.WriteString(d.ends[i])
	}
	return []byte(b.String())
}

// Lines returns a copy of the document lines.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// Line returns the line at index i.
func (d *Document) Line(i int) string {
	return d.lines[i]
}

// LineEnding returns the terminator of the first terminated line.
func (d *Document) LineEnding() string {
	return d.eol
}

// splice returns a copy of d with lines [span.Start, span.End) replaced by
// body. Body lines take the replaced anchor's terminator, or the document's
// line ending when the anchor has none. When the span reaches the end of the
// document, the last body line keeps the old final terminator.
func (d *Document) splice(span Span, body []string) *Document {
	n := len(d.lines) - span.Len() + len(body)
	out := &Document{lines: make([]string, 0, n), ends: make([]string, 0, n), eol: d.eol}

	fill := d.eol
	if span.Start < len(d.ends) && d.ends[span.Start] != "" {
		fill = d.ends[span.Start]
	}

	out.lines = append(out.lines, d.lines[:span.Start]...)
	out.ends = append(out.ends, d.ends[:span.Start]...)
	for i, line := range body {
		end := fill
		if i == len(body)-1 && span.End == len(d.lines) {
			end = d.ends[span.End-1]
		}
		out.lines = append(out.lines, line)
		out.ends = append(out.ends, end)
	}
	out.lines = append(out.lines, d.lines[span.End:]...)
	out.ends = append(out.ends, d.ends[span.End:]...)
	return out
}
