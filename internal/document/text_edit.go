// Package document converts between the analysis core's byte positions and
// LSP's UTF-16 positions and applies incremental edits to document text.
package document

import (
	"fmt"
	"strings"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/stefdev49/vs-zx-sub002/internal/token"
)

// Text is a document with its line start offsets, for position conversion.
type Text struct {
	src    string
	starts []int
}

// NewText indexes the line starts of src.
func NewText(src string) *Text {
	t := &Text{src: src, starts: []int{0}}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			t.starts = append(t.starts, i+1)
		}
	}
	return t
}

// line returns the text of the 0-based line without its line ending.
func (t *Text) line(n int) string {
	if n < 0 || n >= len(t.starts) {
		return ""
	}
	end := len(t.src)
	if n+1 < len(t.starts) {
		end = t.starts[n+1] - 1
	}
	return strings.TrimSuffix(t.src[t.starts[n]:end], "\r")
}

// Position converts an LSP position to a core position. Characters past the
// end of the line clamp to the end of the line.
func (t *Text) Position(p protocol.Position) token.Position {
	n := int(p.Line)
	if n >= len(t.starts) {
		n = len(t.starts) - 1
	}
	col := utf16ToByte(t.line(n), int(p.Character))
	return token.Position{Line: n + 1, Column: col + 1, Offset: t.starts[n] + col}
}

// ProtocolPosition converts a core position to an LSP position.
func (t *Text) ProtocolPosition(p token.Position) protocol.Position {
	n := p.Line - 1
	if n < 0 {
		return protocol.Position{}
	}
	return protocol.Position{
		Line:      protocol.UInteger(n),
		Character: protocol.UInteger(byteToUTF16(t.line(n), p.Column-1)),
	}
}

// ProtocolRange converts a core range to an LSP range.
func (t *Text) ProtocolRange(r token.Range) protocol.Range {
	return protocol.Range{Start: t.ProtocolPosition(r.Start), End: t.ProtocolPosition(r.End)}
}

// End returns the position just past the last character of the text.
func (t *Text) End() protocol.Position {
	n := len(t.starts) - 1
	return protocol.Position{
		Line:      protocol.UInteger(n),
		Character: protocol.UInteger(byteToUTF16(t.line(n), len(t.src))),
	}
}

// utf16ToByte converts a UTF-16 code unit offset within line to a byte
// offset, clamping to the end of the line.
func utf16ToByte(line string, units int) int {
	count := 0
	for i, r := range line {
		if count >= units {
			return i
		}
		count += utf16Len(r)
	}
	return len(line)
}

// byteToUTF16 converts a byte offset within line to UTF-16 code units.
func byteToUTF16(line string, offset int) int {
	if offset > len(line) {
		offset = len(line)
	}
	units := 0
	for i, r := range line {
		if i >= offset {
			break
		}
		units += utf16Len(r)
	}
	return units
}

func utf16Len(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

// ApplyContentChange applies one didChange event to text. A change without
// a range replaces the whole document.
func ApplyContentChange(text string, change protocol.TextDocumentContentChangeEvent) (string, error) {
	if change.Range == nil {
		return change.Text, nil
	}

	doc := NewText(text)
	start, end := change.Range.Start, change.Range.End
	lines := protocol.UInteger(len(doc.starts))
	if start.Line >= lines {
		return "", fmt.Errorf("start line %d out of range (0-%d)", start.Line, lines-1)
	}
	if end.Line >= lines {
		return "", fmt.Errorf("end line %d out of range (0-%d)", end.Line, lines-1)
	}
	if start.Line > end.Line || (start.Line == end.Line && start.Character > end.Character) {
		return "", fmt.Errorf("range start %d:%d after end %d:%d", start.Line, start.Character, end.Line, end.Character)
	}

	from := doc.Position(start).Offset
	to := doc.Position(end).Offset
	if !utf8.ValidString(change.Text) {
		return "", fmt.Errorf("change text is not valid UTF-8")
	}
	return text[:from] + change.Text + text[to:], nil
}
