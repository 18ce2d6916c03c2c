// Package outline renders a structured transcription as nested list markup
// or as a printable PDF. Both exporters walk the parent/children links, so
// nesting depth follows the reconstructed hierarchy rather than raw indent
// levels.
package outline

import (
	"strings"

	"github.com/JoshGJPI/smartpen-logseq-bridge-sub004/internal/structure"
)

// Markdown emits the document as a Logseq-style nested bullet list: one
// "- " bullet per line, one tab per nesting depth.
func Markdown(doc *structure.Document) string {
	var sb strings.Builder
	for i, line := range doc.Lines {
		if line.Parent == -1 {
			writeBullet(&sb, doc, i, 0)
		}
	}
	return sb.String()
}

func writeBullet(sb *strings.Builder, doc *structure.Document, index, depth int) {
	sb.WriteString(strings.Repeat("\t", depth))
	sb.WriteString("- ")
	sb.WriteString(strings.TrimSpace(doc.Lines[index].Text))
	sb.WriteString("\n")
	for _, c := range doc.Lines[index].Children {
		writeBullet(sb, doc, c, depth+1)
	}
}

// Entry is one flattened outline row: the trimmed line text with the nesting
// depth implied by the hierarchy.
type Entry struct {
	Depth int
	Text  string
}

// Flatten returns the document's lines in document order with their
// hierarchy depths, the form the sync layer diffs against persisted pages.
func Flatten(doc *structure.Document) []Entry {
	entries := make([]Entry, 0, len(doc.Lines))
	var walk func(index, depth int)
	walk = func(index, depth int) {
		entries = append(entries, Entry{
			Depth: depth,
			Text:  strings.TrimSpace(doc.Lines[index].Text),
		})
		for _, c := range doc.Lines[index].Children {
			walk(c, depth+1)
		}
	}
	for i, line := range doc.Lines {
		if line.Parent == -1 {
			walk(i, 0)
		}
	}
	return entries
}
