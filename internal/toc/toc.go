// Package toc builds and drives the table-of-contents navigation panel.
package toc

import (
	"math"

	"github.com/dstanton/lectern/internal/page"
)

// Entry is a single navigable row in the table of contents.
type Entry struct {
	ID         string
	Level      int
	FontSizePx float64
	Text       string
	Indent     int
}

// Outline is the full heading index of a document.
type Outline struct {
	Entries []Entry
	MinFont float64
	MaxFont float64
}

// Build collects the document's heading-like blocks, truncated to max when
// max is positive, and computes per-entry indentation from the observed font
// range. Entry identifiers are unique; the document guarantees duplicates
// were dropped at parse time.
func Build(doc *page.Document, max int) Outline {
	blocks := doc.HeadingBlocks()
	if max > 0 && len(blocks) > max {
		blocks = blocks[:max]
	}

	out := Outline{MinFont: 14, MaxFont: 32}
	first := true
	for _, b := range blocks {
		if b.FontSize > 0 {
			if first {
				out.MinFont, out.MaxFont = b.FontSize, b.FontSize
				first = false
			} else {
				out.MinFont = math.Min(out.MinFont, b.FontSize)
				out.MaxFont = math.Max(out.MaxFont, b.FontSize)
			}
		}
	}

	for _, b := range blocks {
		out.Entries = append(out.Entries, Entry{
			ID:         b.ID,
			Level:      b.Level,
			FontSizePx: b.FontSize,
			Text:       b.Text,
			Indent:     indent(b.FontSize, b.Level, out.MinFont, out.MaxFont),
		})
	}
	return out
}

// indent maps a heading's font size and level to a pixel offset. Larger
// headings read as higher-level and get less indent; level breaks ties.
func indent(fontSize float64, level int, minFont, maxFont float64) int {
	if maxFont == minFont {
		return (level - 1) * 12
	}
	ratio := (fontSize - minFont) / (maxFont - minFont)
	inverted := 1 - ratio
	return int(math.Round(inverted*24 + float64(level-1)*8))
}

// Find returns the index of the entry with the given id, or -1.
func (o Outline) Find(id string) int {
	for i, e := range o.Entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
