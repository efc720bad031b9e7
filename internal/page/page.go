// Package page holds the in-memory model of a loaded document: its render
// blocks, heading index, and collapsible section structure.
package page

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Kind classifies a render block.
type Kind int

const (
	// Heading is a semantic h1-h6 element.
	Heading Kind = iota
	// Summary is the label of a collapsible section, treated as heading-like.
	Summary
	// Paragraph is speakable body text.
	Paragraph
)

// Section is a collapsible container (an HTML details element). Content
// inside a closed section is hidden until the section is opened.
type Section struct {
	ID     string
	Open   bool
	Parent *Section
}

// Depth counts enclosing collapsible ancestors, the section itself included.
func (s *Section) Depth() int {
	n := 0
	for cur := s; cur != nil; cur = cur.Parent {
		n++
	}
	return n
}

// Block is a single render unit in document order.
type Block struct {
	ID       string
	Kind     Kind
	Level    int     // 1-6 for heading-like blocks, 0 otherwise
	FontSize float64 // resolved px, 0 if unresolvable
	Text     string
	Section  *Section // innermost enclosing collapsible, nil at top level
}

// HeadingLike reports whether the block belongs in the heading index.
func (b *Block) HeadingLike() bool {
	return b.Kind == Heading || b.Kind == Summary
}

// Document is a parsed page.
type Document struct {
	Title  string
	Blocks []*Block

	byID map[string]*Block
	seen map[string]bool
}

// Load parses HTML into a Document. Identifiers are taken from id attributes
// where present; elements without one get a deterministic slug so that
// re-parsing the same bytes yields the same identifiers. An element whose id
// was already seen is dropped entirely (first occurrence wins).
func Load(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	doc := &Document{
		byID: make(map[string]*Block),
		seen: make(map[string]bool),
	}

	var walk func(n *html.Node, sec *Section, inherited float64, explicit bool)
	walk = func(n *html.Node, sec *Section, inherited float64, explicit bool) {
		if n.Type == html.ElementNode {
			size, exp := resolveFontSize(n, inherited, explicit)

			switch n.Data {
			case "script", "style", "template", "noscript":
				return

			case "title":
				if doc.Title == "" {
					doc.Title = collapseText(n)
				}
				return

			case "details":
				inner := &Section{
					ID:     doc.claimID(attr(n, "id"), "sec"),
					Open:   hasAttr(n, "open"),
					Parent: sec,
				}
				if inner.ID == "" {
					return // duplicate id, drop the whole container
				}
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c, inner, size, exp)
				}
				return

			case "summary":
				doc.addBlock(n, Summary, 0, size, exp, sec)
				return

			case "h1", "h2", "h3", "h4", "h5", "h6":
				level := int(n.Data[1] - '0')
				doc.addBlock(n, Heading, level, size, exp, sec)
				return

			case "p":
				doc.addBlock(n, Paragraph, 0, size, exp, sec)
				return
			}

			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c, sec, size, exp)
			}
			return
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, sec, inherited, explicit)
		}
	}
	walk(root, nil, defaultBodyPx, false)

	return doc, nil
}

// addBlock appends a block for an element, assigning its identifier and
// normalized text. Empty-text blocks and duplicate ids are dropped.
func (d *Document) addBlock(n *html.Node, kind Kind, level int, size float64, explicit bool, sec *Section) {
	text := collapseText(n)
	if text == "" {
		return
	}

	prefix := "p"
	if kind != Paragraph {
		prefix = slugify(text)
	}
	id := d.claimID(attr(n, "id"), prefix)
	if id == "" {
		return
	}

	fontSize := size
	if !explicit && kind == Summary {
		// No style information anywhere up the chain: leave unresolved so
		// level inference falls back to nesting depth.
		fontSize = 0
	}
	if kind != Heading {
		level = inferLevel(fontSize, sec)
	}

	b := &Block{
		ID:       id,
		Kind:     kind,
		Level:    level,
		FontSize: fontSize,
		Text:     text,
		Section:  sec,
	}
	d.Blocks = append(d.Blocks, b)
	d.byID[id] = b
}

// claimID returns a unique identifier for an element, or "" if the element's
// own id attribute was already claimed.
func (d *Document) claimID(existing, prefix string) string {
	if existing != "" {
		if d.seen[existing] {
			return ""
		}
		d.seen[existing] = true
		return existing
	}
	if prefix == "" {
		prefix = "section"
	}
	id := prefix
	for n := 2; d.seen[id]; n++ {
		id = fmt.Sprintf("%s-%d", prefix, n)
	}
	d.seen[id] = true
	return id
}

// inferLevel derives a heading level for non-semantic headings: font-size
// thresholds when the size is known, nesting depth otherwise.
func inferLevel(fontSize float64, sec *Section) int {
	if fontSize > 0 {
		switch {
		case fontSize >= 30:
			return 1
		case fontSize >= 24:
			return 2
		case fontSize >= 20:
			return 3
		case fontSize >= 18:
			return 4
		case fontSize >= 16:
			return 5
		default:
			return 6
		}
	}
	depth := 0
	if sec != nil {
		depth = sec.Depth()
	}
	if depth > 5 {
		depth = 5
	}
	return 1 + depth
}

// Block returns the block with the given id, or nil.
func (d *Document) Block(id string) *Block {
	return d.byID[id]
}

// Paragraphs returns the speakable blocks in document order.
func (d *Document) Paragraphs() []*Block {
	var out []*Block
	for _, b := range d.Blocks {
		if b.Kind == Paragraph {
			out = append(out, b)
		}
	}
	return out
}

// HeadingBlocks returns heading-like blocks in document order.
func (d *Document) HeadingBlocks() []*Block {
	var out []*Block
	for _, b := range d.Blocks {
		if b.HeadingLike() {
			out = append(out, b)
		}
	}
	return out
}

// Visible reports whether every collapsible container enclosing the block is
// open. A summary stays visible while its own container is closed.
func (d *Document) Visible(b *Block) bool {
	sec := b.Section
	if b.Kind == Summary && sec != nil {
		sec = sec.Parent
	}
	for ; sec != nil; sec = sec.Parent {
		if !sec.Open {
			return false
		}
	}
	return true
}

// OpenAncestors forces open every collapsible container between the block and
// the document root, returning how many were actually opened. Jump targets
// are guaranteed visible afterwards.
func (d *Document) OpenAncestors(id string) int {
	b := d.byID[id]
	if b == nil {
		return 0
	}
	opened := 0
	for sec := b.Section; sec != nil; sec = sec.Parent {
		if !sec.Open {
			sec.Open = true
			opened++
		}
	}
	return opened
}

// collapseText extracts the visible text beneath a node, trimmed, with runs
// of whitespace collapsed to single spaces.
func collapseText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// slugify turns heading text into an identifier fragment.
func slugify(text string) string {
	var sb strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	out := strings.Trim(sb.String(), "-")
	if out == "" {
		return "section"
	}
	return out
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}
