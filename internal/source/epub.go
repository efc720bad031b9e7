package source

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dstanton/lectern/internal/page"
	"github.com/taylorskalyo/goreader/epub"
	"golang.org/x/net/html"
)

// EPUBSource implements Source for EPUB files. The spine's chapters are
// concatenated into one document; chapter headings index like any other.
type EPUBSource struct{}

func init() {
	Register(&EPUBSource{})
}

func (s *EPUBSource) Name() string         { return "EPUB" }
func (s *EPUBSource) Extensions() []string { return []string{".epub"} }

func (s *EPUBSource) Load(filename string) (*page.Document, error) {
	rc, err := epub.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening epub: %w", err)
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return nil, fmt.Errorf("no rootfiles found in epub")
	}
	book := rc.Rootfiles[0]

	var merged bytes.Buffer
	merged.WriteString("<html><head><title>")
	merged.WriteString(escape(filename))
	merged.WriteString("</title></head><body>\n")

	for _, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		r, err := ref.Item.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			continue
		}
		body, err := bodyInner(data)
		if err != nil {
			continue
		}
		merged.Write(body)
		merged.WriteString("\n")
	}
	merged.WriteString("</body></html>")

	return page.Load(&merged)
}

// bodyInner extracts the rendered inner HTML of a chapter's body element.
func bodyInner(data []byte) ([]byte, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var body *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if body != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "body" {
			body = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(root)
	if body == nil {
		return nil, fmt.Errorf("no body element")
	}

	var out strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&out, c); err != nil {
			return nil, err
		}
	}
	return []byte(out.String()), nil
}
