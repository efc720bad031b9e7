package source

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dstanton/lectern/internal/page"
	"github.com/yuin/goldmark"
)

// MarkdownSource implements Source for Markdown files: the file is rendered
// to HTML first, then goes through the same parse path as native HTML, so
// headings and paragraphs index identically.
type MarkdownSource struct{}

func init() {
	Register(&MarkdownSource{})
}

func (s *MarkdownSource) Name() string         { return "Markdown" }
func (s *MarkdownSource) Extensions() []string { return []string{".md", ".markdown"} }

func (s *MarkdownSource) Load(filename string) (*page.Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := goldmark.Convert(data, &buf); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return page.Load(&buf)
}

// ExportHTML renders a Markdown file into a standalone HTML page: styled,
// titled after the source file, with local images inlined as data URIs.
func ExportHTML(mdPath, outPath string) error {
	data, err := os.ReadFile(mdPath)
	if err != nil {
		return err
	}
	var body bytes.Buffer
	if err := goldmark.Convert(data, &body); err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}

	full := StandaloneHTML(filepath.Base(mdPath), body.Bytes())
	inlined, _, err := page.InlineImages(full, filepath.Dir(mdPath))
	if err != nil {
		return err
	}
	return os.WriteFile(outPath, inlined, 0644)
}

const standaloneCSS = `body { font-family: sans-serif; line-height: 1.6; padding: 20px; max-width: 800px; margin: 0 auto; }
pre { background: #f4f4f4; padding: 10px; border-radius: 5px; overflow-x: auto; }
code { background: #f4f4f4; padding: 2px 5px; border-radius: 3px; }
blockquote { border-left: 4px solid #ccc; margin: 0; padding-left: 10px; color: #666; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
th { background-color: #f2f2f2; }`

// StandaloneHTML wraps a rendered body fragment in a complete HTML page.
func StandaloneHTML(title string, body []byte) []byte {
	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	sb.WriteString(escape(title))
	sb.WriteString("</title>\n<style>\n")
	sb.WriteString(standaloneCSS)
	sb.WriteString("\n</style>\n</head>\n<body>\n")
	sb.Write(body)
	sb.WriteString("\n</body>\n</html>\n")
	return []byte(sb.String())
}
