// Package source loads documents of various formats into the page model.
package source

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dstanton/lectern/internal/page"
)

// Source defines a file format loader.
type Source interface {
	Name() string
	Extensions() []string
	Load(filename string) (*page.Document, error)
}

var registry []Source

// Register adds a format loader to the registry.
func Register(s Source) {
	registry = append(registry, s)
}

// LoadDocument loads a file, using a registered format or a plain text
// fallback where blank lines separate paragraphs.
func LoadDocument(filename string) (*page.Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, s := range registry {
		for _, e := range s.Extensions() {
			if ext == e {
				return s.Load(filename)
			}
		}
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return FromText(string(data))
}

// FromText builds a document out of plain text, one paragraph per blank-line
// separated run.
func FromText(text string) (*page.Document, error) {
	var sb strings.Builder
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		sb.WriteString("<p>")
		sb.WriteString(escape(para))
		sb.WriteString("</p>\n")
	}
	return page.Load(strings.NewReader(sb.String()))
}

// Supported returns registered format names with their extensions.
func Supported() []string {
	var out []string
	for _, s := range registry {
		out = append(out, s.Name()+" ("+strings.Join(s.Extensions(), ", ")+")")
	}
	return out
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
