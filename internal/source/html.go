package source

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/dstanton/lectern/internal/page"
)

// HTMLSource implements Source for local HTML files. Local image references
// are inlined as data URIs so the loaded document stands alone.
type HTMLSource struct{}

func init() {
	Register(&HTMLSource{})
}

func (s *HTMLSource) Name() string         { return "HTML" }
func (s *HTMLSource) Extensions() []string { return []string{".html", ".htm", ".xhtml"} }

func (s *HTMLSource) Load(filename string) (*page.Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	inlined, _, err := page.InlineImages(data, filepath.Dir(filename))
	if err != nil {
		return nil, err
	}
	return page.Load(bytes.NewReader(inlined))
}

// LoadURL fetches a page over HTTP and parses it.
func LoadURL(url string) (*page.Document, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: %s", url, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	return page.Load(bytes.NewReader(body))
}
