package page

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
)

var imageMIMEs = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".bmp":  "image/bmp",
}

// InlineImages rewrites local img references in an HTML document to base64
// data URIs, resolving paths relative to baseDir, and returns the rewritten
// document. Remote and already-inlined images are left alone, as are images
// whose files cannot be read.
func InlineImages(data []byte, baseDir string) ([]byte, int, error) {
	root, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, 0, fmt.Errorf("parsing document: %w", err)
	}

	inlined := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "img" {
			for i, a := range n.Attr {
				if a.Key != "src" || !localImageRef(a.Val) {
					continue
				}
				uri, ok := dataURI(filepath.Join(baseDir, filepath.FromSlash(a.Val)))
				if ok {
					n.Attr[i].Val = uri
					inlined++
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	var out bytes.Buffer
	if err := html.Render(&out, root); err != nil {
		return nil, 0, fmt.Errorf("rendering document: %w", err)
	}
	return out.Bytes(), inlined, nil
}

func localImageRef(src string) bool {
	lower := strings.ToLower(src)
	return src != "" &&
		!strings.HasPrefix(lower, "http://") &&
		!strings.HasPrefix(lower, "https://") &&
		!strings.HasPrefix(lower, "data:") &&
		!strings.HasPrefix(lower, "//")
}

func dataURI(path string) (string, bool) {
	mime, ok := imageMIMEs[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), true
}
