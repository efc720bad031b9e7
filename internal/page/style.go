package page

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

const defaultBodyPx = 16.0

// Browser default heading sizes relative to a 16px body.
var headingDefaultPx = map[string]float64{
	"h1": 32,
	"h2": 24,
	"h3": 18.72,
	"h4": 16,
	"h5": 13.28,
	"h6": 10.72,
}

// resolveFontSize computes the rendered font size of an element given the
// inherited size. The explicit flag tracks whether any styling information
// (inline style or a tag default) actually contributed, as opposed to the
// bare body fallback.
func resolveFontSize(n *html.Node, inherited float64, explicit bool) (float64, bool) {
	size := inherited
	if def, ok := headingDefaultPx[n.Data]; ok {
		size = def
		explicit = true
	}
	if v, ok := inlineFontSize(attr(n, "style"), size); ok {
		return v, true
	}
	return size, explicit
}

// inlineFontSize parses a font-size declaration out of an inline style
// attribute. Supported units: px, pt, em, rem, %.
func inlineFontSize(style string, inherited float64) (float64, bool) {
	if style == "" {
		return 0, false
	}
	for _, decl := range strings.Split(style, ";") {
		name, val, ok := strings.Cut(decl, ":")
		if !ok || strings.TrimSpace(strings.ToLower(name)) != "font-size" {
			continue
		}
		return parseSize(strings.TrimSpace(strings.ToLower(val)), inherited)
	}
	return 0, false
}

func parseSize(val string, inherited float64) (float64, bool) {
	scale := 1.0
	switch {
	case strings.HasSuffix(val, "px"):
		val = strings.TrimSuffix(val, "px")
	case strings.HasSuffix(val, "pt"):
		val = strings.TrimSuffix(val, "pt")
		scale = 96.0 / 72.0
	case strings.HasSuffix(val, "rem"):
		val = strings.TrimSuffix(val, "rem")
		scale = defaultBodyPx
	case strings.HasSuffix(val, "em"):
		val = strings.TrimSuffix(val, "em")
		scale = inherited
	case strings.HasSuffix(val, "%"):
		val = strings.TrimSuffix(val, "%")
		scale = inherited / 100.0
	default:
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return f * scale, true
}
