package page

import (
	"strings"
	"testing"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name      string
		val       string
		inherited float64
		want      float64
		ok        bool
	}{
		{"px", "24px", 16, 24, true},
		{"pt", "18pt", 16, 24, true},
		{"em", "1.5em", 20, 30, true},
		{"rem", "2rem", 20, 32, true},
		{"percent", "150%", 20, 30, true},
		{"bare number", "24", 16, 0, false},
		{"negative", "-4px", 16, 0, false},
		{"garbage", "largepx", 16, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseSize(tt.val, tt.inherited)
			if ok != tt.ok {
				t.Fatalf("parseSize(%q) ok = %v, want %v", tt.val, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("parseSize(%q) = %v, want %v", tt.val, got, tt.want)
			}
		})
	}
}

func TestInlineFontSize(t *testing.T) {
	tests := []struct {
		name  string
		style string
		want  float64
		ok    bool
	}{
		{"single declaration", "font-size: 20px", 20, true},
		{"among others", "color: red; font-size:18px; margin: 0", 18, true},
		{"uppercase", "FONT-SIZE: 20PX", 20, true},
		{"absent", "color: red", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := inlineFontSize(tt.style, 16)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("inlineFontSize(%q) = %v, %v; want %v, %v", tt.style, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestHeadingDefaultSizes(t *testing.T) {
	doc := load(t, `<h1>Big</h1><h4>Body-sized</h4><h6>Small</h6>`)
	hs := doc.HeadingBlocks()
	if len(hs) != 3 {
		t.Fatalf("got %d headings, want 3", len(hs))
	}
	if hs[0].FontSize != 32 || hs[1].FontSize != 16 || hs[2].FontSize != 10.72 {
		t.Errorf("default sizes = %v, %v, %v", hs[0].FontSize, hs[1].FontSize, hs[2].FontSize)
	}
}

func TestInlineOverridesDefault(t *testing.T) {
	doc := load(t, `<h1 style="font-size: 20px">Shrunk</h1>`)
	h := doc.HeadingBlocks()[0]
	if h.FontSize != 20 {
		t.Errorf("FontSize = %v, want 20", h.FontSize)
	}
	if h.Level != 1 {
		t.Errorf("semantic heading level = %d, want 1 regardless of font", h.Level)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Getting Started", "getting-started"},
		{"What's new in 2.0?", "what-s-new-in-2-0"},
		{"  spaces  ", "spaces"},
		{"!!!", "section"},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCollapseTextNested(t *testing.T) {
	doc := load(t, "<p>Some <em>emphasized</em>\n\t text <code>here</code>.</p>")
	ps := doc.Paragraphs()
	if len(ps) != 1 {
		t.Fatalf("got %d paragraphs, want 1", len(ps))
	}
	want := "Some emphasized text here ."
	if !strings.HasPrefix(ps[0].Text, "Some emphasized text") {
		t.Errorf("text = %q, want prefix %q", ps[0].Text, want)
	}
}
