package page

import (
	"strings"
	"testing"
)

func load(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return doc
}

func TestLoadHeadings(t *testing.T) {
	doc := load(t, `
<html><head><title>  Sample   Page </title></head><body>
<h1 id="intro">Introduction</h1>
<p>First paragraph.</p>
<h2>Getting   Started</h2>
<h2 id="intro">Duplicate id</h2>
<p>Second paragraph.</p>
</body></html>`)

	if doc.Title != "Sample Page" {
		t.Errorf("Title = %q, want %q", doc.Title, "Sample Page")
	}

	hs := doc.HeadingBlocks()
	if len(hs) != 2 {
		t.Fatalf("got %d headings, want 2 (duplicate id dropped)", len(hs))
	}
	if hs[0].ID != "intro" || hs[0].Level != 1 {
		t.Errorf("first heading = %q level %d, want intro level 1", hs[0].ID, hs[0].Level)
	}
	if hs[1].ID != "getting-started" || hs[1].Level != 2 {
		t.Errorf("second heading = %q level %d, want getting-started level 2", hs[1].ID, hs[1].Level)
	}
	if hs[1].Text != "Getting Started" {
		t.Errorf("heading text = %q, want collapsed whitespace", hs[1].Text)
	}
}

func TestIDsUnique(t *testing.T) {
	doc := load(t, `
<h2>Setup</h2>
<h2>Setup</h2>
<h2>Setup</h2>
<p>One.</p>
<p>Two.</p>`)

	seen := make(map[string]bool)
	for _, b := range doc.Blocks {
		if seen[b.ID] {
			t.Errorf("duplicate id %q", b.ID)
		}
		seen[b.ID] = true
	}

	hs := doc.HeadingBlocks()
	if len(hs) != 3 {
		t.Fatalf("got %d headings, want 3", len(hs))
	}
	want := []string{"setup", "setup-2", "setup-3"}
	for i, h := range hs {
		if h.ID != want[i] {
			t.Errorf("heading %d id = %q, want %q", i, h.ID, want[i])
		}
	}
}

func TestRescanStableIDs(t *testing.T) {
	src := `<h1>Alpha</h1><h2>Beta</h2><p>One.</p><h2>Beta</h2><p>Two.</p>`

	a := load(t, src)
	b := load(t, src)

	ba, bb := a.Blocks, b.Blocks
	if len(ba) != len(bb) {
		t.Fatalf("block counts differ: %d vs %d", len(ba), len(bb))
	}
	for i := range ba {
		if ba[i].ID != bb[i].ID {
			t.Errorf("block %d id changed across scans: %q vs %q", i, ba[i].ID, bb[i].ID)
		}
	}
}

func TestSummaryLevelFromFont(t *testing.T) {
	tests := []struct {
		name  string
		style string
		want  int
	}{
		{"30px", "font-size: 30px", 1},
		{"24px", "font-size: 24px", 2},
		{"20px", "font-size: 20px", 3},
		{"18px", "font-size: 18px", 4},
		{"16px", "font-size: 16px", 5},
		{"12px", "font-size: 12px", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := load(t, `<details><summary style="`+tt.style+`">Section</summary><p>Body.</p></details>`)
			hs := doc.HeadingBlocks()
			if len(hs) != 1 {
				t.Fatalf("got %d headings, want 1", len(hs))
			}
			if hs[0].Kind != Summary {
				t.Fatalf("kind = %v, want Summary", hs[0].Kind)
			}
			if hs[0].Level != tt.want {
				t.Errorf("level = %d, want %d", hs[0].Level, tt.want)
			}
		})
	}
}

func TestSummaryLevelFromNesting(t *testing.T) {
	// No style information anywhere: level falls back to nesting depth.
	doc := load(t, `
<details><summary>Outer</summary>
  <details><summary>Middle</summary>
    <details><summary>Inner</summary><p>Body.</p></details>
  </details>
</details>`)

	hs := doc.HeadingBlocks()
	if len(hs) != 3 {
		t.Fatalf("got %d headings, want 3", len(hs))
	}
	wantLevels := []int{2, 3, 4}
	for i, h := range hs {
		if h.FontSize != 0 {
			t.Errorf("heading %d font = %v, want unresolved (0)", i, h.FontSize)
		}
		if h.Level != wantLevels[i] {
			t.Errorf("heading %d level = %d, want %d", i, h.Level, wantLevels[i])
		}
	}
}

func TestVisibilityAndOpenAncestors(t *testing.T) {
	doc := load(t, `
<details><summary>One</summary>
  <details><summary>Two</summary>
    <details><summary>Three</summary>
      <h4 id="target">Deep heading</h4>
      <p id="deep-p">Deep paragraph.</p>
    </details>
  </details>
</details>`)

	target := doc.Block("target")
	if target == nil {
		t.Fatal("target heading not found")
	}
	if doc.Visible(target) {
		t.Error("heading inside closed sections should not be visible")
	}

	// The outermost summary is visible even while its container is closed.
	one := doc.HeadingBlocks()[0]
	if !doc.Visible(one) {
		t.Error("top summary should be visible with its container closed")
	}

	if opened := doc.OpenAncestors("target"); opened != 3 {
		t.Errorf("OpenAncestors opened %d containers, want 3", opened)
	}
	if !doc.Visible(target) {
		t.Error("heading should be visible after opening ancestors")
	}

	// Idempotent: nothing left to open.
	if opened := doc.OpenAncestors("target"); opened != 0 {
		t.Errorf("second OpenAncestors opened %d, want 0", opened)
	}
}

func TestParagraphs(t *testing.T) {
	doc := load(t, `
<h1>Title</h1>
<p>First.</p>
<p>   </p>
<p>Second.</p>
<script>ignored()</script>
<style>p { color: red }</style>`)

	ps := doc.Paragraphs()
	if len(ps) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(ps))
	}
	if ps[0].Text != "First." || ps[1].Text != "Second." {
		t.Errorf("paragraph texts = %q, %q", ps[0].Text, ps[1].Text)
	}
}
