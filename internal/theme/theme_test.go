package theme

import "testing"

func TestToggleIdempotent(t *testing.T) {
	th := New(false)
	label := th.Label()
	heading := th.Heading.Render("Sample")

	th.Toggle()
	if !th.Dark {
		t.Error("first toggle should switch to dark")
	}
	th.Toggle()

	if th.Dark {
		t.Error("second toggle should restore light mode")
	}
	if th.Label() != label {
		t.Errorf("label = %q, want %q restored exactly", th.Label(), label)
	}
	if got := th.Heading.Render("Sample"); got != heading {
		t.Errorf("heading style changed across a double toggle")
	}
}

func TestLabelNamesTargetState(t *testing.T) {
	th := New(false)
	if th.Label() != "dark" {
		t.Errorf("light theme label = %q, want dark", th.Label())
	}
	th.Toggle()
	if th.Label() != "light" {
		t.Errorf("dark theme label = %q, want light", th.Label())
	}
}

func TestOverridesApplyClear(t *testing.T) {
	th := New(false)
	o := NewOverrides()

	base := th.Paragraph
	o.Apply("p-1", th.Speaking, base)

	if !o.Has("p-1") {
		t.Error("override not recorded")
	}
	if got := o.Style("p-1", base).Render("x"); got != th.Speaking.Render("x") {
		t.Error("effective style should be the override")
	}

	orig, ok := o.Clear("p-1")
	if !ok {
		t.Fatal("Clear should return the saved snapshot")
	}
	if orig.Render("x") != base.Render("x") {
		t.Error("snapshot does not match the original style")
	}
	if o.Has("p-1") {
		t.Error("override should be gone after Clear")
	}
	if got := o.Style("p-1", base).Render("x"); got != base.Render("x") {
		t.Error("effective style should fall back to base after Clear")
	}
}

func TestOverridesFirstSnapshotWins(t *testing.T) {
	th := New(false)
	o := NewOverrides()

	o.Apply("p-1", th.Speaking, th.Paragraph)
	o.Apply("p-1", th.Flash, th.Speaking) // re-apply with a bogus "original"

	orig, _ := o.Clear("p-1")
	if orig.Render("x") != th.Paragraph.Render("x") {
		t.Error("re-applying must keep the first snapshot")
	}
}

func TestClearUnknownIsNoOp(t *testing.T) {
	o := NewOverrides()
	if _, ok := o.Clear("ghost"); ok {
		t.Error("clearing an element that was never overridden should report no snapshot")
	}
}
