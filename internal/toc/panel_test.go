package toc

import (
	"fmt"
	"testing"
)

func makePanel(n, height int) *Panel {
	var o Outline
	for i := 0; i < n; i++ {
		o.Entries = append(o.Entries, Entry{ID: fmt.Sprintf("h%d", i), Level: 2, Text: fmt.Sprintf("Heading %d", i)})
	}
	p := NewPanel(o)
	p.Resize(height)
	return p
}

func TestToggleEmptyOutline(t *testing.T) {
	p := NewPanel(Outline{})
	p.Toggle()
	if p.Visible {
		t.Error("panel with no entries must stay hidden")
	}
}

func TestTogglePreservesState(t *testing.T) {
	p := makePanel(10, 5)
	p.Toggle()
	p.SetActive("h4")
	p.Toggle()
	p.Toggle()
	if p.ActiveID != "h4" {
		t.Errorf("active entry lost across toggles: %q", p.ActiveID)
	}
	if len(p.Outline.Entries) != 10 {
		t.Errorf("entries lost across toggles: %d", len(p.Outline.Entries))
	}
}

func TestSetActiveScrollsByOverflow(t *testing.T) {
	p := makePanel(20, 6)

	// Active row below the bottom margin: offset moves by exactly the
	// overflow past it.
	p.SetActive("h10")
	if p.Offset != 7 {
		t.Errorf("offset after activating row 10 = %d, want 7", p.Offset)
	}

	// Active row above the top margin: offset shifts back likewise.
	p.SetActive("h3")
	if p.Offset != 1 {
		t.Errorf("offset after activating row 3 = %d, want 1", p.Offset)
	}

	// Row already inside the margin: no movement.
	before := p.Offset
	p.SetActive("h4")
	if p.Offset != before {
		t.Errorf("offset moved to %d for an in-view row", p.Offset)
	}
}

func TestSetActiveSameIDNoMovement(t *testing.T) {
	p := makePanel(20, 6)
	p.SetActive("h10")
	offset := p.Offset
	p.SetActive("h10")
	if p.Offset != offset {
		t.Error("re-activating the active entry must not move the panel")
	}
}

func TestSetActiveUnknownID(t *testing.T) {
	p := makePanel(5, 5)
	p.SetActive("nope")
	if p.ActiveID != "" || p.Offset != 0 {
		t.Errorf("unknown id changed state: active=%q offset=%d", p.ActiveID, p.Offset)
	}
}

func TestScrollClamping(t *testing.T) {
	p := makePanel(4, 10)
	p.SetActive("h3")
	if p.Offset != 0 {
		t.Errorf("offset = %d, want 0 when everything fits", p.Offset)
	}
}

func TestMoveCursor(t *testing.T) {
	p := makePanel(10, 5)
	p.MoveCursor(-3)
	if p.Cursor != 0 {
		t.Errorf("cursor = %d, want clamp at 0", p.Cursor)
	}
	p.MoveCursor(100)
	if p.Cursor != 9 {
		t.Errorf("cursor = %d, want clamp at 9", p.Cursor)
	}
	if e := p.Selected(); e == nil || e.ID != "h9" {
		t.Errorf("Selected() = %+v, want h9", e)
	}
}
