package tui

import "testing"

func TestPageLayoutUpdate(t *testing.T) {
	cases := []struct {
		name           string
		width          int
		height         int
		reserved       int
		viewportWidth  int
		viewportHeight int
		inputWidth     int
		compactHero    bool
	}{
		{name: "narrow", width: 60, height: 24, viewportWidth: 56, viewportHeight: 6, inputWidth: 36, compactHero: true},
		{name: "wide", width: 120, height: 40, viewportWidth: 116, viewportHeight: 16, inputWidth: 96},
		{name: "wide with suggestions", width: 120, height: 40, reserved: 4, viewportWidth: 116, viewportHeight: 12, inputWidth: 96},
		{name: "tiny", width: 20, height: 10, viewportWidth: minViewportWidth, viewportHeight: minViewportHeight, inputWidth: minInputWidth, compactHero: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layout := newPageLayout()
			layout.Update(tc.width, tc.height)
			layout.Reserve(tc.reserved)
			if layout.viewportWidth != tc.viewportWidth {
				t.Fatalf("viewport width mismatch: got %d want %d", layout.viewportWidth, tc.viewportWidth)
			}
			if layout.viewportHeight != tc.viewportHeight {
				t.Fatalf("viewport height mismatch: got %d want %d", layout.viewportHeight, tc.viewportHeight)
			}
			if layout.inputWidth != tc.inputWidth {
				t.Fatalf("input width mismatch: got %d want %d", layout.inputWidth, tc.inputWidth)
			}
			if layout.compactHero != tc.compactHero {
				t.Fatalf("compact hero mismatch: got %v want %v", layout.compactHero, tc.compactHero)
			}
		})
	}
}

func TestPreviewText(t *testing.T) {
	if got := previewText("  short  ", 10); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := previewText("abcdefghij", 4); got != "abcd…" {
		t.Fatalf("got %q", got)
	}
}
