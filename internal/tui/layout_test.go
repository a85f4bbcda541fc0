package tui

import "testing"

func TestPageLayoutUpdate(t *testing.T) {
	cases := []struct {
		name       string
		width      int
		wrapWidth  int
		fieldWidth int
		compact    bool
	}{
		{name: "standard", width: 80, wrapWidth: 76, fieldWidth: 72},
		{name: "wide", width: 200, wrapWidth: 96, fieldWidth: 92},
		{name: "compact", width: 40, wrapWidth: 36, fieldWidth: 32, compact: true},
		{name: "tiny", width: 10, wrapWidth: 24, fieldWidth: 20, compact: true},
		{name: "threshold", width: 60, wrapWidth: 56, fieldWidth: 52},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layout := newPageLayout()
			layout.Update(tc.width, DefaultCompactWidth)
			if layout.wrapWidth != tc.wrapWidth {
				t.Fatalf("wrap width mismatch: got %d want %d", layout.wrapWidth, tc.wrapWidth)
			}
			if layout.fieldWidth != tc.fieldWidth {
				t.Fatalf("field width mismatch: got %d want %d", layout.fieldWidth, tc.fieldWidth)
			}
			if layout.compact != tc.compact {
				t.Fatalf("compact mismatch: got %v want %v", layout.compact, tc.compact)
			}
		})
	}
}

func TestPageLayoutCompactDisabled(t *testing.T) {
	layout := newPageLayout()
	layout.Update(20, 0)
	if layout.compact {
		t.Fatal("zero compact width should never compact")
	}
}

func TestPreviewText(t *testing.T) {
	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{in: "  short  ", limit: 10, want: "short"},
		{in: "line one\nline two", limit: 0, want: "line one line two"},
		{in: "abcdefghij", limit: 4, want: "abcd…"},
	}
	for _, tc := range cases {
		if got := previewText(tc.in, tc.limit); got != tc.want {
			t.Fatalf("previewText(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}
