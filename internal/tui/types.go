package tui

// Hero defaults used when Config leaves a field empty. The config package
// seeds its own defaults from these.
const (
	DefaultHeadline     = "Lorem ipsum dolor sit amet in tempor"
	DefaultSubtitle     = "Lorem ipsum dolor sit amet consectetur adipiscing sed do eiusmod"
	DefaultCompactWidth = 60
)

const heroTagline = "Press Tab to borrow the suggestion, or start typing your own."

const (
	fieldRows             = 5
	fieldFrameWidth       = 4
	fieldTextInset        = 2
	minFieldWidth         = 24
	maxFieldWidth         = 96
	pageHorizontalPadding = 4
	pageMarginLeft        = 2
	submittedPreviewLimit = 60
)

const (
	tabBadgeLabel = "⇥ Tab"
	ctaLabel      = "Send ➜ ctrl+s"
)

// hitMap records where the last frame placed clickable regions, in
// page-relative cells. A negative row means the region was not drawn.
type hitMap struct {
	fieldTop    int
	fieldBottom int
	fieldLeft   int
	fieldRight  int
	badgeRow    int
	badgeStart  int
	badgeEnd    int
	ctaRow      int
	ctaStart    int
	ctaEnd      int
}

func emptyHitMap() hitMap {
	return hitMap{fieldTop: -1, fieldBottom: -1, badgeRow: -1, ctaRow: -1}
}

func (h hitMap) inField(x, y int) bool {
	return h.fieldTop >= 0 && y >= h.fieldTop && y <= h.fieldBottom && x >= h.fieldLeft && x < h.fieldRight
}

func (h hitMap) onBadge(x, y int) bool {
	return h.badgeRow >= 0 && y == h.badgeRow && x >= h.badgeStart && x < h.badgeEnd
}

func (h hitMap) onCTA(x, y int) bool {
	return h.ctaRow >= 0 && y == h.ctaRow && x >= h.ctaStart && x < h.ctaEnd
}
