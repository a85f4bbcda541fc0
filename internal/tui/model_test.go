package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/landing/internal/journal"
	"github.com/csheth/landing/internal/placeholder"
	"github.com/csheth/landing/internal/prompts"
)

const longPrompt = "Lorem ipsum dolor sit amet"

func newTestModel(t *testing.T, entries ...string) *model {
	t.Helper()
	set := prompts.Default()
	if len(entries) > 0 {
		var err error
		set, err = prompts.New(entries)
		if err != nil {
			t.Fatalf("prompts: %v", err)
		}
	}
	m, ok := New(Config{Prompts: set, CompactWidth: DefaultCompactWidth}).(*model)
	if !ok {
		t.Fatalf("unexpected model type")
	}
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func liveID(t *testing.T, m *model) uint64 {
	t.Helper()
	if live := m.scheduler.Live(); live != 1 {
		t.Fatalf("expected exactly one live timer, got %d", live)
	}
	for id := range m.scheduler.live {
		return id
	}
	return 0
}

func fire(t *testing.T, m *model, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		m.Update(timerFiredMsg{id: liveID(t, m)})
	}
}

func typeRunes(m *model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func assertSuspended(t *testing.T, m *model) {
	t.Helper()
	if m.state.Phase != placeholder.PhaseSuspended {
		t.Fatalf("expected suspended animator, got %v", m.state.Phase)
	}
	if live := m.scheduler.Live(); live != 0 {
		t.Fatalf("suspended animator holds %d timers", live)
	}
}

func TestInitStartsTyping(t *testing.T) {
	m := newTestModel(t, "abc")
	if m.field.Placeholder != "" {
		t.Fatalf("placeholder should start empty, got %q", m.field.Placeholder)
	}
	fire(t, m, 2)
	if m.field.Placeholder != "ab" {
		t.Fatalf("placeholder mismatch: got %q", m.field.Placeholder)
	}
	if m.field.Focused() {
		t.Fatal("field should start blurred")
	}
}

func TestPlaceholderCyclesPrompts(t *testing.T) {
	m := newTestModel(t, "ab", "c")
	fire(t, m, 2)
	if m.state.Phase != placeholder.PhasePaused {
		t.Fatalf("expected pause after typing, got %v", m.state.Phase)
	}
	fire(t, m, 1+2)
	if m.state.Index != 1 || m.field.Placeholder != "" {
		t.Fatalf("expected next prompt from empty, got index %d text %q", m.state.Index, m.field.Placeholder)
	}
	fire(t, m, 1)
	if m.field.Placeholder != "c" {
		t.Fatalf("placeholder mismatch: got %q", m.field.Placeholder)
	}
}

func TestTabAcceptsVisibleSuggestion(t *testing.T) {
	m := newTestModel(t, longPrompt)
	fire(t, m, 13)
	if !m.state.TabAffordanceVisible() {
		t.Fatalf("affordance should be visible at %q", m.state.Text)
	}
	shown := m.state.Text

	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	if got := m.field.Value(); got != shown {
		t.Fatalf("field value mismatch: got %q want %q", got, shown)
	}
	if !m.field.Focused() {
		t.Fatal("field should take focus after accepting")
	}
	if !m.state.HasInput || !m.state.CTAVisible() {
		t.Fatal("accepted text should count as input")
	}
	if m.state.TabAffordanceVisible() {
		t.Fatal("affordance should hide once the field holds text")
	}
	assertSuspended(t, m)
}

func TestTabFocusesWhenSuggestionTooShort(t *testing.T) {
	m := newTestModel(t, longPrompt)
	fire(t, m, 3)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if !m.field.Focused() {
		t.Fatal("tab should focus the field")
	}
	if m.field.Value() != "" {
		t.Fatalf("short suggestion should not be accepted, got %q", m.field.Value())
	}
	if m.field.Placeholder != "Lor" {
		t.Fatalf("focus should freeze the placeholder, got %q", m.field.Placeholder)
	}
	assertSuspended(t, m)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.field.Value() != "" {
		t.Fatalf("tab inside the field should be ignored, got %q", m.field.Value())
	}
}

func TestEscBlurRestartsCurrentPrompt(t *testing.T) {
	m := newTestModel(t, "first", "second")
	fire(t, m, 5+1+5)
	fire(t, m, 2)
	if m.state.Index != 1 {
		t.Fatalf("expected second prompt, got index %d", m.state.Index)
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.field.Focused() {
		t.Fatal("enter should focus the field")
	}
	assertSuspended(t, m)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.field.Focused() {
		t.Fatal("esc should blur the field")
	}
	if m.state.Phase != placeholder.PhaseTyping || m.state.Text != "" || m.state.Index != 1 {
		t.Fatalf("blur should restart prompt 1 from empty, got %+v", m.state)
	}
	fire(t, m, 1)
	if m.field.Placeholder != "s" {
		t.Fatalf("placeholder mismatch after restart: got %q", m.field.Placeholder)
	}
}

func TestTypingSuspendsAndShowsCTA(t *testing.T) {
	m := newTestModel(t, longPrompt)
	fire(t, m, 4)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("i")})
	if !m.field.Focused() {
		t.Fatal("i should focus the field")
	}
	typeRunes(m, "hi")
	if m.field.Value() != "hi" {
		t.Fatalf("field value mismatch: got %q", m.field.Value())
	}
	if !m.state.CTAVisible() {
		t.Fatal("cta should be visible with input")
	}
	assertSuspended(t, m)
	if view := m.View(); !strings.Contains(view, ctaLabel) {
		t.Fatalf("view should render the cta, got:\n%s", view)
	}
}

func TestClearingFieldDoesNotResume(t *testing.T) {
	m := newTestModel(t, longPrompt)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeRunes(m, "x")
	m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.field.Value() != "" {
		t.Fatalf("backspace should clear the field, got %q", m.field.Value())
	}
	if m.state.HasInput || m.state.CTAVisible() {
		t.Fatal("empty field should not count as input")
	}
	assertSuspended(t, m)
}

func TestBlurWithInputStaysSuspended(t *testing.T) {
	m := newTestModel(t, longPrompt)
	fire(t, m, 13)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeRunes(m, "mine")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.field.Focused() {
		t.Fatal("esc should blur the field")
	}
	assertSuspended(t, m)
	if m.state.TabAffordanceVisible() {
		t.Fatal("affordance should stay hidden while the field holds text")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.field.Value() != "mine" {
		t.Fatalf("tab must not overwrite user text, got %q", m.field.Value())
	}
}

func TestSubmitClearsFieldAndKeepsFocus(t *testing.T) {
	m := newTestModel(t, longPrompt)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeRunes(m, "ship it")
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.field.Value() != "" {
		t.Fatalf("submit should clear the field, got %q", m.field.Value())
	}
	if len(m.submitted) != 1 || m.submitted[0] != "ship it" {
		t.Fatalf("unexpected submissions %v", m.submitted)
	}
	if !strings.Contains(m.infoMessage, "ship it") {
		t.Fatalf("info message should echo the prompt, got %q", m.infoMessage)
	}
	if !m.field.Focused() {
		t.Fatal("field should keep focus after submit")
	}
	assertSuspended(t, m)

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if len(m.submitted) != 1 {
		t.Fatal("empty field must not submit")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.state.Phase != placeholder.PhaseTyping || m.scheduler.Live() != 1 {
		t.Fatalf("blur after submit should resume typing, got %v", m.state.Phase)
	}
}

func TestStaleTickIsDropped(t *testing.T) {
	m := newTestModel(t, longPrompt)
	fire(t, m, 2)
	stale := liveID(t, m)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(timerFiredMsg{id: stale})
	if m.state.Text != "Lo" {
		t.Fatalf("stale tick changed the text to %q", m.state.Text)
	}
	assertSuspended(t, m)
}

func TestAtMostOneTimerAcrossEvents(t *testing.T) {
	m := newTestModel(t, "abcdefghijklmnop", "qr")
	events := []tea.Msg{
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.KeyMsg{Type: tea.KeyEsc},
		tea.KeyMsg{Type: tea.KeyEsc},
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")},
		tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyEsc},
		tea.KeyMsg{Type: tea.KeyTab},
		tea.KeyMsg{Type: tea.KeyEsc},
	}
	for i, ev := range events {
		for j := 0; j < 7 && m.scheduler.Live() == 1; j++ {
			fire(t, m, 1)
		}
		m.Update(ev)
		if live := m.scheduler.Live(); live > 1 {
			t.Fatalf("event %d left %d live timers", i, live)
		}
		suspended := m.state.Phase == placeholder.PhaseSuspended
		if suspended != (m.scheduler.Live() == 0) {
			t.Fatalf("event %d: phase %v with %d live timers", i, m.state.Phase, m.scheduler.Live())
		}
	}
}

func TestCtrlCStopsAnimator(t *testing.T) {
	m := newTestModel(t, longPrompt)
	fire(t, m, 1)
	stale := liveID(t, m)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a quit command")
	}
	if !isQuit(cmd()) {
		t.Fatal("ctrl+c should quit the program")
	}
	if m.scheduler.Live() != 0 {
		t.Fatal("teardown should cancel the pending tick")
	}
	m.Update(timerFiredMsg{id: stale})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.state.Text != "L" {
		t.Fatalf("stopped animator changed text to %q", m.state.Text)
	}
}

func isQuit(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, cmd := range msg {
			if cmd != nil && isQuit(cmd()) {
				return true
			}
		}
	}
	return false
}

func TestMouseClickOnBadgeAccepts(t *testing.T) {
	m := newTestModel(t, longPrompt)
	fire(t, m, 14)
	m.View()
	if m.hits.badgeRow < 0 {
		t.Fatal("badge should be drawn on a wide window")
	}
	m.Update(tea.MouseMsg{X: m.hits.badgeStart + pageMarginLeft, Y: m.hits.badgeRow, Type: tea.MouseLeft})
	if m.field.Value() != "Lorem ipsum do" {
		t.Fatalf("badge click should accept the suggestion, got %q", m.field.Value())
	}
}

func TestMouseClickFocusAndBlur(t *testing.T) {
	m := newTestModel(t, longPrompt)
	fire(t, m, 2)
	m.View()
	m.Update(tea.MouseMsg{X: pageMarginLeft + 3, Y: m.hits.fieldTop + 1, Type: tea.MouseLeft})
	if !m.field.Focused() {
		t.Fatal("click inside the field should focus it")
	}
	assertSuspended(t, m)

	m.View()
	m.Update(tea.MouseMsg{X: pageMarginLeft + 3, Y: m.hits.fieldBottom + 8, Type: tea.MouseRelease})
	if !m.field.Focused() {
		t.Fatal("release events should be ignored")
	}
	m.Update(tea.MouseMsg{X: pageMarginLeft + 3, Y: m.hits.fieldBottom + 8, Type: tea.MouseLeft})
	if m.field.Focused() {
		t.Fatal("click outside the field should blur it")
	}
	if m.state.Phase != placeholder.PhaseTyping {
		t.Fatalf("blur should restart typing, got %v", m.state.Phase)
	}
}

func TestMouseClickOnCTAFromBlurredFieldResumes(t *testing.T) {
	m := newTestModel(t, longPrompt)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeRunes(m, "hello")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assertSuspended(t, m)

	m.View()
	if m.hits.ctaRow < 0 {
		t.Fatal("cta should be drawn while the field holds text")
	}
	m.Update(tea.MouseMsg{X: m.hits.ctaStart + pageMarginLeft, Y: m.hits.ctaRow, Type: tea.MouseLeft})

	if len(m.submitted) != 1 || m.submitted[0] != "hello" {
		t.Fatalf("cta click should submit, got %v", m.submitted)
	}
	if m.field.Focused() || m.field.Value() != "" {
		t.Fatalf("expected an empty blurred field, got focused=%v value=%q", m.field.Focused(), m.field.Value())
	}
	if m.state.Phase != placeholder.PhaseTyping || m.state.Text != "" || m.scheduler.Live() != 1 {
		t.Fatalf("animation should restart after submitting from a blurred field, got %+v with %d timers", m.state, m.scheduler.Live())
	}
	fire(t, m, 1)
	if m.field.Placeholder != "L" {
		t.Fatalf("placeholder mismatch after restart: got %q", m.field.Placeholder)
	}
}

func TestMouseClickOnCTAWhileFocusedKeepsFocus(t *testing.T) {
	m := newTestModel(t, longPrompt)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeRunes(m, "focused send")
	m.View()
	m.Update(tea.MouseMsg{X: m.hits.ctaEnd - 1 + pageMarginLeft, Y: m.hits.ctaRow, Type: tea.MouseLeft})
	if len(m.submitted) != 1 {
		t.Fatalf("cta click should submit, got %v", m.submitted)
	}
	if !m.field.Focused() {
		t.Fatal("field should keep focus after submit")
	}
	assertSuspended(t, m)
}

func TestCompactWindowHidesBadge(t *testing.T) {
	m := newTestModel(t, longPrompt)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 24})
	fire(t, m, 13)
	view := m.View()
	if m.hits.badgeRow >= 0 || strings.Contains(view, tabBadgeLabel) {
		t.Fatal("compact window should not draw the badge")
	}
	if !m.state.TabAffordanceVisible() {
		t.Fatal("affordance state is independent of width")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.field.Value() != "Lorem ipsum d" {
		t.Fatalf("tab should still accept on compact windows, got %q", m.field.Value())
	}
}

func TestViewRendersHero(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	for _, want := range []string{DefaultHeadline, "write a prompt", "quit"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
	fire(t, m, 13)
	if view := m.View(); !strings.Contains(view, tabBadgeLabel) {
		t.Fatalf("view should draw the tab badge once the suggestion is long enough:\n%s", view)
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if !m.helpVisible || !m.help.ShowAll {
		t.Fatal("? should expand the help")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if m.helpVisible {
		t.Fatal("? should collapse the help")
	}
}

func TestBadgeColumn(t *testing.T) {
	cases := []struct {
		name  string
		caret float64
		badge int
		frame int
		want  int
	}{
		{name: "trails text", caret: 12.6, badge: 7, frame: 80, want: 15},
		{name: "clamped to frame", caret: 90, badge: 7, frame: 40, want: 33},
		{name: "narrow frame", caret: 5, badge: 7, frame: 4, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := badgeColumn(tc.caret, tc.badge, tc.frame); got != tc.want {
				t.Fatalf("badgeColumn = %d, want %d", got, tc.want)
			}
		})
	}
}

type recorderFunc func(journal.Entry) error

func (f recorderFunc) Record(entry journal.Entry) error {
	return f(entry)
}

func TestSubmitRecordsJournalEntry(t *testing.T) {
	m := newTestModel(t, longPrompt)
	var recorded []journal.Entry
	m.config.Journal = recorderFunc(func(entry journal.Entry) error {
		recorded = append(recorded, entry)
		return nil
	})
	fire(t, m, 13)
	m.Update(tea.KeyMsg{Type: tea.KeyTab})

	cmd := m.submit()
	if cmd == nil {
		t.Fatal("submit should return a save command when a journal is configured")
	}
	saved, ok := cmd().(submissionSavedMsg)
	if !ok || saved.err != nil {
		t.Fatalf("unexpected save result %#v", saved)
	}
	if len(recorded) != 1 || recorded[0].Prompt != "Lorem ipsum d" || !recorded[0].FromSuggestion {
		t.Fatalf("unexpected journal entries %#v", recorded)
	}

	typeRunes(m, "own words")
	if cmd := m.submit(); cmd != nil {
		cmd()
	}
	if len(recorded) != 2 || recorded[1].FromSuggestion {
		t.Fatalf("typed prompt should not be marked as a suggestion: %#v", recorded)
	}
}

func TestJournalFailureIsShown(t *testing.T) {
	m := newTestModel(t, longPrompt)
	m.config.Journal = recorderFunc(func(journal.Entry) error {
		return errors.New("disk full")
	})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeRunes(m, "hello")
	cmd := m.submit()
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	m.Update(cmd())
	if !strings.Contains(m.errorMessage, "disk full") {
		t.Fatalf("error message should mention the failure, got %q", m.errorMessage)
	}
	if view := m.View(); !strings.Contains(view, "disk full") {
		t.Fatalf("view should surface the error:\n%s", view)
	}
}

func TestSubmitWithoutJournal(t *testing.T) {
	m := newTestModel(t, longPrompt)
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	typeRunes(m, "hello")
	if cmd := m.submit(); cmd != nil {
		t.Fatal("no journal means no save command")
	}
	if len(m.submitted) != 1 {
		t.Fatalf("submission should still be tracked, got %v", m.submitted)
	}
}
