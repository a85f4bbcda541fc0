package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/csheth/landing/internal/journal"
	"github.com/csheth/landing/internal/placeholder"
	"github.com/csheth/landing/internal/prompts"
)

// Recorder persists submitted prompts.
type Recorder interface {
	Record(entry journal.Entry) error
}

// Config wires runtime options into the TUI program.
type Config struct {
	Prompts      prompts.Set
	Timing       placeholder.Timing
	Headline     string
	Subtitle     string
	CompactWidth int
	Logger       *zap.Logger
	// Journal receives submitted prompts. Nil keeps them in memory only.
	Journal Recorder
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.Prompts.Len() == 0 {
		config.Prompts = prompts.Default()
	}
	if config.Headline == "" {
		config.Headline = DefaultHeadline
	}
	if config.Subtitle == "" {
		config.Subtitle = DefaultSubtitle
	}
	if config.CompactWidth < 0 {
		config.CompactWidth = 0
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	field := textarea.New()
	field.Prompt = ""
	field.ShowLineNumbers = false
	field.SetHeight(fieldRows)
	field.FocusedStyle.CursorLine = lipgloss.NewStyle()
	field.FocusedStyle.Placeholder = placeholderStyle
	field.BlurredStyle.Placeholder = placeholderStyle
	field.Blur()

	m := &model{
		config:    config,
		log:       config.Logger.Named("tui"),
		field:     field,
		scheduler: newTeaScheduler(),
		layout:    newPageLayout(),
		keys:      newKeyMap(),
		help:      help.New(),
		hits:      emptyHitMap(),
	}
	m.field.SetWidth(m.layout.fieldWidth)
	m.animator = placeholder.New(
		config.Prompts,
		m.scheduler,
		placeholder.WithTiming(config.Timing),
		placeholder.WithLogger(config.Logger.Named("animator")),
		placeholder.WithObserver(m.observe),
	)
	m.state = m.animator.State()
	m.syncKeys()
	return m
}

type model struct {
	config    Config
	log       *zap.Logger
	field     textarea.Model
	scheduler *teaScheduler
	animator  *placeholder.Animator
	state     placeholder.State
	layout    pageLayout
	keys      keyMap
	help      help.Model
	hits      hitMap

	helpVisible  bool
	infoMessage  string
	errorMessage string
	accepted     string
	submitted    []string
	shuttingDown bool
}

type submissionSavedMsg struct {
	prompt string
	err    error
}

func (m *model) Init() tea.Cmd {
	m.animator.Start()
	m.log.Debug("hero mounted", zap.Int("prompts", m.config.Prompts.Len()))
	return m.scheduler.Drain()
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.syncKeys()
	return m, tea.Batch(cmd, m.scheduler.Drain())
}

func (m *model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case timerFiredMsg:
		m.scheduler.Fire(msg.id)
		return nil
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, m.config.CompactWidth)
		m.field.SetWidth(m.layout.fieldWidth)
		m.help.Width = m.layout.wrapWidth
		return nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case submissionSavedMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("Could not save prompt: %v", msg.err)
			m.log.Warn("journal write failed", zap.String("prompt", msg.prompt), zap.Error(msg.err))
			return nil
		}
		m.log.Debug("prompt saved", zap.String("prompt", msg.prompt))
		return nil
	}
	if m.field.Focused() {
		var cmd tea.Cmd
		m.field, cmd = m.field.Update(msg)
		return cmd
	}
	return nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.field.Focused() {
		return m.handleFieldKey(msg)
	}
	switch {
	case key.Matches(msg, m.keys.Accept):
		return m.acceptSuggestion()
	case key.Matches(msg, m.keys.Focus):
		return m.focusField()
	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		m.help.ShowAll = m.helpVisible
		return nil
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	}
	return nil
}

func (m *model) handleFieldKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Blur):
		m.blurField()
		return nil
	case key.Matches(msg, m.keys.Submit):
		return m.submit()
	case msg.Type == tea.KeyTab:
		return nil
	}
	before := m.field.Value()
	var cmd tea.Cmd
	m.field, cmd = m.field.Update(msg)
	if after := m.field.Value(); after != before {
		m.animator.Input(after)
	}
	return cmd
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Type != tea.MouseLeft {
		return nil
	}
	x, y := msg.X-pageMarginLeft, msg.Y
	switch {
	case m.hits.onBadge(x, y) && m.state.TabAffordanceVisible():
		return m.acceptSuggestion()
	case m.hits.onCTA(x, y):
		return m.submit()
	case m.hits.inField(x, y):
		if m.field.Focused() {
			return nil
		}
		return m.focusField()
	case m.field.Focused():
		m.blurField()
	}
	return nil
}

func (m *model) focusField() tea.Cmd {
	cmd := m.field.Focus()
	m.animator.Focus()
	m.infoMessage = ""
	m.errorMessage = ""
	return cmd
}

func (m *model) blurField() {
	m.field.Blur()
	m.animator.Blur()
}

// acceptSuggestion copies the displayed placeholder into the field and
// hands focus to it.
func (m *model) acceptSuggestion() tea.Cmd {
	text := m.animator.AcceptTab()
	m.field.SetValue(text)
	m.accepted = m.field.Value()
	cmd := m.field.Focus()
	m.animator.Focus()
	m.animator.Input(m.field.Value())
	m.infoMessage = ""
	m.log.Info("suggestion accepted", zap.String("text", text), zap.Int("index", m.state.Index))
	return cmd
}

func (m *model) submit() tea.Cmd {
	value := strings.TrimSpace(m.field.Value())
	if !m.state.CTAVisible() || value == "" {
		return nil
	}
	entry := journal.Entry{
		Prompt:         value,
		FromSuggestion: m.accepted != "" && value == strings.TrimSpace(m.accepted),
	}
	m.submitted = append(m.submitted, value)
	m.log.Info("prompt submitted",
		zap.String("prompt", value),
		zap.Bool("from_suggestion", entry.FromSuggestion),
		zap.Int("count", len(m.submitted)),
	)
	m.infoMessage = fmt.Sprintf("Sent: %s", previewText(value, submittedPreviewLimit))
	m.errorMessage = ""
	m.accepted = ""
	m.field.Reset()
	m.animator.Input("")
	if !m.field.Focused() {
		// A click on the CTA can submit from a blurred field; with the
		// field now empty the animation picks up again.
		m.animator.Blur()
	}
	return saveSubmissionCmd(m.config.Journal, entry)
}

func saveSubmissionCmd(recorder Recorder, entry journal.Entry) tea.Cmd {
	if recorder == nil {
		return nil
	}
	return func() tea.Msg {
		return submissionSavedMsg{prompt: entry.Prompt, err: recorder.Record(entry)}
	}
}

func (m *model) quit() tea.Cmd {
	m.teardown()
	return tea.Quit
}

func (m *model) teardown() {
	if m.shuttingDown {
		return
	}
	m.shuttingDown = true
	m.animator.Stop()
	m.log.Debug("hero unmounted", zap.Int("submitted", len(m.submitted)))
}

// observe mirrors animator snapshots into the field placeholder.
func (m *model) observe(state placeholder.State) {
	m.state = state
	m.field.Placeholder = state.Text
}

func (m *model) syncKeys() {
	m.keys.sync(m.field.Focused(), m.state.TabAffordanceVisible(), m.state.CTAVisible())
}

var (
	helperStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	heroAccentColor        = lipgloss.Color("#ff8c00")
	heroEmberColor         = lipgloss.Color("#2b1400")
	heroTextColor          = lipgloss.Color("#fff4d0")
	heroSecondaryTextColor = lipgloss.Color("#ffb347")
	fieldIdleColor         = lipgloss.Color("#56526e")

	pageStyle          = lipgloss.NewStyle().PaddingLeft(pageMarginLeft)
	heroTitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(heroAccentColor)
	subtitleStyle      = lipgloss.NewStyle().Foreground(heroTextColor)
	taglineStyle       = lipgloss.NewStyle().Foreground(heroSecondaryTextColor).Italic(true)
	placeholderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	fieldFrameStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(fieldIdleColor).Padding(0, 1)
	fieldFocusStyle    = fieldFrameStyle.Copy().BorderForeground(heroAccentColor)
	tabBadgeStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	ctaStyle           = lipgloss.NewStyle().Bold(true).Foreground(heroEmberColor).Background(heroAccentColor).Padding(0, 1)
	infoStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("#a3be8c"))
	logoFaceStyle      = lipgloss.NewStyle().Bold(true).Foreground(heroTextColor).Background(heroEmberColor)
	logoShadowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#110600"))
	logoContainerStyle = lipgloss.NewStyle().Padding(0, 1)
	logoArtLines       = []string{
		"█   ▄▀█ █▄ █ █▀▄ █ █▄ █ █▀▀",
		"█▄▄ █▀█ █ ▀█ █▄▀ █ █ ▀█ █▄█",
	}
)
