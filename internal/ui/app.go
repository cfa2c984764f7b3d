// Package ui is the interactive terminal front end of synopsis
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/yildizm/synopsis/internal/article"
	"github.com/yildizm/synopsis/internal/clipboard"
	"github.com/yildizm/synopsis/internal/emoji"
	"github.com/yildizm/synopsis/internal/logger"
	"github.com/yildizm/synopsis/internal/session"
	"github.com/yildizm/synopsis/internal/view"
)

// CopiedLabel is shown after the summary reaches the clipboard
const CopiedLabel = "Copied!"

// CopiedDisplayWindow is how long the copied label stays visible
const CopiedDisplayWindow = 2 * time.Second

// PlaceholderText invites the user to load the sample article
const PlaceholderText = "Nothing here yet. Paste an article above or press ctrl+d to load a sample."

const (
	defaultWrapWidth = 80
	minEditorHeight  = 3
	chromeHeight     = 8
)

// Options configures the terminal UI
type Options struct {
	Client    session.Summarizer
	Text      string
	Source    string
	Watcher   *article.Watcher
	WrapWidth int
	Logger    *logger.Logger
}

type focusArea int

const (
	focusEditor focusArea = iota
	focusOutput
)

type copiedExpiredMsg struct {
	id uint64
}

type articleReloadedMsg struct {
	doc *article.Document
}

type watcherClosedMsg struct{}

// Model is the bubbletea model for the summarizer screen
type Model struct {
	ctrl    *session.Controller
	styles  *Styles
	log     *logger.Logger
	watcher *article.Watcher

	editor  textarea.Model
	spinner spinner.Model
	output  viewport.Model

	source    string
	wrapWidth int
	width     int
	height    int
	ready     bool
	quitting  bool
	focus     focusArea

	notice    string
	noticeSeq uint64
	copy      func(string) error
}

// NewModel creates the model. ctx bounds every request the session makes.
func NewModel(ctx context.Context, opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	styles := GetStyles()

	editor := textarea.New()
	editor.Placeholder = "Paste your article here..."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.SetWidth(defaultWrapWidth)
	editor.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = styles.Spinner

	wrap := opts.WrapWidth
	if wrap <= 0 {
		wrap = defaultWrapWidth
	}

	m := &Model{
		ctrl:      session.New(ctx, opts.Client, log),
		styles:    styles,
		log:       log.WithComponent("ui"),
		watcher:   opts.Watcher,
		editor:    editor,
		spinner:   spin,
		output:    viewport.New(defaultWrapWidth, 10),
		source:    opts.Source,
		wrapWidth: wrap,
		focus:     focusEditor,
		copy:      clipboard.Copy,
	}

	if opts.Text != "" {
		m.ctrl.SetText(opts.Text)
		m.editor.SetValue(opts.Text)
	}
	m.refreshOutput()

	return m
}

// Run starts the program in the alternate screen and blocks until it exits
func Run(ctx context.Context, opts Options) error {
	program := tea.NewProgram(NewModel(ctx, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run terminal UI: %w", err)
	}
	return nil
}

// Controller exposes the session for callers that drive the model directly
func (m *Model) Controller() *session.Controller {
	return m.ctrl
}

// Init starts the cursor blink and the file watcher listener
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.waitForReload())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	case session.SummarizeDoneMsg, session.DemoDoneMsg, session.ErrorExpiredMsg:
		return m.handleSessionMsg(msg)
	case articleReloadedMsg:
		return m.handleArticleReloaded(msg)
	case watcherClosedMsg:
		m.log.Debug("watcher closed")
		return m, nil
	case copiedExpiredMsg:
		if msg.id == m.noticeSeq {
			m.notice = ""
		}
		return m, nil
	}

	return m.forwardToFocused(msg)
}

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	width := msg.Width - 2
	if width < 20 {
		width = 20
	}
	if width < m.wrapWidth+4 {
		m.wrapWidth = width - 4
	}

	available := msg.Height - chromeHeight
	editorHeight := available / 2
	if editorHeight < minEditorHeight {
		editorHeight = minEditorHeight
	}
	outputHeight := available - editorHeight
	if outputHeight < minEditorHeight {
		outputHeight = minEditorHeight
	}

	m.editor.SetWidth(width)
	m.editor.SetHeight(editorHeight)
	m.output.Width = width
	m.output.Height = outputHeight
	m.refreshOutput()

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc":
		if m.focus == focusOutput {
			m.quitting = true
			return m, tea.Quit
		}
		m.setFocus(focusOutput)
		return m, nil
	case "tab":
		if m.focus == focusEditor {
			m.setFocus(focusOutput)
		} else {
			m.setFocus(focusEditor)
		}
		return m, nil
	case "ctrl+s":
		return m, m.summarize()
	case "ctrl+d":
		return m, m.loadDemo()
	case "ctrl+l":
		return m, m.clearAll()
	case "ctrl+y":
		return m, m.copySummary()
	}

	return m.forwardToFocused(msg)
}

// forwardToFocused passes input to the focused widget. Editor changes reach
// the session as a plain text update.
func (m *Model) forwardToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.focus == focusOutput {
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}

	before := m.editor.Value()
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		m.ctrl.SetText(after)
	}
	return m, cmd
}

func (m *Model) handleSpinnerTick(msg spinner.TickMsg) (tea.Model, tea.Cmd) {
	if !m.busy() {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m *Model) handleSessionMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.ctrl.Update(msg)
	m.syncEditor()
	m.refreshOutput()
	return m, cmd
}

func (m *Model) handleArticleReloaded(msg articleReloadedMsg) (tea.Model, tea.Cmd) {
	m.log.Debug("article reloaded from %s", msg.doc.Source)
	m.ctrl.SetText(msg.doc.Text)
	m.syncEditor()
	return m, m.waitForReload()
}

func (m *Model) summarize() tea.Cmd {
	return m.startRequest(m.ctrl.RequestSummarize)
}

func (m *Model) loadDemo() tea.Cmd {
	return m.startRequest(m.ctrl.RequestDemo)
}

// startRequest runs a session request and starts the spinner when it is the
// first one in flight.
func (m *Model) startRequest(request func() tea.Cmd) tea.Cmd {
	wasBusy := m.busy()
	cmd := request()
	m.refreshOutput()
	if cmd == nil {
		return nil
	}
	if !wasBusy && m.busy() {
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

func (m *Model) clearAll() tea.Cmd {
	cmd := m.ctrl.ClearAll()
	m.editor.Reset()
	m.refreshOutput()
	return cmd
}

// copySummary copies the visible summary and shows the copied label. A newer
// copy replaces the label timer of the previous one.
func (m *Model) copySummary() tea.Cmd {
	p := view.Project(m.ctrl.Snapshot())
	if !p.ShowSummary {
		return nil
	}

	if err := m.copy(p.Summary); err != nil {
		m.log.Warn("copy failed: %v", err)
		m.notice = "Copy failed: " + err.Error()
	} else {
		m.notice = CopiedLabel
	}

	m.noticeSeq++
	id := m.noticeSeq
	return tea.Tick(CopiedDisplayWindow, func(time.Time) tea.Msg {
		return copiedExpiredMsg{id: id}
	})
}

// waitForReload blocks on the watcher until the next reload
func (m *Model) waitForReload() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	updates := m.watcher.Updates()
	return func() tea.Msg {
		doc, ok := <-updates
		if !ok {
			return watcherClosedMsg{}
		}
		return articleReloadedMsg{doc: doc}
	}
}

// syncEditor copies session text into the editor after demo loads and reloads
func (m *Model) syncEditor() {
	if text := m.ctrl.Text(); text != m.editor.Value() {
		m.editor.SetValue(text)
	}
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	if f == focusEditor {
		m.editor.Focus()
		return
	}
	m.editor.Blur()
}

func (m *Model) busy() bool {
	snap := m.ctrl.Snapshot()
	return snap.Summarizing || snap.LoadingDemo
}

// refreshOutput re-renders the result regions into the viewport
func (m *Model) refreshOutput() {
	m.output.SetContent(m.renderOutput(view.Project(m.ctrl.Snapshot())))
}

// View renders the screen
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return m.styles.Muted.Render("Starting synopsis...")
	}

	p := view.Project(m.ctrl.Snapshot())

	editorStyle := m.styles.Editor
	if m.focus == focusEditor {
		editorStyle = m.styles.EditorFocused
	}

	sections := []string{
		m.renderTitle(),
		editorStyle.Render(m.editor.View()),
		m.renderCounts(p),
		m.renderButtons(p),
		m.output.View(),
		m.renderHelp(),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderTitle() string {
	title := m.styles.Title.Render(emoji.GetEmoji("summary") + " Synopsis")
	if m.source == "" {
		return title
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, m.styles.Muted.Render(m.source))
}

func (m *Model) renderCounts(p view.Projection) string {
	return m.styles.Stats.Render(fmt.Sprintf("Words: %d  Characters: %d", p.Words, p.Chars))
}

func (m *Model) renderButtons(p view.Projection) string {
	buttons := []string{
		m.button(p.SummarizeLabel, p.SummarizeEnabled),
		m.button(p.DemoLabel, p.DemoEnabled),
	}
	if p.ShowSpinner || !p.DemoEnabled {
		buttons = append(buttons, " "+m.spinner.View())
	}
	if m.notice != "" {
		buttons = append(buttons, " "+m.styles.Notice.Render(m.notice))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, buttons...)
}

func (m *Model) button(label string, enabled bool) string {
	if enabled {
		return m.styles.Button.Render(label)
	}
	return m.styles.ButtonDisabled.Render(label)
}

func (m *Model) renderOutput(p view.Projection) string {
	var blocks []string

	if p.ShowError {
		blocks = append(blocks, m.styles.ErrorBox.Render(emoji.GetEmoji("error")+" "+m.wrap(p.ErrorMessage)))
	}

	if p.ShowSummary {
		var b strings.Builder
		b.WriteString(m.styles.Header.Render(emoji.GetEmoji("summary") + " Summary"))
		b.WriteString("\n")
		b.WriteString(m.styles.Body.Render(m.wrap(p.Summary)))
		if p.ShowStats {
			b.WriteString("\n\n")
			b.WriteString(m.styles.Stats.Render(fmt.Sprintf("%s %d words in, %d words out, %s compression",
				emoji.GetEmoji("statistics"), p.Stats.InputWords, p.Stats.SummaryWords, p.Stats.CompressionRate)))
		}
		blocks = append(blocks, m.styles.SummaryBox.Render(b.String()))
	}

	if p.ShowReference {
		body := m.styles.Header.Render(emoji.GetEmoji("reference")+" Reference Summary") + "\n" +
			m.styles.Body.Render(m.wrap(p.Reference))
		blocks = append(blocks, m.styles.ReferenceBox.Render(body))
	}

	if p.ShowPlaceholder {
		blocks = append(blocks, m.styles.Placeholder.Render(m.wrap(PlaceholderText)))
	}

	return strings.Join(blocks, "\n")
}

func (m *Model) renderHelp() string {
	return m.styles.Muted.Render("ctrl+s summarize • ctrl+d sample • ctrl+l clear • ctrl+y copy • tab focus • esc quit")
}

func (m *Model) wrap(text string) string {
	return wordwrap.String(text, m.wrapWidth)
}
