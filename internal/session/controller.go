// Package session holds the request lifecycle of one summarization session:
// the article buffer, the summarize and demo guards, the current result and
// the transient error with its display window.
package session

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/synopsis/internal/article"
	"github.com/yildizm/synopsis/internal/logger"
	"github.com/yildizm/synopsis/internal/remote"
)

// ValidationMessage is shown when summarize is triggered on blank input
const ValidationMessage = "Please paste an article first!"

// ErrorDisplayWindow is how long an error stays visible
const ErrorDisplayWindow = 5 * time.Second

// RequestState is the lifecycle phase shown to the user
type RequestState int

const (
	Idle RequestState = iota
	Summarizing
	LoadingDemo
)

// String returns the state name
func (s RequestState) String() string {
	switch s {
	case Summarizing:
		return "summarizing"
	case LoadingDemo:
		return "loading_demo"
	default:
		return "idle"
	}
}

// Summarizer is the remote service as seen by the controller
type Summarizer interface {
	Summarize(ctx context.Context, text string) (*remote.SummaryResult, error)
	FetchDemo(ctx context.Context) (*remote.DemoResult, error)
}

// ErrorState is the error currently on display
type ErrorState struct {
	ID        uint64
	Message   string
	ExpiresAt time.Time
}

// Snapshot is a read-only copy of controller state
type Snapshot struct {
	Text            string
	Metrics         article.Metrics
	Summarizing     bool
	LoadingDemo     bool
	Summary         *remote.SummaryResult
	Reference       string
	Error           *ErrorState
	ShowPlaceholder bool
}

// State reports the request phase. The two guards are independent, so both
// requests can be in flight; summarize wins in that case.
func (s Snapshot) State() RequestState {
	switch {
	case s.Summarizing:
		return Summarizing
	case s.LoadingDemo:
		return LoadingDemo
	default:
		return Idle
	}
}

// Controller drives the session. All methods must be called from the
// bubbletea update goroutine; the commands they return do the blocking work.
type Controller struct {
	client Summarizer
	ctx    context.Context
	now    func() time.Time
	log    *logger.Logger

	buffer         *article.Buffer
	summarizeGuard guard
	demoGuard      guard

	summary     *remote.SummaryResult
	reference   string
	err         *ErrorState
	errSeq      uint64
	placeholder bool
}

// New creates a controller backed by client. ctx bounds every request; a nil
// ctx means context.Background().
func New(ctx context.Context, client Summarizer, log *logger.Logger) *Controller {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Controller{
		client:         client,
		ctx:            ctx,
		now:            time.Now,
		log:            log.WithComponent("session"),
		buffer:         article.NewBuffer(),
		summarizeGuard: guard{name: remote.OpSummarize},
		demoGuard:      guard{name: remote.OpDemo},
	}
}

// SetText replaces the article text, as on every edit
func (c *Controller) SetText(raw string) {
	c.buffer.SetText(raw)
}

// Text returns the current article text
func (c *Controller) Text() string {
	return c.buffer.Text()
}

// Snapshot copies the current state for rendering
func (c *Controller) Snapshot() Snapshot {
	snap := Snapshot{
		Text:            c.buffer.Text(),
		Metrics:         c.buffer.Metrics(),
		Summarizing:     c.summarizeGuard.active(),
		LoadingDemo:     c.demoGuard.active(),
		Reference:       c.reference,
		ShowPlaceholder: c.placeholder,
	}
	if c.summary != nil {
		summary := *c.summary
		if summary.Stats != nil {
			stats := *summary.Stats
			summary.Stats = &stats
		}
		snap.Summary = &summary
	}
	if c.err != nil {
		errState := *c.err
		snap.Error = &errState
	}
	return snap
}

// RequestSummarize starts a summarize request. It returns nil when one is
// already in flight, and an expiry command when the input is blank.
func (c *Controller) RequestSummarize() tea.Cmd {
	if c.summarizeGuard.active() {
		c.log.Debug("%s already in flight, trigger dropped", c.summarizeGuard.name)
		return nil
	}

	if c.buffer.IsBlank() {
		c.log.Debug("summarize rejected: empty input")
		return c.showError(ValidationMessage)
	}
	text := strings.TrimSpace(c.buffer.Text())

	c.reset()
	release, _ := c.summarizeGuard.acquire()

	c.log.InfoWithFields("summarize started", []logger.Field{
		logger.F("words", article.CountWords(text)),
	})

	client, ctx := c.client, c.ctx
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = SummarizeDoneMsg{
					Err:     panicError(remote.OpSummarize, remote.FallbackSummarizeMessage, r),
					release: release,
				}
			}
		}()
		result, err := client.Summarize(ctx, text)
		return SummarizeDoneMsg{Result: result, Err: err, release: release}
	}
}

// RequestDemo starts a demo request. It returns nil when one is already in
// flight; a running summarize does not block it.
func (c *Controller) RequestDemo() tea.Cmd {
	if c.demoGuard.active() {
		c.log.Debug("%s already in flight, trigger dropped", c.demoGuard.name)
		return nil
	}

	c.reset()
	release, _ := c.demoGuard.acquire()

	c.log.Info("demo load started")

	client, ctx := c.client, c.ctx
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = DemoDoneMsg{
					Err:     panicError(remote.OpDemo, remote.FallbackDemoMessage, r),
					release: release,
				}
			}
		}()
		result, err := client.FetchDemo(ctx)
		return DemoDoneMsg{Result: result, Err: err, release: release}
	}
}

// ClearAll empties the article, resets the display and shows the
// placeholder. Requests in flight keep running and still report back.
func (c *Controller) ClearAll() tea.Cmd {
	c.buffer.Clear()
	c.reset()
	c.placeholder = true
	c.log.Debug("session cleared")
	return nil
}

// Update consumes completion and expiry messages. Other messages are ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SummarizeDoneMsg:
		return c.handleSummarizeDone(msg)
	case DemoDoneMsg:
		return c.handleDemoDone(msg)
	case ErrorExpiredMsg:
		c.handleErrorExpired(msg)
	}
	return nil
}

func (c *Controller) handleSummarizeDone(msg SummarizeDoneMsg) tea.Cmd {
	if msg.release != nil {
		defer msg.release()
	}

	if msg.Err != nil || msg.Result == nil || msg.Result.Summary == "" {
		c.log.WarnWithFields("summarize failed", []logger.Field{logger.Error(msg.Err)})
		return c.showError(remote.MessageOf(msg.Err, remote.FallbackSummarizeMessage))
	}

	c.summary = msg.Result
	c.log.InfoWithFields("summarize completed", []logger.Field{
		logger.F("summary_words", article.CountWords(msg.Result.Summary)),
		logger.F("stats", msg.Result.HasStats()),
	})
	return nil
}

func (c *Controller) handleDemoDone(msg DemoDoneMsg) tea.Cmd {
	if msg.release != nil {
		defer msg.release()
	}

	if msg.Err != nil || msg.Result == nil || msg.Result.Document == "" {
		c.log.WarnWithFields("demo load failed", []logger.Field{logger.Error(msg.Err)})
		return c.showError(remote.MessageOf(msg.Err, remote.FallbackDemoMessage))
	}

	c.buffer.SetText(msg.Result.Document)
	if msg.Result.HasReference() {
		c.reference = msg.Result.ReferenceSummary
	}

	c.log.InfoWithFields("demo loaded", []logger.Field{
		logger.F("words", c.buffer.Metrics().Words),
		logger.F("reference", msg.Result.HasReference()),
	})
	return nil
}

func (c *Controller) handleErrorExpired(msg ErrorExpiredMsg) {
	if c.err == nil || c.err.ID != msg.ID {
		return
	}
	c.log.Debug("error %d expired", msg.ID)
	c.err = nil
}

// showError replaces the current error. The previous error's expiry no
// longer matches and is ignored when it fires.
func (c *Controller) showError(message string) tea.Cmd {
	c.errSeq++
	id := c.errSeq
	c.err = &ErrorState{
		ID:        id,
		Message:   message,
		ExpiresAt: c.now().Add(ErrorDisplayWindow),
	}
	return tea.Tick(ErrorDisplayWindow, func(time.Time) tea.Msg {
		return ErrorExpiredMsg{ID: id}
	})
}

// reset hides every result and error. Calling it twice has the same effect
// as calling it once.
func (c *Controller) reset() {
	c.summary = nil
	c.reference = ""
	c.err = nil
	c.placeholder = false
}
