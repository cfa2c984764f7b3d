package session

import (
	"fmt"

	"github.com/yildizm/synopsis/internal/remote"
)

// SummarizeDoneMsg is delivered once when a summarize request ends
type SummarizeDoneMsg struct {
	Result  *remote.SummaryResult
	Err     error
	release func()
}

// DemoDoneMsg is delivered once when a demo request ends
type DemoDoneMsg struct {
	Result  *remote.DemoResult
	Err     error
	release func()
}

// ErrorExpiredMsg fires when the display window of error ID has elapsed
type ErrorExpiredMsg struct {
	ID uint64
}

// panicError turns a recovered panic from a request into a failure carrying
// the fallback message for op.
func panicError(op, fallback string, recovered interface{}) error {
	err := remote.NewRemoteError(op, "", fallback, 0)
	err.Cause = fmt.Errorf("unexpected failure: %v", recovered)
	return err
}
