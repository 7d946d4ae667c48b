package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/radialtext/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner provides a progress indicator with context cancellation support.
type Spinner struct {
	out     io.Writer
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
	started bool

	mu      sync.Mutex
	message string
	width   int
}

// newSpinner creates a spinner on stderr that stops when ctx is done.
func newSpinner(ctx context.Context, message string) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, message)
}

// newSpinnerTo creates a spinner writing to w.
func newSpinnerTo(ctx context.Context, w io.Writer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		out:     w,
		parent:  ctx,
		ctx:     spinnerCtx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		message: message,
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()

	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// SetMessage replaces the text next to the spinner.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(s.message)
	pad := max(s.width-len(s.message), 0)
	fmt.Fprintf(s.out, "\r%s%s", line, strings.Repeat(" ", pad))
	s.width = max(s.width, len(s.message))
}

// Stop stops the spinner and clears the line. It is safe to call more
// than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
		s.mu.Lock()
		started := s.started
		s.mu.Unlock()
		if started {
			<-s.stopped
		}
		s.cancel()
		s.clearLine()
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", max(s.width, len(s.message))+4))
}

// Cancelled reports whether the context the spinner was created with
// has ended. Stop alone does not cancel it.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}

// =============================================================================
// Export Progress
// =============================================================================

// stageMessages are shown while the export stage after the named one runs.
var stageMessages = map[string]string{
	"snapshot":  "Rasterizing...",
	"rasterize": "Drawing...",
	"draw":      "Encoding...",
	"encode":    "Publishing...",
}

// spinnerHooks moves a spinner along the export stages and logs each
// stage at debug level.
type spinnerHooks struct {
	observability.NoopExportHooks
	spinner *Spinner
	logger  *log.Logger
}

func (h spinnerHooks) OnStageComplete(_ context.Context, stage string, d time.Duration, err error) {
	logStage(h.logger, stage, d, err)
	if msg, ok := stageMessages[stage]; ok && err == nil {
		h.spinner.SetMessage(msg)
	}
}

// trackExport shows export progress on s until the returned func is called.
func trackExport(s *Spinner, logger *log.Logger) (restore func()) {
	prev := observability.Export()
	observability.SetExportHooks(spinnerHooks{spinner: s, logger: logger})
	return func() { observability.SetExportHooks(prev) }
}
