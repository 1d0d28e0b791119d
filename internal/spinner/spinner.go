// Package spinner shows pipeline progress on the terminal while documents are
// fetched and scored.
package spinner

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// Spinner represents a spinning progress indicator with a changeable step message.
type Spinner struct {
	frames   []string
	delay    time.Duration
	writer   io.Writer
	disabled bool
	active   bool
	mu       sync.RWMutex
	ctx      context.Context
	cancel   context.CancelFunc
	message  string
	wg       sync.WaitGroup
}

// New creates a spinner that writes to writer.
// ctx allows for cancellation of the spinner goroutine.
func New(ctx context.Context, writer io.Writer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		frames:  []string{"◜", "◠", "◝", "◞", "◡", "◟"},
		delay:   100 * time.Millisecond,
		writer:  writer,
		message: message,
		ctx:     spinnerCtx,
		cancel:  cancel,
	}
}

// ForTerminal creates a spinner on f that stays silent unless f is a
// terminal, so redirected stderr never collects animation frames.
func ForTerminal(ctx context.Context, f *os.File, message string) *Spinner {
	s := New(ctx, f, message)
	s.disabled = !isTerminal(f)
	return s
}

// Start begins the spinner animation. It does nothing on a disabled spinner.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active || s.disabled {
		return
	}

	s.active = true

	s.wg.Add(1)
	go s.run()
}

// Stop stops the spinner animation and clears the line.
func (s *Spinner) Stop() {
	if !s.halt() {
		return
	}

	// only clear with control sequences if we're writing to a terminal
	if f, ok := s.writer.(*os.File); ok && isTerminal(f) {
		fmt.Fprint(s.writer, "\r\033[2K")
	} else {
		fmt.Fprint(s.writer, "\r")
	}
}

// Done stops the spinner and leaves a final status line in its place.
func (s *Spinner) Done(message string) {
	if !s.halt() {
		return
	}
	fmt.Fprintf(s.writer, "\r\033[2K✓ %s\n", message)
}

// halt stops the animation goroutine and reports whether it was running.
func (s *Spinner) halt() bool {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return false
	}

	s.active = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
	return true
}

// IsActive returns whether the spinner is currently running
func (s *Spinner) IsActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Step replaces the message shown next to the spinner, e.g. when the
// pipeline moves from fetching to scoring.
func (s *Spinner) Step(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

func (s *Spinner) run() {
	defer s.wg.Done()

	frameIndex := 0
	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.mu.RLock()
			frame := s.frames[frameIndex%len(s.frames)]
			message := s.message
			s.mu.RUnlock()

			fmt.Fprintf(s.writer, "\r%s %s", frame, message)
			frameIndex++
		}
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
