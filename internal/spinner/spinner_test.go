package spinner

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewSpinner(t *testing.T) {
	var buf bytes.Buffer
	message := "Fetching resume..."

	spinner := New(context.Background(), &buf, message)

	if spinner == nil {
		t.Fatal("New() returned nil")
	}
	if spinner.message != message {
		t.Errorf("Expected message %q, got %q", message, spinner.message)
	}
	if spinner.disabled {
		t.Error("New() spinner should not be disabled")
	}
	if len(spinner.frames) != 6 {
		t.Errorf("Expected 6 frames, got %d", len(spinner.frames))
	}
}

func TestSpinnerStartStop(t *testing.T) {
	var buf bytes.Buffer
	spinner := New(context.Background(), &buf, "Scoring...")

	if spinner.IsActive() {
		t.Error("Spinner should not be active initially")
	}

	spinner.Start()
	if !spinner.IsActive() {
		t.Error("Spinner should be active after Start()")
	}

	time.Sleep(150 * time.Millisecond)
	spinner.Stop()

	if spinner.IsActive() {
		t.Error("Spinner should not be active after Stop()")
	}

	output := buf.String()
	if !strings.Contains(output, "Scoring...") {
		t.Errorf("Expected message in output, got %q", output)
	}
	// non-terminal writers get a plain carriage return
	if !strings.HasSuffix(output, "\r") {
		t.Error("Expected output to end with carriage return")
	}
}

func TestSpinnerStep(t *testing.T) {
	var buf bytes.Buffer
	spinner := New(context.Background(), &buf, "Fetching documents...")

	spinner.Start()
	time.Sleep(150 * time.Millisecond)
	spinner.Step("Scoring match...")
	time.Sleep(250 * time.Millisecond)
	spinner.Stop()

	output := buf.String()
	for _, want := range []string{"Fetching documents...", "Scoring match..."} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected %q in output, got %q", want, output)
		}
	}
}

func TestSpinnerDone(t *testing.T) {
	var buf bytes.Buffer
	spinner := New(context.Background(), &buf, "Scoring...")

	// Done without Start writes nothing
	spinner.Done("ignored")
	if buf.Len() != 0 {
		t.Errorf("Done() on idle spinner wrote %q", buf.String())
	}

	spinner.Start()
	spinner.Done("Analysis complete")

	if spinner.IsActive() {
		t.Error("Spinner should not be active after Done()")
	}
	if !strings.HasSuffix(buf.String(), "✓ Analysis complete\n") {
		t.Errorf("Expected final status line, got %q", buf.String())
	}
}

func TestSpinnerDoubleStartStop(t *testing.T) {
	var buf bytes.Buffer
	spinner := New(context.Background(), &buf, "Testing...")

	spinner.Start()
	spinner.Start()
	if !spinner.IsActive() {
		t.Error("Spinner should still be active after second Start()")
	}

	spinner.Stop()
	spinner.Stop()
	if spinner.IsActive() {
		t.Error("Spinner should not be active after Stop()")
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	var buf bytes.Buffer
	ctx, cancel := context.WithCancel(context.Background())
	spinner := New(ctx, &buf, "Testing...")

	spinner.Start()
	cancel()

	// Stop must not block once the parent context is gone
	done := make(chan struct{})
	go func() {
		spinner.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() did not return after context cancellation")
	}
}

func TestForTerminalRedirected(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "stderr.log"))
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	spinner := ForTerminal(context.Background(), f, "Fetching...")
	spinner.Start()
	time.Sleep(150 * time.Millisecond)
	spinner.Stop()

	if spinner.IsActive() {
		t.Error("disabled spinner should never be active")
	}

	info, err := f.Stat()
	if err != nil {
		t.Fatalf("failed to stat file: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("disabled spinner wrote %d bytes to a regular file", info.Size())
	}
}
