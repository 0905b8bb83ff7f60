package logger

import (
	"bytes"
	"os"
	"sync"
	"testing"
)

func reset() {
	SetVerbose(false)
	SetQuiet(false)
	SetOutput(os.Stderr)
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("scanning %s", "group")

	if got := buf.String(); got != "[DEBUG] scanning group\n" {
		t.Errorf("unexpected debug output: %q", got)
	}
}

func TestDebugAndInfo_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("hidden")
	Info("hidden")
	Section("hidden")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestSection(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Generation")

	if got := buf.String(); got != "\n=== Generation ===\n" {
		t.Errorf("unexpected section output: %q", got)
	}
}

func TestWarn_AlwaysPrinted(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Warn("skipping %s", "summary_llc.md")

	if got := buf.String(); got != "[WARN] skipping summary_llc.md\n" {
		t.Errorf("unexpected warn output: %q", got)
	}
}

func TestError_AlwaysPrinted(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Error("write failed")

	if got := buf.String(); got != "[ERROR] write failed\n" {
		t.Errorf("unexpected error output: %q", got)
	}
}

func TestQuiet_SuppressesWarnings(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetQuiet(true)

	Warn("hidden")
	Error("hidden")

	if buf.Len() != 0 {
		t.Errorf("expected no output in quiet mode, got %q", buf.String())
	}
}

func TestConcurrentAccess(t *testing.T) {
	defer reset()

	var buf safeBuffer
	SetOutput(&buf)
	SetVerbose(true)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			Debug("worker %d", n)
			_ = IsVerbose()
		}(i)
	}
	wg.Wait()
}

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}
