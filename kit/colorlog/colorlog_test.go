package colorlog

import (
	"strings"
	"testing"
	"time"
)

func TestPlainOutput(t *testing.T) {
	var sb strings.Builder
	log := NewWithWriter("testlabel", &sb, false)

	log.Info("hello", "key", "val")

	out := sb.String()
	if !strings.Contains(out, "[testlabel]") {
		t.Fatalf("expected label in output, got %q", out)
	}
	if !strings.Contains(out, "hello") {
		t.Fatalf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "key=val") {
		t.Fatalf("expected attr in output, got %q", out)
	}
	if strings.Contains(out, "\033[") {
		t.Fatalf("expected no ANSI codes without color, got %q", out)
	}
}

func TestColorOutput(t *testing.T) {
	var sb strings.Builder
	log := NewWithWriter("c", &sb, true)

	log.Error("boom")

	if !strings.Contains(sb.String(), colorRed) {
		t.Fatalf("expected red for error level, got %q", sb.String())
	}
}

func TestWithCarriesAttrs(t *testing.T) {
	var sb strings.Builder
	log := NewWithWriter("c", &sb, false).With("req", "42")

	log.Info("handled")

	if !strings.Contains(sb.String(), "req=42") {
		t.Fatalf("expected inherited attr in output, got %q", sb.String())
	}
}

func TestDerivedLoggerSharesWriterLock(t *testing.T) {
	var sb strings.Builder
	log := NewWithWriter("c", &sb, false)
	base := log.Handler().(*handler)

	// Derive a logger while another goroutine holds the write lock. The
	// derived handler must share that lock, not start with its own copy of
	// a held one.
	base.mu.Lock()
	derived := log.With("k", "v")
	if derived.Handler().(*handler).mu != base.mu {
		base.mu.Unlock()
		t.Fatal("expected derived handler to share the base handler's lock")
	}
	base.mu.Unlock()

	done := make(chan struct{})
	go func() {
		derived.Info("hello")
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("derived logger blocked on its own lock")
	}
	if !strings.Contains(sb.String(), "hello") {
		t.Fatalf("expected message in output, got %q", sb.String())
	}
}

func TestDebugSuppressed(t *testing.T) {
	var sb strings.Builder
	log := NewWithWriter("c", &sb, false)

	log.Debug("invisible")

	if sb.Len() != 0 {
		t.Fatalf("expected debug to be suppressed, got %q", sb.String())
	}
}
