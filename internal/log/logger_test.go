package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerAttachesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Component: ComponentWorker,
		Handler:   slog.NewTextHandler(&buf, nil),
	})

	logger.Info("hello", "key", "value")

	out := buf.String()
	if !strings.Contains(out, "component="+ComponentWorker) {
		t.Errorf("output missing component attribute: %s", out)
	}
	if !strings.Contains(out, "key=value") {
		t.Errorf("output missing custom attribute: %s", out)
	}
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Handler: slog.NewTextHandler(&buf, nil)})

	scoped := logger.WithComponent("audit")
	if scoped.Component() != "audit" {
		t.Errorf("Component() = %q, want audit", scoped.Component())
	}

	scoped.Warn("careful")
	if !strings.Contains(buf.String(), "component=audit") {
		t.Errorf("output missing scoped component: %s", buf.String())
	}
}
