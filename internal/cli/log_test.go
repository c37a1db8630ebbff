package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		level     log.Level
		wantDebug bool
		wantInfo  bool
	}{
		{"debug", log.DebugLevel, true, true},
		{"info", log.InfoLevel, false, true},
		{"warn", log.WarnLevel, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := newLogger(&buf, tt.level)

			l.Debug("debug line")
			l.Info("info line")

			out := buf.String()
			if got := strings.Contains(out, "debug line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v\n%s", got, tt.wantDebug, out)
			}
			if got := strings.Contains(out, "info line"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v\n%s", got, tt.wantInfo, out)
			}
		})
	}
}

func TestNewLoggerFormat(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, log.InfoLevel).Info("stored", "key", "fullName")

	out := buf.String()
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(out) {
		t.Errorf("missing HH:MM:SS.ms timestamp: %q", out)
	}
	if !strings.Contains(out, "key=fullName") {
		t.Errorf("missing key/value pair: %q", out)
	}
	if strings.Contains(out, "log_test.go") {
		t.Errorf("info logger reported the caller: %q", out)
	}

	buf.Reset()
	newLogger(&buf, log.DebugLevel).Debug("wrapped")
	if !strings.Contains(buf.String(), "log_test.go") {
		t.Errorf("debug logger did not report the caller: %q", buf.String())
	}
}

func TestStopwatch(t *testing.T) {
	var buf bytes.Buffer
	startStopwatch(newLogger(&buf, log.InfoLevel)).done("Applied", "target", "headline")

	out := buf.String()
	for _, want := range []string{"Applied", "target=headline", "took="} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}

	buf.Reset()
	startStopwatch(newLogger(&buf, log.WarnLevel)).done("quiet")
	if buf.Len() != 0 {
		t.Errorf("warn-level logger wrote %q", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should give log.Default()")
	}

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), l)
	if loggerFromContext(ctx) != l {
		t.Error("loggerFromContext did not return the attached logger")
	}

	loggerFromContext(ctx).Info("through context")
	if !strings.Contains(buf.String(), "through context") {
		t.Errorf("attached logger not used: %q", buf.String())
	}
}
