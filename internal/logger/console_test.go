package logger

import (
	"bytes"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/harrison/rob/internal/models"
	"github.com/harrison/rob/internal/rob2"
)

var linePattern = regexp.MustCompile(`^\[\d{2}:\d{2}:\d{2}\] \[[A-Z]+\] `)

// TestNewConsoleLogger verifies the constructor creates a ConsoleLogger with the provided writer.
func TestNewConsoleLogger(t *testing.T) {
	t.Run("with valid writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewConsoleLogger(buf, "info")

		if logger == nil {
			t.Fatal("expected non-nil logger")
		}
		if logger.writer != buf {
			t.Error("writer not set correctly")
		}
		if logger.logLevel != "info" {
			t.Errorf("expected log level %q, got %q", "info", logger.logLevel)
		}
		if logger.colorOutput {
			t.Error("buffers never get colour")
		}
	})

	t.Run("with nil writer", func(t *testing.T) {
		logger := NewConsoleLogger(nil, "info")
		if logger == nil {
			t.Fatal("expected non-nil logger even with nil writer")
		}
		// Must not panic
		logger.LogInfo("discarded")
		logger.LogFrameworkJudgement(rob2.NewFramework())
	})

	t.Run("normalizes level", func(t *testing.T) {
		tests := map[string]string{
			"DEBUG":   "debug",
			" warn ":  "warn",
			"":        "info",
			"verbose": "info",
		}
		for in, want := range tests {
			if got := NewConsoleLogger(nil, in).logLevel; got != want {
				t.Errorf("level %q: got %q, want %q", in, got, want)
			}
		}
	})
}

func TestValidLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error", "ERROR", " info "} {
		if !ValidLevel(level) {
			t.Errorf("ValidLevel(%q) = false", level)
		}
	}
	for _, level := range []string{"", "verbose", "warning"} {
		if ValidLevel(level) {
			t.Errorf("ValidLevel(%q) = true", level)
		}
	}
}

// TestLogFormat verifies the "[HH:MM:SS] [LEVEL] message" layout.
func TestLogFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "trace")

	logger.LogTrace("t")
	logger.LogDebug("d")
	logger.LogInfo("i")
	logger.LogWarn("w")
	logger.LogError("e")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d:\n%s", len(lines), buf.String())
	}
	for i, level := range []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"} {
		if !linePattern.MatchString(lines[i]) {
			t.Errorf("line %d malformed: %q", i, lines[i])
		}
		if !strings.Contains(lines[i], "["+level+"]") {
			t.Errorf("line %d: expected level %s in %q", i, level, lines[i])
		}
	}
}

// TestLogLevelFiltering verifies that messages are filtered based on log level
func TestLogLevelFiltering(t *testing.T) {
	tests := []struct {
		logLevel string
		visible  []string
	}{
		{"trace", []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}},
		{"debug", []string{"DEBUG", "INFO", "WARN", "ERROR"}},
		{"info", []string{"INFO", "WARN", "ERROR"}},
		{"warn", []string{"WARN", "ERROR"}},
		{"error", []string{"ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, tt.logLevel)
			logger.LogTrace("msg")
			logger.LogDebug("msg")
			logger.LogInfo("msg")
			logger.LogWarn("msg")
			logger.LogError("msg")

			output := buf.String()
			if got := strings.Count(output, "\n"); got != len(tt.visible) {
				t.Errorf("expected %d lines, got %d:\n%s", len(tt.visible), got, output)
			}
			for _, level := range tt.visible {
				if !strings.Contains(output, "["+level+"]") {
					t.Errorf("expected %s to be visible", level)
				}
			}
		})
	}
}

func TestLogDomainJudgement(t *testing.T) {
	fw := rob2.NewFramework()
	for id, a := range map[string]string{"1.1": "Yes", "1.2": "Yes", "1.3": "No"} {
		if err := fw.RecordResponse(id, a, "", nil, nil); err != nil {
			t.Fatal(err)
		}
	}
	d1 := fw.Domain(1)

	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "info").LogDomainJudgement(d1)
	if buf.Len() != 0 {
		t.Errorf("domain judgements are DEBUG level, got %q", buf.String())
	}

	NewConsoleLogger(buf, "debug").LogDomainJudgement(d1)
	want := "[DEBUG] D1 " + d1.Name + ": Low\n"
	if !strings.HasSuffix(buf.String(), want) {
		t.Errorf("got %q, want suffix %q", buf.String(), want)
	}
}

func TestLogFrameworkJudgement(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	fw := rob2.NewFramework()
	logger.LogFrameworkJudgement(fw)
	if !strings.Contains(buf.String(), "[INFO] "+rob2.Name+": overall Unknown (") {
		t.Errorf("unexpected output %q", buf.String())
	}

	buf.Reset()
	fw.Manuscript = "smith-2020"
	for _, d := range fw.Domains {
		for _, q := range d.Questions {
			q.IsRequired = false
		}
	}
	logger.LogFrameworkJudgement(fw)
	if !strings.HasSuffix(buf.String(), "[INFO] smith-2020: overall Unknown\n") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestLogRecorded(t *testing.T) {
	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "info").LogRecorded("2.3", models.AnswerNoInformation)
	if !strings.HasSuffix(buf.String(), `[INFO] Recorded 2.3 = "No Information"`+"\n") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

// TestConcurrentLogging verifies lines are never interleaved.
func TestConcurrentLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				logger.LogInfo("concurrent message")
			}
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 200 {
		t.Fatalf("expected 200 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !linePattern.MatchString(line) || !strings.HasSuffix(line, "concurrent message") {
			t.Fatalf("interleaved line %q", line)
		}
	}
}

func TestNoOpLogger(t *testing.T) {
	var l Logger = NewNoOpLogger()
	l.LogInfo("x")
	l.LogDomainJudgement(rob2.NewFramework().Domain(1))
	l.LogFrameworkJudgement(rob2.NewFramework())
	l.LogRecorded("1.1", "Yes")
}
