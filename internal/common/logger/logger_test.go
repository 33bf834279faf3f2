package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTerminalLevelThreshold(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		visible []string
		hidden  []string
	}{
		{
			name:    "debug level shows everything",
			level:   LevelDebug,
			visible: []string{"dbg-msg", "info-msg", "warn-msg", "err-msg"},
		},
		{
			name:    "info level hides debug",
			level:   LevelInfo,
			visible: []string{"info-msg", "warn-msg", "err-msg"},
			hidden:  []string{"dbg-msg"},
		},
		{
			name:    "error level shows only errors",
			level:   LevelError,
			visible: []string{"err-msg"},
			hidden:  []string{"dbg-msg", "info-msg", "warn-msg"},
		},
		{
			name:   "silent level shows nothing",
			level:  LevelSilent,
			hidden: []string{"dbg-msg", "info-msg", "warn-msg", "err-msg"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			log := New(buf, tt.level)

			log.Debug("dbg-msg")
			log.Info("info-msg")
			log.Warn("warn-msg")
			log.Error("err-msg")

			out := buf.String()
			for _, want := range tt.visible {
				if !strings.Contains(out, want) {
					t.Errorf("expected %q in output, got:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.hidden {
				if strings.Contains(out, unwanted) {
					t.Errorf("did not expect %q in output, got:\n%s", unwanted, out)
				}
			}
		})
	}
}

func TestWarnAndErrorLinesArePrefixed(t *testing.T) {
	buf := new(bytes.Buffer)
	log := New(buf, LevelDebug)

	log.Info("catalog written")
	log.Warn("ignoring repository")
	log.Error("metadata fetch failed")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}
	if lines[0] != "catalog written" {
		t.Errorf("info line should be bare, got %q", lines[0])
	}
	if lines[1] != "warning: ignoring repository" {
		t.Errorf("warn line = %q, want warning prefix", lines[1])
	}
	if lines[2] != "error: metadata fetch failed" {
		t.Errorf("error line = %q, want error prefix", lines[2])
	}
}

func TestSetVerboseLowersThreshold(t *testing.T) {
	buf := new(bytes.Buffer)
	log := New(buf, LevelInfo)

	log.Debug("before verbose")
	if strings.Contains(buf.String(), "before verbose") {
		t.Error("debug should be hidden at info level")
	}

	log.SetVerbose(true)
	log.Debug("after verbose")
	if !strings.Contains(buf.String(), "after verbose") {
		t.Error("debug should be visible after SetVerbose")
	}
}

func TestSetQuietKeepsErrors(t *testing.T) {
	buf := new(bytes.Buffer)
	log := New(buf, LevelInfo)
	log.SetQuiet(true)

	log.Info("resolving versions")
	log.Error("catalog missing")

	out := buf.String()
	if strings.Contains(out, "resolving versions") {
		t.Error("info should be suppressed in quiet mode")
	}
	if !strings.Contains(out, "catalog missing") {
		t.Error("errors should survive quiet mode")
	}
}

func TestLogFilePath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")

	path, err := LogFilePath()
	if err != nil {
		t.Fatalf("LogFilePath() error = %v", err)
	}
	if path != filepath.Join("/tmp/state", "gvc", "gvc.log") {
		t.Errorf("LogFilePath() = %q, want state-dir gvc/gvc.log", path)
	}
}

func TestFileLoggingCapturesFullTrace(t *testing.T) {
	stateDir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateDir)

	buf := new(bytes.Buffer)
	log := New(buf, LevelError)
	if err := log.EnableFileLogging(); err != nil {
		t.Fatalf("EnableFileLogging() error = %v", err)
	}

	// Below the terminal threshold, but the file trace keeps it.
	log.Debug("fetching metadata for %s", "com.squareup.okhttp3:okhttp")
	if err := log.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if buf.Len() != 0 {
		t.Errorf("terminal output should be empty at error level, got %q", buf.String())
	}

	data, err := os.ReadFile(filepath.Join(stateDir, "gvc", "gvc.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	trace := string(data)
	if !strings.Contains(trace, "fetching metadata for com.squareup.okhttp3:okhttp") {
		t.Errorf("trace missing debug line, got %q", trace)
	}
	if !strings.Contains(trace, " debug ") {
		t.Errorf("trace line missing level, got %q", trace)
	}
}

func TestCloseWithoutFileIsANoop(t *testing.T) {
	log := New(new(bytes.Buffer), LevelInfo)
	if err := log.Close(); err != nil {
		t.Errorf("Close() without file = %v, want nil", err)
	}
}

func TestPackageShorthandsUseDefault(t *testing.T) {
	buf := new(bytes.Buffer)
	old := Default().out
	Default().out = buf
	defer func() { Default().out = old }()
	Default().SetLevel(LevelDebug)
	defer Default().SetLevel(LevelInfo)

	Debug("d")
	Info("i")
	Warn("w")
	Error("e")

	out := buf.String()
	for _, want := range []string{"debug: d", "i", "warning: w", "error: e"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output, got:\n%s", want, out)
		}
	}
}
