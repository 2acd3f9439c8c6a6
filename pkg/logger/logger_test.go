package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New("loud", t.TempDir()); err == nil {
		t.Fatalf("expected error for invalid level")
	}
}

func TestNew_RoutesErrorsToErrorFile(t *testing.T) {
	dir := t.TempDir()
	l, err := New("warn", dir)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}

	l.Info("dropped below level")
	l.Warn("kept warning")
	l.Error("kept error")

	info, err := os.ReadFile(filepath.Join(dir, "info.log"))
	if err != nil {
		t.Fatalf("read info.log: %v", err)
	}
	if strings.Contains(string(info), "dropped below level") {
		t.Fatalf("info record should be filtered at warn level: %s", info)
	}
	if !strings.Contains(string(info), "kept warning") || !strings.Contains(string(info), "kept error") {
		t.Fatalf("info.log missing records: %s", info)
	}

	errs, err := os.ReadFile(filepath.Join(dir, "error.log"))
	if err != nil {
		t.Fatalf("read error.log: %v", err)
	}
	if strings.Contains(string(errs), "kept warning") {
		t.Fatalf("error.log should hold errors only: %s", errs)
	}
	if !strings.Contains(string(errs), "kept error") {
		t.Fatalf("error.log missing error record: %s", errs)
	}
}
