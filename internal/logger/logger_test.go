package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveLogFilePathDefaultDir(t *testing.T) {
	tempDir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd failed: %v", err)
	}
	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("chdir failed: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})

	path, err := resolveLogFilePath(Options{})
	if err != nil {
		t.Fatalf("resolveLogFilePath failed: %v", err)
	}

	wantDir := filepath.Join(tempDir, defaultLogDirName)
	if filepath.Dir(path) != wantDir {
		t.Fatalf("log dir = %s, want %s", filepath.Dir(path), wantDir)
	}
	if filepath.Base(path) != defaultLogFilename {
		t.Fatalf("log filename = %s, want %s", filepath.Base(path), defaultLogFilename)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("log file should exist: %v", err)
	}
}

func TestNewReleaseWritesToConfiguredFile(t *testing.T) {
	tempDir := t.TempDir()
	log := New("release", Options{
		Dir:      tempDir,
		Filename: "test.log",
	})
	if log == nil {
		t.Fatal("New returned nil")
	}

	log.Info("release_write_check")
	_ = log.Sync()

	content, err := os.ReadFile(filepath.Join(tempDir, "test.log"))
	if err != nil {
		t.Fatalf("read log file failed: %v", err)
	}
	if len(content) == 0 {
		t.Fatal("log file should contain output")
	}
}

func TestNewDebugDoesNotWriteFile(t *testing.T) {
	tempDir := t.TempDir()
	log := New("debug", Options{
		Dir:      tempDir,
		Filename: "debug.log",
	})
	if log == nil {
		t.Fatal("New returned nil")
	}

	log.Debug("debug_console_check")
	_ = log.Sync()

	if _, err := os.Stat(filepath.Join(tempDir, "debug.log")); !os.IsNotExist(err) {
		t.Fatalf("debug mode should not create log file, stat err = %v", err)
	}
}

func TestNormalizePositiveInt(t *testing.T) {
	if got := normalizePositiveInt(0, 7); got != 7 {
		t.Fatalf("normalizePositiveInt(0, 7) = %d, want 7", got)
	}
	if got := normalizePositiveInt(-1, 7); got != 7 {
		t.Fatalf("normalizePositiveInt(-1, 7) = %d, want 7", got)
	}
	if got := normalizePositiveInt(3, 7); got != 3 {
		t.Fatalf("normalizePositiveInt(3, 7) = %d, want 3", got)
	}
}
