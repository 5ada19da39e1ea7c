package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInit(t *testing.T) {
	Init("debug")
	if Log == nil {
		t.Fatal("Log should not be nil after Init")
	}
	Debug("debug message")
	Info("info message")
	Warn("warn message")
	Error("error message")
}

func TestInitWithConfig_TextFormat(t *testing.T) {
	InitWithConfig(Config{Level: "info", Format: "text", Output: "stderr"})
	if Log == nil {
		t.Fatal("Log should not be nil")
	}
	Info("text format message")
}

func TestInitWithConfig_FileOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "solver.log")

	InitWithConfig(Config{
		Level:    "info",
		Format:   "json",
		Output:   "file",
		FilePath: path,
		MaxSize:  1,
	})
	Info("to file")

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("log file should exist: %v", err)
	}
}

func TestWithHelpers(t *testing.T) {
	Init("info")

	if WithRunID("abc") == nil {
		t.Error("WithRunID returned nil")
	}
	if WithAlgorithm("msls") == nil {
		t.Error("WithAlgorithm returned nil")
	}
	if WithInstance("TSPA") == nil {
		t.Error("WithInstance returned nil")
	}
}
