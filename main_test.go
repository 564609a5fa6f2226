package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// buildBinary builds the precompress binary once per test run.
func buildBinary(t *testing.T) string {
	t.Helper()
	binary := filepath.Join(t.TempDir(), "precompress-test")
	cmd := exec.Command("go", "build", "-o", binary, ".")
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to build binary: %v\n%s", err, output)
	}
	return binary
}

func TestCLIExitCode(t *testing.T) {
	binary := buildBinary(t)

	staticDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{
			name:     "help flag returns 0",
			args:     []string{"--help"},
			wantCode: 0,
		},
		{
			name:     "invalid flag returns non-zero",
			args:     []string{"--invalid-flag"},
			wantCode: 1,
		},
		{
			name:     "missing directory returns non-zero",
			args:     []string{filepath.Join(staticDir, "does-not-exist")},
			wantCode: 1,
		},
		{
			name:     "successful run returns 0",
			args:     []string{staticDir},
			wantCode: 0,
		},
		{
			name:     "find-orphans returns 0",
			args:     []string{"find-orphans", staticDir},
			wantCode: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := exec.Command(binary, tt.args...).Run()

			gotCode := 0
			if err != nil {
				exitErr, ok := err.(*exec.ExitError)
				if !ok {
					t.Fatalf("unexpected error type: %v", err)
				}
				gotCode = exitErr.ExitCode()
			}

			if gotCode != tt.wantCode {
				t.Errorf("exit code = %d, want %d", gotCode, tt.wantCode)
			}
		})
	}
}
