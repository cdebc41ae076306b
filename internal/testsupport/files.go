package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes data to path, creating parent directories.
func WriteFile(t testing.TB, path string, data []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteLibrary writes each name to contents pair into dir and returns dir.
func WriteLibrary(t testing.TB, dir string, files map[string]string) string {
	t.Helper()

	for name, content := range files {
		WriteFile(t, filepath.Join(dir, name), []byte(content))
	}
	return dir
}
