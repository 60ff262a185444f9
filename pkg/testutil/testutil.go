package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateFile writes content to name under dir, creating parent directories
// as needed, and returns the full path.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// FileExists reports whether path is an existing regular file.
func FileExists(t *testing.T, path string) bool {
	t.Helper()

	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// ReadFile returns the content of path, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(content)
}

// AssertFileContent fails the test unless path exists with exactly the
// expected content.
func AssertFileContent(t *testing.T, path, want string) {
	t.Helper()

	if !FileExists(t, path) {
		t.Fatalf("file %s does not exist", path)
	}
	if got := ReadFile(t, path); got != want {
		t.Errorf("content of %s:\n  want: %q\n  got:  %q", path, want, got)
	}
}

// AssertNoFile fails the test when path exists.
func AssertNoFile(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("%s exists but should not", path)
	}
}

// AssertFileMode fails the test unless path has exactly the given
// permission bits.
func AssertFileMode(t *testing.T, path string, want os.FileMode) {
	t.Helper()

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat %s: %v", path, err)
	}
	if got := info.Mode().Perm(); got != want {
		t.Errorf("mode of %s: want %o, got %o", path, want, got)
	}
}
