package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

// makeBinDir creates a directory under root holding one executable script per
// name and returns its path.
func makeBinDir(t *testing.T, root, dir string, names ...string) string {
	t.Helper()
	path := filepath.Join(root, dir)
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	for _, name := range names {
		exe := filepath.Join(path, name)
		if err := os.WriteFile(exe, []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatalf("Failed to create executable: %v", err)
		}
		if err := os.Chmod(exe, 0o755); err != nil {
			t.Fatalf("Failed to chmod executable: %v", err)
		}
	}
	return path
}

func namesOf(items []Item) []string {
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return names
}
