package cmd

import (
	"testing"
)

func TestPathsOverlap(t *testing.T) {
	tests := []struct {
		name     string
		path1    string
		path2    string
		expected bool
	}{
		{
			name:     "identical paths",
			path1:    "/usr/bin",
			path2:    "/usr/bin",
			expected: true,
		},
		{
			name:     "trailing slash",
			path1:    "/usr/bin/",
			path2:    "/usr/bin",
			expected: true,
		},
		{
			name:     "mountpoint inside search path directory",
			path1:    "/usr/bin/flat",
			path2:    "/usr/bin",
			expected: true,
		},
		{
			name:     "mountpoint contains search path directory",
			path1:    "/usr",
			path2:    "/usr/bin",
			expected: true,
		},
		{
			name:     "completely separate paths",
			path1:    "/mnt/bin",
			path2:    "/usr/bin",
			expected: false,
		},
		{
			name:     "shared prefix is not nesting",
			path1:    "/usr/bin2",
			path2:    "/usr/bin",
			expected: false,
		},
		{
			name:     "relative paths - overlapping",
			path1:    "bin",
			path2:    "bin/flat",
			expected: true,
		},
		{
			name:     "relative paths - separate",
			path1:    "bin",
			path2:    "mnt",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pathsOverlap(tt.path1, tt.path2)
			if result != tt.expected {
				t.Errorf("pathsOverlap(%q, %q) = %v, expected %v", tt.path1, tt.path2, result, tt.expected)
			}
		})
	}
}
