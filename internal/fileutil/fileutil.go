package fileutil

import (
	"fmt"
	"os"
	"strings"
)

// HasValidExtension checks if a file has one of the valid extensions
func HasValidExtension(path string, extensions []string) bool {
	for _, ext := range extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// SplitLines splits content on "\n". The empty element produced by a
// trailing newline is dropped; carriage returns stay part of their line.
func SplitLines(content string) []string {
	if content == "" {
		return []string{}
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLines joins lines with "\n" and terminates the last one
func JoinLines(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

// ReadLines reads the whole file and returns its lines and permissions
func ReadLines(path string) ([]string, os.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, 0, fmt.Errorf("%s is a directory", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("reading file: %w", err)
	}

	return SplitLines(string(content)), info.Mode().Perm(), nil
}

// WriteLines overwrites path with lines in a single write
func WriteLines(path string, lines []string, perm os.FileMode) error {
	if perm == 0 {
		perm = 0o644
	}
	if err := os.WriteFile(path, JoinLines(lines), perm); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
