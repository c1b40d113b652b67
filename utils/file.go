package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/natefinch/atomic"
)

// CorpusFile is one seed test case read from disk.
type CorpusFile struct {
	Name string
	Data []byte
}

// WriteTestCase writes data to dir/name atomically, so a crashing fuzzer
// never leaves a truncated test case behind.
func WriteTestCase(dir, name string, data []byte) (string, error) {
	if err := EnsureDir(dir); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("failed to write test case %s: %w", path, err)
	}
	return path, nil
}

// ReadCorpus reads every regular, non-empty file of dir, sorted by name.
func ReadCorpus(dir string) ([]CorpusFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus directory: %w", err)
	}
	var corpus []CorpusFile
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read seed %s: %w", entry.Name(), err)
		}
		if len(data) == 0 {
			continue
		}
		corpus = append(corpus, CorpusFile{Name: entry.Name(), Data: data})
	}
	sort.Slice(corpus, func(i, j int) bool { return corpus[i].Name < corpus[j].Name })
	return corpus, nil
}

// FileExists checks if a file exists
func FileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// EnsureDir ensures a directory exists, creates it if it doesn't
func EnsureDir(dirPath string) error {
	if !FileExists(dirPath) {
		return os.MkdirAll(dirPath, 0755)
	}
	return nil
}
