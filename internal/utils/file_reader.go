package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileReader reads source files, keeping their contents until they change
// on disk.
type FileReader struct {
	contentCache *FileCache[[]byte]
}

// NewFileReader creates a new FileReader instance with caching
func NewFileReader() *FileReader {
	return &FileReader{
		contentCache: NewFileCache[[]byte](),
	}
}

// ReadFile returns the contents of a file, from cache when unchanged
func (fr *FileReader) ReadFile(filePath string) ([]byte, error) {
	cleanPath, err := fr.validateAndCleanPath(filePath)
	if err != nil {
		return nil, err
	}

	if cached, exists := fr.contentCache.Get(cleanPath); exists {
		return cached, nil
	}

	stat, err := os.Stat(cleanPath)
	if err != nil {
		return nil, WrapReadError(cleanPath, err)
	}
	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, WrapReadError(cleanPath, err)
	}

	fr.contentCache.Put(cleanPath, stat, content)
	return content, nil
}

// InvalidateFile removes a specific file from the cache
func (fr *FileReader) InvalidateFile(filePath string) {
	fr.contentCache.Invalidate(filepath.Clean(filePath))
}

// CachedFiles returns the number of cached files
func (fr *FileReader) CachedFiles() int {
	return fr.contentCache.Len()
}

// validateAndCleanPath validates and cleans a file path
func (fr *FileReader) validateAndCleanPath(filePath string) (string, error) {
	if err := NotEmpty("filePath")(filePath); err != nil {
		return "", err
	}

	cleanPath := filepath.Clean(filePath)

	// ".." is only accepted as a leading relative prefix
	if strings.Contains(cleanPath, "..") && !strings.HasPrefix(cleanPath, "..") {
		return "", fmt.Errorf("path traversal not allowed in file path: %s", filePath)
	}

	if _, err := os.Stat(cleanPath); os.IsNotExist(err) {
		return "", fmt.Errorf("file does not exist: %s", cleanPath)
	}

	return cleanPath, nil
}
