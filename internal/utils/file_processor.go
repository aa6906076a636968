package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// FileProcessor provides utilities for common file processing operations
type FileProcessor struct {
	fileReader *FileReader
}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{
		fileReader: NewFileReader(),
	}
}

// NewFileProcessorWithReader creates a file processor with an existing FileReader
func NewFileProcessorWithReader(reader *FileReader) *FileProcessor {
	return &FileProcessor{
		fileReader: reader,
	}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, info os.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be processed
type DirectoryFilter func(path string, info os.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
	SkipErrors      bool
}

// testSuffixes mark test and spec files by the part of the name before the extension
var testSuffixes = []string{".test", ".spec"}

// SourceFileFilter accepts files with one of the given extensions, excluding
// tests, type declarations and minified bundles.
func SourceFileFilter(extensions []string) FileFilter {
	allowed := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = true
	}

	return func(path string, info os.DirEntry) bool {
		if info.IsDir() {
			return false
		}

		name := strings.ToLower(info.Name())
		ext := filepath.Ext(name)
		if !allowed[ext] {
			return false
		}

		stem := strings.TrimSuffix(name, ext)
		if strings.HasSuffix(stem, ".min") || strings.HasSuffix(stem, ".d") {
			return false
		}
		for _, suffix := range testSuffixes {
			if strings.HasSuffix(stem, suffix) {
				return false
			}
		}
		return true
	}
}

// DefaultDirectoryFilter skips common directories that shouldn't contain source code
func DefaultDirectoryFilter() DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":           true,
		"node_modules":     true,
		"bower_components": true,
		"testdata":         true,
		"__tests__":        true,
		"coverage":         true,
		"build":            true,
		"dist":             true,
		"out":              true,
	}

	return func(path string, info os.DirEntry) bool {
		if !info.IsDir() {
			return true
		}

		name := info.Name()

		// Skip hidden directories
		if strings.HasPrefix(name, ".") && name != "." && name != ".." {
			return false
		}

		return !skipDirs[name]
	}
}

// WalkFiles walks through files in a directory tree with filtering
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	var matchedFiles []string

	err := filepath.WalkDir(rootDir, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			if options.SkipErrors {
				return nil
			}
			return WrapScanError(path, err)
		}

		if entry.IsDir() {
			// the root itself is always entered
			if path != rootDir && options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, entry) {
			matchedFiles = append(matchedFiles, path)
		}
		return nil
	})

	return matchedFiles, err
}

// RemoveFiles deletes the named files from dir and returns the ones that
// existed. Missing files are not an error.
func (fp *FileProcessor) RemoveFiles(dir string, names []string) ([]string, error) {
	var removed []string

	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		} else if err != nil {
			return removed, WrapRemoveError(path, err)
		}

		if err := os.Remove(path); err != nil {
			return removed, WrapRemoveError(path, err)
		}
		removed = append(removed, path)
	}

	return removed, nil
}
