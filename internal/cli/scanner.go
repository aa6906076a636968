package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/toyz/routedoc/internal/errors"
	"github.com/toyz/routedoc/internal/parser"
	"github.com/toyz/routedoc/internal/utils"
)

// recursiveSuffix marks a root that is scanned with all its subdirectories
const recursiveSuffix = "/..."

// DirectoryScanner finds the source files to extract routes from
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
	extensions    []string
}

// NewDirectoryScanner creates a scanner for every supported source extension
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(),
		extensions:    parser.SupportedExtensions(),
	}
}

// ScanFiles resolves the given roots to a sorted, de-duplicated list of
// source files. A root may be a file, a directory or a "dir/..." pattern.
// Directories are always walked recursively; the pattern form is accepted
// for familiarity.
func (s *DirectoryScanner) ScanFiles(roots []string) ([]string, error) {
	if len(roots) == 0 {
		roots = []string{"." + recursiveSuffix}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range roots {
		base := strings.TrimSuffix(filepath.ToSlash(root), recursiveSuffix)
		if base == "" {
			base = "."
		}

		cleanPath, err := filepath.Abs(filepath.FromSlash(base))
		if err != nil {
			return nil, errors.WrapWithOperation("process", fmt.Sprintf("path resolution %s", base), err)
		}

		info, err := os.Stat(cleanPath)
		if err != nil {
			return nil, utils.WrapScanError(cleanPath, err)
		}

		if !info.IsDir() {
			if _, ok := parser.LanguageForPath(cleanPath); !ok {
				return nil, errors.ParseError(cleanPath, "unsupported file extension").
					WithSuggestion(fmt.Sprintf("Supported extensions: %s", strings.Join(s.extensions, ", ")))
			}
			add(cleanPath)
			continue
		}

		matched, err := s.fileProcessor.WalkFiles(cleanPath, utils.FileWalkOptions{
			FileFilter:      utils.SourceFileFilter(s.extensions),
			DirectoryFilter: utils.DefaultDirectoryFilter(),
		})
		if err != nil {
			return nil, err
		}
		for _, path := range matched {
			add(path)
		}
	}

	sort.Strings(files)
	return files, nil
}
