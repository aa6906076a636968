package cli

import (
	"github.com/toyz/routedoc/internal/render"
	"github.com/toyz/routedoc/internal/utils"
)

// Cleaner handles cleaning up generated documents
type Cleaner struct {
	fileProcessor *utils.FileProcessor
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// CleanGeneratedFiles removes every document routedoc can write from the
// output directories and returns the removed paths.
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	var removedFiles []string

	for _, dir := range directories {
		removed, err := c.fileProcessor.RemoveFiles(dir, render.AllFileNames())
		removedFiles = append(removedFiles, removed...)
		if err != nil {
			return removedFiles, err
		}
	}

	return removedFiles, nil
}
