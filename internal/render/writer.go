package render

import (
	"os"
	"path/filepath"

	"github.com/toyz/routedoc/internal/utils"
)

// WriteFiles renders the document in every format into dir and returns the
// written paths in format order.
func WriteFiles(dir string, doc Document, formats []Format) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, utils.WrapWriteError(dir, err)
	}

	written := make([]string, 0, len(formats))
	for _, format := range formats {
		content, err := Render(format, doc)
		if err != nil {
			return written, err
		}

		path := filepath.Join(dir, format.FileName())
		if err := os.WriteFile(path, content, 0644); err != nil {
			return written, utils.WrapWriteError(path, err)
		}
		written = append(written, path)
	}

	return written, nil
}
