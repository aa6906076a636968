package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/routedoc/internal/utils"
)

// PackageManifest is the part of package.json used for document defaults
type PackageManifest struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// ProjectInfo provides the document title, version and description
type ProjectInfo struct {
	Title       string
	Version     string
	Description string
}

// DefaultTitle is used when neither flags nor package.json name the project
const DefaultTitle = "API Documentation"

// FindPackageManifest searches root and its parents for package.json. A
// missing manifest is not an error and returns nil.
func FindPackageManifest(root string) (*PackageManifest, error) {
	dir, err := filepath.Abs(strings.TrimSuffix(filepath.ToSlash(root), recursiveSuffix))
	if err != nil {
		return nil, err
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		path := filepath.Join(dir, "package.json")
		content, err := os.ReadFile(path)
		if err == nil {
			var manifest PackageManifest
			if err := json.Unmarshal(content, &manifest); err != nil {
				return nil, utils.WrapReadError(path, err)
			}
			return &manifest, nil
		}
		if !os.IsNotExist(err) {
			return nil, utils.WrapReadError(path, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// ResolveProjectInfo merges explicit settings over package.json values
func ResolveProjectInfo(explicit ProjectInfo, manifest *PackageManifest) ProjectInfo {
	info := explicit
	if manifest != nil {
		if info.Title == "" {
			info.Title = manifest.Name
		}
		if info.Version == "" {
			info.Version = manifest.Version
		}
		if info.Description == "" {
			info.Description = manifest.Description
		}
	}
	if info.Title == "" {
		info.Title = DefaultTitle
	}
	return info
}
