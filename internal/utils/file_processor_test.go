package utils

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

type fakeEntry struct {
	name  string
	isDir bool
}

func (f fakeEntry) Name() string               { return f.name }
func (f fakeEntry) IsDir() bool                { return f.isDir }
func (f fakeEntry) Type() os.FileMode          { return 0 }
func (f fakeEntry) Info() (os.FileInfo, error) { return nil, nil }

func TestSourceFileFilter(t *testing.T) {
	filter := SourceFileFilter([]string{".js", ".ts"})

	tests := []struct {
		name     string
		isDir    bool
		expected bool
	}{
		{name: "routes.js", expected: true},
		{name: "Routes.JS", expected: true},
		{name: "api.ts", expected: true},
		{name: "routes.test.js", expected: false},
		{name: "api.spec.ts", expected: false},
		{name: "types.d.ts", expected: false},
		{name: "bundle.min.js", expected: false},
		{name: "main.go", expected: false},
		{name: "lib.js", isDir: true, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter(tt.name, fakeEntry{name: tt.name, isDir: tt.isDir})
			if got != tt.expected {
				t.Errorf("filter(%s) = %v, expected %v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestDefaultDirectoryFilter(t *testing.T) {
	filter := DefaultDirectoryFilter()

	tests := []struct {
		name     string
		expected bool
	}{
		{name: "src", expected: true},
		{name: "routes", expected: true},
		{name: "node_modules", expected: false},
		{name: "dist", expected: false},
		{name: ".git", expected: false},
		{name: ".cache", expected: false},
		{name: "coverage", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter(tt.name, fakeEntry{name: tt.name, isDir: true})
			if got != tt.expected {
				t.Errorf("filter(%s) = %v, expected %v", tt.name, got, tt.expected)
			}
		})
	}
}

func TestFileProcessor_WalkFiles(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{
		"app.js":                        "app.get('/', h)",
		"routes/users.js":               "router.get('/users', h)",
		"routes/users.test.js":          "test()",
		"node_modules/express/index.js": "module.exports = {}",
		".hidden/secret.js":             "x",
		"README.md":                     "# readme",
	}
	for rel, content := range files {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	fp := NewFileProcessor()
	matched, err := fp.WalkFiles(root, FileWalkOptions{
		FileFilter:      SourceFileFilter([]string{".js"}),
		DirectoryFilter: DefaultDirectoryFilter(),
	})
	if err != nil {
		t.Fatalf("WalkFiles failed: %v", err)
	}

	sort.Strings(matched)
	expected := []string{filepath.Join(root, "app.js"), filepath.Join(root, "routes", "users.js")}
	if len(matched) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, matched)
	}
	for i := range expected {
		if matched[i] != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], matched[i])
		}
	}
}

func TestFileProcessor_WalkFilesMissingRoot(t *testing.T) {
	fp := NewFileProcessor()

	if _, err := fp.WalkFiles(filepath.Join(t.TempDir(), "missing"), FileWalkOptions{}); err == nil {
		t.Error("expected error for missing root")
	}

	matched, err := fp.WalkFiles(filepath.Join(t.TempDir(), "missing"), FileWalkOptions{SkipErrors: true})
	if err != nil || len(matched) != 0 {
		t.Errorf("expected no files and no error, got %v, %v", matched, err)
	}
}

func TestFileProcessor_RemoveFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"API_DOCS.md", "routes.json", "keep.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	fp := NewFileProcessor()
	removed, err := fp.RemoveFiles(dir, []string{"API_DOCS.md", "routes.json", "index.html"})
	if err != nil {
		t.Fatalf("RemoveFiles failed: %v", err)
	}

	if len(removed) != 2 {
		t.Errorf("expected 2 removed files, got %v", removed)
	}
	if _, err := os.Stat(filepath.Join(dir, "keep.txt")); err != nil {
		t.Error("expected unrelated file to survive")
	}
}
