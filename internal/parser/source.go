package parser

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/toyz/routedoc/internal/errors"
)

// Language identifies the grammar used for a source unit
type Language string

const (
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageTSX        Language = "tsx"
)

var extensionLanguages = map[string]Language{
	".js":  LanguageJavaScript,
	".mjs": LanguageJavaScript,
	".cjs": LanguageJavaScript,
	".jsx": LanguageJavaScript,
	".ts":  LanguageTypeScript,
	".mts": LanguageTypeScript,
	".cts": LanguageTypeScript,
	".tsx": LanguageTSX,
}

// LanguageForPath picks the grammar from the file extension
func LanguageForPath(path string) (Language, bool) {
	lang, ok := extensionLanguages[strings.ToLower(filepath.Ext(path))]
	return lang, ok
}

// SupportedExtensions returns the file extensions that can be parsed
func SupportedExtensions() []string {
	exts := make([]string, 0, len(extensionLanguages))
	for ext := range extensionLanguages {
		exts = append(exts, ext)
	}
	return exts
}

func (l Language) grammar() *sitter.Language {
	switch l {
	case LanguageTypeScript:
		return typescript.GetLanguage()
	case LanguageTSX:
		return tsx.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// SourceUnit is one parsed file: its syntax tree together with the bytes
// the tree points into. Close releases the tree.
type SourceUnit struct {
	Path     string
	Language Language
	Content  []byte

	tree *sitter.Tree
}

// Root returns the program node
func (u *SourceUnit) Root() *sitter.Node {
	return u.tree.RootNode()
}

// HasSyntaxErrors reports whether tree-sitter had to recover from errors.
// Such a tree is still walked; registrations in the damaged region may be missed.
func (u *SourceUnit) HasSyntaxErrors() bool {
	return u.Root().HasError()
}

// Close releases the syntax tree
func (u *SourceUnit) Close() {
	if u.tree != nil {
		u.tree.Close()
		u.tree = nil
	}
}

// SourceParser turns file contents into source units. A fresh tree-sitter
// parser is created per call so one SourceParser can be shared by workers.
type SourceParser struct {
	MaxFileSize int
}

// NewSourceParser creates a parser with the default size limit
func NewSourceParser() *SourceParser {
	return &SourceParser{MaxFileSize: DefaultMaxFileSize}
}

// Parse builds the syntax tree for one file. The returned error is always an
// errors.ParseErrorCode error; the caller decides whether it is fatal.
func (p *SourceParser) Parse(ctx context.Context, path string, content []byte) (*SourceUnit, error) {
	lang, ok := LanguageForPath(path)
	if !ok {
		return nil, errors.ParseError(path, fmt.Sprintf("unsupported file extension %q", filepath.Ext(path)))
	}

	if p.MaxFileSize > 0 && len(content) > p.MaxFileSize {
		return nil, errors.ParseError(path, fmt.Sprintf("file is %d bytes, limit is %d", len(content), p.MaxFileSize)).
			WithSuggestion("Raise --max-file-size or exclude generated bundles")
	}

	if !utf8.Valid(content) {
		return nil, errors.ParseError(path, "content is not valid UTF-8")
	}

	sp := sitter.NewParser()
	defer sp.Close()
	sp.SetLanguage(lang.grammar())

	tree, err := sp.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, errors.WrapParseError(path, err)
	}

	return &SourceUnit{
		Path:     path,
		Language: lang,
		Content:  content,
		tree:     tree,
	}, nil
}
