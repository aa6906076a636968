package parser

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	docerrors "github.com/toyz/routedoc/internal/errors"
)

func TestLanguageForPath(t *testing.T) {
	tests := []struct {
		path     string
		expected Language
		ok       bool
	}{
		{path: "routes.js", expected: LanguageJavaScript, ok: true},
		{path: "server.MJS", expected: LanguageJavaScript, ok: true},
		{path: "legacy.cjs", expected: LanguageJavaScript, ok: true},
		{path: "view.jsx", expected: LanguageJavaScript, ok: true},
		{path: "api.ts", expected: LanguageTypeScript, ok: true},
		{path: "api.mts", expected: LanguageTypeScript, ok: true},
		{path: "page.tsx", expected: LanguageTSX, ok: true},
		{path: "main.go", ok: false},
		{path: "Makefile", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			lang, ok := LanguageForPath(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, lang)
		})
	}
}

func TestSourceParser_Unparseable(t *testing.T) {
	p := &SourceParser{MaxFileSize: 64}

	tests := []struct {
		name    string
		path    string
		content []byte
	}{
		{name: "unsupported extension", path: "routes.py", content: []byte("x = 1")},
		{name: "too large", path: "bundle.js", content: []byte(strings.Repeat("a", 65))},
		{name: "invalid utf-8", path: "bad.js", content: []byte{0xff, 0xfe, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit, err := p.Parse(context.Background(), tt.path, tt.content)
			require.Error(t, err)
			assert.Nil(t, unit)

			var docErr docerrors.DocError
			require.True(t, errors.As(err, &docErr))
			assert.Equal(t, docerrors.ParseErrorCode, docErr.ErrorCode())
			assert.Equal(t, tt.path, docErr.Location().File)
		})
	}
}

func TestSourceParser_RecoversFromSyntaxErrors(t *testing.T) {
	unit, err := NewSourceParser().Parse(context.Background(), "broken.js", []byte("app.get('/ok', h);\nfunction ( {\n"))
	require.NoError(t, err)
	defer unit.Close()

	assert.True(t, unit.HasSyntaxErrors())
	routes := NewRecognizer().Extract(unit)
	require.NotEmpty(t, routes)
	assert.Equal(t, "/ok", routes[0].Path)
}

func TestSourceParser_CloseTwice(t *testing.T) {
	unit, err := NewSourceParser().Parse(context.Background(), "a.js", []byte("app.get('/a', h);"))
	require.NoError(t, err)

	unit.Close()
	assert.NotPanics(t, unit.Close)
}
