package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/routedoc/internal/render"
	"github.com/toyz/routedoc/internal/utils"
)

func newTestParser(t *testing.T, root *CLI, diagnostics *utils.DiagnosticSystem, options ...kong.Option) *kong.Kong {
	t.Helper()
	options = append([]kong.Option{
		kong.Name("routedoc"),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
		kong.BindTo(context.Background(), (*context.Context)(nil)),
		kong.Bind(diagnostics),
	}, options...)

	parser, err := kong.New(root, options...)
	require.NoError(t, err)
	return parser
}

func TestCLI_DefaultCommandIsGenerate(t *testing.T) {
	var root CLI
	diagnostics, _ := bufferedDiagnostics()

	_, err := newTestParser(t, &root, diagnostics).Parse([]string{"./src/..."})
	require.NoError(t, err)

	assert.Equal(t, []string{"./src/..."}, root.Generate.Extract.Paths)
	assert.Equal(t, []string{"app", "router"}, root.Generate.Extract.Receivers)
	assert.Equal(t, "both", root.Generate.Format)
}

func TestCLI_Validation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown format", args: []string{"generate", "--format", "pdf"}},
		{name: "invalid receiver", args: []string{"generate", "--receivers", "app,not-an-id"}},
		{name: "negative concurrency", args: []string{"generate", "--concurrency=-1"}},
		{name: "unknown log level", args: []string{"--log-level", "loud", "generate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var root CLI
			diagnostics, _ := bufferedDiagnostics()

			_, err := newTestParser(t, &root, diagnostics).Parse(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestCLI_ConfigurationFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "routedoc.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"format": "json", "receivers": "api", "fail_fast": true}`), 0644))

	var root CLI
	diagnostics, _ := bufferedDiagnostics()
	parser := newTestParser(t, &root, diagnostics, kong.Configuration(kong.JSON, configPath))

	_, err := parser.Parse([]string{"generate", "--format", "yaml"})
	require.NoError(t, err)

	assert.Equal(t, "yaml", root.Generate.Format)
	assert.Equal(t, []string{"api"}, root.Generate.Extract.Receivers)
	assert.True(t, root.Generate.Extract.FailFast)
}

func TestGlobals_Diagnostics(t *testing.T) {
	quiet, err := Globals{Quiet: true, LogLevel: "debug"}.Diagnostics()
	require.NoError(t, err)
	assert.Equal(t, utils.DiagnosticError, quiet.Level())

	verbose, err := Globals{Verbose: true}.Diagnostics()
	require.NoError(t, err)
	assert.Equal(t, utils.DiagnosticVerbose, verbose.Level())

	warn, err := Globals{LogLevel: "warn"}.Diagnostics()
	require.NoError(t, err)
	assert.Equal(t, utils.DiagnosticWarn, warn.Level())
}

func TestGenerateCmd_Run(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"package.json": `{"name": "shop-api", "version": "1.0.0"}`,
		"src/app.js":   usersSource,
	})
	output := filepath.Join(root, "docs")

	var cli CLI
	diagnostics, out := bufferedDiagnostics()
	kctx, err := newTestParser(t, &cli, diagnostics).Parse([]string{
		"generate", root, "--format", "all", "--output", output,
	})
	require.NoError(t, err)
	require.NoError(t, kctx.Run())

	for _, name := range render.AllFileNames() {
		_, err := os.Stat(filepath.Join(output, name))
		assert.NoError(t, err, name)
	}

	content, err := os.ReadFile(filepath.Join(output, render.JSONFile))
	require.NoError(t, err)
	var routes []map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &routes))
	assert.Len(t, routes, 3)

	markdown, err := os.ReadFile(filepath.Join(output, render.MarkdownFile))
	require.NoError(t, err)
	assert.Contains(t, string(markdown), "# shop-api (1.0.0)")
	assert.Contains(t, out.String(), "Routes found: 3")
}

func TestCleanCmd_Run(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"routes.json": "[]", "routes.yaml": "[]"})

	var cli CLI
	diagnostics, _ := bufferedDiagnostics()
	kctx, err := newTestParser(t, &cli, diagnostics).Parse([]string{"clean", dir})
	require.NoError(t, err)
	require.NoError(t, kctx.Run())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestConfigInit_Run(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "routedoc.toml")

	var cli CLI
	diagnostics, _ := bufferedDiagnostics()
	kctx, err := newTestParser(t, &cli, diagnostics).Parse([]string{"config", "init", "--as", "toml", "--path", dest})
	require.NoError(t, err)
	require.NoError(t, kctx.Run())

	_, err = os.Stat(dest)
	assert.NoError(t, err)
}
