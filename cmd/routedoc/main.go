package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"

	"github.com/toyz/routedoc/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var root cli.CLI
	parser, err := newParser(&root, findUserConfig(args))
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to build command line: " + err.Error() + "\n")
		return 2
	}

	kctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	diagnostics, err := root.Diagnostics()
	kctx.FatalIfErrorf(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx.BindTo(ctx, (*context.Context)(nil))
	kctx.Bind(diagnostics)

	if err := kctx.Run(); err != nil {
		cli.NewDiagnosticReporter(diagnostics).ReportError(err)
		return 1
	}
	return 0
}

// newParser builds the kong parser. Configuration files are loaded in
// priority order; flags and env vars override their values.
func newParser(root *cli.CLI, userConfig string, options ...kong.Option) (*kong.Kong, error) {
	jsonPaths, yamlPaths, tomlPaths := cli.ConfigCandidatePaths(userConfig)

	options = append([]kong.Option{
		kong.Name("routedoc"),
		kong.Description("Extract Express-style route registrations and their doc comments into API documentation"),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	}, options...)

	return kong.New(root, options...)
}

// findUserConfig locates --config before kong runs, so the file can be
// handed to the matching loader
func findUserConfig(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--config=") {
			return a[len("--config="):]
		}
		if a == "--config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("ROUTEDOC_CONFIG"); v != "" {
		return v
	}
	return ""
}
