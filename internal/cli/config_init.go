package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/toyz/routedoc/internal/errors"
	"github.com/toyz/routedoc/internal/utils"
)

// ConfigBaseName is the file name, without extension, searched for configuration
const ConfigBaseName = "routedoc"

// ConfigCommand groups config-related subcommands
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit scaffolds a configuration file holding every flag default.
// Its flags are named so a flat JSON configuration never sets them.
type ConfigInit struct {
	As    string `name:"as" help:"File format" enum:"json,yaml,toml" default:"json"`
	Path  string `name:"path" help:"Destination file path (defaults to routedoc.<format> in the current directory)" type:"path"`
	Force bool   `help:"Overwrite if the file already exists"`
}

// Run is called by kong when the config init command is executed
func (c *ConfigInit) Run(diagnostics *utils.DiagnosticSystem) error {
	dest, err := WriteConfigTemplate(c.As, c.Path, c.Force)
	if err != nil {
		return err
	}
	diagnostics.Success("Wrote %s", dest)
	return nil
}

// WriteConfigTemplate writes the configuration template and returns its path
func WriteConfigTemplate(format, dest string, force bool) (string, error) {
	format = normalizeConfigFormat(format)
	if err := utils.IsOneOf("format", configFormats...)(format); err != nil {
		return "", errors.WrapConfigurationError("format", "validate", err).
			WithSuggestion("Use json, yaml or toml")
	}

	if dest == "" {
		dest = ConfigBaseName + "." + format
	}
	if !force {
		if _, err := os.Stat(dest); err == nil {
			return "", errors.ConfigurationError(dest, "destination exists").
				WithSuggestion("Use --force to overwrite")
		}
	}

	data, err := MarshalConfigTemplate(format)
	if err != nil {
		return "", errors.WrapConfigurationError(format, "marshal", err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", utils.WrapWriteError(dest, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", utils.WrapWriteError(dest, err)
	}
	return dest, nil
}

// MarshalConfigTemplate encodes the configuration template in one format
func MarshalConfigTemplate(format string) ([]byte, error) {
	format = normalizeConfigFormat(format)
	root := ConfigTemplate(format)

	switch format {
	case "json":
		return json.MarshalIndent(root, "", "  ")
	case "yaml":
		return yaml.Marshal(root)
	case "toml":
		return toml.Marshal(root)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// configCommands are the commands whose flags belong in a configuration file
var configCommands = []struct {
	name string
	typ  reflect.Type
}{
	{name: "generate", typ: reflect.TypeOf(GenerateCmd{})},
	{name: "serve", typ: reflect.TypeOf(ServeCmd{})},
}

// ConfigTemplate returns every configurable flag with its default, shaped
// the way the loader for format looks values up. The JSON resolver reads
// flat snake_case keys; the YAML and TOML loaders read dashed keys with
// command flags nested under the command name.
func ConfigTemplate(format string) map[string]any {
	if normalizeConfigFormat(format) == "json" {
		root := buildMapFromStruct(reflect.TypeOf(Globals{}), "_")
		for _, cmd := range configCommands {
			for key, value := range buildMapFromStruct(cmd.typ, "_") {
				root[key] = value
			}
		}
		return root
	}

	root := buildMapFromStruct(reflect.TypeOf(Globals{}), "-")
	for _, cmd := range configCommands {
		root[cmd.name] = buildMapFromStruct(cmd.typ, "-")
	}
	return root
}

// ConfigCandidatePaths builds the candidate configuration paths per format.
// An explicit path is routed to the loader matching its extension.
func ConfigCandidatePaths(userPath string) (jsonPaths, yamlPaths, tomlPaths []string) {
	if userPath != "" {
		switch filepath.Ext(userPath) {
		case ".yaml", ".yml":
			yamlPaths = append(yamlPaths, userPath)
		case ".toml":
			tomlPaths = append(tomlPaths, userPath)
		default:
			jsonPaths = append(jsonPaths, userPath)
		}
	}

	jsonPaths = append(jsonPaths, ConfigBaseName+".json")
	yamlPaths = append(yamlPaths, ConfigBaseName+".yaml", ConfigBaseName+".yml")
	tomlPaths = append(tomlPaths, ConfigBaseName+".toml")
	return jsonPaths, yamlPaths, tomlPaths
}

// configFormats are the formats config init can write
var configFormats = []string{"json", "yaml", "toml"}

func normalizeConfigFormat(f string) string {
	switch strings.ToLower(f) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	case "toml":
		return "toml"
	default:
		return ""
	}
}

// skippedConfigFlags never belong in a configuration file
var skippedConfigFlags = map[string]bool{
	"config": true,
}

// buildMapFromStruct maps flag names, with dashes replaced by sep, to defaults
func buildMapFromStruct(t reflect.Type, sep string) map[string]any {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	out := map[string]any{}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || f.Tag.Get("kong") == "-" {
			continue
		}
		if _, ok := f.Tag.Lookup("arg"); ok {
			continue
		}
		if _, ok := f.Tag.Lookup("cmd"); ok {
			continue
		}

		if _, ok := f.Tag.Lookup("embed"); ok || f.Anonymous {
			for k, v := range buildMapFromStruct(f.Type, sep) {
				out[k] = v
			}
			continue
		}

		name := f.Tag.Get("name")
		if name == "" {
			name = kebabCase(f.Name)
		}
		if skippedConfigFlags[name] {
			continue
		}

		if val := defaultValueForField(f.Type, f.Tag.Get("default")); val != nil {
			out[strings.ReplaceAll(name, "-", sep)] = val
		}
	}
	return out
}

func defaultValueForField(t reflect.Type, def string) any {
	switch t.Kind() {
	case reflect.String:
		return def
	case reflect.Bool:
		b, err := strconv.ParseBool(def)
		if err != nil {
			return false
		}
		return b
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(def, 10, 64)
		if err != nil {
			return 0
		}
		return n
	case reflect.Slice:
		if t.Elem().Kind() != reflect.String {
			return nil
		}
		if def == "" {
			return []string{}
		}
		return strings.Split(def, ",")
	default:
		return nil
	}
}

// kebabCase converts a Go field name the way kong derives flag names
func kebabCase(s string) string {
	runes := []rune(s)
	var out strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				out.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		out.WriteRune(r)
	}
	return out.String()
}
