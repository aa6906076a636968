package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	toml "github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/toyz/routedoc/internal/errors"
)

func TestConfigTemplate_JSON(t *testing.T) {
	template := ConfigTemplate("json")

	assert.Equal(t, "info", template["log_level"])
	assert.Equal(t, []string{"app", "router"}, template["receivers"])
	assert.Equal(t, int64(2097152), template["max_file_size"])
	assert.Equal(t, false, template["fail_fast"])
	assert.Equal(t, "docs", template["output"])
	assert.Equal(t, "both", template["format"])
	assert.Equal(t, "127.0.0.1:8080", template["addr"])

	assert.NotContains(t, template, "config")
	assert.NotContains(t, template, "paths")
	assert.NotContains(t, template, "dirs")
	assert.NotContains(t, template, "generate")
}

func TestConfigTemplate_Nested(t *testing.T) {
	for _, format := range []string{"yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			template := ConfigTemplate(format)

			assert.Equal(t, "info", template["log-level"])
			assert.NotContains(t, template, "format")

			generate, ok := template["generate"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "both", generate["format"])
			assert.Equal(t, int64(2097152), generate["max-file-size"])

			serve, ok := template["serve"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, "127.0.0.1:8080", serve["addr"])
			assert.Equal(t, []string{"app", "router"}, serve["receivers"])
		})
	}
}

func TestKebabCase(t *testing.T) {
	tests := map[string]string{
		"LogLevel":    "log-level",
		"MaxFileSize": "max-file-size",
		"Addr":        "addr",
		"HTTPAddr":    "http-addr",
	}
	for input, expected := range tests {
		assert.Equal(t, expected, kebabCase(input), input)
	}
}

func TestWriteConfigTemplate(t *testing.T) {
	dir := t.TempDir()

	t.Run("json", func(t *testing.T) {
		dest, err := WriteConfigTemplate("json", filepath.Join(dir, "routedoc.json"), false)
		require.NoError(t, err)

		content, err := os.ReadFile(dest)
		require.NoError(t, err)
		var decoded map[string]interface{}
		require.NoError(t, json.Unmarshal(content, &decoded))
		assert.Equal(t, "both", decoded["format"])
	})

	t.Run("yaml", func(t *testing.T) {
		dest, err := WriteConfigTemplate("yml", filepath.Join(dir, "nested", "routedoc.yaml"), false)
		require.NoError(t, err)

		content, err := os.ReadFile(dest)
		require.NoError(t, err)
		var decoded struct {
			LogLevel string `yaml:"log-level"`
			Generate struct {
				Output string `yaml:"output"`
			} `yaml:"generate"`
		}
		require.NoError(t, yaml.Unmarshal(content, &decoded))
		assert.Equal(t, "info", decoded.LogLevel)
		assert.Equal(t, "docs", decoded.Generate.Output)
	})

	t.Run("toml", func(t *testing.T) {
		dest, err := WriteConfigTemplate("toml", filepath.Join(dir, "routedoc.toml"), false)
		require.NoError(t, err)

		tree, err := toml.LoadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "docs", tree.Get("generate.output"))
		assert.Equal(t, "info", tree.Get("log-level"))
	})

	t.Run("existing file needs force", func(t *testing.T) {
		dest := filepath.Join(dir, "routedoc.json")
		_, err := WriteConfigTemplate("json", dest, false)
		assert.Error(t, err)

		_, err = WriteConfigTemplate("json", dest, true)
		assert.NoError(t, err)
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := WriteConfigTemplate("ini", filepath.Join(dir, "routedoc.ini"), false)
		require.Error(t, err)
		assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
		assert.Contains(t, err.Error(), "must be one of: [json yaml toml]")

		_, statErr := os.Stat(filepath.Join(dir, "routedoc.ini"))
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestConfigCandidatePaths(t *testing.T) {
	jsonPaths, yamlPaths, tomlPaths := ConfigCandidatePaths("custom/settings.yml")

	assert.Equal(t, []string{"routedoc.json"}, jsonPaths)
	assert.Equal(t, []string{"custom/settings.yml", "routedoc.yaml", "routedoc.yml"}, yamlPaths)
	assert.Equal(t, []string{"routedoc.toml"}, tomlPaths)
}
