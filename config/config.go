package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/docnav/errors"
	"github.com/grovetools/docnav/schema"
	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// Format is the encoding of a config file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ConfigFileNames are searched for, in order, in each directory.
var ConfigFileNames = []string{
	"docnav.yml",
	"docnav.yaml",
	"docnav.toml",
	".docnav.yml",
	".docnav.yaml",
}

// IsConfigFile reports whether name is a project or override file name.
func IsConfigFile(name string) bool {
	for _, n := range ConfigFileNames {
		if n == name {
			return true
		}
	}
	for _, n := range overrideFileNames {
		if n == name {
			return true
		}
	}
	return false
}

// FormatForPath picks the decoder from the file extension. Anything that
// is not .toml is read as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads and parses a single docnav configuration file
func Load(path string) (*Config, error) {
	config, err := loadRaw(path)
	if err != nil {
		return nil, err
	}
	if err := config.Resolve(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadDefault finds and loads the configuration starting from the
// current directory:
// 1. Project config (docnav.yml), found by walking up
// 2. Local override (docnav.override.yml) - overrides the project file
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to get current directory")
	}

	return LoadFrom(cwd)
}

// LoadFrom loads configuration with override merging starting from the given directory
func LoadFrom(startDir string) (*Config, error) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return LoadFromWithLogger(startDir, logger)
}

// LoadFromWithLogger loads configuration with override merging and logging
func LoadFromWithLogger(startDir string, logger *logrus.Logger) (*Config, error) {
	projectPath, err := FindConfigFile(startDir)
	if err != nil {
		return nil, err
	}

	logger.WithField("path", projectPath).Debug("Loading project configuration")

	config, err := LoadWithOverrides(projectPath, logger)
	if err != nil {
		return nil, err
	}

	logger.Debug("Configuration loaded and validated successfully")

	if logger.IsLevelEnabled(logrus.DebugLevel) {
		configData, err := yaml.Marshal(config)
		if err == nil {
			logger.Debugf("Merged configuration:\n%s", string(configData))
		}
	}

	return config, nil
}

// LoadFromBytes parses configuration from byte array and resolves presets
// and defaults.
func LoadFromBytes(data []byte, format Format) (*Config, error) {
	config, err := parse(data, format)
	if err != nil {
		return nil, err
	}
	if err := config.Resolve(); err != nil {
		return nil, err
	}
	return config, nil
}

// Resolve applies the preset, fills defaults and validates the build
// settings. Site fields are never validated here.
func (c *Config) Resolve() error {
	if err := c.ApplyPreset(); err != nil {
		return err
	}
	c.SetDefaults()
	return c.Validate()
}

// FindConfigFile searches for a docnav configuration file from startDir up
// to the filesystem root.
func FindConfigFile(startDir string) (string, error) {
	dir := startDir
	for {
		for _, name := range ConfigFileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", errors.ConfigNotFound(startDir).WithDetail("searchPath", startDir)
}

// loadRaw reads one file without presets, defaults or validation.
func loadRaw(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	config, err := parse(data, FormatForPath(path))
	if err != nil {
		if navErr, ok := errors.As(err); ok {
			navErr.WithDetail("path", path)
		}
		return nil, err
	}
	return config, nil
}

// parse expands environment variables, decodes to a generic map, checks the
// map against the embedded schema and decodes it into a Config.
func parse(data []byte, format Format) (*Config, error) {
	expanded := expandEnvVars(string(data))

	raw := map[string]interface{}{}
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal([]byte(expanded), &raw); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse TOML configuration")
		}
	default:
		if len(bytes.TrimSpace([]byte(expanded))) > 0 {
			if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
				return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
			}
		}
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}

	validator, err := schema.NewValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create validator")
	}
	if err := validator.Validate(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "schema validation failed")
	}

	var config Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &config,
		TagName: "yaml",
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to create config decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to decode configuration")
	}

	for key, value := range raw {
		if knownKeys[key] {
			continue
		}
		if config.Extensions == nil {
			config.Extensions = make(map[string]interface{})
		}
		config.Extensions[key] = value
	}

	return &config, nil
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value, ok := os.LookupEnv(varName); ok && value != "" {
			return value
		}
		return defaultValue
	})
}
