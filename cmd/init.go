package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grovetools/docnav/config"
	"github.com/grovetools/docnav/errors"
	"github.com/grovetools/docnav/logging"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const starterHeader = "docnav configuration. Run 'docnav schema' for every option."

func NewInitCmd() *cobra.Command {
	var (
		preset string
		format string
		dir    string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter docnav.yml",
		Long: `Write a starter configuration holding the full sidebar of a
built-in preset, ready to edit.

Examples:
  docnav init
  docnav init --preset pages --format toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, name, err := starterConfig(preset, config.Format(format))
			if err != nil {
				return err
			}

			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil && !force {
				return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("%s already exists (use --force to overwrite)", path)).
					WithDetail("path", path)
			}
			if err := os.WriteFile(path, data, 0644); err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to write config").WithDetail("path", path)
			}

			// The written file must load cleanly.
			if _, err := config.Load(path); err != nil {
				return err
			}

			pretty := logging.NewPrettyLogger().WithWriter(cmd.OutOrStdout())
			pretty.Success(fmt.Sprintf("Created %s from preset '%s'", name, preset))
			pretty.Path("Config", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&preset, "preset", config.PresetLocal, "Preset the sidebar is copied from: local, pages")
	cmd.Flags().StringVar(&format, "format", string(config.FormatYAML), "File format: yaml, toml")
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory to write the file to")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

// starterConfig renders the preset as a standalone config file and returns
// it with its file name.
func starterConfig(preset string, format config.Format) ([]byte, string, error) {
	base, err := config.Preset(preset)
	if err != nil {
		return nil, "", err
	}
	starter := config.Config{
		Version: "1.0",
		Root:    base.Root,
		Site:    base.Site,
		Build: config.BuildConfig{
			Source: ".",
			Output: "_site",
		},
	}

	var buf bytes.Buffer
	switch format {
	case config.FormatYAML:
		fmt.Fprintf(&buf, "# %s\n", starterHeader)
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(starter); err != nil {
			return nil, "", errors.Wrap(err, errors.ErrCodeInternal, "failed to encode config")
		}
		if err := enc.Close(); err != nil {
			return nil, "", errors.Wrap(err, errors.ErrCodeInternal, "failed to encode config")
		}
		return buf.Bytes(), "docnav.yml", nil
	case config.FormatTOML:
		fmt.Fprintf(&buf, "# %s\n", starterHeader)
		if err := toml.NewEncoder(&buf).Encode(starter); err != nil {
			return nil, "", errors.Wrap(err, errors.ErrCodeInternal, "failed to encode config")
		}
		return buf.Bytes(), "docnav.toml", nil
	default:
		return nil, "", errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unknown format '%s'", format)).
			WithDetail("format", format)
	}
}
