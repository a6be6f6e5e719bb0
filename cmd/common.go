package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/grovetools/docnav/cli"
	"github.com/grovetools/docnav/config"
	"github.com/grovetools/docnav/errors"
	"github.com/spf13/cobra"
)

// siteFlags are the flags that pick which sidebar a command renders.
type siteFlags struct {
	preset string
	root   string
}

func (f *siteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.preset, "preset", "", "Use a built-in site instead of the config file's site: local, pages")
	cmd.Flags().StringVar(&f.root, "root", "", "Root prefix prepended to every address")
}

// loadSite loads the project configuration and applies --preset and --root.
// With --preset, a missing config file is not an error: the preset and the
// defaults are used. It returns the config file path, or "" when none was read.
func (f *siteFlags) loadSite(cmd *cobra.Command) (*config.Config, string, error) {
	cfg, path, err := cli.LoadConfig(cmd)
	if err != nil {
		if f.preset == "" || !errors.Is(err, errors.ErrCodeConfigNotFound) || cli.GetOptions(cmd).ConfigFile != "" {
			return nil, "", err
		}
		cfg, path = &config.Config{}, ""
		if err := cfg.Resolve(); err != nil {
			return nil, "", err
		}
	}

	if f.preset != "" {
		preset, err := config.Preset(f.preset)
		if err != nil {
			return nil, "", err
		}
		cfg.Preset = f.preset
		cfg.Site = preset.Site
		cfg.Root = preset.Root
	}
	if cmd.Flags().Changed("root") {
		root := f.root
		cfg.Root = &root
	}
	return cfg, path, nil
}

// writeJSON prints v as indented JSON.
func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to encode output")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
