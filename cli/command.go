package cli

import (
	"os"
	"path/filepath"

	"github.com/grovetools/docnav/config"
	"github.com/grovetools/docnav/errors"
	"github.com/grovetools/docnav/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommandOptions holds the persistent flags shared by every command.
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
	JSONOutput bool
	NoColor    bool
}

// NewStandardCommand creates a root command carrying the standard flags.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts := GetOptions(cmd)
			if opts.NoColor || os.Getenv("NO_COLOR") != "" {
				DisableColor()
			}
			logging.SetOverrides(opts.Verbose, opts.JSONOutput)
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().StringP("config", "c", "", "Path to docnav.yml config file")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	return cmd
}

// GetOptions extracts the persistent flags from a command.
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
		JSONOutput: jsonOutput,
		NoColor:    noColor,
	}
}

// GetLogger returns the component logger. --verbose and --json are applied
// by the root command before any command runs.
func GetLogger(component string) *logrus.Entry {
	return logging.NewLogger(component)
}

// ConfigPath returns the --config value, or the nearest project file above
// the working directory. It returns "" with a CONFIG_NOT_FOUND error when
// neither exists.
func ConfigPath(cmd *cobra.Command) (string, error) {
	if configFile := GetOptions(cmd).ConfigFile; configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return "", errors.ConfigNotFound(configFile)
		}
		return configFile, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeInternal, "failed to get current directory")
	}
	return config.FindConfigFile(cwd)
}

// LoadConfig loads the project configuration with overrides, anchors its
// build paths to the config file's directory and applies its logging
// section. It returns the path it loaded.
func LoadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	path, err := ConfigPath(cmd)
	if err != nil {
		return nil, "", err
	}

	debug := logrus.New()
	debug.SetOutput(logging.GetGlobalOutput())
	if !GetOptions(cmd).Verbose {
		debug.SetLevel(logrus.InfoLevel)
	} else {
		debug.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.LoadWithOverrides(path, debug)
	if err != nil {
		return nil, path, err
	}
	cfg.AnchorPaths(filepath.Dir(path))

	if err := logging.ConfigureFrom(cfg); err != nil {
		return nil, path, errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid logging section")
	}
	return cfg, path, nil
}

// Execute runs the root command and reports any error through the error
// handler. It returns the process exit code.
func Execute(root *cobra.Command) int {
	cmd, err := root.ExecuteC()
	if err == nil {
		return 0
	}
	if cmd == nil {
		cmd = root
	}
	NewErrorHandler(GetOptions(cmd).Verbose).WithCommand(cmd).Handle(err)
	return ExitCode(err)
}
