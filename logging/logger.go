package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/grovetools/docnav/config"
	"github.com/grovetools/docnav/util/pathutil"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

var (
	loggers   = make(map[string]*logrus.Entry)
	loggersMu sync.Mutex

	// active is the configuration applied to new loggers. nil means it is
	// read from docnav.yml on first use.
	active *Config

	// Command line overrides, applied on top of any configuration.
	forceDebug bool
	forceJSON  bool
)

// SetOverrides forces debug level and/or JSON output for every logger
// created afterwards, regardless of configuration.
func SetOverrides(debug, json bool) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	forceDebug = debug
	forceJSON = json
	loggers = make(map[string]*logrus.Entry)
}

// Configure sets the logging configuration used by subsequent NewLogger
// calls and drops cached loggers so they pick it up.
func Configure(cfg Config) {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	c := cfg
	active = &c
	loggers = make(map[string]*logrus.Entry)
}

// ConfigureFrom decodes the "logging" extension of a loaded docnav config
// and applies it.
func ConfigureFrom(cfg *config.Config) error {
	var logCfg Config
	if cfg != nil {
		if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
			return err
		}
	}
	Configure(logCfg)
	return nil
}

// NewLogger creates and returns a pre-configured logger for a specific component.
// It uses a singleton pattern per component to avoid re-initializing.
func NewLogger(component string) *logrus.Entry {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if logger, exists := loggers[component]; exists {
		return logger
	}

	logCfg := loadConfig()
	logger := logrus.New()

	// Configure Level
	levelStr := "info"
	if os.Getenv("DOCNAV_LOG_LEVEL") != "" {
		levelStr = os.Getenv("DOCNAV_LOG_LEVEL")
	} else if logCfg.Level != "" {
		levelStr = logCfg.Level
	}
	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		level = logrus.InfoLevel
	}
	if forceDebug {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)

	// Configure Caller Reporting
	if os.Getenv("DOCNAV_LOG_CALLER") == "true" || logCfg.ReportCaller {
		logger.SetReportCaller(true)
	}

	// Configure Formatter
	preset := logCfg.Format.Preset
	if forceJSON {
		preset = "json"
	}
	switch preset {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "simple":
		logger.SetFormatter(&TextFormatter{Config: FormatConfig{
			DisableTimestamp: true,
			DisableComponent: true,
		}})
	default:
		logger.SetFormatter(&TextFormatter{Config: logCfg.Format})
	}

	// Configure Output Sinks
	var writers []io.Writer

	// File sink (opt-in)
	if logCfg.File.Enabled {
		logFilePath := pathutil.Expand(logCfg.File.Path)
		if logFilePath == "" {
			if cwd, err := os.Getwd(); err == nil {
				dateStr := time.Now().Format("2006-01-02")
				logFilePath = filepath.Join(cwd, ".docnav", "logs", fmt.Sprintf("%s-%s.log", component, dateStr))
			}
		}
		if logFilePath != "" {
			dir := filepath.Dir(logFilePath)
			if err := os.MkdirAll(dir, 0755); err != nil {
				logger.Warnf("Failed to create log directory %s: %v", dir, err)
			} else if file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666); err == nil {
				writers = append(writers, file)
			} else {
				logger.Warnf("Failed to open log file %s: %v", logFilePath, err)
			}
		}
	}

	// Determine if we should write structured logs to stderr
	shouldLogToStderr := false
	stderrMode := "auto"
	if logCfg.Format.StructuredToStderr != "" {
		stderrMode = logCfg.Format.StructuredToStderr
	}

	switch stderrMode {
	case "always":
		shouldLogToStderr = true
	case "never":
		shouldLogToStderr = false
	case "auto":
		// Interactive terminals only see structured logs in debug mode;
		// piped output and CI always get them.
		isDebug := os.Getenv("DOCNAV_DEBUG") == "1" || logger.GetLevel() >= logrus.DebugLevel
		isInteractive := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		if isDebug || !isInteractive {
			shouldLogToStderr = true
		}
	}

	if shouldLogToStderr {
		writers = append(writers, GetGlobalOutput())
	}

	switch len(writers) {
	case 0:
		logger.SetOutput(io.Discard)
	case 1:
		logger.SetOutput(writers[0])
	default:
		logger.SetOutput(io.MultiWriter(writers...))
	}

	entry := logger.WithField("component", component)
	loggers[component] = entry
	return entry
}

// loadConfig returns the active configuration, reading docnav.yml from the
// working directory the first time. Must be called with loggersMu held.
func loadConfig() Config {
	if active != nil {
		return *active
	}

	var logCfg Config
	cfg, err := config.LoadDefault()
	if err == nil {
		if err := cfg.UnmarshalExtension("logging", &logCfg); err != nil {
			logrus.Warnf("Failed to parse 'logging' config: %v", err)
		}
	}
	active = &logCfg
	return logCfg
}
