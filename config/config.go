// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package config loads the launcher configuration.
//
// Values come from, in decreasing precedence: command-line flags, PACREAD_*
// environment variables (dots become underscores, so browser.command is
// PACREAD_BROWSER_COMMAND), a pac-read.yaml (or .yml, .json, .toml) file, and
// built-in defaults. The file is looked up in the directory holding the
// executable unless an explicit path is given.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the config file name without extension.
const FileName = "pac-read"

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "PACREAD"

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete launcher configuration.
type Config struct {
	// Debug enables debug logging.
	Debug bool `mapstructure:"debug" yaml:"debug"`
	// BaseDir holds the HTML forms. Empty means the executable's directory.
	BaseDir string `mapstructure:"base_dir" yaml:"base_dir"`
	// MessagesDir is where message files are staged, relative to BaseDir
	// unless absolute.
	MessagesDir string        `mapstructure:"messages_dir" yaml:"messages_dir"`
	Log         LogConfig     `mapstructure:"log" yaml:"log"`
	Browser     BrowserConfig `mapstructure:"browser" yaml:"browser"`
	Legacy      LegacyConfig  `mapstructure:"legacy" yaml:"legacy"`
	// Notify shows a desktop notification when the viewer cannot be opened.
	Notify bool `mapstructure:"notify" yaml:"notify"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-" yaml:"-"`
}

// LogConfig controls logging.
type LogConfig struct {
	// File receives log output in addition to stderr when set.
	File   string `mapstructure:"file" yaml:"file"`
	Format string `mapstructure:"format" yaml:"format"`
}

// BrowserConfig controls how the viewer is opened.
type BrowserConfig struct {
	// Command is a browser command template. %1 is replaced by the viewer
	// URL. Empty means resolve it from the registry.
	Command string `mapstructure:"command" yaml:"command"`
	// Exhaustive runs every registry strategy and logs every match.
	Exhaustive bool `mapstructure:"exhaustive" yaml:"exhaustive"`
	// Wait blocks until the browser exits and returns its exit code.
	Wait bool `mapstructure:"wait" yaml:"wait"`
}

// LegacyConfig names the launcher used for messages without a form.
type LegacyConfig struct {
	// Command is a command template. %1 is replaced by the message file;
	// without %1 the reader arguments are appended.
	Command string `mapstructure:"command" yaml:"command"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		MessagesDir: "msgs",
		Log:         LogConfig{Format: LogFormatText},
		Notify:      true,
	}
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"debug":           "debug",
	"base-dir":        "base_dir",
	"messages-dir":    "messages_dir",
	"log-file":        "log.file",
	"log-format":      "log.format",
	"browser-command": "browser.command",
	"exhaustive":      "browser.exhaustive",
	"wait":            "browser.wait",
	"legacy-command":  "legacy.command",
	"notify":          "notify",
}

// Options controls Load.
type Options struct {
	// File is an explicit config file. It must exist.
	File string
	// SearchDirs are searched in order for pac-read.<ext> when File is empty.
	// Defaults to the executable's directory.
	SearchDirs []string
	// Flags are bound to their config keys. Only flags the user set
	// override other sources.
	Flags *pflag.FlagSet
	// Fs is the file system config files are read from. Defaults to the OS.
	Fs afero.Fs
}

// Load reads and validates the configuration.
func Load(opts Options) (Config, error) {
	v := viper.New()
	if opts.Fs != nil {
		v.SetFs(opts.Fs)
	}

	setDefaults(v, Defaults())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		dirs := opts.SearchDirs
		if len(dirs) == 0 {
			if dir, err := ExecutableDir(); err == nil {
				dirs = []string{dir}
			}
		}
		v.SetConfigName(FileName)
		for _, dir := range dirs {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("debug", d.Debug)
	v.SetDefault("base_dir", d.BaseDir)
	v.SetDefault("messages_dir", d.MessagesDir)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("browser.command", d.Browser.Command)
	v.SetDefault("browser.exhaustive", d.Browser.Exhaustive)
	v.SetDefault("browser.wait", d.Browser.Wait)
	v.SetDefault("legacy.command", d.Legacy.Command)
	v.SetDefault("notify", d.Notify)
}

// Validate checks values that cannot be fixed up later.
func (c Config) Validate() error {
	switch strings.ToLower(c.Log.Format) {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log.format must be %q or %q, got %q", ErrInvalidConfig, LogFormatText, LogFormatJSON, c.Log.Format)
	}
	if strings.TrimSpace(c.MessagesDir) == "" {
		return fmt.Errorf("%w: messages_dir must not be empty", ErrInvalidConfig)
	}
	return nil
}

// StructuredLogs reports whether logs are written as JSON.
func (c Config) StructuredLogs() bool {
	return strings.EqualFold(c.Log.Format, LogFormatJSON)
}

// ResolveBaseDir returns BaseDir, or the executable's directory when it is
// empty.
func (c Config) ResolveBaseDir() (string, error) {
	if c.BaseDir != "" {
		return filepath.Abs(c.BaseDir)
	}
	return ExecutableDir()
}

// MessagesPath returns the staging directory for a base directory.
func (c Config) MessagesPath(base string) string {
	if filepath.IsAbs(c.MessagesDir) {
		return c.MessagesDir
	}
	return filepath.Join(base, c.MessagesDir)
}

// ExecutableDir returns the directory holding the running executable, with
// symlinks resolved.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
