package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// It defines the bridge commands, browser behavior, and ambient settings.
type Config struct {
	Bridge struct {
		// List is the listing command argv; the target directory is
		// appended as the final argument. The tool must print one entry
		// per line with a trailing "/" on directories.
		List []string `yaml:"list"`
		// Pull is the copy command argv; the remote path and the local
		// destination directory are appended as the final arguments.
		Pull []string `yaml:"pull"`
		// PollIntervalMS bounds the wait used by the output drain loop
		// so process exit is noticed even when no output arrives.
		PollIntervalMS int `yaml:"poll_interval_ms"`
	} `yaml:"bridge"`
	Browser struct {
		StartDir    string   `yaml:"start_dir"`    // Jail root; navigation never goes above it
		Hide        []string `yaml:"hide"`         // Glob patterns for entries to drop from listings
		AutoAdvance bool     `yaml:"auto_advance"` // Move the cursor down after selecting
	} `yaml:"browser"`
	Download struct {
		Dir   string `yaml:"dir"`   // Local destination for pulled files
		Watch bool   `yaml:"watch"` // Report files arriving in Dir during a copy
	} `yaml:"download"`
	Notify struct {
		// Command argv; title and body are appended as the final arguments.
		Command []string `yaml:"command"`
	} `yaml:"notify"`
	Log struct {
		File string `yaml:"file"` // Diagnostics go here; the TUI owns the terminal
	} `yaml:"log"`
}

// LoadConfig loads configuration from the default location
// (~/.config/devpull/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "devpull", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal over the defaults: only keys present in the file
	// overwrite them.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// New returns the default configuration.
func New() *Config {
	cfg := &Config{}

	cfg.Bridge.List = []string{"adb", "shell", "ls", "-p"}
	cfg.Bridge.Pull = []string{"adb", "pull"}
	cfg.Bridge.PollIntervalMS = 100

	cfg.Browser.StartDir = "/sdcard/"
	cfg.Browser.Hide = []string{}
	cfg.Browser.AutoAdvance = true

	cfg.Download.Dir = "."
	cfg.Download.Watch = true

	cfg.Notify.Command = []string{"notify-send"}

	cfg.Log.File = defaultLogFile()

	return cfg
}

// Validate checks the configuration for values the rest of the program
// cannot work with.
func (c *Config) Validate() error {
	if len(c.Bridge.List) == 0 {
		return fmt.Errorf("bridge.list must not be empty")
	}
	if len(c.Bridge.Pull) == 0 {
		return fmt.Errorf("bridge.pull must not be empty")
	}
	if c.Bridge.PollIntervalMS <= 0 {
		return fmt.Errorf("bridge.poll_interval_ms must be positive, got %d", c.Bridge.PollIntervalMS)
	}
	if c.Browser.StartDir == "" {
		return fmt.Errorf("browser.start_dir must not be empty")
	}
	if c.Download.Dir == "" {
		return fmt.Errorf("download.dir must not be empty")
	}
	return nil
}

func defaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "devpull.log")
	}
	return filepath.Join(home, ".cache", "devpull", "devpull.log")
}
