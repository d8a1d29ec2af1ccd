package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppName names the per-user configuration directory
	AppName = "gitdesk"
	// FileName is the configuration file inside Dir()
	FileName = "config.yaml"
	// DirEnvVar overrides the configuration directory
	DirEnvVar = "GITDESK_CONFIG_DIR"
)

// Config is the contents of config.yaml
type Config struct {
	Git    GitConfig    `yaml:"git"`
	GitHub GitHubConfig `yaml:"github"`
	UI     UIConfig     `yaml:"ui"`
	Log    LogConfig    `yaml:"log"`
}

// GitConfig controls how the git binary is invoked
type GitConfig struct {
	Binary  string        `yaml:"binary"`
	Timeout time.Duration `yaml:"timeout"`
}

// GitHubConfig controls the repository listing client
type GitHubConfig struct {
	Host    string        `yaml:"host"`
	Timeout time.Duration `yaml:"timeout"`
	// APIURL replaces the API root derived from Host
	APIURL string `yaml:"api_url"`
}

// UIConfig controls the terminal interface
type UIConfig struct {
	// Watch enables refreshing when git state changes outside gitdesk
	Watch bool `yaml:"watch"`
	// WatchDebounce batches bursts of file events into one refresh
	WatchDebounce time.Duration `yaml:"watch_debounce"`
}

// LogConfig controls the rotating log file
type LogConfig struct {
	File string `yaml:"file"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Git: GitConfig{
			Binary:  "git",
			Timeout: 5 * time.Minute,
		},
		GitHub: GitHubConfig{
			Host:    "github.com",
			Timeout: 30 * time.Second,
		},
		UI: UIConfig{
			Watch:         true,
			WatchDebounce: 300 * time.Millisecond,
		},
	}
}

// Dir returns the per-user configuration directory. GITDESK_CONFIG_DIR takes
// precedence over the platform default.
func Dir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(DirEnvVar)); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// Path returns the config file path inside dir
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load reads the configuration at path. A missing file yields the defaults;
// a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// fillDefaults restores defaults for fields the file set to zero values
func (c *Config) fillDefaults() {
	def := Default()
	if strings.TrimSpace(c.Git.Binary) == "" {
		c.Git.Binary = def.Git.Binary
	}
	if c.Git.Timeout <= 0 {
		c.Git.Timeout = def.Git.Timeout
	}
	if strings.TrimSpace(c.GitHub.Host) == "" {
		c.GitHub.Host = def.GitHub.Host
	}
	if c.GitHub.Timeout <= 0 {
		c.GitHub.Timeout = def.GitHub.Timeout
	}
	if c.UI.WatchDebounce <= 0 {
		c.UI.WatchDebounce = def.UI.WatchDebounce
	}
}
