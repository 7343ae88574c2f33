package config

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/goccy/go-yaml"
)

type Config struct {
	Rclone   RcloneConfig   `yaml:"rclone"`
	Progress ProgressConfig `yaml:"progress"`
	Copy     CopyConfig     `yaml:"copy"`
	Logging  LoggingConfig  `yaml:"logging"`

	mu       sync.RWMutex
	watchers []chan<- struct{}
}

type RcloneConfig struct {
	URL          string        `yaml:"url"`
	Username     string        `yaml:"username"`
	Password     string        `yaml:"password"`
	Timeout      time.Duration `yaml:"timeout"`
	StatsTimeout time.Duration `yaml:"stats_timeout"`
}

type ProgressConfig struct {
	Interval    time.Duration `yaml:"interval"`
	ClearScreen bool          `yaml:"clear_screen"`
}

type CopyConfig struct {
	URL          string `yaml:"url"`
	Fs           string `yaml:"fs"`
	Remote       string `yaml:"remote"`
	AutoFilename bool   `yaml:"auto_filename"`
	NoClobber    bool   `yaml:"no_clobber"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Rclone: RcloneConfig{
			URL:          "http://localhost:5572",
			StatsTimeout: 5 * time.Second,
		},
		Progress: ProgressConfig{
			Interval:    time.Second,
			ClearScreen: true,
		},
		Copy: CopyConfig{
			Fs: "local",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads configuration from file with environment variable expansion.
// Values missing from the file keep their defaults.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables
	content := os.ExpandEnv(string(data))

	config := Default()
	if err := yaml.Unmarshal([]byte(content), config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := config.ensureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	return config, nil
}

// Validate checks the settings that would otherwise fail later and less clearly
func (c *Config) Validate() error {
	u, err := url.Parse(c.Rclone.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid rclone url: %q", c.Rclone.URL)
	}

	if c.Rclone.Timeout < 0 {
		return fmt.Errorf("rclone timeout cannot be negative")
	}

	if c.Rclone.StatsTimeout < 0 {
		return fmt.Errorf("rclone stats_timeout cannot be negative")
	}

	if c.Progress.Interval <= 0 {
		return fmt.Errorf("progress interval must be greater than 0")
	}

	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}

	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid logging format: %q", c.Logging.Format)
	}

	return nil
}

func (c *Config) ensureDirectories() error {
	if c.Logging.File == "" {
		return nil
	}

	dir := filepath.Dir(c.Logging.File)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return nil
}

// ParseLevel maps a config level name to a slog level
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid logging level: %q", level)
	}
}

// WatchForChanges registers a channel to receive notifications when config changes
func (c *Config) WatchForChanges() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan struct{}, 1)
	c.watchers = append(c.watchers, ch)
	return ch
}

// Watch reloads the file at configPath whenever it is written, until ctx is done
func (c *Config) Watch(ctx context.Context, configPath string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create config watcher: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := watcher.Add(configDir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch config directory %s: %w", configDir, err)
	}

	go c.watchLoop(ctx, watcher, configPath)
	return nil
}

func (c *Config) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, configPath string) {
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) == filepath.Base(configPath) &&
				(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				slog.Info("config file changed, reloading", "file", configPath)

				// Small delay to ensure file write is complete
				time.Sleep(100 * time.Millisecond)

				if err := c.reload(configPath); err != nil {
					slog.Error("failed to reload config", "error", err)
				} else {
					c.notifyWatchers()
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("config watcher error", "error", err)
		}
	}
}

// reload only picks up settings that can change while a copy is running
func (c *Config) reload(configPath string) error {
	newConfig, err := Load(configPath)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.Logging = newConfig.Logging

	slog.Info("configuration reloaded successfully")
	return nil
}

func (c *Config) notifyWatchers() {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, watcher := range c.watchers {
		select {
		case watcher <- struct{}{}:
		default:
			// Non-blocking send - if buffer is full, skip
		}
	}
}

// GetRClone returns a copy of the rclone configuration
func (c *Config) GetRClone() RcloneConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Rclone
}

// GetProgress returns a copy of the progress configuration
func (c *Config) GetProgress() ProgressConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Progress
}

// GetCopy returns a copy of the copy configuration
func (c *Config) GetCopy() CopyConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Copy
}

// GetLogging returns a copy of the logging configuration
func (c *Config) GetLogging() LoggingConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Logging
}
