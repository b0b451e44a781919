package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

const (
	appName = "mpdisplay"

	// Art source modes
	SourceCommand = "command"
	SourceMPD     = "mpd"
)

// AppConfig holds application configuration
type AppConfig struct {
	MPD     MPDConfig     `koanf:"mpd"`
	Art     ArtConfig     `koanf:"art"`
	Display DisplayConfig `koanf:"display"`
	Log     LogConfig     `koanf:"log"`
}

// MPDConfig describes how to reach the player daemon
type MPDConfig struct {
	Network           string        `koanf:"network"` // "tcp" or "unix"
	Address           string        `koanf:"address"`
	Password          string        `koanf:"password"`
	ReconnectInterval time.Duration `koanf:"reconnect_interval"`
}

// ArtConfig controls where background and album images come from
type ArtConfig struct {
	Artists        string        `koanf:"artists"` // directory or http(s) base URL
	Extension      string        `koanf:"extension"`
	Backup         string        `koanf:"backup"`
	Watermark      string        `koanf:"watermark"`
	Source         string        `koanf:"source"` // "command" or "mpd"
	Command        []string      `koanf:"command"`
	Timeout        time.Duration `koanf:"timeout"`
	Async          bool          `koanf:"async"`
	BackgroundBlur float64       `koanf:"background_blur"`
}

// DisplayConfig holds window and typography settings
type DisplayConfig struct {
	Title              string `koanf:"title"`
	Fullscreen         bool   `koanf:"fullscreen"`
	CursorVisible      bool   `koanf:"cursor_visible"`
	FPS                int    `koanf:"fps"`
	FontLight          string `koanf:"font_light"`
	FontBold           string `koanf:"font_bold"`
	InhibitScreensaver bool   `koanf:"inhibit_screensaver"`
}

// LogConfig configures the zap logger and its optional rotating file
type LogConfig struct {
	Level      string `koanf:"level"`
	File       string `koanf:"file"`
	MaxSize    int    `koanf:"max_size"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAge     int    `koanf:"max_age"`
	Compress   bool   `koanf:"compress"`
}

// Default returns the configuration used when no file overrides a key
func Default() *AppConfig {
	return &AppConfig{
		MPD: MPDConfig{
			Network:           "tcp",
			Address:           "localhost:6600",
			ReconnectInterval: time.Second,
		},
		Art: ArtConfig{
			Artists:   "./artists",
			Extension: ".jpg",
			Backup:    "./assets/art_backup",
			Watermark: "./assets/logo.png",
			Source:    SourceCommand,
			Command:   []string{"mpc", "readpicture"},
			Timeout:   5 * time.Second,
		},
		Display: DisplayConfig{
			Title:              "MPD Display",
			Fullscreen:         true,
			CursorVisible:      true,
			FPS:                30,
			InhibitScreensaver: true,
		},
		Log: LogConfig{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// Load reads the config files in priority order (last wins), applies
// environment overrides and validates the result. explicit may be empty.
func Load(explicit string) (*AppConfig, error) {
	k := koanf.New(".")

	for _, path := range configPaths(explicit) {
		if _, err := os.Stat(path); err != nil {
			if path == explicit {
				return nil, fmt.Errorf("config file %s: %w", path, err)
			}
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	applyEnv(cfg)

	cfg.Art.Artists = expandPath(cfg.Art.Artists)
	cfg.Art.Backup = expandPath(cfg.Art.Backup)
	cfg.Art.Watermark = expandPath(cfg.Art.Watermark)
	cfg.Display.FontLight = expandPath(cfg.Display.FontLight)
	cfg.Display.FontBold = expandPath(cfg.Display.FontBold)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the display cannot run with
func (c *AppConfig) Validate() error {
	switch c.MPD.Network {
	case "tcp", "unix":
	default:
		return fmt.Errorf("mpd.network must be tcp or unix, got %q", c.MPD.Network)
	}
	if c.MPD.Address == "" {
		return fmt.Errorf("mpd.address must not be empty")
	}
	switch c.Art.Source {
	case SourceCommand:
		if len(c.Art.Command) == 0 {
			return fmt.Errorf("art.command must name a program when art.source is %q", SourceCommand)
		}
	case SourceMPD:
	default:
		return fmt.Errorf("art.source must be %q or %q, got %q", SourceCommand, SourceMPD, c.Art.Source)
	}
	if c.Display.FPS < 1 || c.Display.FPS > 240 {
		return fmt.Errorf("display.fps must be between 1 and 240, got %d", c.Display.FPS)
	}
	if c.Art.BackgroundBlur < 0 {
		return fmt.Errorf("art.background_blur must not be negative")
	}
	return nil
}

// ArtistsRemote reports whether artist images are served over HTTP
func (c *AppConfig) ArtistsRemote() bool {
	return strings.HasPrefix(c.Art.Artists, "http://") || strings.HasPrefix(c.Art.Artists, "https://")
}

// CommandEnv returns the environment handed to the picture command so that
// it talks to the same daemon as the display.
func (c *AppConfig) CommandEnv() []string {
	if c.MPD.Network == "unix" {
		return []string{"MPD_HOST=" + c.MPD.Address}
	}
	host, port, err := net.SplitHostPort(c.MPD.Address)
	if err != nil {
		return []string{"MPD_HOST=" + c.MPD.Address}
	}
	if c.MPD.Password != "" {
		host = c.MPD.Password + "@" + host
	}
	return []string{"MPD_HOST=" + host, "MPD_PORT=" + port}
}

// LogSummary writes the effective configuration to the logger
func (c *AppConfig) LogSummary(logger *zap.Logger) {
	logger.Info("Configuration loaded",
		zap.String("mpd", c.MPD.Network+"://"+c.MPD.Address),
		zap.String("artists", c.Art.Artists),
		zap.String("artSource", c.Art.Source),
		zap.Bool("asyncArt", c.Art.Async),
		zap.Bool("fullscreen", c.Display.Fullscreen),
		zap.String("logLevel", c.Log.Level))
}

func configPaths(explicit string) []string {
	paths := []string{
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		"config.toml",
	}
	if explicit != "" {
		paths = append(paths, explicit)
	}
	return paths
}

// applyEnv reads overrides from environment variables
func applyEnv(cfg *AppConfig) {
	if host := os.Getenv("MPD_HOST"); host != "" {
		if strings.HasPrefix(host, "/") {
			cfg.MPD.Network = "unix"
			cfg.MPD.Address = host
		} else {
			if pw, h, ok := strings.Cut(host, "@"); ok {
				cfg.MPD.Password = pw
				host = h
			}
			port := os.Getenv("MPD_PORT")
			if port == "" {
				if _, p, err := net.SplitHostPort(cfg.MPD.Address); err == nil {
					port = p
				} else {
					port = "6600"
				}
			}
			cfg.MPD.Network = "tcp"
			cfg.MPD.Address = net.JoinHostPort(host, port)
		}
	} else if port := os.Getenv("MPD_PORT"); port != "" && cfg.MPD.Network == "tcp" {
		if h, _, err := net.SplitHostPort(cfg.MPD.Address); err == nil {
			cfg.MPD.Address = net.JoinHostPort(h, port)
		}
	}

	if level := os.Getenv("MPDISPLAY_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if artists := os.Getenv("MPDISPLAY_ARTISTS"); artists != "" {
		cfg.Art.Artists = artists
	}
}

// expandPath expands environment variables and a leading ~
func expandPath(path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return path
}
