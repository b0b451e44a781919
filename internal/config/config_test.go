package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"MPD_HOST", "MPD_PORT", "MPDISPLAY_LOG_LEVEL", "MPDISPLAY_ARTISTS"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "tcp", cfg.MPD.Network)
	assert.Equal(t, "localhost:6600", cfg.MPD.Address)
	assert.Equal(t, "./artists", cfg.Art.Artists)
	assert.Equal(t, []string{"mpc", "readpicture"}, cfg.Art.Command)
	assert.Equal(t, 5*time.Second, cfg.Art.Timeout)
	assert.True(t, cfg.Display.Fullscreen)
	assert.Equal(t, 30, cfg.Display.FPS)
	assert.False(t, cfg.Art.Async)
}

func TestLoad_FileOverrides(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
[mpd]
address = "music.lan:6601"
reconnect_interval = "3s"

[art]
artists = "https://img.example.com/artists"
source = "mpd"
async = true
background_blur = 4.5

[display]
fullscreen = false

[log]
level = "debug"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "music.lan:6601", cfg.MPD.Address)
	assert.Equal(t, 3*time.Second, cfg.MPD.ReconnectInterval)
	assert.Equal(t, SourceMPD, cfg.Art.Source)
	assert.True(t, cfg.Art.Async)
	assert.InDelta(t, 4.5, cfg.Art.BackgroundBlur, 1e-9)
	assert.True(t, cfg.ArtistsRemote())
	assert.False(t, cfg.Display.Fullscreen)
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched keys keep their defaults
	assert.Equal(t, "./assets/art_backup", cfg.Art.Backup)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	tests := []struct {
		name        string
		host, port  string
		wantNetwork string
		wantAddress string
		wantPass    string
	}{
		{name: "host only", host: "10.0.0.5", wantNetwork: "tcp", wantAddress: "10.0.0.5:6600"},
		{name: "host and port", host: "box", port: "7700", wantNetwork: "tcp", wantAddress: "box:7700"},
		{name: "password", host: "secret@box", wantNetwork: "tcp", wantAddress: "box:6600", wantPass: "secret"},
		{name: "unix socket", host: "/run/mpd/socket", wantNetwork: "unix", wantAddress: "/run/mpd/socket"},
		{name: "port only", port: "6700", wantNetwork: "tcp", wantAddress: "localhost:6700"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("MPD_HOST", tt.host)
			t.Setenv("MPD_PORT", tt.port)

			cfg, err := Load(writeConfig(t, ""))
			require.NoError(t, err)
			assert.Equal(t, tt.wantNetwork, cfg.MPD.Network)
			assert.Equal(t, tt.wantAddress, cfg.MPD.Address)
			assert.Equal(t, tt.wantPass, cfg.MPD.Password)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{name: "bad network", mutate: func(c *AppConfig) { c.MPD.Network = "udp" }},
		{name: "empty address", mutate: func(c *AppConfig) { c.MPD.Address = "" }},
		{name: "bad source", mutate: func(c *AppConfig) { c.Art.Source = "web" }},
		{name: "empty command", mutate: func(c *AppConfig) { c.Art.Command = nil }},
		{name: "negative blur", mutate: func(c *AppConfig) { c.Art.BackgroundBlur = -1 }},
		{name: "zero fps", mutate: func(c *AppConfig) { c.Display.FPS = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestCommandEnv(t *testing.T) {
	cfg := Default()
	assert.Equal(t, []string{"MPD_HOST=localhost", "MPD_PORT=6600"}, cfg.CommandEnv())

	cfg.MPD.Password = "pw"
	assert.Equal(t, []string{"MPD_HOST=pw@localhost", "MPD_PORT=6600"}, cfg.CommandEnv())

	cfg.MPD.Network = "unix"
	cfg.MPD.Address = "/run/mpd/socket"
	assert.Equal(t, []string{"MPD_HOST=/run/mpd/socket"}, cfg.CommandEnv())
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "art"), expandPath("~/art"))
	assert.Equal(t, "https://x/y", expandPath("https://x/y"))
	assert.Equal(t, "", expandPath(""))
}
