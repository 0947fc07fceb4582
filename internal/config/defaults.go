package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			DiscoveryTimeout: 5,
		},
		Playback: PlaybackConfig{
			TimeoutSeconds: 30,
			Subtitle:       "default",
		},
		Tail: TailConfig{
			Enabled:  false,
			Interval: 1000,
		},
		TUI: TUIConfig{
			Theme:           "auto",
			RefreshInterval: 1000,
		},
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 10,
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Server
	if c.Server.DiscoveryTimeout == 0 {
		c.Server.DiscoveryTimeout = d.Server.DiscoveryTimeout
	}

	// Playback
	if c.Playback.TimeoutSeconds == 0 {
		c.Playback.TimeoutSeconds = d.Playback.TimeoutSeconds
	}
	if c.Playback.Subtitle == "" {
		c.Playback.Subtitle = d.Playback.Subtitle
	}

	// Tail
	if c.Tail.Interval == 0 {
		c.Tail.Interval = d.Tail.Interval
	}

	// TUI
	if c.TUI.Theme == "" {
		c.TUI.Theme = d.TUI.Theme
	}
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = d.Log.MaxSizeMB
	}
}
