package config

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Playback PlaybackConfig `toml:"playback"`
	Tail     TailConfig     `toml:"tail"`
	TUI      TUIConfig      `toml:"tui"`
	Log      LogConfig      `toml:"log"`
}

// ServerConfig holds media server selection settings.
type ServerConfig struct {
	Default          string `toml:"default"`
	DiscoveryTimeout int    `toml:"discovery_timeout"`
}

// PlaybackConfig holds playback session settings.
type PlaybackConfig struct {
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Subtitle       string `toml:"subtitle"`
	StateFile      string `toml:"state_file"`
}

// TailConfig holds settings for tail/follow mode.
type TailConfig struct {
	Enabled  bool `toml:"enabled"`
	Interval int  `toml:"interval"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	Theme           string `toml:"theme"`
	RefreshInterval int    `toml:"refresh_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level     string `toml:"level"`
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
}
