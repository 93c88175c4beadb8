package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/dsproto/internal/protocol"
)

type Config struct {
	Codec CodecConfig
	Log   LogConfig
}

type CodecConfig struct {
	Indent    string
	FetchMode protocol.FetchMode
}

type LogConfig struct {
	Level   string
	NoColor bool
}

type fileConfig struct {
	Codec struct {
		Indent    string `toml:"indent"`
		FetchMode string `toml:"fetch_mode"`
	} `toml:"codec"`
	Log struct {
		Level   string `toml:"level"`
		NoColor bool   `toml:"no_color"`
	} `toml:"log"`
}

func Default() Config {
	return Config{
		Codec: CodecConfig{
			Indent:    protocol.DefaultIndent,
			FetchMode: protocol.FetchAll,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads path and applies every defined key over Default.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	if meta.IsDefined("codec", "indent") {
		cfg.Codec.Indent = raw.Codec.Indent
	}
	if meta.IsDefined("codec", "fetch_mode") {
		cfg.Codec.FetchMode = protocol.FetchMode(strings.TrimSpace(raw.Codec.FetchMode))
	}
	if meta.IsDefined("log", "level") {
		cfg.Log.Level = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("log", "no_color") {
		cfg.Log.NoColor = raw.Log.NoColor
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if !cfg.Codec.FetchMode.Valid() {
		return fmt.Errorf("codec.fetch_mode must be %q or %q, got %q",
			protocol.FetchAll, protocol.FetchUnread, cfg.Codec.FetchMode)
	}
	if strings.Trim(cfg.Codec.Indent, " \t") != "" {
		return fmt.Errorf("codec.indent may only contain spaces and tabs")
	}
	return nil
}

// NewCodec builds a codec stamped by clock; nil means time.Now.
func (c CodecConfig) NewCodec(clock func() time.Time) protocol.Codec {
	if clock == nil {
		clock = time.Now
	}
	return protocol.Codec{Clock: clock, Indent: c.Indent}
}
