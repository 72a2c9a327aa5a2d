package titlehall

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/chickentitle/titlehall/titlehall/config"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// DefaultConfig returns a config usable without a config file: memory
// storage, default catalog, listening on :8080.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

type Config struct {
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
	DB     DBConfig     `toml:"db"`
	Game   GameConfig   `toml:"game"`
}

type LogConfig struct {
	Level slog.Level `toml:"level"`
}

type ServerConfig struct {
	ListenAddr string `toml:"listen_addr"`
}

type DBConfig struct {
	Driver   string `toml:"driver"` // "memory" or "postgres"
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

type GameConfig struct {
	StartingGrant       int64  `toml:"starting_grant"`
	TickIntervalSeconds int    `toml:"tick_interval_seconds"`
	AutosaveSeconds     int    `toml:"autosave_seconds"`
	CatalogPath         string `toml:"catalog_path"`
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8080"
	}
	if cfg.DB.Driver == "" {
		cfg.DB.Driver = "memory"
	}
	if cfg.Game.StartingGrant == 0 {
		cfg.Game.StartingGrant = config.StartingGrant
	}
	if cfg.Game.TickIntervalSeconds == 0 {
		cfg.Game.TickIntervalSeconds = int(config.TickInterval / time.Second)
	}
}
