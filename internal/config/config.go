package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, read from the environment.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `env:"ARENA_ADDR" envDefault:":8080"`

	// DBPath is the SQLite data source name.
	DBPath string `env:"ARENA_DB_PATH" envDefault:"arena.db"`

	// GameDataPath points at the YAML catalogue file.
	GameDataPath string `env:"ARENA_GAMEDATA_PATH" envDefault:"gamedata.yaml"`

	// MonsterDelay is the presentation pause before the monster acts. Zero
	// disables the pause; outcomes are unaffected either way.
	MonsterDelay time.Duration `env:"ARENA_MONSTER_DELAY" envDefault:"0s"`

	// SessionTTL is how long a completed battle stays queryable before the
	// background sweep collects it.
	SessionTTL time.Duration `env:"ARENA_SESSION_TTL" envDefault:"10m"`

	// SweepInterval is how often the background sweep runs.
	SweepInterval time.Duration `env:"ARENA_SWEEP_INTERVAL" envDefault:"1m"`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return nil, err
	}
	return &c, nil
}
