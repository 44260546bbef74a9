package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
)

const (
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

var (
	ErrUnknownStorage    = errors.New("unknown storage")
	ErrUnknownDifficulty = errors.New("unknown difficulty")
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Storage  string `yaml:"storage" env:"STORAGE" env-default:"redis"`
	Redis    Redis  `yaml:"redis"`
	Search   Search `yaml:"search"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Search struct {
	Depth      int    `yaml:"depth" env:"SEARCH_DEPTH" env-default:"7"`
	Difficulty string `yaml:"difficulty" env:"SEARCH_DIFFICULTY" env-default:"hard"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Config) validate() error {
	if that.Storage != StorageRedis && that.Storage != StorageMemory {
		return fmt.Errorf("%w: %q", ErrUnknownStorage, that.Storage)
	}

	if !entity.IsKnownDifficulty(that.Search.Difficulty) {
		return fmt.Errorf("%w: %q", ErrUnknownDifficulty, that.Search.Difficulty)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
