package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/stonehenge-backend/internal/apperror"
	"github.com/rocketscienceinc/stonehenge-backend/internal/stonehenge"
	"github.com/rocketscienceinc/stonehenge-backend/internal/strategy"
)

const configFile = "stonehenge/config.yml"

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis      Redis  `yaml:"redis"`
	Game       Game   `yaml:"game"`
}

type Redis struct {
	Host    string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	GameTTL time.Duration `yaml:"game-ttl" env:"REDIS_GAME_TTL" env-default:"24h"`
}

type Game struct {
	SideLength  int    `yaml:"side-length" env:"GAME_SIDE_LENGTH" env-default:"2"`
	BotStrategy string `yaml:"bot-strategy" env:"GAME_BOT_STRATEGY" env-default:"rough-outcome"`
	FirstPlayer string `yaml:"first-player" env:"GAME_FIRST_PLAYER" env-default:"p1"`
	// MaxSearchSide is the largest side length minimax strategies may play.
	MaxSearchSide int `yaml:"max-search-side" env:"GAME_MAX_SEARCH_SIDE" env-default:"2"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if err := config.Validate(); err != nil {
		panic(fmt.Errorf("invalid config: %w", err))
	}

	return config
}

// Load - reads stonehenge/config.yml from the XDG config directories, or the
// environment alone when no file exists.
func Load() (*Config, error) {
	config := &Config{}

	path, err := xdg.SearchConfigFile(configFile)
	if err != nil {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
	} else if err = cleanenv.ReadConfig(filepath.Clean(path), config); err != nil {
		return nil, fmt.Errorf("unable to load config file %s: %w", path, err)
	}

	if err = config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Config) Validate() error {
	var errs []error

	if that.Game.SideLength < stonehenge.MinSideLength || that.Game.SideLength > stonehenge.MaxSideLength {
		errs = append(errs, fmt.Errorf("%w: %d", stonehenge.ErrUnsupportedSideLength, that.Game.SideLength))
	}

	if that.Game.BotStrategy == strategy.NameInteractive || !slices.Contains(strategy.Names(), that.Game.BotStrategy) {
		errs = append(errs, fmt.Errorf("bot-strategy %w: %q", apperror.ErrUnknownStrategy, that.Game.BotStrategy))
	}

	if that.Game.MaxSearchSide < 0 {
		errs = append(errs, fmt.Errorf("max-search-side must not be negative: %d", that.Game.MaxSearchSide))
	}

	if strategy.IsExhaustive(that.Game.BotStrategy) && that.Game.SideLength > that.Game.MaxSearchSide {
		errs = append(errs, fmt.Errorf("bot-strategy %w: %s on side length %d",
			apperror.ErrSearchTooLarge, that.Game.BotStrategy, that.Game.SideLength))
	}

	if _, err := stonehenge.ParsePlayer(that.Game.FirstPlayer); err != nil {
		errs = append(errs, fmt.Errorf("first-player: %w", err))
	}

	return errors.Join(errs...)
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// ParseLogLevel maps log-level to a slog level, info when unknown.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
