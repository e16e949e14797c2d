package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string `yaml:"http-port" env:"PORT" env-default:"10000"`
	Bot      Bot    `yaml:"bot"`
	Store    Store  `yaml:"store"`
}

type Bot struct {
	Username            string `yaml:"username" env:"BOT_USERNAME" env-default:"9dtictactoe"`
	BearerToken         string `yaml:"bearer-token" env:"BEARER_TOKEN"`
	PollIntervalSeconds int    `yaml:"poll-interval-seconds" env:"CHECK_EVERY_SECONDS" env-default:"600"`
	MaxMentionsPerCycle int    `yaml:"max-mentions-per-cycle" env:"MAX_MENTIONS_PER_CYCLE" env-default:"5"`
}

type Store struct {
	RedisURL string `yaml:"redis-url" env:"REDIS_URL"`
	StateKey string `yaml:"state-key" env:"STATE_KEY" env-default:"gamemaker:state"`
	FilePath string `yaml:"file-path" env:"STATE_FILE" env-default:"games.json"`
}

// MustLoad - reads config.yml if present, otherwise pure environment; the
// deployment target only sets env vars, the yaml file is a dev nicety.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err = cleanenv.ReadConfig(path, config); err != nil {
			panic(fmt.Errorf("unable to load config file: %w", err))
		}
		return config
	}

	if err := cleanenv.ReadEnv(config); err != nil {
		panic(fmt.Errorf("unable to load config from environment: %w", err))
	}

	return config
}

// Name returns the bot's account name without a leading "@".
func (that *Bot) Name() string {
	return strings.TrimPrefix(that.Username, "@")
}

func (that *Bot) PollInterval() time.Duration {
	return time.Duration(that.PollIntervalSeconds) * time.Second
}
