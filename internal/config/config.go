package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel         string `yaml:"log-level" env-default:"info"`
	ServerURL        string `yaml:"server-url" env-default:"http://localhost:5000"`
	WebsocketURL     string `yaml:"websocket-url" env-default:""`
	PlayerID         string `yaml:"player-id"`
	PlayerMode       string `yaml:"player-mode" env-default:"console"`
	HTTPPort         string `yaml:"http-port" env-default:"9090"`
	SubmitTimeoutSec int    `yaml:"submit-timeout-sec" env-default:"30"`
	Redis            Redis  `yaml:"redis"`
}

type Redis struct {
	Host string `yaml:"host" env-default:""`
	Port string `yaml:"port" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// GetWebsocketURL - the push channel endpoint. Defaults to the game server's
// /ws path when not set explicitly.
func (that *Config) GetWebsocketURL() string {
	if that.WebsocketURL != "" {
		return that.WebsocketURL
	}

	return that.ServerURL + "/ws"
}

// PersistenceEnabled - redis is optional; an empty host disables it.
func (that *Redis) PersistenceEnabled() bool {
	return that.Host != ""
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
