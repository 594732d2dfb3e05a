package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Game    GameConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port string
	Host string
	Env  string // "development" or "production"
}

// GameConfig holds game-related configuration
type GameConfig struct {
	MinPlayers    int
	MaxPlayers    int
	SoundsPerGame int
	SoundlistPath string // optional soundlist.json; builtin catalog when empty
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// FromViper builds a Config from bound flags and environment
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port: v.GetString("port"),
			Host: v.GetString("host"),
			Env:  v.GetString("env"),
		},
		Game: GameConfig{
			MinPlayers:    v.GetInt("min-players"),
			MaxPlayers:    v.GetInt("max-players"),
			SoundsPerGame: v.GetInt("sounds-per-game"),
			SoundlistPath: v.GetString("soundlist"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("log-level"),
			Format: v.GetString("log-format"),
		},
	}
}

// Validate checks the configuration for inconsistencies
func (c *Config) Validate() error {
	if c.Game.MinPlayers < 2 {
		return errors.New("min-players must be at least 2")
	}
	if c.Game.MaxPlayers < c.Game.MinPlayers {
		return fmt.Errorf("max-players (%d) must be >= min-players (%d)",
			c.Game.MaxPlayers, c.Game.MinPlayers)
	}
	if c.Game.SoundsPerGame < 1 {
		return errors.New("sounds-per-game must be positive")
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// GetAddr returns the server address in host:port format
func (c *Config) GetAddr() string {
	return c.Server.Host + ":" + c.Server.Port
}
