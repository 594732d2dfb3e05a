package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ZEBR0Z/Gamejam2025-sub000/internal/app"
	"github.com/ZEBR0Z/Gamejam2025-sub000/internal/config"
	"github.com/ZEBR0Z/Gamejam2025-sub000/internal/domain"
	httpTransport "github.com/ZEBR0Z/Gamejam2025-sub000/internal/transport/http"
)

func main() {
	cobra.CheckErr(newCmd().Execute())
}

func newCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("COMPOSER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "composer-server",
		Short:         "Session orchestrator for the collaborative composition game.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromViper(v)
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringP("port", "p", "8080", "port to listen on (env: COMPOSER_PORT)")
	fs.StringP("host", "b", "0.0.0.0", "address to bind to (env: COMPOSER_HOST)")
	fs.String("env", "development", "environment, development or production (env: COMPOSER_ENV)")
	fs.Int("min-players", 2, "minimum players before a game can start (env: COMPOSER_MIN_PLAYERS)")
	fs.Int("max-players", 8, "maximum players per session (env: COMPOSER_MAX_PLAYERS)")
	fs.Int("sounds-per-game", 12, "sounds drawn from the catalog per game (env: COMPOSER_SOUNDS_PER_GAME)")
	fs.String("soundlist", "", "path to a soundlist.json, builtin catalog when empty (env: COMPOSER_SOUNDLIST)")
	fs.String("log-level", "info", "log level: debug, info, warn, error (env: COMPOSER_LOG_LEVEL)")
	fs.String("log-format", "text", "log format: text or json (env: COMPOSER_LOG_FORMAT)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
	})

	return cmd
}

func run(cfg *config.Config) error {
	var logger *slog.Logger
	logOpts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Logging.Level),
	}

	if cfg.Logging.Format == "json" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, logOpts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, logOpts))
	}

	slog.SetDefault(logger)

	catalog := app.NewSoundCatalog()
	if cfg.Game.SoundlistPath != "" {
		loaded, err := app.LoadSoundCatalog(cfg.Game.SoundlistPath)
		if err != nil {
			return fmt.Errorf("load sound catalog: %w", err)
		}
		catalog = loaded
	}

	logger.Info("starting composition game server",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"sounds", catalog.Size(),
	)

	settings := domain.SessionSettings{
		MinPlayers: cfg.Game.MinPlayers,
		MaxPlayers: cfg.Game.MaxPlayers,
	}
	hub := app.NewHub(catalog, settings, cfg.Game.SoundsPerGame, logger)
	defer hub.Close()

	server := httpTransport.NewServer(cfg, hub, logger)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
