// Package commands implements the CrossDB CLI subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/crossdb/internal/config"
	"github.com/leapstack-labs/crossdb/pkg/db"
	"github.com/spf13/cobra"
)

// configKey is used to store config in context.
type configKey struct{}

// WithConfig stores the loaded config in ctx.
func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom retrieves the loaded config from the command context.
func configFrom(cmd *cobra.Command) (*config.Config, error) {
	cfg, ok := cmd.Context().Value(configKey{}).(*config.Config)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return cfg, nil
}

// newLogger builds the CLI logger: debug level when verbose, text handler
// on stderr.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openConn opens the connection for the profile selected via --conn (or
// the config's active profile). The returned cleanup closes it.
func openConn(cmd *cobra.Command) (*db.Conn, func(), error) {
	cfg, err := configFrom(cmd)
	if err != nil {
		return nil, nil, err
	}
	profileName, _ := cmd.Root().PersistentFlags().GetString("conn")
	profile, err := cfg.Profile(profileName)
	if err != nil {
		return nil, nil, err
	}
	if profile.URL == "" {
		return nil, nil, fmt.Errorf("connection profile has no url")
	}

	conn, err := db.Open(profile.URL, profile.Options(), newLogger(cfg.Verbose))
	if err != nil {
		return nil, nil, err
	}
	return conn, func() { _ = conn.Close() }, nil
}
