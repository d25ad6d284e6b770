// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/fc-archive/internal/archive"
	"github.com/pdiddy/fc-archive/internal/dispatch"
	"github.com/pdiddy/fc-archive/pkg/types"
)

// loadConfig resolves flags, FC_ARCHIVE_* environment variables and the
// config file into one ArchiveConfig.
func loadConfig() (types.ArchiveConfig, error) {
	cfg := types.ArchiveConfig{
		DatabasePath: viper.GetString("database_path"),
		IssuesDir:    viper.GetString("issues_dir"),
		Format:       types.OutputFormat(viper.GetString("format")),
		StrictExit:   viper.GetBool("strict_exit"),
		Verbose:      viper.GetBool("verbose"),
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = types.DefaultDatabasePath
	}
	if cfg.IssuesDir == "" {
		cfg.IssuesDir = types.DefaultIssuesDir
	}

	switch cfg.Format {
	case "":
		cfg.Format = types.OutputTable
	case types.OutputTable, types.OutputJSON, types.OutputYAML:
	default:
		return cfg, fmt.Errorf("unsupported format %q: use table, json or yaml", cfg.Format)
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// runQuery opens the archive, dispatches one query command and closes the
// archive again on every path.
func runQuery(cmd *cobra.Command, kind dispatch.State, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)

	store, err := archive.Open(cfg.DatabasePath)
	if err != nil {
		var dsu *archive.DataSourceUnavailable
		if errors.As(err, &dsu) {
			return fmt.Errorf("%w\npass --database_path or set FC_ARCHIVE_DATABASE_PATH to the location of FC.db", err)
		}
		return err
	}
	defer store.Close()

	logger.Debug("opened archive", "database", store.Path(), "issues_dir", cfg.IssuesDir)

	d := dispatch.New(store, cmd.OutOrStdout(), logger, cfg.Format)
	if err := d.Dispatch(cmd.Context(), dispatch.Command{Kind: kind, Args: args}); err != nil && cfg.StrictExit {
		return errCommandFailed
	}
	return nil
}
