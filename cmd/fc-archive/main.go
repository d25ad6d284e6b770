// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the fc-archive CLI, a read-only
// search client for a local Fine Cooking magazine archive.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/fc-archive/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// errCommandFailed is returned under --strict-exit after a handler failure
// has been logged.
var errCommandFailed = errors.New("command failed")

// rootCmd is the base command for the fc-archive CLI.
var rootCmd = &cobra.Command{
	Use:   "fc-archive",
	Short: "Search a local Fine Cooking magazine archive",
	Long: `fc-archive searches the page text and article index of a local Fine
Cooking archive database. The database is opened read-only and never
modified.

Run "fc-archive help" for a short tutorial.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./fc-archive.yaml or ~/.config/fc-archive/fc-archive.yaml)")
	pf.String("database_path", types.DefaultDatabasePath, "path to FC.db")
	pf.String("issues_dir", types.DefaultIssuesDir, "directory that contains the Fine Cooking issue PDFs")
	pf.String("format", string(types.OutputTable), "output format: table, json or yaml")
	pf.Bool("strict-exit", false, "exit 1 when a query fails instead of only reporting it")
	pf.BoolP("verbose", "v", false, "enable debug logging")

	if err := bindConfigFlags(viper.GetViper(), pf, configFlags); err != nil {
		panic(err)
	}
}

// configFlags maps viper keys to the persistent flags that set them.
var configFlags = map[string]string{
	"database_path": "database_path",
	"issues_dir":    "issues_dir",
	"format":        "format",
	"strict_exit":   "strict-exit",
	"verbose":       "verbose",
}

// bindConfigFlags binds each key in keys to its flag in fs. A flag name
// missing from fs is an error.
func bindConfigFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		flag := fs.Lookup(name)
		if flag == nil {
			return fmt.Errorf("binding config key %q: no flag named %q", key, name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding config key %q: %w", key, err)
		}
	}
	return nil
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fc-archive")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "fc-archive"))
		}
	}

	viper.SetEnvPrefix("FC_ARCHIVE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// exitCode maps the result of rootCmd.Execute to a process exit code.
func exitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

func main() {
	os.Exit(exitCode(rootCmd.Execute()))
}
