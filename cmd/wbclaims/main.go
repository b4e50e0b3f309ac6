// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the wbclaims CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/wbclaims/internal/logger"
	"github.com/pdiddy/wbclaims/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Set

// secretDefault returns fallback if set, otherwise the secret stored under key.
func secretDefault(key, fallback string) string {
	return loadedSecrets.Value(key, fallback)
}

// rootCmd is the base command for the wbclaims CLI.
var rootCmd = &cobra.Command{
	Use:   "wbclaims",
	Short: "Simplify Wikibase claims into plain values",
	Long: `wbclaims turns the verbose, datatype-tagged claims of Wikibase entities
(Wikidata items, properties, lexemes, media-info) into compact values: ids,
strings, numbers, coordinates and dates.

Entities can be read from files or stdin, fetched from a Wikibase API, or
kept in a local cache and exported in bulk.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(viper.GetBool("log.json"), viper.GetBool("log.verbose")); err != nil {
			return err
		}

		s, err := secrets.Load(viper.GetString("secrets_dir"))
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			logger.Debugw("loaded secrets", "keys", s.Keys())
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./wbclaims.yaml or ~/.config/wbclaims/wbclaims.yaml)")
	rootCmd.PersistentFlags().Bool("log-json", false, "write logs as JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().String("secrets-dir", secrets.DefaultDir, "directory of secret files")

	viper.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("log-json"))
	viper.BindPFlag("log.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("secrets_dir", rootCmd.PersistentFlags().Lookup("secrets-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("wbclaims")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "wbclaims"))
		}
	}

	viper.SetEnvPrefix("WBCLAIMS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
