// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/wbclaims/internal/fetch"
	"github.com/pdiddy/wbclaims/internal/secrets"
	"github.com/pdiddy/wbclaims/pkg/types"
)

const (
	defaultTimeout = 30 * time.Second
	defaultCache   = ".wbclaims"
)

func setDefaults() {
	viper.SetDefault("fetch.api_url", fetch.DefaultAPIURL)
	viper.SetDefault("fetch.timeout", defaultTimeout)
	viper.SetDefault("fetch.user_agent", fetch.DefaultUserAgent)
	viper.SetDefault("fetch.batch_size", fetch.MaxBatchSize)
	viper.SetDefault("simplify.time_format", string(types.TimeEpoch))
	viper.SetDefault("simplify.ranks", string(types.RanksAll))
	viper.SetDefault("cache.dir", defaultCache)
	viper.SetDefault("datatypes.sparql_endpoint", fetch.DefaultSPARQLEndpoint)
	viper.SetDefault("datatypes.timeout", defaultTimeout)
	viper.SetDefault("datatypes.user_agent", fetch.DefaultUserAgent)
	viper.SetDefault("secrets_dir", secrets.DefaultDir)
}

// Flag bindings, viper key to flag name. Several commands share flag names,
// so each command binds its own flags in PreRunE rather than in init.
var (
	simplifyBindings = map[string]string{
		"simplify.entity_prefix":   "entity-prefix",
		"simplify.property_prefix": "property-prefix",
		"simplify.time_format":     "time-format",
		"simplify.ranks":           "ranks",
	}
	fetchBindings = map[string]string{
		"fetch.api_url":             "api-url",
		"fetch.languages":           "languages",
		"fetch.props":               "props",
		"fetch.batch_size":          "batch-size",
		"fetch.requests_per_second": "rate",
		"fetch.timeout":             "timeout",
		"fetch.user_agent":          "user-agent",
	}
	cacheBindings = map[string]string{
		"cache.dir": "cache-dir",
	}
	datatypesBindings = map[string]string{
		"datatypes.sparql_endpoint": "sparql-endpoint",
		"datatypes.file":            "file",
		"datatypes.timeout":         "timeout",
		"datatypes.user_agent":      "user-agent",
	}
)

// bindFlags binds the flags of cmd named in each bindings map.
func bindFlags(cmd *cobra.Command, bindings ...map[string]string) error {
	for _, b := range bindings {
		for key, name := range b {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := viper.BindPFlag(key, f); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func addSimplifyFlags(cmd *cobra.Command) {
	cmd.Flags().String("entity-prefix", "", `prefix entity ids in values as "<prefix>:<id>"`)
	cmd.Flags().String("property-prefix", "", `prefix property ids in keys and values as "<prefix>:<id>"`)
	cmd.Flags().String("time-format", "", "time rendering: epoch, iso or simple-day (default epoch)")
	cmd.Flags().String("ranks", "", "statements kept per property: all, non-deprecated or truthy (default all)")
}

func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().String("api-url", "", "Wikibase action API endpoint")
	cmd.Flags().StringSlice("languages", nil, "restrict terms to these languages")
	cmd.Flags().StringSlice("props", nil, "entity parts to fetch (labels, descriptions, aliases, claims, sitelinks, info)")
	cmd.Flags().Int("batch-size", 0, "ids per request (max 50)")
	cmd.Flags().Float64("rate", 0, "maximum requests per second (0 for no limit)")
	cmd.Flags().Duration("timeout", 0, "HTTP request timeout")
	cmd.Flags().String("user-agent", "", "User-Agent header")
}

func addCacheFlags(cmd *cobra.Command) {
	cmd.Flags().String("cache-dir", "", "directory holding entities.db and exports")
}

func simplifyConfig() types.SimplifyConfig {
	return types.SimplifyConfig{
		EntityPrefix:   viper.GetString("simplify.entity_prefix"),
		PropertyPrefix: viper.GetString("simplify.property_prefix"),
		TimeFormat:     types.TimeFormat(viper.GetString("simplify.time_format")),
		Ranks:          types.RankPolicy(viper.GetString("simplify.ranks")),
	}
}

func fetchConfig() types.FetchConfig {
	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:    viper.GetDuration("fetch.timeout"),
			UserAgent:  viper.GetString("fetch.user_agent"),
			MaxRetries: viper.GetInt("fetch.max_retries"),
		},
		APIURL:    viper.GetString("fetch.api_url"),
		Languages: viper.GetStringSlice("fetch.languages"),
		Props:     viper.GetStringSlice("fetch.props"),
		BatchSize: viper.GetInt("fetch.batch_size"),
		Token:     secretDefault(secrets.WikibaseAPIToken, viper.GetString("fetch.token")),

		RequestsPerSecond: viper.GetFloat64("fetch.requests_per_second"),
	}
}

func cacheConfig() types.CacheConfig {
	return types.CacheConfig{Dir: viper.GetString("cache.dir")}
}

func datatypesConfig() types.DatatypesConfig {
	return types.DatatypesConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:    viper.GetDuration("datatypes.timeout"),
			UserAgent:  viper.GetString("datatypes.user_agent"),
			MaxRetries: viper.GetInt("datatypes.max_retries"),
		},
		SPARQLEndpoint: viper.GetString("datatypes.sparql_endpoint"),
		File:           viper.GetString("datatypes.file"),
	}
}
