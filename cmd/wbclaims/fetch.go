// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wbclaims/internal/cache"
	"github.com/pdiddy/wbclaims/internal/entity"
	"github.com/pdiddy/wbclaims/internal/fetch"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [ids...]",
	Short: "Fetch entities from a Wikibase API and simplify them",
	Long: `Fetch retrieves entities by id with wbgetentities, at most 50 per request,
and prints them simplified (or raw with --raw). With --store the fetched
entities are also written to the local cache.

A token in .secrets/wikibase-api-token is sent as an OAuth bearer token.
Progress lines go to stderr.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, fetchBindings, simplifyBindings, cacheBindings)
	},
	RunE: runFetch,
}

func init() {
	addFetchFlags(fetchCmd)
	addSimplifyFlags(fetchCmd)
	addCacheFlags(fetchCmd)
	fetchCmd.Flags().Bool("raw", false, "print entities as returned by the API")
	fetchCmd.Flags().Bool("store", false, "write fetched entities to the cache")
	fetchCmd.Flags().String("format", "json", "output format: json or yaml")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetBool("raw")
	store, _ := cmd.Flags().GetBool("store")
	format, _ := cmd.Flags().GetString("format")

	ctx := context.Background()
	cfg := fetchConfig()

	result, err := fetch.Entities(ctx, fetch.NewClient(cfg.HTTPConfig), args, cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if store {
		s, err := cache.NewStore(cacheConfig())
		if err != nil {
			return err
		}
		defer s.Close()
		summary, err := s.Put(ctx, result.Entities)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "cached: %d stored, %d updated, %d unchanged\n",
			summary.Stored, summary.Updated, summary.Skipped)
	}

	if raw {
		if err := writeOutput(cmd.OutOrStdout(), single(result.Entities), format); err != nil {
			return err
		}
	} else {
		out, err := entity.SimplifyAll(ctx, result.Entities, simplifyConfig(), entity.DefaultLimit)
		if err != nil {
			return err
		}
		if err := writeOutput(cmd.OutOrStdout(), single(out), format); err != nil {
			return err
		}
	}

	if len(result.Missing) > 0 {
		return fmt.Errorf("%d entity id(s) not found: %v", len(result.Missing), result.Missing)
	}
	return nil
}
