// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wbclaims/internal/cache"
	"github.com/pdiddy/wbclaims/internal/entity"
	"github.com/pdiddy/wbclaims/pkg/types"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local entity cache (ingest, get, list, export)",
	Long: `Cache manages a local SQLite database of raw entity JSON. Use subcommands
to load entity files, look entities up, or export their simplified claims.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		return bindFlags(cmd, cacheBindings, simplifyBindings)
	},
}

// --- ingest subcommand ---

var cacheIngestCmd = &cobra.Command{
	Use:   "ingest <dir>",
	Short: "Store every entity JSON file in a directory",
	Long: `Ingest reads every *.json file in dir (single entities, arrays, or
wbgetentities responses) and stores the entities. Entities already cached at
the same revision are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.NewStore(cacheConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		summary, err := store.Ingest(context.Background(), args[0], cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if summary.Failed > 0 {
			return fmt.Errorf("%d file(s) failed ingestion", summary.Failed)
		}
		return nil
	},
}

// --- get subcommand ---

var cacheGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print a cached entity, simplified unless --raw",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetBool("raw")
		format, _ := cmd.Flags().GetString("format")

		store, err := cache.NewStore(cacheConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		e, err := store.Get(context.Background(), args[0])
		if err != nil {
			return err
		}
		if raw {
			return writeOutput(cmd.OutOrStdout(), e, format)
		}
		s, err := entity.Simplify(e, simplifyConfig())
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), s, format)
	},
}

// --- list subcommand ---

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached entity ids",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.NewStore(cacheConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		ids, err := store.List(context.Background(), queryOptsFromFlags(cmd))
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

// --- export subcommand ---

var cacheExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export simplified cached entities to YAML or JSON",
	Long: `Export simplifies the cached entities (or a filtered subset) and writes
them to <cache-dir>/export.yaml or export.json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		store, err := cache.NewStore(cacheConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		ctx := context.Background()
		opts := queryOptsFromFlags(cmd)
		var path string
		switch format {
		case "yaml", "":
			path, err = store.ExportYAML(ctx, simplifyConfig(), opts)
		case "json":
			path, err = store.ExportJSON(ctx, simplifyConfig(), opts)
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Exported to", path)
		return nil
	},
}

// --- delete subcommand ---

var cacheDeleteCmd = &cobra.Command{
	Use:   "delete <ids...>",
	Short: "Remove entities from the cache",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.NewStore(cacheConfig())
		if err != nil {
			return err
		}
		defer store.Close()

		for _, id := range args {
			if err := store.Delete(context.Background(), id); err != nil {
				return err
			}
		}
		return nil
	},
}

// --- shared helpers ---

func queryOptsFromFlags(cmd *cobra.Command) cache.QueryOptions {
	typ, _ := cmd.Flags().GetString("type")
	label, _ := cmd.Flags().GetString("label")
	lang, _ := cmd.Flags().GetString("lang")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return cache.QueryOptions{
		Type:       types.EntityType(typ),
		Label:      label,
		Language:   lang,
		MaxResults: maxResults,
	}
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("type", "", "filter by entity type (item, property, lexeme, mediainfo)")
	cmd.Flags().String("label", "", "filter by label or lemma text")
	cmd.Flags().String("lang", "", "restrict --label to one language")
	cmd.Flags().Int("max-results", 0, "maximum number of entities (0 = all)")
}

func init() {
	cacheCmd.PersistentFlags().String("cache-dir", "", "directory holding entities.db and exports")
	addSimplifyFlags(cacheGetCmd)
	addSimplifyFlags(cacheExportCmd)

	cacheGetCmd.Flags().Bool("raw", false, "print the entity as stored")
	cacheGetCmd.Flags().String("format", "json", "output format: json or yaml")
	addFilterFlags(cacheListCmd)
	addFilterFlags(cacheExportCmd)
	cacheExportCmd.Flags().String("format", "yaml", "output format: yaml or json")

	cacheCmd.AddCommand(cacheIngestCmd, cacheGetCmd, cacheListCmd, cacheExportCmd, cacheDeleteCmd)
	rootCmd.AddCommand(cacheCmd)
}
