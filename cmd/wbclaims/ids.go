// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wbclaims/internal/ids"
)

var idsCmd = &cobra.Command{
	Use:   "ids",
	Short: "Classify and convert Wikibase identifiers",
}

var idsClassifyCmd = &cobra.Command{
	Use:   "classify <ids...>",
	Short: "Print the kind of each identifier",
	Long: `Classify prints one line per argument: the argument and its kind (item,
property, lexeme, form, sense, entity-schema, mediainfo, guid, hash,
revision, property-claims, page-title), or "unknown".`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		unknown := 0
		for _, arg := range args {
			kind := classify(arg)
			if kind == "unknown" {
				unknown++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", arg, kind)
		}
		if unknown > 0 {
			return fmt.Errorf("%d unrecognized identifier(s)", unknown)
		}
		return nil
	},
}

var idsGUIDCmd = &cobra.Command{
	Use:   "guid <guids...>",
	Short: "Print the entity id a statement GUID belongs to",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, guid := range args {
			id, err := ids.EntityIDFromGUID(guid)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
		}
		return nil
	},
}

var idsNumericCmd = &cobra.Command{
	Use:   "numeric <ids...>",
	Short: "Print the numeric part of entity ids",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, id := range args {
			n, err := ids.NumericID(id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

// classify names the most specific kind of s.
func classify(s string) string {
	if kind, ok := ids.Kind(s); ok {
		return string(kind)
	}
	switch {
	case ids.IsGUID(s):
		return "guid"
	case ids.IsPropertyClaimsID(s):
		return "property-claims"
	case ids.IsHash(s):
		return "hash"
	case ids.IsRevisionID(s):
		return "revision"
	case ids.IsEntityPageTitle(s):
		return "page-title"
	}
	return "unknown"
}

func init() {
	idsCmd.AddCommand(idsClassifyCmd, idsGUIDCmd, idsNumericCmd)
	rootCmd.AddCommand(idsCmd)
}
