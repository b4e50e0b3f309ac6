// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wbclaims/internal/datatypes"
	"github.com/pdiddy/wbclaims/internal/fetch"
)

var datatypesCmd = &cobra.Command{
	Use:   "datatypes",
	Short: "Compare the knowledge base's property datatypes with the supported ones",
	Long: `Datatypes lists every property datatype in use, from a local JSON array of
datatype URIs (--file) or by querying a SPARQL endpoint, and reports which
ones the simplifier supports. It exits non-zero when any is unsupported.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, datatypesBindings)
	},
	RunE: runDatatypes,
}

func init() {
	datatypesCmd.Flags().String("file", "", "JSON array of datatype URIs")
	datatypesCmd.Flags().String("sparql-endpoint", "", "SPARQL endpoint to query when --file is not given")
	datatypesCmd.Flags().Duration("timeout", 0, "HTTP request timeout")
	datatypesCmd.Flags().String("user-agent", "", "User-Agent header")
	datatypesCmd.Flags().String("format", "text", "output format: text, json or yaml")

	rootCmd.AddCommand(datatypesCmd)
}

func runDatatypes(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	cfg := datatypesConfig()

	var (
		uris []string
		err  error
	)
	if cfg.File != "" {
		uris, err = datatypes.ReadFile(cfg.File)
	} else {
		uris, err = fetch.Datatypes(context.Background(), fetch.NewClient(cfg.HTTPConfig), cfg)
	}
	if err != nil {
		return err
	}

	report := datatypes.Compare(uris)
	if format == "text" {
		report.Print(cmd.OutOrStdout())
	} else if err := writeOutput(cmd.OutOrStdout(), report, format); err != nil {
		return err
	}

	if !report.OK() {
		return fmt.Errorf("%d unsupported datatype(s)", len(report.Unsupported))
	}
	return nil
}
