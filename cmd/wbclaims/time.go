// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wbclaims/internal/wbtime"
	"github.com/pdiddy/wbclaims/pkg/types"
)

var timeCmd = &cobra.Command{
	Use:   "time <wikibase-time>",
	Short: "Convert a Wikibase time string",
	Long: `Time converts a Wikibase time string such as "+1953-00-00T00:00:00Z" to
epoch milliseconds, ISO-8601 text, or a simple day. Dates that cannot be
placed on the calendar print the repaired time string instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		precision, _ := cmd.Flags().GetInt("precision")
		v := wbtime.Value{Time: args[0], Precision: precision}

		switch types.TimeFormat(format) {
		case types.TimeEpoch:
			fmt.Fprintln(cmd.OutOrStdout(), wbtime.ToEpochTime(v).Any())
		case types.TimeISO:
			fmt.Fprintln(cmd.OutOrStdout(), wbtime.ToISOString(v).Any())
		case types.TimeSimpleDay:
			fmt.Fprintln(cmd.OutOrStdout(), wbtime.SimpleDay(v))
		default:
			return fmt.Errorf("unsupported time format %q: use epoch, iso or simple-day", format)
		}
		return nil
	},
}

func init() {
	timeCmd.Flags().String("format", string(types.TimeEpoch), "epoch, iso or simple-day")
	timeCmd.Flags().Int("precision", wbtime.PrecisionUnknown, "precision code (9 year, 10 month, 11 day)")

	rootCmd.AddCommand(timeCmd)
}
