// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wbclaims/internal/commons"
)

var mediaCmd = &cobra.Command{
	Use:   "media <filenames...>",
	Short: "Print Wikimedia Commons URLs for commonsMedia values",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		width, _ := cmd.Flags().GetInt("width")
		for _, name := range args {
			fmt.Fprintln(cmd.OutOrStdout(), commons.ImageURL(commons.Filename(name), width))
		}
		return nil
	},
}

func init() {
	mediaCmd.Flags().Int("width", 0, "thumbnail width in pixels")

	rootCmd.AddCommand(mediaCmd)
}
