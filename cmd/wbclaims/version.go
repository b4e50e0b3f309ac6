package main

import (
	"fmt"
	"io"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of wbclaims",
	Long: `Version prints the wbclaims version. With --build it also prints the Go
toolchain and the VCS revision the binary was built from, when recorded.`,
	Run: func(cmd *cobra.Command, args []string) {
		build, _ := cmd.Flags().GetBool("build")
		if !build {
			fmt.Fprintf(cmd.OutOrStdout(), "wbclaims %s\n", version)
			return
		}
		info, _ := debug.ReadBuildInfo()
		printBuildInfo(cmd.OutOrStdout(), version, info)
	},
}

func init() {
	versionCmd.Flags().Bool("build", false, "include Go version and VCS revision")
	rootCmd.AddCommand(versionCmd)
}

// printBuildInfo writes the version followed by the build settings found in
// info. A nil info prints the version alone.
func printBuildInfo(w io.Writer, v string, info *debug.BuildInfo) {
	fmt.Fprintf(w, "wbclaims %s\n", v)
	if info == nil {
		return
	}
	fmt.Fprintf(w, "go:       %s\n", info.GoVersion)
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			fmt.Fprintf(w, "revision: %s\n", s.Value)
		case "vcs.time":
			fmt.Fprintf(w, "built:    %s\n", s.Value)
		case "vcs.modified":
			if s.Value == "true" {
				fmt.Fprintln(w, "modified: true")
			}
		}
	}
}
