// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/pdiddy/wbclaims/internal/claims"
	"github.com/pdiddy/wbclaims/internal/entity"
	"github.com/pdiddy/wbclaims/pkg/types"
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify [files...]",
	Short: "Simplify entity JSON from files or stdin",
	Long: `Simplify reads Wikibase entity JSON (a single entity, an array, or a
wbgetentities response) from the given files, or stdin when none is given or
the file is "-", and prints the simplified entities.

With --claims-only only the claims are printed. With --rich every value keeps
its statement id, rank, qualifiers and references.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, simplifyBindings)
	},
	RunE: runSimplify,
}

func init() {
	addSimplifyFlags(simplifyCmd)
	simplifyCmd.Flags().Bool("claims-only", false, "print only the simplified claims")
	simplifyCmd.Flags().Bool("rich", false, "keep statement ids, ranks, qualifiers and references")
	simplifyCmd.Flags().String("format", "json", "output format: json or yaml")
	simplifyCmd.Flags().Int("concurrency", entity.DefaultLimit, "entities simplified in parallel")

	rootCmd.AddCommand(simplifyCmd)
}

// richClaims is the --rich output for one entity.
type richClaims struct {
	ID     string                                     `json:"id" yaml:"id"`
	Claims types.Ordered[[]types.SimplifiedStatement] `json:"claims" yaml:"claims"`
}

// idClaims is the --claims-only output for one entity.
type idClaims struct {
	ID     string                 `json:"id" yaml:"id"`
	Claims types.SimplifiedClaims `json:"claims" yaml:"claims"`
}

func runSimplify(cmd *cobra.Command, args []string) error {
	claimsOnly, _ := cmd.Flags().GetBool("claims-only")
	rich, _ := cmd.Flags().GetBool("rich")
	format, _ := cmd.Flags().GetString("format")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	cfg := simplifyConfig()

	entities, err := readEntities(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	switch {
	case rich:
		out := make([]richClaims, 0, len(entities))
		for _, e := range entities {
			c, err := claims.SimplifyClaimsRich(e.AllClaims(), cfg)
			if err != nil {
				return errors.Wrapf(err, "entity %s", e.ID)
			}
			out = append(out, richClaims{ID: e.ID, Claims: c})
		}
		return writeOutput(cmd.OutOrStdout(), single(out), format)

	case claimsOnly:
		out := make([]idClaims, 0, len(entities))
		for _, e := range entities {
			c, err := claims.SimplifyClaims(e.AllClaims(), cfg)
			if err != nil {
				return errors.Wrapf(err, "entity %s", e.ID)
			}
			out = append(out, idClaims{ID: e.ID, Claims: c})
		}
		return writeOutput(cmd.OutOrStdout(), single(out), format)

	default:
		out, err := entity.SimplifyAll(context.Background(), entities, cfg, concurrency)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), single(out), format)
	}
}

// readEntities decodes entities from each path, or stdin for none or "-".
func readEntities(stdin io.Reader, paths []string) ([]types.Entity, error) {
	if len(paths) == 0 {
		paths = []string{"-"}
	}
	var all []types.Entity
	for _, p := range paths {
		var (
			list []types.Entity
			err  error
		)
		if p == "-" {
			list, err = entity.Decode(stdin)
		} else {
			var data []byte
			data, err = os.ReadFile(p)
			if err == nil {
				list, err = entity.Unmarshal(data)
			}
		}
		if err != nil {
			return nil, errors.Wrapf(err, "reading %s", p)
		}
		all = append(all, list...)
	}
	return all, nil
}
