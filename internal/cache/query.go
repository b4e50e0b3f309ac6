// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/pdiddy/wbclaims/pkg/types"
)

// QueryOptions filters List.
type QueryOptions struct {
	// Type keeps only entities of this type.
	Type types.EntityType

	// Label keeps entities with a label (or lemma) containing this text,
	// case-insensitively.
	Label string

	// Language restricts Label matching to one language.
	Language string

	// MaxResults limits result count. Zero means no limit.
	MaxResults int
}

// List returns the ids of cached entities matching opts, sorted by id.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]string, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT DISTINCT e.id FROM entities e`)
	if opts.Label != "" {
		qb.WriteString(` JOIN labels l ON l.entity_id = e.id`)
	}
	qb.WriteString(` WHERE 1=1`)

	if opts.Type != "" {
		qb.WriteString(` AND e.type = ?`)
		args = append(args, string(opts.Type))
	}
	if opts.Label != "" {
		qb.WriteString(` AND l.value LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(opts.Label)+"%")
		if opts.Language != "" {
			qb.WriteString(` AND l.language = ?`)
			args = append(args, opts.Language)
		}
	}
	qb.WriteString(` ORDER BY e.id`)
	if opts.MaxResults > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, opts.MaxResults)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying cache")
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "scanning row")
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Count returns the number of cached entities.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM entities`).Scan(&n); err != nil {
		return 0, errors.Wrap(err, "counting entities")
	}
	return n, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
