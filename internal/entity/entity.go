// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package entity simplifies whole Wikibase entities: terms, sitelinks,
// lexeme forms and senses, and claims.
package entity

import (
	"context"
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/wbclaims/internal/claims"
	"github.com/pdiddy/wbclaims/internal/logger"
	"github.com/pdiddy/wbclaims/pkg/types"
)

// DefaultLimit bounds the number of entities SimplifyAll works on at once.
const DefaultLimit = 8

// ErrMissingEntity marks an entity the API reported as nonexistent.
var ErrMissingEntity = errors.New("missing entity")

// Simplify reduces e to its simplified form. Media-info entities read their
// claims from the "statements" key.
func Simplify(e types.Entity, cfg types.SimplifyConfig) (types.SimplifiedEntity, error) {
	if e.IsMissing() {
		return types.SimplifiedEntity{}, errors.Mark(errors.Newf("entity %s does not exist", e.ID), ErrMissingEntity)
	}

	out := types.SimplifiedEntity{
		ID:              e.ID,
		Type:            e.Type,
		Datatype:        e.Datatype,
		Modified:        e.Modified,
		Labels:          terms(e.Labels),
		Descriptions:    terms(e.Descriptions),
		Aliases:         aliases(e.Aliases),
		Sitelinks:       sitelinks(e.Sitelinks),
		Lemmas:          terms(e.Lemmas),
		LexicalCategory: e.LexicalCategory,
		Language:        e.Language,
	}

	var err error
	if all := e.AllClaims(); !all.IsZero() {
		if out.Claims, err = claims.SimplifyClaims(all, cfg); err != nil {
			return types.SimplifiedEntity{}, errors.Wrapf(err, "entity %s", e.ID)
		}
	}

	for _, f := range e.Forms {
		form := types.SimplifiedForm{
			ID:                  f.ID,
			Representations:     terms(f.Representations),
			GrammaticalFeatures: f.GrammaticalFeatures,
		}
		if !f.Claims.IsZero() {
			if form.Claims, err = claims.SimplifyClaims(f.Claims, cfg); err != nil {
				return types.SimplifiedEntity{}, errors.Wrapf(err, "form %s", f.ID)
			}
		}
		out.Forms = append(out.Forms, form)
	}

	for _, s := range e.Senses {
		sense := types.SimplifiedSense{
			ID:      s.ID,
			Glosses: terms(s.Glosses),
		}
		if !s.Claims.IsZero() {
			if sense.Claims, err = claims.SimplifyClaims(s.Claims, cfg); err != nil {
				return types.SimplifiedEntity{}, errors.Wrapf(err, "sense %s", s.ID)
			}
		}
		out.Senses = append(out.Senses, sense)
	}

	return out, nil
}

// SimplifyAll simplifies entities concurrently, at most limit at a time
// (DefaultLimit when limit < 1). Results keep the input order. The first
// error cancels the remaining work and is returned.
func SimplifyAll(ctx context.Context, entities []types.Entity, cfg types.SimplifyConfig, limit int) ([]types.SimplifiedEntity, error) {
	if limit < 1 {
		limit = DefaultLimit
	}
	out := make([]types.SimplifiedEntity, len(entities))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i := range entities {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			s, err := Simplify(entities[i], cfg)
			if err != nil {
				return err
			}
			out[i] = s
			logger.Debugw("simplified entity", logger.FieldEntityID, s.ID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Decode reads entities from r. It accepts a single entity object, an array
// of entities, or a wbgetentities response ({"entities": {...}}).
func Decode(r io.Reader) ([]types.Entity, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading entities")
	}
	return Unmarshal(data)
}

// Unmarshal is Decode over a byte slice.
func Unmarshal(data []byte) ([]types.Entity, error) {
	var probe struct {
		Entities types.Ordered[types.Entity] `json:"entities"`
		ID       string                      `json:"id"`
	}
	var list []types.Entity
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.Wrap(err, "decoding entity JSON")
	}
	if probe.Entities.Len() > 0 {
		list = make([]types.Entity, 0, probe.Entities.Len())
		for pair := probe.Entities.Oldest(); pair != nil; pair = pair.Next() {
			e := pair.Value
			if e.ID == "" {
				e.ID = pair.Key
			}
			list = append(list, e)
		}
		return list, nil
	}
	if probe.ID == "" {
		return nil, errors.New("decoding entity JSON: no entity id found")
	}
	var e types.Entity
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, errors.Wrap(err, "decoding entity JSON")
	}
	return []types.Entity{e}, nil
}

func terms(in types.JSONMap[types.Term]) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for lang, t := range in {
		out[lang] = t.Value
	}
	return out
}

func aliases(in types.JSONMap[[]types.Term]) map[string][]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string][]string, len(in))
	for lang, list := range in {
		values := make([]string, len(list))
		for i, t := range list {
			values[i] = t.Value
		}
		out[lang] = values
	}
	return out
}

func sitelinks(in types.JSONMap[types.Sitelink]) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for site, l := range in {
		out[site] = l.Title
	}
	return out
}
