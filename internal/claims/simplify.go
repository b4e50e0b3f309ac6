// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package claims

import (
	"github.com/cockroachdb/errors"

	"github.com/pdiddy/wbclaims/pkg/types"
)

// SimplifyPropertyClaims reduces the statements of one property, in source
// order, after applying the rank policy. Statements that reduce to nil
// (somevalue, novalue) are dropped. The result is never nil.
func SimplifyPropertyClaims(statements []types.Statement, cfg types.SimplifyConfig) ([]any, error) {
	kept, err := filterRanks(statements, cfg.Ranks)
	if err != nil {
		return nil, err
	}
	values := make([]any, 0, len(kept))
	for _, st := range kept {
		v, err := Reduce(st.MainSnak, cfg)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		values = append(values, v)
	}
	return values, nil
}

// SimplifyClaims reduces every property of claims. The result has exactly
// the input's keys, in input order, rewritten as "<PropertyPrefix>:<key>"
// when a property prefix is set; a property whose statements all drop out
// maps to an empty slice.
func SimplifyClaims(claims types.Claims, cfg types.SimplifyConfig) (types.SimplifiedClaims, error) {
	out := types.NewOrdered[[]any]()
	for pair := claims.Oldest(); pair != nil; pair = pair.Next() {
		values, err := SimplifyPropertyClaims(pair.Value, cfg)
		if err != nil {
			return types.SimplifiedClaims{}, errors.Wrapf(err, "simplifying %s", pair.Key)
		}
		out.Set(prefixed(cfg.PropertyPrefix, pair.Key), values)
	}
	return out, nil
}

// SimplifySnaks reduces a qualifier or reference snak map. Keys follow
// order when given (the "qualifiers-order" / "snaks-order" lists), then any
// keys order does not mention, in source order.
func SimplifySnaks(snaks types.SnakMap, order []string, cfg types.SimplifyConfig) (types.SimplifiedClaims, error) {
	out := types.NewOrdered[[]any]()

	keys := make([]string, 0, snaks.Len())
	seen := make(map[string]bool, snaks.Len())
	for _, k := range order {
		if _, ok := snaks.Get(k); ok && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	for _, k := range snaks.Keys() {
		if !seen[k] {
			keys = append(keys, k)
		}
	}

	for _, k := range keys {
		group, _ := snaks.Get(k)
		values := make([]any, 0, len(group))
		for _, snak := range group {
			v, err := Reduce(snak, cfg)
			if err != nil {
				return types.SimplifiedClaims{}, errors.Wrapf(err, "simplifying %s", k)
			}
			if v != nil {
				values = append(values, v)
			}
		}
		out.Set(prefixed(cfg.PropertyPrefix, k), values)
	}
	return out, nil
}

// SimplifyQualifiers reduces the qualifiers of st in qualifiers-order.
func SimplifyQualifiers(st types.Statement, cfg types.SimplifyConfig) (types.SimplifiedClaims, error) {
	return SimplifySnaks(st.Qualifiers, st.QualifiersOrder, cfg)
}

// SimplifyStatement returns the rich form of st: its id, rank, value,
// qualifiers and references. ok is false when the main snak has no value.
func SimplifyStatement(st types.Statement, cfg types.SimplifyConfig) (simplified types.SimplifiedStatement, ok bool, err error) {
	v, err := Reduce(st.MainSnak, cfg)
	if err != nil || v == nil {
		return types.SimplifiedStatement{}, false, err
	}

	qualifiers, err := SimplifyQualifiers(st, cfg)
	if err != nil {
		return types.SimplifiedStatement{}, false, err
	}
	simplified = types.SimplifiedStatement{
		ID:    st.ID,
		Rank:  st.Rank,
		Value: v,
	}
	if qualifiers.Len() > 0 {
		simplified.Qualifiers = qualifiers
	}
	for _, ref := range st.References {
		snaks, err := SimplifySnaks(ref.Snaks, ref.SnaksOrder, cfg)
		if err != nil {
			return types.SimplifiedStatement{}, false, errors.Wrap(err, "reference")
		}
		simplified.References = append(simplified.References, snaks)
	}
	return simplified, true, nil
}

// SimplifyClaimsRich is SimplifyClaims keeping ids, ranks, qualifiers and
// references for every value.
func SimplifyClaimsRich(claims types.Claims, cfg types.SimplifyConfig) (types.Ordered[[]types.SimplifiedStatement], error) {
	out := types.NewOrdered[[]types.SimplifiedStatement]()
	for pair := claims.Oldest(); pair != nil; pair = pair.Next() {
		kept, err := filterRanks(pair.Value, cfg.Ranks)
		if err != nil {
			return types.Ordered[[]types.SimplifiedStatement]{}, err
		}
		statements := make([]types.SimplifiedStatement, 0, len(kept))
		for _, st := range kept {
			s, ok, err := SimplifyStatement(st, cfg)
			if err != nil {
				return types.Ordered[[]types.SimplifiedStatement]{}, errors.Wrapf(err, "simplifying %s", pair.Key)
			}
			if ok {
				statements = append(statements, s)
			}
		}
		out.Set(prefixed(cfg.PropertyPrefix, pair.Key), statements)
	}
	return out, nil
}

// filterRanks applies policy to the statements of one property.
func filterRanks(statements []types.Statement, policy types.RankPolicy) ([]types.Statement, error) {
	switch policy {
	case "", types.RanksAll:
		return statements, nil
	case types.RanksNonDeprecated:
		return withoutRank(statements, types.RankDeprecated), nil
	case types.RanksTruthy:
		var preferred []types.Statement
		for _, st := range statements {
			if st.Rank == types.RankPreferred {
				preferred = append(preferred, st)
			}
		}
		if len(preferred) > 0 {
			return preferred, nil
		}
		return withoutRank(statements, types.RankDeprecated), nil
	default:
		return nil, errors.Newf("unknown rank policy %q", string(policy))
	}
}

func withoutRank(statements []types.Statement, rank types.Rank) []types.Statement {
	out := make([]types.Statement, 0, len(statements))
	for _, st := range statements {
		if st.Rank != rank {
			out = append(out, st)
		}
	}
	return out
}
