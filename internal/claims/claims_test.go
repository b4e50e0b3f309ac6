// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package claims

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/wbclaims/pkg/types"
)

// --- test helpers ---

func loadEntity(t *testing.T, name string) types.Entity {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name+".json"))
	require.NoError(t, err)
	var e types.Entity
	require.NoError(t, json.Unmarshal(data, &e))
	return e
}

func propertyClaims(t *testing.T, e types.Entity, property string) []types.Statement {
	t.Helper()
	statements, ok := e.Claims.Get(property)
	require.True(t, ok, "fixture %s has no %s", e.ID, property)
	return statements
}

func firstSnak(t *testing.T, e types.Entity, property string) types.Snak {
	t.Helper()
	return propertyClaims(t, e, property)[0].MainSnak
}

func valueSnak(datatype types.Datatype, valueType, value string) types.Snak {
	return types.Snak{
		SnakType:  types.SnakValue,
		Property:  "P1",
		Datatype:  datatype,
		DataValue: &types.DataValue{Type: valueType, Value: json.RawMessage(value)},
	}
}

// --- SimplifyClaims ---

func TestSimplifyClaimsKeepsKeyCountAndOrder(t *testing.T) {
	for _, name := range []string{"Q571", "Q2112", "Q22002395", "Q328212"} {
		t.Run(name, func(t *testing.T) {
			e := loadEntity(t, name)
			simplified, err := SimplifyClaims(e.Claims, types.SimplifyConfig{})
			require.NoError(t, err)
			assert.Equal(t, e.Claims.Len(), simplified.Len())
			assert.Equal(t, e.Claims.Keys(), simplified.Keys())
			for pair := simplified.Oldest(); pair != nil; pair = pair.Next() {
				assert.NotNil(t, pair.Value, "property %s", pair.Key)
			}
		})
	}
}

func TestSimplifyClaimsKeepsEmptyProperties(t *testing.T) {
	e := loadEntity(t, "Q571")
	simplified, err := SimplifyClaims(e.Claims, types.SimplifyConfig{})
	require.NoError(t, err)

	values, ok := simplified.Get("P1343")
	require.True(t, ok)
	assert.Empty(t, values)

	data, err := json.Marshal(simplified)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"P1343":[]`)
}

func TestSimplifyClaimsValues(t *testing.T) {
	e := loadEntity(t, "Q571")
	simplified, err := SimplifyClaims(e.Claims, types.SimplifyConfig{})
	require.NoError(t, err)

	p487, _ := simplified.Get("P487")
	assert.Equal(t, []any{"📖", "📚"}, p487)
	p2184, _ := simplified.Get("P2184")
	assert.Equal(t, []any{"Data:Books.tab"}, p2184)
	p2534, _ := simplified.Get("P2534")
	assert.Equal(t, []any{"E=mc^2"}, p2534)
	// No datatype on the snak and no id on the value.
	p910, _ := simplified.Get("P910")
	assert.Equal(t, []any{"Q5637226"}, p910)
}

func TestSimplifyClaimsPrefixes(t *testing.T) {
	e := loadEntity(t, "Q2112")

	simplified, err := SimplifyClaims(e.Claims, types.SimplifyConfig{EntityPrefix: "wd"})
	require.NoError(t, err)
	p190, ok := simplified.Get("P190")
	require.True(t, ok)
	assert.Equal(t, "wd:Q207614", p190[0])

	simplified, err = SimplifyClaims(e.Claims, types.SimplifyConfig{PropertyPrefix: "wdt"})
	require.NoError(t, err)
	p, ok := simplified.Get("wdt:P123456789")
	require.True(t, ok)
	assert.Equal(t, "wdt:P207614", p[0])
	_, ok = simplified.Get("P190")
	assert.False(t, ok)

	simplified, err = SimplifyClaims(e.Claims, types.SimplifyConfig{EntityPrefix: "wd", PropertyPrefix: "wdt"})
	require.NoError(t, err)
	p190, ok = simplified.Get("wdt:P190")
	require.True(t, ok)
	assert.Equal(t, "wd:Q207614", p190[0])
	for _, key := range simplified.Keys() {
		assert.Regexp(t, `^wdt:P\d+$`, key)
	}
}

func TestSimplifyClaimsRankPolicies(t *testing.T) {
	e := loadEntity(t, "Q2112")
	tests := []struct {
		policy types.RankPolicy
		want   []any
	}{
		{"", []any{333786.0, 328864.0, 150000.0}},
		{types.RanksAll, []any{333786.0, 328864.0, 150000.0}},
		{types.RanksNonDeprecated, []any{333786.0, 328864.0}},
		{types.RanksTruthy, []any{333786.0}},
	}
	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			values, err := SimplifyPropertyClaims(propertyClaims(t, e, "P1082"), types.SimplifyConfig{Ranks: tt.policy})
			require.NoError(t, err)
			assert.Equal(t, tt.want, values)
		})
	}
}

func TestTruthyFallsBackToNormalRank(t *testing.T) {
	e := loadEntity(t, "Q2112")
	values, err := SimplifyPropertyClaims(propertyClaims(t, e, "P190"), types.SimplifyConfig{Ranks: types.RanksTruthy})
	require.NoError(t, err)
	assert.Equal(t, []any{"Q207614", "Q3806"}, values)
}

func TestUnknownRankPolicy(t *testing.T) {
	e := loadEntity(t, "Q2112")
	_, err := SimplifyClaims(e.Claims, types.SimplifyConfig{Ranks: "best"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown rank policy")
}

// --- SimplifyPropertyClaims ---

func TestSimplifyPropertyClaimsDropsSomeValueAndNoValue(t *testing.T) {
	e := loadEntity(t, "Q22002395")

	values, err := SimplifyPropertyClaims(propertyClaims(t, e, "P50"), types.SimplifyConfig{})
	require.NoError(t, err)
	assert.Equal(t, []any{"Q21338134", "Q21338135", "Q21338136"}, values)

	values, err = SimplifyPropertyClaims(propertyClaims(t, e, "P1433"), types.SimplifyConfig{})
	require.NoError(t, err)
	require.NotNil(t, values)
	assert.Empty(t, values)
}

func TestSimplifyPropertyClaimsPrefixes(t *testing.T) {
	e := loadEntity(t, "Q2112")

	values, err := SimplifyPropertyClaims(propertyClaims(t, e, "P190"), types.SimplifyConfig{EntityPrefix: "wd"})
	require.NoError(t, err)
	assert.Equal(t, []any{"wd:Q207614", "wd:Q3806"}, values)

	values, err = SimplifyPropertyClaims(propertyClaims(t, e, "P123456789"), types.SimplifyConfig{PropertyPrefix: "wdt"})
	require.NoError(t, err)
	assert.Equal(t, []any{"wdt:P207614"}, values)
}

func TestSimplifyPropertyClaimsEmptyInput(t *testing.T) {
	values, err := SimplifyPropertyClaims(nil, types.SimplifyConfig{})
	require.NoError(t, err)
	assert.NotNil(t, values)
	assert.Empty(t, values)
}

// --- Reduce ---

func TestReduceTime(t *testing.T) {
	v, err := Reduce(firstSnak(t, loadEntity(t, "Q4132785"), "P577"), types.SimplifyConfig{})
	require.NoError(t, err)
	assert.Equal(t, int64(-536457600000), v)

	v, err = Reduce(firstSnak(t, loadEntity(t, "Q4132785-negative-date"), "P577"), types.SimplifyConfig{})
	require.NoError(t, err)
	assert.Equal(t, int64(-123797894400000), v)
}

func TestReduceTimeFormats(t *testing.T) {
	snak := firstSnak(t, loadEntity(t, "Q4132785"), "P577")
	tests := []struct {
		format types.TimeFormat
		want   any
	}{
		{types.TimeEpoch, int64(-536457600000)},
		{types.TimeISO, "1953-01-01T00:00:00.000Z"},
		{types.TimeSimpleDay, "1953"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			v, err := Reduce(snak, types.SimplifyConfig{TimeFormat: tt.format})
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}

	_, err := Reduce(snak, types.SimplifyConfig{TimeFormat: "julian"})
	require.Error(t, err)
}

func TestReduceTimeDegradesMalformedDate(t *testing.T) {
	snak := valueSnak(types.DatatypeTime, "time", `{"time":"+2001-13-00T00:00:00Z","precision":11}`)
	v, err := Reduce(snak, types.SimplifyConfig{})
	require.NoError(t, err)
	assert.Equal(t, "+2001-13-01T00:00:00Z", v)
}

func TestReduceURL(t *testing.T) {
	v, err := Reduce(firstSnak(t, loadEntity(t, "Q328212"), "P856"), types.SimplifyConfig{})
	require.NoError(t, err)
	assert.Equal(t, "http://veronicarothbooks.blogspot.com", v)
}

func TestReduceStringLikeDatatypes(t *testing.T) {
	e := loadEntity(t, "Q328212")
	tests := map[string]string{
		"P214":  "304625869",
		"P18":   "Veronica Roth 2014.jpg",
		"P1559": "Veronica Roth",
	}
	for property, want := range tests {
		t.Run(property, func(t *testing.T) {
			v, err := Reduce(firstSnak(t, e, property), types.SimplifyConfig{EntityPrefix: "wd"})
			require.NoError(t, err)
			assert.Equal(t, want, v)
		})
	}
}

func TestReduceGlobeCoordinate(t *testing.T) {
	v, err := Reduce(firstSnak(t, loadEntity(t, "Q2112"), "P625"), types.SimplifyConfig{})
	require.NoError(t, err)
	coords, ok := v.([2]float64)
	require.True(t, ok)
	assert.Equal(t, 52.016666666667, coords[0])
	assert.Equal(t, 8.5166666666667, coords[1])

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Equal(t, "[52.016666666667,8.5166666666667]", string(data))
}

func TestReduceEntityPrefixes(t *testing.T) {
	snak := firstSnak(t, loadEntity(t, "Q2112"), "P190")
	tests := []struct {
		prefix string
		want   string
	}{
		{"", "Q207614"},
		{"wd", "wd:Q207614"},
		{"wd:", "wd::Q207614"},
		{"wdbla", "wdbla:Q207614"},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			v, err := Reduce(snak, types.SimplifyConfig{EntityPrefix: tt.prefix})
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestReducePropertyPrefixes(t *testing.T) {
	snak := firstSnak(t, loadEntity(t, "Q2112"), "P123456789")
	tests := []struct {
		entityPrefix   string
		propertyPrefix string
		want           string
	}{
		{"", "", "P207614"},
		{"wd", "", "P207614"},
		{"", "wdt", "wdt:P207614"},
		{"", "wdt:", "wdt::P207614"},
		{"wd", "wdtbla", "wdtbla:P207614"},
	}
	for _, tt := range tests {
		t.Run(tt.entityPrefix+"|"+tt.propertyPrefix, func(t *testing.T) {
			v, err := Reduce(snak, types.SimplifyConfig{EntityPrefix: tt.entityPrefix, PropertyPrefix: tt.propertyPrefix})
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestReduceEntityReferenceKinds(t *testing.T) {
	cfg := types.SimplifyConfig{EntityPrefix: "wd", PropertyPrefix: "wdt"}
	tests := []struct {
		name     string
		datatype types.Datatype
		value    string
		want     string
	}{
		{"lexeme", types.DatatypeWikibaseLexeme, `{"entity-type":"lexeme","numeric-id":525,"id":"L525"}`, "wd:L525"},
		{"form", types.DatatypeWikibaseForm, `{"entity-type":"form","id":"L525-F2"}`, "wd:L525-F2"},
		{"sense", types.DatatypeWikibaseSense, `{"entity-type":"sense","id":"L525-S1"}`, "wd:L525-S1"},
		{"entity schema", types.DatatypeEntitySchema, `{"entity-type":"entity-schema","id":"E10"}`, "wd:E10"},
		{"generic item", types.DatatypeWikibaseEntityID, `{"entity-type":"item","numeric-id":42}`, "wd:Q42"},
		{"generic property", types.DatatypeWikibaseEntityID, `{"entity-type":"property","numeric-id":31}`, "wdt:P31"},
		{"generic media info", types.DatatypeWikibaseEntityID, `{"entity-type":"mediainfo","id":"M1"}`, "wd:M1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Reduce(valueSnak(tt.datatype, "wikibase-entityid", tt.value), cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestReduceQuantity(t *testing.T) {
	v, err := Reduce(valueSnak(types.DatatypeQuantity, "quantity", `{"amount":"-12.75","unit":"http://www.wikidata.org/entity/Q11573"}`), types.SimplifyConfig{})
	require.NoError(t, err)
	assert.Equal(t, -12.75, v)

	_, err = Reduce(valueSnak(types.DatatypeQuantity, "quantity", `{"amount":"lots"}`), types.SimplifyConfig{})
	require.Error(t, err)
}

func TestReduceRemainingStringDatatypes(t *testing.T) {
	for _, dt := range []types.Datatype{
		types.DatatypeMusicalNotation,
		types.DatatypeGeoShape,
		types.DatatypeString,
		types.DatatypeExternalID,
	} {
		t.Run(string(dt), func(t *testing.T) {
			v, err := Reduce(valueSnak(dt, "string", `"payload"`), types.SimplifyConfig{})
			require.NoError(t, err)
			assert.Equal(t, "payload", v)
		})
	}
}

func TestReduceNoValueSnaks(t *testing.T) {
	for _, st := range []types.SnakType{types.SnakSomeValue, types.SnakNoValue} {
		v, err := Reduce(types.Snak{SnakType: st, Property: "P50", Datatype: "not-even-registered"}, types.SimplifyConfig{})
		require.NoError(t, err)
		assert.Nil(t, v)
	}
}

func TestReduceUnsupportedDatatype(t *testing.T) {
	_, err := Reduce(valueSnak("wikibase-mediainfo-thing", "string", `"x"`), types.SimplifyConfig{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedDatatype))
	assert.Contains(t, err.Error(), "wikibase-mediainfo-thing")
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestSimplifyClaimsPropagatesUnsupportedDatatype(t *testing.T) {
	claims := types.NewOrdered[[]types.Statement]()
	claims.Set("P9", []types.Statement{{MainSnak: valueSnak("sparkle", "string", `"x"`)}})
	_, err := SimplifyClaims(claims, types.SimplifyConfig{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedDatatype))
	assert.Contains(t, err.Error(), "P9")
}

func TestReduceValueSnakWithoutDatavalue(t *testing.T) {
	_, err := Reduce(types.Snak{SnakType: types.SnakValue, Property: "P1", Datatype: types.DatatypeString}, types.SimplifyConfig{})
	require.Error(t, err)
}

func TestSupportedCoversEveryDatatype(t *testing.T) {
	supported := Supported()
	assert.Len(t, supported, 19)
	assert.True(t, IsSupported(types.DatatypeCommonsMedia))
	assert.False(t, IsSupported("wikibase-mediainfo"))
	assert.IsNonDecreasing(t, supported)
}

// --- qualifiers, references, rich form ---

func TestSimplifyQualifiersFollowsQualifiersOrder(t *testing.T) {
	st := propertyClaims(t, loadEntity(t, "Q2112"), "P625")[0]
	qualifiers, err := SimplifyQualifiers(st, types.SimplifyConfig{TimeFormat: types.TimeSimpleDay, EntityPrefix: "wd"})
	require.NoError(t, err)
	assert.Equal(t, []string{"P1480", "P580"}, qualifiers.Keys())
	p580, _ := qualifiers.Get("P580")
	assert.Equal(t, []any{"1214"}, p580)
	p1480, _ := qualifiers.Get("P1480")
	assert.Equal(t, []any{"wd:Q18122778"}, p1480)
}

func TestSimplifySnaksAppendsKeysMissingFromOrder(t *testing.T) {
	snaks := types.NewOrdered[[]types.Snak]()
	snaks.Set("P1", []types.Snak{valueSnak(types.DatatypeString, "string", `"one"`)})
	snaks.Set("P2", []types.Snak{valueSnak(types.DatatypeString, "string", `"two"`)})
	snaks.Set("P3", []types.Snak{{SnakType: types.SnakNoValue, Property: "P3"}})

	out, err := SimplifySnaks(snaks, []string{"P2", "P404"}, types.SimplifyConfig{PropertyPrefix: "pq"})
	require.NoError(t, err)
	assert.Equal(t, []string{"pq:P2", "pq:P1", "pq:P3"}, out.Keys())
	p3, _ := out.Get("pq:P3")
	assert.Empty(t, p3)
}

func TestSimplifyStatementRich(t *testing.T) {
	st := propertyClaims(t, loadEntity(t, "Q2112"), "P625")[0]
	rich, ok, err := SimplifyStatement(st, types.SimplifyConfig{})
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, "q2112$6F0C4F2C-8D2A-4B8E-9A33-5D35A0E0A4B1", rich.ID)
	assert.Equal(t, types.RankNormal, rich.Rank)
	assert.Equal(t, [2]float64{52.016666666667, 8.5166666666667}, rich.Value)
	assert.Equal(t, 2, rich.Qualifiers.Len())
	require.Len(t, rich.References, 1)
	p143, _ := rich.References[0].Get("P143")
	assert.Equal(t, []any{"Q328"}, p143)
}

func TestSimplifyClaimsRich(t *testing.T) {
	e := loadEntity(t, "Q22002395")
	rich, err := SimplifyClaimsRich(e.Claims, types.SimplifyConfig{})
	require.NoError(t, err)
	assert.Equal(t, e.Claims.Keys(), rich.Keys())

	p50, _ := rich.Get("P50")
	require.Len(t, p50, 3)
	assert.Equal(t, "Q22002395$A1B2C3D4-E5F6-4A7B-8C9D-0E1F2A3B4C5D", p50[0].ID)

	data, err := json.Marshal(rich)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "qualifiers")
}
