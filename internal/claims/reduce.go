// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package claims reduces Wikibase statements to directly usable values.
//
// Reduce turns one snak into a scalar or small structured value according
// to its datatype. SimplifyPropertyClaims and SimplifyClaims apply it to the
// statements of one property and of a whole claims map, keeping source order.
// Every function is pure and safe for concurrent use.
package claims

import (
	"encoding/json"
	"slices"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/pdiddy/wbclaims/internal/ids"
	"github.com/pdiddy/wbclaims/internal/wbtime"
	"github.com/pdiddy/wbclaims/pkg/types"
)

// ErrUnsupportedDatatype marks a snak whose datatype has no reduction rule.
var ErrUnsupportedDatatype = errors.New("unsupported datatype")

// reducer decodes a datavalue payload of one datatype.
type reducer func(raw json.RawMessage, cfg types.SimplifyConfig) (any, error)

// reducers is the closed dispatch table over the supported datatypes.
var reducers = map[types.Datatype]reducer{
	types.DatatypeWikibaseItem:     entityRef,
	types.DatatypeWikibaseLexeme:   entityRef,
	types.DatatypeWikibaseForm:     entityRef,
	types.DatatypeWikibaseSense:    entityRef,
	types.DatatypeEntitySchema:     entityRef,
	types.DatatypeWikibaseProperty: propertyRef,
	types.DatatypeWikibaseEntityID: anyEntityRef,

	types.DatatypeString:          stringValue,
	types.DatatypeURL:             stringValue,
	types.DatatypeExternalID:      stringValue,
	types.DatatypeCommonsMedia:    stringValue,
	types.DatatypeMath:            stringValue,
	types.DatatypeMusicalNotation: stringValue,
	types.DatatypeGeoShape:        stringValue,
	types.DatatypeTabularData:     stringValue,

	types.DatatypeMonolingualText: monolingualText,
	types.DatatypeQuantity:        quantity,
	types.DatatypeTime:            timeValue,
	types.DatatypeGlobeCoordinate: globeCoordinate,
}

// valueTypeDatatypes maps datavalue types to a datatype for snaks from old
// dumps that carry no datatype of their own.
var valueTypeDatatypes = map[string]types.Datatype{
	"wikibase-entityid": types.DatatypeWikibaseEntityID,
	"string":            types.DatatypeString,
	"monolingualtext":   types.DatatypeMonolingualText,
	"quantity":          types.DatatypeQuantity,
	"time":              types.DatatypeTime,
	"globecoordinate":   types.DatatypeGlobeCoordinate,
}

// Supported returns the datatypes Reduce can handle, sorted.
func Supported() []types.Datatype {
	out := make([]types.Datatype, 0, len(reducers))
	for dt := range reducers {
		out = append(out, dt)
	}
	slices.Sort(out)
	return out
}

// IsSupported reports whether dt has a reduction rule.
func IsSupported(dt types.Datatype) bool {
	_, ok := reducers[dt]
	return ok
}

// Reduce returns the simplified value of snak. Snaks of type somevalue and
// novalue reduce to nil without error.
//
// Value types by datatype: entity and property references give string ids,
// prefixed as "<prefix>:<id>" when cfg sets one; time gives int64 epoch
// milliseconds, or a string for other time formats and for dates that cannot
// be parsed; globe-coordinate gives [2]float64{latitude, longitude};
// quantity gives float64; every other datatype gives its text.
func Reduce(snak types.Snak, cfg types.SimplifyConfig) (any, error) {
	switch snak.SnakType {
	case types.SnakSomeValue, types.SnakNoValue:
		return nil, nil
	}

	dt := snak.Datatype
	if dt == "" && snak.DataValue != nil {
		dt = valueTypeDatatypes[snak.DataValue.Type]
	}
	reduce, ok := reducers[dt]
	if !ok {
		err := errors.Mark(errors.Newf("unsupported datatype: %q", string(dt)), ErrUnsupportedDatatype)
		return nil, errors.WithHint(err, "run `wbclaims datatypes` to compare against the knowledge base's datatypes")
	}
	if snak.DataValue == nil {
		return nil, errors.Newf("%s: value snak without datavalue", snak.Property)
	}

	v, err := reduce(snak.DataValue.Value, cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s value of %s", dt, snak.Property)
	}
	return v, nil
}

func prefixed(prefix, id string) string {
	if prefix == "" {
		return id
	}
	return prefix + ":" + id
}

// entityIDValue is the wikibase-entityid datavalue. Old dumps only carry
// entity-type and numeric-id.
type entityIDValue struct {
	EntityType types.EntityType `json:"entity-type"`
	NumericID  int64            `json:"numeric-id"`
	ID         string           `json:"id"`
}

var entityTypeLetters = map[types.EntityType]string{
	types.EntityItem:         "Q",
	types.EntityProperty:     "P",
	types.EntityLexeme:       "L",
	types.EntityMediaInfo:    "M",
	types.EntityEntitySchema: "E",
}

func decodeEntityID(raw json.RawMessage) (string, error) {
	var v entityIDValue
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}
	if v.ID != "" {
		return v.ID, nil
	}
	letter, ok := entityTypeLetters[v.EntityType]
	if !ok || v.NumericID <= 0 {
		return "", errors.Newf("entity reference without id (entity-type %q)", string(v.EntityType))
	}
	return letter + strconv.FormatInt(v.NumericID, 10), nil
}

func entityRef(raw json.RawMessage, cfg types.SimplifyConfig) (any, error) {
	id, err := decodeEntityID(raw)
	if err != nil {
		return nil, err
	}
	return prefixed(cfg.EntityPrefix, id), nil
}

func propertyRef(raw json.RawMessage, cfg types.SimplifyConfig) (any, error) {
	id, err := decodeEntityID(raw)
	if err != nil {
		return nil, err
	}
	return prefixed(cfg.PropertyPrefix, id), nil
}

// anyEntityRef handles the generic entityid datatype, routing property ids
// to the property prefix.
func anyEntityRef(raw json.RawMessage, cfg types.SimplifyConfig) (any, error) {
	id, err := decodeEntityID(raw)
	if err != nil {
		return nil, err
	}
	if ids.IsPropertyID(id) {
		return prefixed(cfg.PropertyPrefix, id), nil
	}
	return prefixed(cfg.EntityPrefix, id), nil
}

func stringValue(raw json.RawMessage, _ types.SimplifyConfig) (any, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return s, nil
}

func monolingualText(raw json.RawMessage, _ types.SimplifyConfig) (any, error) {
	var v struct {
		Text     string `json:"text"`
		Language string `json:"language"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v.Text, nil
}

func quantity(raw json.RawMessage, _ types.SimplifyConfig) (any, error) {
	var v struct {
		Amount string `json:"amount"`
		Unit   string `json:"unit"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	amount, err := strconv.ParseFloat(v.Amount, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "quantity amount %q", v.Amount)
	}
	return amount, nil
}

func globeCoordinate(raw json.RawMessage, _ types.SimplifyConfig) (any, error) {
	var v struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return [2]float64{v.Latitude, v.Longitude}, nil
}

func timeValue(raw json.RawMessage, cfg types.SimplifyConfig) (any, error) {
	var v wbtime.Value
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	switch cfg.TimeFormat {
	case "", types.TimeEpoch:
		return wbtime.ToEpochTime(v).Any(), nil
	case types.TimeISO:
		return wbtime.ToISOString(v).Any(), nil
	case types.TimeSimpleDay:
		return wbtime.SimpleDay(v), nil
	default:
		return nil, errors.Newf("unknown time format %q", string(cfg.TimeFormat))
	}
}
