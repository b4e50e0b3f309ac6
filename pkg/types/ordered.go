// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.yaml.in/yaml/v3"
)

// Ordered is a JSON object keyed by string that keeps its keys in source
// order. The zero value is an empty, read-only map; use NewOrdered before
// calling Set.
//
// The Wikibase API serializes empty objects as "[]", which Ordered accepts.
type Ordered[V any] struct {
	*orderedmap.OrderedMap[string, V]
}

// NewOrdered returns an empty, writable Ordered map.
func NewOrdered[V any]() Ordered[V] {
	return Ordered[V]{OrderedMap: orderedmap.New[string, V]()}
}

// Len returns the number of keys. It is safe on the zero value.
func (o Ordered[V]) Len() int {
	if o.OrderedMap == nil {
		return 0
	}
	return o.OrderedMap.Len()
}

// Oldest returns the first pair, or nil when the map is empty.
func (o Ordered[V]) Oldest() *orderedmap.Pair[string, V] {
	if o.OrderedMap == nil {
		return nil
	}
	return o.OrderedMap.Oldest()
}

// Get returns the value stored under key.
func (o Ordered[V]) Get(key string) (V, bool) {
	if o.OrderedMap == nil {
		var zero V
		return zero, false
	}
	return o.OrderedMap.Get(key)
}

// Keys returns the keys in insertion order.
func (o Ordered[V]) Keys() []string {
	keys := make([]string, 0, o.Len())
	for pair := o.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// IsZero reports whether the map was never initialized.
func (o Ordered[V]) IsZero() bool {
	return o.OrderedMap == nil
}

// UnmarshalJSON decodes a JSON object preserving key order.
func (o *Ordered[V]) UnmarshalJSON(data []byte) error {
	o.OrderedMap = orderedmap.New[string, V]()
	if isEmptyArray(data) || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	return o.OrderedMap.UnmarshalJSON(data)
}

// MarshalJSON encodes the map as a JSON object in insertion order.
func (o Ordered[V]) MarshalJSON() ([]byte, error) {
	if o.OrderedMap == nil {
		return []byte("{}"), nil
	}
	return o.OrderedMap.MarshalJSON()
}

// MarshalYAML encodes the map as a YAML mapping in insertion order.
func (o Ordered[V]) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for pair := o.Oldest(); pair != nil; pair = pair.Next() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pair.Key}
		value := &yaml.Node{}
		if err := value.Encode(pair.Value); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, key, value)
	}
	return node, nil
}

// JSONMap is a plain JSON object that also accepts the API's "[]" for an
// empty object. Used where key order carries no meaning (terms, sitelinks).
type JSONMap[V any] map[string]V

// UnmarshalJSON decodes a JSON object, treating "[]" as empty.
func (m *JSONMap[V]) UnmarshalJSON(data []byte) error {
	if isEmptyArray(data) {
		*m = JSONMap[V]{}
		return nil
	}
	var raw map[string]V
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*m = raw
	return nil
}

// isEmptyArray reports whether data is a JSON array with no elements,
// whitespace inside the brackets included.
func isEmptyArray(data []byte) bool {
	data = bytes.TrimSpace(data)
	if len(data) < 2 || data[0] != '[' {
		return false
	}
	return len(bytes.TrimSpace(data[1:len(data)-1])) == 0 && data[len(data)-1] == ']'
}
