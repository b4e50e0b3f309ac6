// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func TestOrderedKeepsSourceOrder(t *testing.T) {
	var o Ordered[int]
	require.NoError(t, json.Unmarshal([]byte(`{"P9":1,"P1":2,"P50":3}`), &o))
	assert.Equal(t, []string{"P9", "P1", "P50"}, o.Keys())

	data, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Equal(t, `{"P9":1,"P1":2,"P50":3}`, string(data))

	out, err := yaml.Marshal(o)
	require.NoError(t, err)
	assert.Equal(t, "P9: 1\nP1: 2\nP50: 3\n", string(out))
}

func TestOrderedAcceptsEmptyArray(t *testing.T) {
	for _, in := range []string{`[]`, ` [ ] `, "[\n  ]", "[\t\r\n]", `null`, `{}`} {
		var o Ordered[string]
		require.NoError(t, json.Unmarshal([]byte(in), &o), in)
		assert.False(t, o.IsZero(), in)
		assert.Equal(t, 0, o.Len(), in)
	}
}

func TestOrderedRejectsNonEmptyArray(t *testing.T) {
	var o Ordered[int]
	assert.Error(t, json.Unmarshal([]byte(`[ 1 ]`), &o))
	assert.Error(t, json.Unmarshal([]byte(`[`), &o))
}

func TestOrderedZeroValue(t *testing.T) {
	var o Ordered[string]
	assert.True(t, o.IsZero())
	assert.Equal(t, 0, o.Len())
	assert.Nil(t, o.Oldest())
	assert.Empty(t, o.Keys())

	_, ok := o.Get("P31")
	assert.False(t, ok)

	data, err := json.Marshal(o)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestJSONMapAcceptsEmptyArray(t *testing.T) {
	var m JSONMap[Term]
	require.NoError(t, json.Unmarshal([]byte(`[]`), &m))
	assert.NotNil(t, m)
	assert.Empty(t, m)

	m = nil
	require.NoError(t, json.Unmarshal([]byte("[\n    ]"), &m))
	assert.NotNil(t, m)
	assert.Empty(t, m)

	require.NoError(t, json.Unmarshal([]byte(`{"en":{"language":"en","value":"cat"}}`), &m))
	assert.Equal(t, "cat", m["en"].Value)

	assert.Error(t, json.Unmarshal([]byte(`[1]`), &m))
}
