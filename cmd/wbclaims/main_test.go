// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/wbclaims/internal/secrets"
	"github.com/pdiddy/wbclaims/pkg/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Q42", "item"},
		{"P31", "property"},
		{"L525-S1", "sense"},
		{"E10", "entity-schema"},
		{"M65", "mediainfo"},
		{"Q42$F078E5B3-F9A8-480E-B7AC-D97778CBBEF9", "guid"},
		{"Q42#P31", "property-claims"},
		{"Property:P31", "page-title"},
		{"123456", "revision"},
		{"3f2cbd4b0a3a7d0b3d4a3e5f6a7b8c9d0e1f2a3b", "hash"},
		{"Q0", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.in))
		})
	}
}

func TestWriteOutput(t *testing.T) {
	claims := types.NewOrdered[[]any]()
	claims.Set("P31", []any{"Q5"})
	claims.Set("P18", []any{"Veronica Roth 2014.jpg"})

	var buf bytes.Buffer
	require.NoError(t, writeOutput(&buf, claims, "json"))
	assert.Equal(t, "{\n  \"P31\": [\n    \"Q5\"\n  ],\n  \"P18\": [\n    \"Veronica Roth 2014.jpg\"\n  ]\n}\n", buf.String())

	buf.Reset()
	require.NoError(t, writeOutput(&buf, claims, "yaml"))
	assert.Equal(t, "P31:\n  - Q5\nP18:\n  - Veronica Roth 2014.jpg\n", buf.String())

	assert.Error(t, writeOutput(&buf, claims, "toml"))
}

func TestSingle(t *testing.T) {
	assert.Equal(t, 1, single([]int{1}))
	assert.Equal(t, []int{1, 2}, single([]int{1, 2}))
	assert.Equal(t, []int{}, single([]int{}))
}

func TestSecretDefault(t *testing.T) {
	loadedSecrets = secrets.Set{"k": "from-file"}
	t.Cleanup(func() { loadedSecrets = nil })

	assert.Equal(t, "from-flag", secretDefault("k", "from-flag"))
	assert.Equal(t, "from-file", secretDefault("k", ""))
	assert.Equal(t, "", secretDefault("other", ""))
}
