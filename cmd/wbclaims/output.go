// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"
	"go.yaml.in/yaml/v3"
)

// writeOutput encodes v to w as indented JSON or YAML.
func writeOutput(w io.Writer, v any, format string) error {
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.Newf("unsupported format %q: use json or yaml", format)
	}
}

// single unwraps one-element results so a single entity prints as an object.
func single[T any](list []T) any {
	if len(list) == 1 {
		return list[0]
	}
	return list
}
