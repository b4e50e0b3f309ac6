// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file in the directory represents one secret: the filename is the key
// name and the file contents (trimmed) are the value.
//
// Supported key files: wikibase-api-token.
package secrets

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/pdiddy/wbclaims/internal/logger"
)

// DefaultDir is where the CLI looks for secrets.
const DefaultDir = ".secrets/"

// WikibaseAPIToken names the file holding an OAuth 2 bearer token for the
// Wikibase action API.
const WikibaseAPIToken = "wikibase-api-token"

// Set maps key names to secret values.
type Set map[string]string

// Value returns override when it is non-empty, otherwise the secret stored
// under key. Explicit configuration wins over the secrets directory.
func (s Set) Value(key, override string) string {
	if override != "" {
		return override
	}
	return s[key]
}

// Keys returns the key names in sorted order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Load reads all files in dir and returns a Set of filename to trimmed
// contents. A missing directory or missing files are not errors; Load
// returns an empty Set. Unreadable files are logged and skipped.
func Load(dir string) (Set, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, errors.Wrapf(err, "reading secrets directory %s", dir)
	}

	secrets := make(Set)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warnw("could not read secret", logger.FieldPath, name, logger.FieldError, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}
