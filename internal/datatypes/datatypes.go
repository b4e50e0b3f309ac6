// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package datatypes compares the property datatypes a knowledge base uses
// against the datatypes the claim reducer supports.
package datatypes

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/iancoleman/strcase"

	"github.com/pdiddy/wbclaims/internal/claims"
	"github.com/pdiddy/wbclaims/pkg/types"
)

// Report is the outcome of Compare.
type Report struct {
	Supported   []types.Datatype `json:"supported" yaml:"supported"`
	Unsupported []types.Datatype `json:"unsupported" yaml:"unsupported"`
}

// OK reports whether every datatype is supported.
func (r Report) OK() bool {
	return len(r.Unsupported) == 0
}

// Name turns a datatype URI such as "http://wikiba.se/ontology#WikibaseItem"
// into the datatype name used in entity JSON ("wikibase-item"). A bare
// fragment is accepted too.
func Name(uri string) types.Datatype {
	fragment := uri
	if _, after, ok := strings.Cut(uri, "#"); ok {
		fragment = after
	}
	// The one datatype whose JSON name is camel case.
	if fragment == "CommonsMedia" {
		return types.DatatypeCommonsMedia
	}
	return types.Datatype(strcase.ToKebab(fragment))
}

// Compare names every URI and sorts it into supported and unsupported, in
// input order. Duplicates are reported once.
func Compare(uris []string) Report {
	var r Report
	seen := make(map[types.Datatype]bool, len(uris))
	for _, uri := range uris {
		dt := Name(uri)
		if dt == "" || seen[dt] {
			continue
		}
		seen[dt] = true
		if claims.IsSupported(dt) {
			r.Supported = append(r.Supported, dt)
		} else {
			r.Unsupported = append(r.Unsupported, dt)
		}
	}
	return r
}

// ReadFile loads a JSON array of datatype URIs.
func ReadFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading datatypes file %s", path)
	}
	var uris []string
	if err := json.Unmarshal(data, &uris); err != nil {
		return nil, errors.Wrapf(err, "parsing datatypes file %s", path)
	}
	return uris, nil
}

// Print writes one line per datatype: "ok <name>" or
// "unsupported type <name>".
func (r Report) Print(w io.Writer) {
	for _, dt := range r.Supported {
		fmt.Fprintf(w, "ok %s\n", dt)
	}
	for _, dt := range r.Unsupported {
		fmt.Fprintf(w, "unsupported type %s\n", dt)
	}
}
