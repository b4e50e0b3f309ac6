// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/cockroachdb/errors"

	"github.com/pdiddy/wbclaims/internal/httputil"
	"github.com/pdiddy/wbclaims/pkg/types"
)

// DefaultSPARQLEndpoint is the Wikidata query service. Declared as a var so
// tests can substitute an httptest server.
var DefaultSPARQLEndpoint = "https://query.wikidata.org/sparql"

// DatatypesQuery lists every property type in use on the knowledge base.
const DatatypesQuery = `SELECT DISTINCT ?type WHERE { ?p wikibase:propertyType ?type }`

type sparqlResults struct {
	Results struct {
		Bindings []map[string]struct {
			Type  string `json:"type"`
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

// Datatypes runs DatatypesQuery and returns the property type URIs, e.g.
// "http://wikiba.se/ontology#WikibaseItem".
func Datatypes(ctx context.Context, client *http.Client, cfg types.DatatypesConfig) ([]string, error) {
	endpoint := cfg.SPARQLEndpoint
	if endpoint == "" {
		endpoint = DefaultSPARQLEndpoint
	}
	reqURL := endpoint + "?" + url.Values{"query": {DatatypesQuery}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	setHeaders(req, cfg.HTTPConfig, "")
	req.Header.Set("Accept", "application/sparql-results+json")

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return nil, errors.Wrap(err, "SPARQL request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("SPARQL endpoint returned HTTP %d", resp.StatusCode)
	}

	var body sparqlResults
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "parsing SPARQL results")
	}

	uris := make([]string, 0, len(body.Results.Bindings))
	for _, b := range body.Results.Bindings {
		if v, ok := b["type"]; ok && v.Value != "" {
			uris = append(uris, v.Value)
		}
	}
	return uris, nil
}
