// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves entities from a Wikibase action API and property
// datatypes from a SPARQL endpoint.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/pdiddy/wbclaims/internal/httputil"
	"github.com/pdiddy/wbclaims/internal/ids"
	"github.com/pdiddy/wbclaims/internal/logger"
	"github.com/pdiddy/wbclaims/pkg/types"
)

// DefaultAPIURL is the Wikidata action API, used when the config names no
// endpoint. Declared as a var so tests can substitute an httptest server.
var DefaultAPIURL = "https://www.wikidata.org/w/api.php"

// DefaultUserAgent identifies wbclaims when the config sets no agent.
const DefaultUserAgent = "wbclaims/0.1 (https://github.com/pdiddy/wbclaims)"

// MaxBatchSize is the wbgetentities limit on ids per request for
// non-bot clients.
const MaxBatchSize = 50

// ErrAPI marks an error object returned by the action API.
var ErrAPI = errors.New("wikibase API error")

// BatchResult holds the outcome of a fetch run.
type BatchResult struct {
	Fetched  int
	Missing  []string
	Entities []types.Entity
}

// Total returns the number of distinct ids requested.
func (r BatchResult) Total() int {
	return r.Fetched + len(r.Missing)
}

// NewClient returns an HTTP client with the configured timeout.
func NewClient(cfg types.HTTPConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// Entities fetches the given ids with wbgetentities, MaxBatchSize (or
// cfg.BatchSize, if smaller) per request. Duplicate ids are requested once.
// Entities come back in request order; ids the API reports as missing are
// listed in the result rather than failing the run. Requests are spaced to
// cfg.RequestsPerSecond when set. Progress lines go to w.
func Entities(ctx context.Context, client *http.Client, idList []string, cfg types.FetchConfig, w io.Writer) (BatchResult, error) {
	var result BatchResult

	unique := make([]string, 0, len(idList))
	for _, id := range idList {
		id = strings.TrimSpace(id)
		if _, ok := ids.Kind(id); !ok {
			return result, errors.Mark(errors.Newf("invalid entity id: %q", id), ids.ErrInvalidIdentifier)
		}
		if !slices.Contains(unique, id) {
			unique = append(unique, id)
		}
	}

	size := cfg.BatchSize
	if size <= 0 || size > MaxBatchSize {
		size = MaxBatchSize
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	for batch := range slices.Chunk(unique, size) {
		if err := limiter.Wait(ctx); err != nil {
			return result, errors.Wrap(err, "waiting for rate limiter")
		}
		entities, err := getEntities(ctx, client, batch, cfg)
		if err != nil {
			return result, errors.Wrap(err, "fetching entities")
		}
		for _, id := range batch {
			e, ok := entities[id]
			if !ok || e.IsMissing() {
				result.Missing = append(result.Missing, id)
				fmt.Fprintf(w, "missing: %s\n", id)
				continue
			}
			if e.ID != id {
				fmt.Fprintf(w, "fetched: %s (redirected to %s)\n", id, e.ID)
			} else {
				fmt.Fprintf(w, "fetched: %s\n", id)
			}
			result.Fetched++
			result.Entities = append(result.Entities, e)
		}
		logger.Debugw("fetched batch", logger.FieldBatchSize, len(batch), logger.FieldCount, result.Fetched)
	}

	fmt.Fprintf(w, "\nFetch summary: %d fetched, %d missing (total: %d)\n",
		result.Fetched, len(result.Missing), result.Total())
	return result, nil
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type getEntitiesResponse struct {
	Entities types.JSONMap[types.Entity] `json:"entities"`
	Error    *apiError                   `json:"error"`
}

func entitiesURL(batch []string, cfg types.FetchConfig) string {
	base := cfg.APIURL
	if base == "" {
		base = DefaultAPIURL
	}
	params := url.Values{
		"action": {"wbgetentities"},
		"ids":    {strings.Join(batch, "|")},
		"format": {"json"},
	}
	if len(cfg.Languages) > 0 {
		params.Set("languages", strings.Join(cfg.Languages, "|"))
	}
	if len(cfg.Props) > 0 {
		params.Set("props", strings.Join(cfg.Props, "|"))
	}
	return base + "?" + params.Encode()
}

// getEntities runs one wbgetentities request and returns the entities keyed
// by the id they were requested under.
func getEntities(ctx context.Context, client *http.Client, batch []string, cfg types.FetchConfig) (map[string]types.Entity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, entitiesURL(batch, cfg), nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating request")
	}
	setHeaders(req, cfg.HTTPConfig, cfg.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := httputil.DoWithRetry(ctx, client, req, cfg.MaxRetries)
	if err != nil {
		return nil, errors.Wrap(err, "wbgetentities request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("wbgetentities returned HTTP %d", resp.StatusCode)
	}

	var body getEntitiesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Wrap(err, "parsing wbgetentities response")
	}
	if body.Error != nil {
		err := errors.Mark(errors.Newf("%s: %s", body.Error.Code, body.Error.Info), ErrAPI)
		if body.Error.Code == "no-such-entity" {
			err = errors.WithHint(err, "a deleted entity in the batch fails the whole request; retry without it")
		}
		return nil, err
	}
	return map[string]types.Entity(body.Entities), nil
}

func setHeaders(req *http.Request, cfg types.HTTPConfig, token string) {
	agent := cfg.UserAgent
	if agent == "" {
		agent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", agent)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
