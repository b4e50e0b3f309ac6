package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests. Wikimedia
	// APIs reject requests without a descriptive agent.
	UserAgent string `json:"user_agent" yaml:"user_agent"`

	// MaxRetries bounds retries on HTTP 429/503 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// FetchConfig holds settings for fetching entities from a Wikibase API.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIURL is the action API endpoint (default https://www.wikidata.org/w/api.php).
	APIURL string `json:"api_url" yaml:"api_url"`

	// Languages restricts terms to these language codes. Empty means all.
	Languages []string `json:"languages,omitempty" yaml:"languages,omitempty"`

	// Props selects entity parts (labels, descriptions, aliases, claims, sitelinks, info).
	// Empty means the API default.
	Props []string `json:"props,omitempty" yaml:"props,omitempty"`

	// BatchSize is the number of ids per wbgetentities request (max 50).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// RequestsPerSecond caps the request rate against the API. Zero means
	// no limit.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// Token is an optional OAuth bearer token, loaded from .secrets/.
	Token string `json:"-" yaml:"-"`
}

// DatatypesConfig holds settings for the datatype diff tool.
type DatatypesConfig struct {
	HTTPConfig `yaml:",inline"`

	// SPARQLEndpoint is queried for the list of property types when File is empty.
	SPARQLEndpoint string `json:"sparql_endpoint" yaml:"sparql_endpoint"`

	// File is a local JSON array of datatype URIs.
	File string `json:"file,omitempty" yaml:"file,omitempty"`
}

// TimeFormat selects how time values are rendered by the claim simplifier.
type TimeFormat string

const (
	TimeEpoch     TimeFormat = "epoch"
	TimeISO       TimeFormat = "iso"
	TimeSimpleDay TimeFormat = "simple-day"
)

// RankPolicy selects which statements of a property are kept.
type RankPolicy string

const (
	// RanksAll keeps every statement regardless of rank.
	RanksAll RankPolicy = "all"
	// RanksNonDeprecated drops deprecated statements.
	RanksNonDeprecated RankPolicy = "non-deprecated"
	// RanksTruthy keeps preferred statements when any exist, otherwise normal ones.
	RanksTruthy RankPolicy = "truthy"
)

// SimplifyConfig holds the claim simplification options.
type SimplifyConfig struct {
	// EntityPrefix is prepended as "<prefix>:" to entity ids in values.
	EntityPrefix string `json:"entity_prefix,omitempty" yaml:"entity_prefix,omitempty"`

	// PropertyPrefix is prepended as "<prefix>:" to property ids, both as
	// claim keys and as wikibase-property values.
	PropertyPrefix string `json:"property_prefix,omitempty" yaml:"property_prefix,omitempty"`

	// TimeFormat selects epoch milliseconds (default), ISO-8601 or simple day.
	TimeFormat TimeFormat `json:"time_format,omitempty" yaml:"time_format,omitempty"`

	// Ranks selects which statements are kept (default all).
	Ranks RankPolicy `json:"ranks,omitempty" yaml:"ranks,omitempty"`
}

// CacheConfig holds settings for the local entity cache.
type CacheConfig struct {
	// Dir holds entities.db and the export files.
	Dir string `json:"dir" yaml:"dir"`
}

// Config groups all stage configurations, mirroring wbclaims.yaml.
type Config struct {
	Fetch     FetchConfig     `json:"fetch" yaml:"fetch"`
	Simplify  SimplifyConfig  `json:"simplify" yaml:"simplify"`
	Cache     CacheConfig     `json:"cache" yaml:"cache"`
	Datatypes DatatypesConfig `json:"datatypes" yaml:"datatypes"`
}
