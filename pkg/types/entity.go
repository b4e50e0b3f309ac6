// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for wbclaims: the Wikibase
// entity JSON model as served by the wbgetentities API and the entity dumps,
// the simplified output model, and stage configuration.
package types

import "encoding/json"

// EntityType is the "type" field of an entity or of an entity reference.
type EntityType string

const (
	EntityItem         EntityType = "item"
	EntityProperty     EntityType = "property"
	EntityLexeme       EntityType = "lexeme"
	EntityForm         EntityType = "form"
	EntitySense        EntityType = "sense"
	EntityMediaInfo    EntityType = "mediainfo"
	EntityEntitySchema EntityType = "entity-schema"
)

// SnakType tells whether a snak carries a value, an unknown value, or no value.
type SnakType string

const (
	SnakValue     SnakType = "value"
	SnakSomeValue SnakType = "somevalue"
	SnakNoValue   SnakType = "novalue"
)

// Rank is the priority marker of a statement.
type Rank string

const (
	RankPreferred  Rank = "preferred"
	RankNormal     Rank = "normal"
	RankDeprecated Rank = "deprecated"
)

// Datatype is the property datatype that decides how a snak value is read.
type Datatype string

const (
	DatatypeWikibaseItem     Datatype = "wikibase-item"
	DatatypeWikibaseProperty Datatype = "wikibase-property"
	DatatypeWikibaseLexeme   Datatype = "wikibase-lexeme"
	DatatypeWikibaseForm     Datatype = "wikibase-form"
	DatatypeWikibaseSense    Datatype = "wikibase-sense"
	DatatypeWikibaseEntityID Datatype = "wikibase-entityid"
	DatatypeString           Datatype = "string"
	DatatypeMonolingualText  Datatype = "monolingualtext"
	DatatypeQuantity         Datatype = "quantity"
	DatatypeTime             Datatype = "time"
	DatatypeGlobeCoordinate  Datatype = "globe-coordinate"
	DatatypeURL              Datatype = "url"
	DatatypeExternalID       Datatype = "external-id"
	DatatypeCommonsMedia     Datatype = "commonsMedia"
	DatatypeMath             Datatype = "math"
	DatatypeMusicalNotation  Datatype = "musical-notation"
	DatatypeGeoShape         Datatype = "geo-shape"
	DatatypeTabularData      Datatype = "tabular-data"
	DatatypeEntitySchema     Datatype = "entity-schema"
)

// DataValue is the typed payload of a value snak. Value is kept raw and
// decoded by the reducer that knows the datatype.
type DataValue struct {
	// Type is the value type ("wikibase-entityid", "time", "quantity", ...).
	Type string `json:"type"`

	// Value is the undecoded value object or string.
	Value json.RawMessage `json:"value"`
}

// Snak is the value-bearing part of a statement, qualifier or reference.
type Snak struct {
	SnakType  SnakType   `json:"snaktype"`
	Property  string     `json:"property"`
	Hash      string     `json:"hash,omitempty"`
	Datatype  Datatype   `json:"datatype,omitempty"`
	DataValue *DataValue `json:"datavalue,omitempty"`
}

// SnakMap groups snaks by property id in source order.
type SnakMap = Ordered[[]Snak]

// Reference is one source attached to a statement.
type Reference struct {
	Hash       string   `json:"hash,omitempty"`
	Snaks      SnakMap  `json:"snaks,omitzero"`
	SnaksOrder []string `json:"snaks-order,omitempty"`
}

// Statement is one claim about a property on an entity.
type Statement struct {
	// ID is the statement GUID ("Q42$F078E5B3-F9A8-480E-B7AC-D97778CBBEF9").
	ID string `json:"id,omitempty"`

	// Type is always "statement" in current dumps; older ones used "claim".
	Type string `json:"type,omitempty"`

	Rank     Rank `json:"rank,omitempty"`
	MainSnak Snak `json:"mainsnak"`

	Qualifiers      SnakMap     `json:"qualifiers,omitzero"`
	QualifiersOrder []string    `json:"qualifiers-order,omitempty"`
	References      []Reference `json:"references,omitempty"`
}

// Claims maps property ids to their statements in source order.
type Claims = Ordered[[]Statement]

// Term is a language-tagged string (label, description, alias, lemma, gloss).
type Term struct {
	Language string `json:"language"`
	Value    string `json:"value"`
}

// Sitelink links an item to a page on a client wiki.
type Sitelink struct {
	Site   string   `json:"site"`
	Title  string   `json:"title"`
	Badges []string `json:"badges,omitempty"`
	URL    string   `json:"url,omitempty"`
}

// Redirect records the redirect an entity was resolved through.
type Redirect struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Form is a lexeme form.
type Form struct {
	ID                  string        `json:"id"`
	Representations     JSONMap[Term] `json:"representations,omitempty"`
	GrammaticalFeatures []string      `json:"grammaticalFeatures,omitempty"`
	Claims              Claims        `json:"claims,omitzero"`
}

// Sense is a lexeme sense.
type Sense struct {
	ID      string        `json:"id"`
	Glosses JSONMap[Term] `json:"glosses,omitempty"`
	Claims  Claims        `json:"claims,omitzero"`
}

// Entity is a Wikibase entity in the public JSON schema. Items, properties,
// lexemes and media-info entities share the struct; fields that do not apply
// to a given type stay empty.
type Entity struct {
	ID       string     `json:"id"`
	Type     EntityType `json:"type"`
	Datatype Datatype   `json:"datatype,omitempty"`

	PageID    int       `json:"pageid,omitempty"`
	NS        int       `json:"ns,omitempty"`
	Title     string    `json:"title,omitempty"`
	LastRevID int64     `json:"lastrevid,omitempty"`
	Modified  string    `json:"modified,omitempty"`
	Redirects *Redirect `json:"redirects,omitempty"`

	// Missing is set by wbgetentities when the requested id does not exist.
	Missing *string `json:"missing,omitempty"`

	Labels       JSONMap[Term]     `json:"labels,omitempty"`
	Descriptions JSONMap[Term]     `json:"descriptions,omitempty"`
	Aliases      JSONMap[[]Term]   `json:"aliases,omitempty"`
	Claims       Claims            `json:"claims,omitzero"`
	Sitelinks    JSONMap[Sitelink] `json:"sitelinks,omitempty"`

	// Statements holds the claims of media-info entities, which use this key.
	Statements Claims `json:"statements,omitzero"`

	Lemmas          JSONMap[Term] `json:"lemmas,omitempty"`
	LexicalCategory string        `json:"lexicalCategory,omitempty"`
	Language        string        `json:"language,omitempty"`
	Forms           []Form        `json:"forms,omitempty"`
	Senses          []Sense       `json:"senses,omitempty"`
}

// IsMissing reports whether the API flagged the entity as nonexistent.
func (e *Entity) IsMissing() bool {
	return e.Missing != nil
}

// AllClaims returns the entity's claims, falling back to the media-info
// "statements" key.
func (e *Entity) AllClaims() Claims {
	if e.Claims.Len() == 0 && e.Statements.Len() > 0 {
		return e.Statements
	}
	return e.Claims
}
