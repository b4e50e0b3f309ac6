// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SimplifiedClaims maps (optionally prefixed) property ids to simplified
// values, in source order. Values are string, float64, int64 or [2]float64
// depending on the datatype.
type SimplifiedClaims = Ordered[[]any]

// SimplifiedStatement is the rich form of one statement, kept when the
// caller asks for ids, ranks, qualifiers and references.
type SimplifiedStatement struct {
	ID         string             `json:"id,omitempty" yaml:"id,omitempty"`
	Rank       Rank               `json:"rank,omitempty" yaml:"rank,omitempty"`
	Value      any                `json:"value" yaml:"value"`
	Qualifiers SimplifiedClaims   `json:"qualifiers,omitzero" yaml:"qualifiers,omitempty"`
	References []SimplifiedClaims `json:"references,omitempty" yaml:"references,omitempty"`
}

// SimplifiedForm is a lexeme form with terms and claims flattened.
type SimplifiedForm struct {
	ID                  string            `json:"id" yaml:"id"`
	Representations     map[string]string `json:"representations,omitempty" yaml:"representations,omitempty"`
	GrammaticalFeatures []string          `json:"grammaticalFeatures,omitempty" yaml:"grammaticalFeatures,omitempty"`
	Claims              SimplifiedClaims  `json:"claims,omitzero" yaml:"claims,omitempty"`
}

// SimplifiedSense is a lexeme sense with terms and claims flattened.
type SimplifiedSense struct {
	ID      string            `json:"id" yaml:"id"`
	Glosses map[string]string `json:"glosses,omitempty" yaml:"glosses,omitempty"`
	Claims  SimplifiedClaims  `json:"claims,omitzero" yaml:"claims,omitempty"`
}

// SimplifiedEntity is an entity reduced to directly usable values.
type SimplifiedEntity struct {
	ID       string     `json:"id" yaml:"id"`
	Type     EntityType `json:"type" yaml:"type"`
	Datatype Datatype   `json:"datatype,omitempty" yaml:"datatype,omitempty"`
	Modified string     `json:"modified,omitempty" yaml:"modified,omitempty"`

	Labels       map[string]string   `json:"labels,omitempty" yaml:"labels,omitempty"`
	Descriptions map[string]string   `json:"descriptions,omitempty" yaml:"descriptions,omitempty"`
	Aliases      map[string][]string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Claims       SimplifiedClaims    `json:"claims,omitzero" yaml:"claims,omitempty"`
	Sitelinks    map[string]string   `json:"sitelinks,omitempty" yaml:"sitelinks,omitempty"`

	Lemmas          map[string]string `json:"lemmas,omitempty" yaml:"lemmas,omitempty"`
	LexicalCategory string            `json:"lexicalCategory,omitempty" yaml:"lexicalCategory,omitempty"`
	Language        string            `json:"language,omitempty" yaml:"language,omitempty"`
	Forms           []SimplifiedForm  `json:"forms,omitempty" yaml:"forms,omitempty"`
	Senses          []SimplifiedSense `json:"senses,omitempty" yaml:"senses,omitempty"`
}
