// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ids recognizes the lexical shape of Wikibase identifiers: entity
// ids of every kind, statement GUIDs, revision ids, content hashes and
// entity page titles. Predicates never fail; the strict extractors return
// ErrInvalidIdentifier or ErrInvalidGUID.
package ids

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"

	"github.com/pdiddy/wbclaims/pkg/types"
)

var (
	// ErrInvalidIdentifier marks an id that a strict extractor cannot read.
	ErrInvalidIdentifier = errors.New("invalid entity id")

	// ErrInvalidGUID marks a statement GUID that does not split into an entity id and a uuid.
	ErrInvalidGUID = errors.New("invalid guid")
)

var (
	numericIDPattern    = regexp.MustCompile(`^[1-9][0-9]*$`)
	entityIDPattern     = regexp.MustCompile(`^((Q|P|L|M)[1-9][0-9]*|L[1-9][0-9]*-(F|S)[1-9][0-9]*)$`)
	nonNestedPattern    = regexp.MustCompile(`^(Q|P|L)[1-9][0-9]*$`)
	itemIDPattern       = regexp.MustCompile(`^Q[1-9][0-9]*$`)
	propertyIDPattern   = regexp.MustCompile(`^P[1-9][0-9]*$`)
	lexemeIDPattern     = regexp.MustCompile(`^L[1-9][0-9]*$`)
	formIDPattern       = regexp.MustCompile(`^L[1-9][0-9]*-F[1-9][0-9]*$`)
	senseIDPattern      = regexp.MustCompile(`^L[1-9][0-9]*-S[1-9][0-9]*$`)
	entitySchemaPattern = regexp.MustCompile(`^E[1-9][0-9]*$`)
	mediaInfoIDPattern  = regexp.MustCompile(`^M[1-9][0-9]*$`)
	guidEntityPattern   = regexp.MustCompile(`(?i)^((Q|P|L)[1-9][0-9]*|L[1-9][0-9]*-(F|S)[1-9][0-9]*)$`)
	hashPattern         = regexp.MustCompile(`^[0-9a-f]{40}$`)
	revisionIDPattern   = regexp.MustCompile(`^\d+$`)
	guidSeparators      = regexp.MustCompile(`[$-]`)
)

// IsNumericID reports whether id is a positive integer without leading zeros.
func IsNumericID(id string) bool { return numericIDPattern.MatchString(id) }

// IsEntityID reports whether id is an item, property, lexeme, media-info,
// form or sense id.
func IsEntityID(id string) bool { return entityIDPattern.MatchString(id) }

func IsItemID(id string) bool         { return itemIDPattern.MatchString(id) }
func IsPropertyID(id string) bool     { return propertyIDPattern.MatchString(id) }
func IsLexemeID(id string) bool       { return lexemeIDPattern.MatchString(id) }
func IsFormID(id string) bool         { return formIDPattern.MatchString(id) }
func IsSenseID(id string) bool        { return senseIDPattern.MatchString(id) }
func IsEntitySchemaID(id string) bool { return entitySchemaPattern.MatchString(id) }
func IsMediaInfoID(id string) bool    { return mediaInfoIDPattern.MatchString(id) }

// IsHash reports whether hash is a 40 character lowercase hex digest, the
// format of snak and reference hashes.
func IsHash(hash string) bool { return hashPattern.MatchString(hash) }

// IsRevisionID reports whether id is a revision number.
func IsRevisionID(id string) bool { return revisionIDPattern.MatchString(id) }

// IsGUID reports whether guid is "<entityId>$<uuid>". The entity part is
// matched case-insensitively and the uuid must use the canonical 8-4-4-4-12 form.
func IsGUID(guid string) bool {
	entityID, rest, found := strings.Cut(guid, "$")
	if !found || !guidEntityPattern.MatchString(entityID) {
		return false
	}
	return len(rest) == 36 && uuid.Validate(rest) == nil
}

// IsPropertyClaimsID reports whether id is "<entityId>#<propertyId>".
// Segments after a second "#" are ignored.
func IsPropertyClaimsID(id string) bool {
	entityID, rest, found := strings.Cut(id, "#")
	propertyID, _, _ := strings.Cut(rest, "#")
	return found && IsEntityID(entityID) && IsPropertyID(propertyID)
}

var idTestByNamespace = map[string]func(string) bool{
	"Item":     IsItemID,
	"Property": IsPropertyID,
	"Lexeme":   IsLexemeID,
}

// IsEntityPageTitle reports whether title names an entity page:
// "Item:Q1", "Property:P1", "Lexeme:L1", or a bare item id. Segments after
// a second colon are ignored.
func IsEntityPageTitle(title string) bool {
	namespace, rest, _ := strings.Cut(title, ":")
	id, _, _ := strings.Cut(rest, ":")
	if namespace != "" && id != "" {
		test, ok := idTestByNamespace[namespace]
		return ok && test(id)
	}
	return IsItemID(namespace)
}

// Kind returns the entity type an id designates, or false when id is not an
// entity or entity-schema id.
func Kind(id string) (types.EntityType, bool) {
	switch {
	case IsItemID(id):
		return types.EntityItem, true
	case IsPropertyID(id):
		return types.EntityProperty, true
	case IsLexemeID(id):
		return types.EntityLexeme, true
	case IsFormID(id):
		return types.EntityForm, true
	case IsSenseID(id):
		return types.EntitySense, true
	case IsMediaInfoID(id):
		return types.EntityMediaInfo, true
	case IsEntitySchemaID(id):
		return types.EntityEntitySchema, true
	}
	return "", false
}

// NumericID strips the prefix letter from an item, property or lexeme id.
// Form and sense ids have no single numeric part and are rejected.
func NumericID(id string) (string, error) {
	if !nonNestedPattern.MatchString(id) {
		return "", errors.Mark(errors.Newf("invalid entity id: %s", id), ErrInvalidIdentifier)
	}
	return id[1:], nil
}

// EntityIDFromGUID returns the id of the entity a statement GUID belongs to.
// Both "Q520$BCA8D9DE-..." and the shell-friendly "P6216-a7fd6230-..." forms
// are accepted; the result is uppercased.
func EntityIDFromGUID(guid string) (string, error) {
	parts := guidSeparators.Split(guid, -1)
	switch len(parts) {
	case 6:
		// q520$BCA8D9DE-B467-473B-943C-6FD0C5B3D02C
		return strings.ToUpper(parts[0]), nil
	case 7:
		// L525-S1$66D20252-8CEC-4DB1-8B00-D713CFF42E48
		return strings.ToUpper(parts[0] + "-" + parts[1]), nil
	default:
		return "", errors.Mark(errors.Newf("invalid guid: %s", guid), ErrInvalidGUID)
	}
}
