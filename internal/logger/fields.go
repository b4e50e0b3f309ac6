// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logger

// Standard field names for structured logging. Use these instead of raw
// strings.
const (
	FieldEntityID   = "entity_id"
	FieldProperty   = "property"
	FieldDatatype   = "datatype"
	FieldURL        = "url"
	FieldStatus     = "status"
	FieldAttempt    = "attempt"
	FieldDelay      = "delay"
	FieldCount      = "count"
	FieldBatchSize  = "batch_size"
	FieldPath       = "path"
	FieldError      = "error"
	FieldDurationMS = "duration_ms"
)
