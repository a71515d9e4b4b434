// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Error kinds for the pipeline. Callers discriminate with errors.Is;
// messages carry the specifics. Per prd001-storage R4, prd003-clustering R5.
var (
	// ErrNotFound reports a lookup for an id with no backing rows. An
	// empty canopy is not ErrNotFound; an unknown cluster id is.
	ErrNotFound = errors.New("not found")

	// ErrStorageUnavailable reports a storage transport or connection
	// failure. Not retried internally; fatal for whole-corpus runs.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrModelInvocation reports that the clustering model failed or
	// returned a malformed partition. The affected canopy is not committed.
	ErrModelInvocation = errors.New("model invocation failed")

	// ErrInvariantViolation reports corpus data that breaks a modeled
	// relation, e.g. a signature position matching no author on its paper.
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrSchemaViolation reports a stored row that cannot be decoded into
	// its typed record shape.
	ErrSchemaViolation = errors.New("schema violation")
)
