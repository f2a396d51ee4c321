package sentinel

import "errors"

// Sentinel store errors. Stores return them wrapped so services can translate
// them into domain errors exactly once.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrSchemaMissing = errors.New("schema missing")
)
