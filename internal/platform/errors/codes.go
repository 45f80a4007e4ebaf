// Package errors provides structured error handling with machine-readable codes.
package errors

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Configuration errors
	CodeConfigurationCredentialMissing Code = "CONFIGURATION_CREDENTIAL_MISSING"
	CodeConfigurationCredentialInvalid Code = "CONFIGURATION_CREDENTIAL_INVALID"

	// Upstream (fitness service) errors
	CodeUpstreamRequestFailed   Code = "UPSTREAM_REQUEST_FAILED"
	CodeUpstreamResponseInvalid Code = "UPSTREAM_RESPONSE_INVALID"

	// Ledger validation errors
	CodeMealDescriptionEmpty Code = "MEAL_DESCRIPTION_EMPTY"
	CodeDateInvalid          Code = "DATE_INVALID"

	// Storage errors
	CodeStoreFailure Code = "STORE_FAILURE"
)
