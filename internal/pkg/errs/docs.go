// Package errs holds the typed errors shared by the domain, the use cases and
// the adapters.
//
// Every type unwraps to a sentinel, so callers can use errors.Is(err, ErrX)
// or errors.As to get at the details:
//
//	ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange  validation
//	ErrObjectNotFound                                              lookups
//	ErrAccessDenied                                                ownership checks
//	ErrStateIsInvalid                                              lifecycle violations
//
// Constructors come in pairs, with and without a cause. Messages are
// sanitized so IDs from requests cannot inject newlines into logs.
package errs
