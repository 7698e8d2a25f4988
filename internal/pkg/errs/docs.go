// Package errs provides the error types shared across the ordering service.
//
// Input validation errors follow one pattern: a sentinel variable
// (ErrValueIsRequired, ErrValueIsInvalid, ...), a struct carrying the offending
// parameter and an optional Cause, and Unwrap returning the sentinel so callers
// can classify with errors.Is.
//
// OrderError is the single error kind returned by order operations. Its Code
// (EMPTY_CART, RULE_VIOLATION, INSUFFICIENT_STOCK, INVALID_TRANSITION,
// INVALID_STATE, FORBIDDEN, NOT_FOUND) fixes the StatusCode the HTTP layer
// responds with.
package errs
