// Package common defines shared constants and sentinel errors used across
// the identity service. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Uniqueness violations surfaced by the credential store. The unique
	// indexes in Postgres remain the source of truth under concurrent
	// registrations; these sentinels cover both the pre-check and the
	// constraint-violation path.
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrDuplicateStudentID = errors.New("student id already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal         = errors.New("internal error")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
