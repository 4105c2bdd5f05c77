package domain

import "fmt"

// Error types for consistent error handling across the service.

// ErrInvalidToken indicates the Up API rejected the access token (HTTP 401).
// Surfaced to the user as "invalid token"; every other upstream failure is
// ErrUpstream.
type ErrInvalidToken struct{}

func (e *ErrInvalidToken) Error() string {
	return "invalid token"
}

// ErrUpstream indicates a non-2xx, non-401 response from the Up API.
type ErrUpstream struct {
	Operation string
	Status    int
	Err       error
}

func (e *ErrUpstream) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("up api error [%s]: %v", e.Operation, e.Err)
	}
	return fmt.Sprintf("up api error [%s]: status %d", e.Operation, e.Status)
}

func (e *ErrUpstream) Unwrap() error {
	return e.Err
}

// ErrValidation indicates a validation error (bad input).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}

// ErrSessionExpired indicates a missing, expired or tampered session token.
type ErrSessionExpired struct {
	Reason string
}

func (e *ErrSessionExpired) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("session invalid: %s", e.Reason)
	}
	return "session invalid"
}

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}
