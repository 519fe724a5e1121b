// Package errors defines the domain error taxonomy shared by the wallet
// services and the HTTP boundary.
package errors

// Error kind codes. Handlers map these to HTTP statuses.
const (
	CodeInvalidInput        = "INVALID_INPUT"
	CodeInvalidAmount       = "INVALID_AMOUNT"
	CodeInsufficientFunds   = "INSUFFICIENT_FUNDS"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInvalidState        = "INVALID_STATE"
	CodeNotFound            = "NOT_FOUND"
	CodePersistenceConflict = "PERSISTENCE_CONFLICT"
)

// DomainError is a recoverable error surfaced to the end user or admin
// with a stable code and a human-readable message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is lets wrapped domain errors compare with errors.Is against the
// sentinels in this package.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}
