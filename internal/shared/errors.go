package shared

import "net/http"

// Kind sentinels for domain failures. Callers match with errors.Is while the
// message varies per call site.
var (
	// ErrNotFound indicates the referenced resource does not exist.
	ErrNotFound = &Error{status: http.StatusNotFound, msg: "not found"}
	// ErrForbidden indicates a missing identity, an insufficient role or an
	// ownership mismatch.
	ErrForbidden = &Error{status: http.StatusForbidden, msg: "access denied"}
	// ErrDuplicate indicates a unique-key conflict reported by the store.
	ErrDuplicate = &Error{status: http.StatusConflict, msg: "duplicate entry"}
)

// Error is a domain failure carrying a stable kind and a caller-facing
// message. Every policy operation fails with exactly one of the kinds above;
// storage failures stay outside this taxonomy.
type Error struct {
	kind   *Error
	status int
	msg    string
}

func (e *Error) Error() string { return e.msg }

// Status returns the HTTP status associated with the failure kind.
func (e *Error) Status() int {
	if e.kind != nil {
		return e.kind.status
	}
	return e.status
}

// Is matches an error against its kind sentinel.
func (e *Error) Is(target error) bool {
	if e == target {
		return true
	}
	return e.kind != nil && e.kind == target
}

// NotFound builds a resource-not-found failure with the given message.
func NotFound(msg string) error {
	return &Error{kind: ErrNotFound, msg: msg}
}

// Forbidden builds an access-denied failure with the given message.
func Forbidden(msg string) error {
	return &Error{kind: ErrForbidden, msg: msg}
}

// Duplicate builds a unique-key conflict failure with the given message.
func Duplicate(msg string) error {
	return &Error{kind: ErrDuplicate, msg: msg}
}
