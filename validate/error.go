// ABOUTME: Structured validation error type shared by all validators
// ABOUTME: Carries an error kind, the offending field, and a user-facing message
package validate

// Kind classifies why a draft was rejected. All kinds are recoverable by
// user correction; none are retried automatically.
type Kind string

const (
	Required            Kind = "required"
	TooLong             Kind = "too_long"
	InvalidFormat       Kind = "invalid_format"
	OutOfRange          Kind = "out_of_range"
	DuplicateValue      Kind = "duplicate_value"
	CrossFieldInvariant Kind = "cross_field_invariant"
)

// Error is the result of a failed validation. Message is shown to end
// users verbatim, so it stays short and field-specific.
type Error struct {
	Kind    Kind   `json:"kind"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func errRequired(field, message string) *Error {
	return &Error{Kind: Required, Field: field, Message: message}
}

func errTooLong(field, message string) *Error {
	return &Error{Kind: TooLong, Field: field, Message: message}
}

func errInvalidFormat(field, message string) *Error {
	return &Error{Kind: InvalidFormat, Field: field, Message: message}
}

func errOutOfRange(field, message string) *Error {
	return &Error{Kind: OutOfRange, Field: field, Message: message}
}

func errDuplicate(field, message string) *Error {
	return &Error{Kind: DuplicateValue, Field: field, Message: message}
}

func errCrossField(field, message string) *Error {
	return &Error{Kind: CrossFieldInvariant, Field: field, Message: message}
}

// AsError returns the *Error inside err, or nil if err is not a
// validation error.
func AsError(err error) *Error {
	if verr, ok := err.(*Error); ok {
		return verr
	}
	return nil
}
