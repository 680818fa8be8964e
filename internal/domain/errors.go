package domain

// Category classifies a failure so boundary layers can decide how to
// surface it without inspecting message text.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryValidation
	CategoryAuth
	CategoryNotFound
	CategoryConflict
	CategoryConnection
)

// Error is a categorized, user-presentable failure. The message is safe to
// return to the caller verbatim.
type Error struct {
	Category Category
	Message  string
	cause    error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

func ValidationError(message string) *Error {
	return &Error{Category: CategoryValidation, Message: message}
}

func AuthError(message string) *Error {
	return &Error{Category: CategoryAuth, Message: message}
}

func NotFoundError(message string) *Error {
	return &Error{Category: CategoryNotFound, Message: message}
}

func ConflictError(message string) *Error {
	return &Error{Category: CategoryConflict, Message: message}
}

// ConnectionError wraps database / pool failures. The message shown to the
// user stays generic; the cause is kept for logs.
func ConnectionError(message string, cause error) *Error {
	return &Error{Category: CategoryConnection, Message: message, cause: cause}
}

// CategoryOf walks the wrap chain and returns the category of the first
// *Error found, or CategoryUnknown.
func CategoryOf(err error) Category {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Category
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return CategoryUnknown
		}
		err = u.Unwrap()
	}
	return CategoryUnknown
}
