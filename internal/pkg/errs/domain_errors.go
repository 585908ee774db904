package errs

// Error taxonomy shared by usecases and handlers. Specific errors are marked
// with one of these so callers can branch on the category.
var (
	ErrNotFound          = New("not found")
	ErrValidation        = New("validation error")
	ErrConflict          = New("conflict")
	ErrInvalidTransition = New("invalid transition")
	ErrDuplicateReview   = New("duplicate review")
)
