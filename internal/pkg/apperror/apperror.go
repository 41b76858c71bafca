package apperror

// AppError carries an HTTP status code and a user-facing message alongside an optional cause.
type AppError struct {
	Code    int    // HTTP status code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // Underlying error, never exposed to the client
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates an AppError around an existing error.
// Wrapping a sentinel keeps errors.Is matching while replacing the message.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
