package pkg

// AppError is the error shape handlers translate domain failures into before
// rendering them as JSON. Cause is kept for logging, never serialized.

type AppError struct {
	Code       string
	Message    string
	Cause      error
	HTTPStatus int
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Code + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Code + ": " + e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// HTTPError is the wire representation of an AppError.
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{Code: e.Code, Message: e.Message}
}

func NewDomainError(code, message string, cause error, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause, HTTPStatus: httpStatus}
}

func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}
