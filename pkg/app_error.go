package pkg

import "fmt"

// AppError is the error shape returned by HTTP handlers.
//
// Code is machine readable (e.g. GATEWAY_NO_URL), Message is for humans and
// HTTPStatus is the response status the handler should use.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
	Details    any
}

// HTTPError is the JSON body rendered for an AppError.
type HTTPError struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func NewDomainError(code, message string, err error, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, Err: err, HTTPStatus: httpStatus}
}

func NewDomainErrorSimple(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetails returns a copy carrying diagnostic details for the response body.
func (e *AppError) WithDetails(details any) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// ToHTTPError never exposes the wrapped error; only Details are rendered.
func (e *AppError) ToHTTPError() HTTPError {
	return HTTPError{
		OK:      false,
		Error:   e.Code,
		Message: e.Message,
		Details: e.Details,
	}
}
