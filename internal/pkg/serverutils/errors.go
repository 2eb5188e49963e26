// FILE: internal/pkg/serverutils/errors.go
package serverutils

import "net/http"

// ApiError carries an HTTP status alongside a safe, client-facing message.
// Services return these so the error middleware can map them without
// leaking internals.
type ApiError struct {
	Code    int
	Message string
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewBadRequestError(message string) *ApiError {
	return &ApiError{Code: http.StatusBadRequest, Message: message}
}

func NewNotFoundError(message string) *ApiError {
	return &ApiError{Code: http.StatusNotFound, Message: message}
}

func NewConflictError(message string) *ApiError {
	return &ApiError{Code: http.StatusConflict, Message: message}
}

func NewUnprocessableError(message string) *ApiError {
	return &ApiError{Code: http.StatusUnprocessableEntity, Message: message}
}
