package services

import "net/http"

// ServiceError represents a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func unauthorized() *ServiceError {
	return &ServiceError{StatusCode: http.StatusUnauthorized, Message: "Unauthorized"}
}

func badRequest(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusBadRequest, Message: msg}
}

func notFound(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusNotFound, Message: msg}
}

func conflict(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusConflict, Message: msg}
}

func internal(msg string, err error) *ServiceError {
	return &ServiceError{StatusCode: http.StatusInternalServerError, Message: msg, Err: err}
}

func unauthorizedMsg(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusUnauthorized, Message: msg}
}
