package clients

import (
	"errors"
	"net/http"
	"strings"
)

const defaultMessage = "an unknown error occurred"

var ErrUnauthorized = errors.New("unauthorized")

// APIError is the single normalized failure shape of every backend call.
type APIError struct {
	Status  int
	Message string
	// SessionCleared is set when a 401 from a non-public endpoint wiped
	// the stored sessions.
	SessionCleared bool
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// Message extracts the user-facing text from any error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return defaultMessage
}

// SessionCleared reports whether err tore down the stored sessions.
func SessionCleared(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.SessionCleared
}

func NotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// LoginRouteFor picks the login screen matching the area of currentPath.
func LoginRouteFor(currentPath string) string {
	if currentPath == "/admin" || strings.HasPrefix(currentPath, "/admin/") {
		return "/admin/login"
	}
	return "/login"
}
