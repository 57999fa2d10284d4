package model

import "encoding/json"

// Envelope is the uniform response body of every backend endpoint.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Page mirrors the paged payload returned by the admin listings.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

func (p Page[T]) HasNext() bool { return p.Number+1 < p.TotalPages }
func (p Page[T]) HasPrev() bool { return p.Number > 0 }

type ErrorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlationId,omitempty"`
}
