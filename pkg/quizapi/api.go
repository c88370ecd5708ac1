package quizapi

import (
	"context"
	"errors"
	"fmt"

	"quizedit/internal/quiz"
)

// API persists quiz documents. Quizzes are addressed by name.
type API interface {
	Fetch(ctx context.Context, name string) (quiz.Document, error)
	Create(ctx context.Context, doc quiz.Document) error
	Update(ctx context.Context, name string, doc quiz.Document) error
}

// Route templates of the persistence API.
const (
	CollectionPath = "/api/quizzes"
	ListingRoute   = "/quizzes"
)

// HTTPError is a non-2xx response from the persistence API.
type HTTPError struct {
	Status int
	Reason string
}

func (err *HTTPError) Error() string {
	if err.Reason != "" {
		return fmt.Sprintf("http %d: %s", err.Status, err.Reason)
	}
	return fmt.Sprintf("http %d", err.Status)
}

// ServerReason returns the server supplied reason carried by err, if any.
func ServerReason(err error) string {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Reason
	}
	return ""
}
