package bookqa

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/bookqa/mock_client.go -package=mock_bookqa

// Client answers a free-text question about the book.
// Implementations resolve or reject exactly once per call and do not validate the question.
type Client interface {
	Ask(ctx context.Context, question string) (QuestionResponse, error)
}

// QuestionRequest is what a caller sends to the answering service
type QuestionRequest struct {
	Question string `json:"question"`
}

// QuestionResponse holds a single answer. It is never mutated after creation.
type QuestionResponse struct {
	Answer string `json:"answer"`
}

// APIError is the only error shape the answering service reports.
// Status is zero when the failure carries no status code.
type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"status,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}
