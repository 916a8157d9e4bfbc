package bookqa

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const (
	DefaultDelay     = time.Second
	DefaultBookTitle = "The Way of Kings"
)

const stubAnswerFormat = `This is a stub response to your question: "%s".

In the real implementation, this would send your question along with the full text of "%s" to an answering service for a generated answer.

For now, this is just a placeholder to exercise the form. The service integration will be implemented later.`

// StubOptions selects and configures the placeholder client.
// A non-empty FailureMessage makes every call reject.
type StubOptions struct {
	BookTitle      string
	Delay          time.Duration
	FailureMessage string
	FailureStatus  int
}

// NewClient returns a StubClient, or a FailingClient when a failure is configured
func NewClient(options StubOptions) Client {
	if options.FailureMessage != "" {
		return &FailingClient{
			Delay: options.Delay,
			Err: &APIError{
				Message: options.FailureMessage,
				Status:  options.FailureStatus,
			},
		}
	}
	return NewStubClient(options.BookTitle, options.Delay)
}

// StubClient fabricates an answer after a fixed delay instead of contacting a service.
type StubClient struct {
	bookTitle string
	delay     time.Duration
}

func NewStubClient(bookTitle string, delay time.Duration) *StubClient {
	if bookTitle == "" {
		bookTitle = DefaultBookTitle
	}
	return &StubClient{
		bookTitle: bookTitle,
		delay:     delay,
	}
}

// Ask implements the Client interface
func (client *StubClient) Ask(ctx context.Context, question string) (QuestionResponse, error) {
	if err := wait(ctx, client.delay); err != nil {
		return QuestionResponse{}, err
	}
	slog.Default().Debug("stub answer generated", "question", question)
	return QuestionResponse{
		Answer: fmt.Sprintf(stubAnswerFormat, question, client.bookTitle),
	}, nil
}

// FailingClient rejects every question with Err after Delay.
type FailingClient struct {
	Delay time.Duration
	Err   error
}

// Ask implements the Client interface
func (client *FailingClient) Ask(ctx context.Context, question string) (QuestionResponse, error) {
	if err := wait(ctx, client.Delay); err != nil {
		return QuestionResponse{}, err
	}
	slog.Default().Debug("stub failure returned", "question", question, "error", client.Err)
	return QuestionResponse{}, client.Err
}

func wait(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
