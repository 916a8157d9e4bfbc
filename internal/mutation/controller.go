// Package mutation turns a single asynchronous question into observable request state.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/at-ishikawa/bookcompanion/internal/bookqa"
)

// ErrPending is returned by Trigger while another question is in flight.
var ErrPending = errors.New("a question is already pending")

type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Snapshot is a read-only copy of the controller state.
// Data is set only when Succeeded and Err only when Failed.
type Snapshot struct {
	Status   Status
	Question string
	Data     *bookqa.QuestionResponse
	Err      error
}

func (s Snapshot) IsPending() bool {
	return s.Status == StatusPending
}

type Option func(*Controller)

// WithOnSuccess replaces the default success hook
func WithOnSuccess(fn func(question string, response bookqa.QuestionResponse)) Option {
	return func(c *Controller) {
		c.onSuccess = fn
	}
}

// WithOnError replaces the default error hook
func WithOnError(fn func(question string, err error)) Option {
	return func(c *Controller) {
		c.onError = fn
	}
}

// Controller owns the request state for one form. At most one question is in flight.
type Controller struct {
	client bookqa.Client

	mu    sync.Mutex
	state Snapshot

	onSuccess func(question string, response bookqa.QuestionResponse)
	onError   func(question string, err error)
}

func NewController(client bookqa.Client, options ...Option) *Controller {
	c := &Controller{
		client: client,
		onSuccess: func(question string, response bookqa.QuestionResponse) {
			slog.Default().Info("Question answered successfully",
				"question", question,
				"answer", response.Answer)
		},
		onError: func(question string, err error) {
			slog.Default().Error("Failed to get answer",
				"question", question,
				"error", err)
		},
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Snapshot returns the current state
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Trigger moves the controller to Pending and asks the client in the background.
// The returned channel receives the settled snapshot once and is then closed.
// Any answer or error from an earlier question is cleared.
func (c *Controller) Trigger(ctx context.Context, question string) (<-chan Snapshot, error) {
	c.mu.Lock()
	if c.state.IsPending() {
		c.mu.Unlock()
		return nil, ErrPending
	}
	c.state = Snapshot{
		Status:   StatusPending,
		Question: question,
	}
	c.mu.Unlock()

	slog.Default().Debug("question triggered", "question", question)

	done := make(chan Snapshot, 1)
	go func() {
		defer close(done)
		response, err := c.client.Ask(ctx, question)
		done <- c.settle(question, response, err)
	}()
	return done, nil
}

// Mutate triggers a question and waits for it to settle
func (c *Controller) Mutate(ctx context.Context, question string) (bookqa.QuestionResponse, error) {
	done, err := c.Trigger(ctx, question)
	if err != nil {
		return bookqa.QuestionResponse{}, err
	}

	settled := <-done
	if settled.Err != nil {
		return bookqa.QuestionResponse{}, settled.Err
	}
	return *settled.Data, nil
}

func (c *Controller) settle(question string, response bookqa.QuestionResponse, err error) Snapshot {
	c.mu.Lock()
	if err != nil {
		c.state = Snapshot{
			Status:   StatusFailed,
			Question: question,
			Err:      err,
		}
	} else {
		c.state = Snapshot{
			Status:   StatusSucceeded,
			Question: question,
			Data:     &response,
		}
	}
	settled := c.state
	c.mu.Unlock()

	if err != nil {
		c.onError(question, err)
	} else {
		c.onSuccess(question, response)
	}
	return settled
}
