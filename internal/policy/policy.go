// Package policy wraps an answering client with the request-level retry settings.
package policy

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/at-ishikawa/bookcompanion/internal/bookqa"
	"github.com/avast/retry-go"
)

const (
	DefaultQueryRetry     = 1
	DefaultQueryStaleTime = 5 * time.Minute
	DefaultRetryDelay     = 200 * time.Millisecond
)

// Policy is the per-kind request setting.
// StaleTime is how long fetched data counts as fresh.
type Policy struct {
	Retry      uint
	RetryDelay time.Duration
	StaleTime  time.Duration
}

// Options is built once at startup and passed to whatever wraps a client.
type Options struct {
	Queries   Policy
	Mutations Policy
}

// DefaultOptions retries queries once with a five minute freshness window; mutations never retry.
func DefaultOptions() Options {
	return Options{
		Queries: Policy{
			Retry:      DefaultQueryRetry,
			RetryDelay: DefaultRetryDelay,
			StaleTime:  DefaultQueryStaleTime,
		},
		Mutations: Policy{
			RetryDelay: DefaultRetryDelay,
		},
	}
}

type retryingClient struct {
	client bookqa.Client
	policy Policy
}

// Wrap returns client as is when p allows no retry
func Wrap(client bookqa.Client, p Policy) bookqa.Client {
	if p.Retry == 0 {
		return client
	}
	return &retryingClient{
		client: client,
		policy: p,
	}
}

// Ask implements the bookqa.Client interface
func (client *retryingClient) Ask(ctx context.Context, question string) (bookqa.QuestionResponse, error) {
	var result bookqa.QuestionResponse
	if err := retry.Do(
		func() error {
			response, err := client.client.Ask(ctx, question)
			if err != nil {
				return err
			}
			result = response
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.policy.Retry+1),
		retry.Delay(client.policy.RetryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryableError),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Info("Retrying question",
				"attempt", n+1,
				"question", question,
				"lastError", err)
		}),
	); err != nil {
		return bookqa.QuestionResponse{}, err
	}
	return result, nil
}

// isRetryableError rejects client errors other than rate limiting
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *bookqa.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusTooManyRequests {
			return true
		}
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return false
		}
	}
	return true
}
