// Package testutil provides shared test helpers for creating config files.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// ConfigOption configures optional fields when creating a config fixture.
type ConfigOption func(*configFixture)

type configFixture struct {
	delay          string
	sampleQuestion string
	failureMessage string
	failureStatus  int
}

// WithDelay sets client.delay, e.g. "10ms"
func WithDelay(delay string) ConfigOption {
	return func(c *configFixture) {
		c.delay = delay
	}
}

func WithSampleQuestion(question string) ConfigOption {
	return func(c *configFixture) {
		c.sampleQuestion = question
	}
}

// WithFailure makes the stub client reject every question
func WithFailure(message string, status int) ConfigOption {
	return func(c *configFixture) {
		c.failureMessage = message
		c.failureStatus = status
	}
}

// SetupTestConfig writes a config file with no client delay and no retry backoff.
// Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string, opts ...ConfigOption) string {
	t.Helper()

	fixture := configFixture{
		delay:          "0s",
		sampleQuestion: "Who is Kaladin?",
	}
	for _, opt := range opts {
		opt(&fixture)
	}

	configContent := fmt.Sprintf(`book:
  title: The Way of Kings
  sample_question: %q
client:
  delay: %s
  failure:
    message: %q
    status: %d
requests:
  queries:
    retry: 1
    retry_delay: 1ms
  mutations:
    retry: 0
    retry_delay: 1ms
`,
		fixture.sampleQuestion,
		fixture.delay,
		fixture.failureMessage,
		fixture.failureStatus,
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}
