package main

import (
	"fmt"
	"time"

	"github.com/at-ishikawa/bookcompanion/internal/bookqa"
	"github.com/at-ishikawa/bookcompanion/internal/config"
	"github.com/at-ishikawa/bookcompanion/internal/mutation"
	"github.com/at-ishikawa/bookcompanion/internal/policy"
	"github.com/spf13/pflag"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

// clientOverrides are command line flags that take precedence over client config
type clientOverrides struct {
	delay    time.Duration
	failWith string
}

func (o *clientOverrides) register(flags *pflag.FlagSet) {
	flags.DurationVar(&o.delay, "delay", 0, "simulated answer delay (overrides client.delay)")
	flags.StringVar(&o.failWith, "fail-with", "", "make every question fail with this message")
}

func (o clientOverrides) apply(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("delay") {
		cfg.Client.Delay = o.delay
	}
	if flags.Changed("fail-with") {
		cfg.Client.Failure.Message = o.failWith
	}
}

func newClient(cfg *config.Config, p policy.Policy) bookqa.Client {
	return policy.Wrap(bookqa.NewClient(cfg.StubOptions()), p)
}

func newController(cfg *config.Config) *mutation.Controller {
	return mutation.NewController(newClient(cfg, cfg.PolicyOptions().Mutations))
}
