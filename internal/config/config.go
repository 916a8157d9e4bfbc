package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/at-ishikawa/bookcompanion/internal/bookqa"
	"github.com/at-ishikawa/bookcompanion/internal/policy"
	"github.com/at-ishikawa/bookcompanion/internal/validation"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "BOOKCOMPANION"

type Config struct {
	Book     BookConfig     `mapstructure:"book"`
	Client   ClientConfig   `mapstructure:"client"`
	Requests RequestsConfig `mapstructure:"requests"`
}

type BookConfig struct {
	Title          string `mapstructure:"title" validate:"notblank"`
	SampleQuestion string `mapstructure:"sample_question" validate:"notblank"`
}

// ClientConfig configures the stub answering client.
// Setting Failure.Message makes every question fail with that message.
type ClientConfig struct {
	Delay   time.Duration `mapstructure:"delay" validate:"gte=0s"`
	Failure FailureConfig `mapstructure:"failure"`
}

type FailureConfig struct {
	Message string `mapstructure:"message"`
	Status  int    `mapstructure:"status" validate:"omitempty,gte=100,lte=599"`
}

type RequestsConfig struct {
	Queries   PolicyConfig `mapstructure:"queries"`
	Mutations PolicyConfig `mapstructure:"mutations"`
}

type PolicyConfig struct {
	Retry      uint          `mapstructure:"retry" validate:"lte=10"`
	RetryDelay time.Duration `mapstructure:"retry_delay" validate:"gte=0s"`
	StaleTime  time.Duration `mapstructure:"stale_time" validate:"gte=0s"`
}

// PolicyOptions converts the request settings into the value passed to policy.Wrap
func (cfg Config) PolicyOptions() policy.Options {
	return policy.Options{
		Queries:   cfg.Requests.Queries.policy(),
		Mutations: cfg.Requests.Mutations.policy(),
	}
}

// StubOptions converts the client settings into the options of the stub client
func (cfg Config) StubOptions() bookqa.StubOptions {
	return bookqa.StubOptions{
		BookTitle:      cfg.Book.Title,
		Delay:          cfg.Client.Delay,
		FailureMessage: cfg.Client.Failure.Message,
		FailureStatus:  cfg.Client.Failure.Status,
	}
}

func (pc PolicyConfig) policy() policy.Policy {
	return policy.Policy{
		Retry:      pc.Retry,
		RetryDelay: pc.RetryDelay,
		StaleTime:  pc.StaleTime,
	}
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := validation.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/bookcompanion")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	defaults := policy.DefaultOptions()
	v.SetDefault("book.title", bookqa.DefaultBookTitle)
	v.SetDefault("book.sample_question", "Who is Kaladin?")
	v.SetDefault("client.delay", bookqa.DefaultDelay)
	v.SetDefault("client.failure.message", "")
	v.SetDefault("client.failure.status", 0)
	v.SetDefault("requests.queries.retry", defaults.Queries.Retry)
	v.SetDefault("requests.queries.retry_delay", defaults.Queries.RetryDelay)
	v.SetDefault("requests.queries.stale_time", defaults.Queries.StaleTime)
	v.SetDefault("requests.mutations.retry", defaults.Mutations.Retry)
	v.SetDefault("requests.mutations.retry_delay", defaults.Mutations.RetryDelay)
	v.SetDefault("requests.mutations.stale_time", defaults.Mutations.StaleTime)

	// BOOKCOMPANION_BOOK_TITLE, BOOKCOMPANION_CLIENT_DELAY, ...
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short names to force the failure path without a config file
	if err := v.BindEnv("client.failure.message", envPrefix+"_FAIL_WITH"); err != nil {
		return nil, fmt.Errorf("failed to bind %s_FAIL_WITH environment variable: %w", envPrefix, err)
	}
	if err := v.BindEnv("client.failure.status", envPrefix+"_FAIL_STATUS"); err != nil {
		return nil, fmt.Errorf("failed to bind %s_FAIL_STATUS environment variable: %w", envPrefix, err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(validation.Messages(err, loader.translator), ", "))
	}

	return &cfg, nil
}
