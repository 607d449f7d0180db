// Package conf contains configuration structures used to setup the SDK
package conf

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/splitio/go-toolkit/v5/datastructures/set"
	"github.com/splitio/go-toolkit/v5/logging"

	"github.com/statsig-io/go-client/statsig/storage/persistent"
)

// StatsigOptions struct is used to setup a Statsig SDK client.
//
// Parameters:
// - API (Optional) Base url of the initialize endpoint
// - EventsAPI (Optional) Base url of the event logging endpoint
// - Environment (Optional) Environment tier attached to every user sent upstream
// - FlushInterval (Optional) Seconds between automatic event flushes
// - EventQueueSize (Optional) Queued events that trigger an immediate flush
// - HTTPTimeout (Optional) Timeout in seconds for requests issued by the SDK
// - DiagnosticsSamplingRate (Optional) Fraction of sessions recording diagnostics markers
// - DisableAutoEventLogging (Optional) Suppress automatic exposure events
// - Persistence (Optional) Storage used for the stable ID and response cache
// - Logger (Optional) Custom logger complying with logging.LoggerInterface
// - LoggerConfig (Optional) Options to setup the sdk's own logger
type StatsigOptions struct {
	API                     string
	EventsAPI               string
	Environment             string
	FlushInterval           int
	EventQueueSize          int
	HTTPTimeout             int
	DiagnosticsSamplingRate float64
	DisableAutoEventLogging bool
	Persistence             persistent.Storage
	Logger                  logging.LoggerInterface
	LoggerConfig            logging.LoggerOptions
}

type envOverrides struct {
	API            string `env:"STATSIG_API"`
	EventsAPI      string `env:"STATSIG_EVENTS_API"`
	Environment    string `env:"STATSIG_ENVIRONMENT"`
	FlushInterval  int    `env:"STATSIG_FLUSH_INTERVAL"`
	EventQueueSize int    `env:"STATSIG_EVENT_QUEUE_SIZE"`
	HTTPTimeout    int    `env:"STATSIG_HTTP_TIMEOUT"`
}

// Default returns a config struct with all the default values
func Default() *StatsigOptions {
	return &StatsigOptions{
		API:                     "https://api.statsig.com/v1",
		EventsAPI:               "https://events.statsigapi.net/v1",
		Environment:             "",
		FlushInterval:           defaultFlushInterval,
		EventQueueSize:          defaultEventQueueSize,
		HTTPTimeout:             defaultHTTPTimeout,
		DiagnosticsSamplingRate: defaultDiagnosticsSamplingRate,
		Logger:                  nil,
		LoggerConfig:            logging.LoggerOptions{},
	}
}

// FromEnv returns the default config with any STATSIG_* environment variables
// applied on top.
func FromEnv() (*StatsigOptions, error) {
	cfg := Default()
	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return nil, fmt.Errorf("error parsing environment overrides: %w", err)
	}
	if ov.API != "" {
		cfg.API = ov.API
	}
	if ov.EventsAPI != "" {
		cfg.EventsAPI = ov.EventsAPI
	}
	if ov.Environment != "" {
		cfg.Environment = ov.Environment
	}
	if ov.FlushInterval > 0 {
		cfg.FlushInterval = ov.FlushInterval
	}
	if ov.EventQueueSize > 0 {
		cfg.EventQueueSize = ov.EventQueueSize
	}
	if ov.HTTPTimeout > 0 {
		cfg.HTTPTimeout = ov.HTTPTimeout
	}
	return cfg, nil
}

// Normalize checks the parameters passed by the user and fills in anything
// left at its zero value. Returns an error if something is wrong.
func Normalize(cfg *StatsigOptions, logger logging.LoggerInterface) error {
	if cfg == nil {
		return errors.New("a non-nil StatsigOptions struct is required")
	}
	defaults := Default()
	if cfg.API == "" {
		cfg.API = defaults.API
	}
	if cfg.EventsAPI == "" {
		cfg.EventsAPI = defaults.EventsAPI
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaults.FlushInterval
	}
	if cfg.EventQueueSize <= 0 {
		cfg.EventQueueSize = defaults.EventQueueSize
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = defaults.HTTPTimeout
	}
	if cfg.DiagnosticsSamplingRate < 0 || cfg.DiagnosticsSamplingRate > 1 {
		return fmt.Errorf("DiagnosticsSamplingRate must be within [0, 1], got %f", cfg.DiagnosticsSamplingRate)
	}

	knownTiers := set.NewSet("production", "staging", "development")
	if cfg.Environment != "" && !knownTiers.Has(cfg.Environment) && logger != nil {
		logger.Warning(fmt.Sprintf("Environment \"%s\" is not one of %v. Sending as-is.", cfg.Environment, knownTiers.List()))
	}
	return nil
}
