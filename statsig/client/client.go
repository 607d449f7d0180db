// Package client contains the Statsig SDK client: the one object callers
// interact with to initialize a session, evaluate gates and configs, and
// record events.
package client

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/splitio/go-toolkit/v5/logging"

	"github.com/statsig-io/go-client/statsig"
	"github.com/statsig-io/go-client/statsig/boundary"
	"github.com/statsig-io/go-client/statsig/conf"
	"github.com/statsig-io/go-client/statsig/diagnostics"
	"github.com/statsig-io/go-client/statsig/dtos"
	"github.com/statsig-io/go-client/statsig/hash"
	"github.com/statsig-io/go-client/statsig/identity"
	"github.com/statsig-io/go-client/statsig/logger"
	"github.com/statsig-io/go-client/statsig/sdkerrors"
	"github.com/statsig-io/go-client/statsig/service"
	"github.com/statsig-io/go-client/statsig/service/api"
	"github.com/statsig-io/go-client/statsig/storage"
)

const (
	statusUninitialized = iota
	statusInitializing
	statusReady
)

const prodExceptionURL = "https://statsigapi.net/v1"
const stableIDKey = "statsig.stable_id"
const cacheKeyPrefix = "statsig.cache."

// DynamicConfig is the evaluated value of a dynamic config or experiment
type DynamicConfig struct {
	Name   string
	Value  map[string]interface{}
	RuleID string
}

type initAttempt struct {
	done chan struct{}
	err  error
	once sync.Once
}

func (a *initAttempt) finish(err error) {
	a.once.Do(func() {
		a.err = err
		close(a.done)
	})
}

// StatsigClient owns one SDK session: its lifecycle, its cached evaluation
// results and its event queue. All public operations are wrapped by the error
// boundary; a correct caller never observes an unexpected internal fault.
type StatsigClient struct {
	cfg              *conf.StatsigOptions
	logger           logging.LoggerInterface
	sdkKey           string
	metadata         dtos.SdkMetadataFields
	errorBoundary    *boundary.ErrorBoundary
	identity         *identity.Manager
	store            *storage.EvalStore
	events           *logger.EventLogger
	fetcher          service.InitializeFetcher
	status           atomic.Value
	initMutex        sync.Mutex
	inFlight         *initAttempt
	disableExposures int32
	shut             int32
}

// NewClient instantiates an uninitialized StatsigClient from the supplied
// options. Call Initialize before evaluating anything.
func NewClient(cfg *conf.StatsigOptions) (*StatsigClient, error) {
	if cfg == nil {
		cfg = conf.Default()
	}
	log := setupLogger(cfg)
	if err := conf.Normalize(cfg, log); err != nil {
		return nil, err
	}

	metadata := statsig.NewSdkMetadata(uuid.NewString(), resolveStableID(cfg, log))
	diag := diagnostics.NewSampled(cfg.DiagnosticsSamplingRate)

	c := &StatsigClient{
		cfg:           cfg,
		logger:        log,
		metadata:      metadata,
		errorBoundary: boundary.New(nil, diag, metadata, log),
		identity:      identity.NewManager(cfg.Environment, log),
		store:         storage.NewEvalStore(log),
	}
	if cfg.DisableAutoEventLogging {
		c.disableExposures = 1
	}
	c.status.Store(statusUninitialized)
	return c, nil
}

// setupLogger sets up the logger according to the parameters submitted by the
// sdk user
func setupLogger(cfg *conf.StatsigOptions) logging.LoggerInterface {
	if cfg != nil && cfg.Logger != nil {
		// If a custom logger is supplied, use it.
		return cfg.Logger
	}
	if cfg != nil {
		return logging.NewLogger(&cfg.LoggerConfig)
	}
	return logging.NewLogger(&logging.LoggerOptions{})
}

// resolveStableID loads the per-device identifier from persistent storage,
// minting and storing a fresh one on first use. Without a persistence layer
// every session gets its own.
func resolveStableID(cfg *conf.StatsigOptions, log logging.LoggerInterface) string {
	if cfg.Persistence == nil {
		return uuid.NewString()
	}
	ctx := context.Background()
	if stored, err := cfg.Persistence.Get(ctx, stableIDKey); err == nil && stored != "" {
		return stored
	}
	stableID := uuid.NewString()
	if err := cfg.Persistence.Set(ctx, stableIDKey, stableID); err != nil {
		log.Warning("Could not persist stable ID: ", err.Error())
	}
	return stableID
}

// Initialize validates the sdk key, fetches the pre-evaluated result set for
// the supplied user and transitions the session to Ready. Concurrent callers
// share a single underlying request and observe the same outcome; calling
// again once Ready is a no-op. A failed fetch still yields a Ready session
// that serves defaults.
func (c *StatsigClient) Initialize(sdkKey string, user *dtos.User) error {
	return c.errorBoundary.Capture("initialize", func() error {
		if err := validateSDKKey(sdkKey, c.logger); err != nil {
			return err
		}

		c.initMutex.Lock()
		if c.status.Load() == statusReady {
			c.initMutex.Unlock()
			return nil
		}
		if attempt := c.inFlight; attempt != nil {
			c.initMutex.Unlock()
			<-attempt.done
			return attempt.err
		}
		attempt := &initAttempt{done: make(chan struct{})}
		c.inFlight = attempt
		c.status.Store(statusInitializing)
		c.sdkKey = sdkKey
		c.identity.SetUser(user)
		c.wireTransport(sdkKey)
		c.initMutex.Unlock()

		err := c.fetchAndLoad()
		c.status.Store(statusReady)
		c.events.Start()
		attempt.finish(err)
		return err
	}, func() error {
		// An unexpected fault mid-initialization still yields a usable,
		// default-serving session, and pending waiters must be released.
		c.initMutex.Lock()
		attempt := c.inFlight
		c.initMutex.Unlock()
		if attempt != nil {
			c.status.Store(statusReady)
			if c.events != nil {
				c.events.Start()
			}
			attempt.finish(nil)
		}
		return nil
	})
}

func (c *StatsigClient) wireTransport(sdkKey string) {
	c.fetcher = api.NewHTTPInitializeFetcher(sdkKey, c.cfg.API, c.cfg.HTTPTimeout, c.metadata, c.logger)
	recorder := api.NewHTTPEventsRecorder(sdkKey, c.cfg.EventsAPI, c.cfg.HTTPTimeout, c.metadata, c.logger)
	c.events = logger.NewEventLogger(recorder, c.metadata, c.cfg.EventQueueSize, c.cfg.FlushInterval, c.logger)
	c.errorBoundary.AttachRecorder(api.NewHTTPExceptionRecorder(sdkKey, prodExceptionURL, c.cfg.HTTPTimeout, c.metadata, c.logger))
}

// fetchAndLoad refreshes the evaluation store for the current user. Fetch and
// parse failures degrade to the cached payload when one exists, otherwise to
// an empty store; they never surface to the caller.
func (c *StatsigClient) fetchAndLoad() error {
	response, raw, err := c.fetcher.Fetch(c.identity.User())
	if err != nil {
		c.logger.Error("Initialize fetch failed, serving cached or default values: ", err.Error())
		c.bootstrapFromCache()
		return nil
	}

	c.store.Load(response)
	if response.DisableAutoEventLogging {
		atomic.StoreInt32(&c.disableExposures, 1)
	}
	c.cacheResponse(raw)
	return nil
}

func (c *StatsigClient) cacheKey() string {
	return cacheKeyPrefix + hash.Sha256Base64(c.sdkKey+"."+c.identity.User().UserID)
}

func (c *StatsigClient) cacheResponse(raw []byte) {
	if c.cfg.Persistence == nil {
		return
	}
	if err := c.cfg.Persistence.Set(context.Background(), c.cacheKey(), string(raw)); err != nil {
		c.logger.Warning("Could not cache initialize response: ", err.Error())
	}
}

func (c *StatsigClient) bootstrapFromCache() {
	if c.cfg.Persistence != nil {
		cached, err := c.cfg.Persistence.Get(context.Background(), c.cacheKey())
		if err == nil {
			var response dtos.InitializeResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				c.logger.Info("Bootstrapping evaluation store from cached payload")
				c.store.Load(&response)
				return
			}
		}
	}
	c.store.Clear()
}

func (c *StatsigClient) ensureReady(operation string) error {
	if c.status.Load() != statusReady {
		return sdkerrors.NewUninitialized(operation)
	}
	return nil
}

// CheckGate returns the pre-evaluated boolean value of a gate and records an
// exposure for it. Unknown gates are off.
func (c *StatsigClient) CheckGate(gateName string) (bool, error) {
	result := false
	err := c.errorBoundary.Capture("checkGate", func() error {
		if err := c.ensureReady("checkGate"); err != nil {
			return err
		}
		if err := validateName("checkGate", "gateName", gateName); err != nil {
			return err
		}
		gate := c.store.GetGate(gateName)
		gate.Name = gateName
		c.logExposure(logger.NewGateExposure(gate, c.identity.LoggingSnapshot(), c.metadata))
		result = gate.Value
		return nil
	}, func() error {
		result = false
		return nil
	}, boundary.WithConfigName(gateName))
	return result, err
}

// GetConfig returns the pre-evaluated value of a dynamic config and records
// an exposure for it. Unknown configs yield an empty value.
func (c *StatsigClient) GetConfig(configName string) (*DynamicConfig, error) {
	return c.getConfigImpl("getConfig", configName)
}

// GetExperiment returns the pre-evaluated value of an experiment. Experiments
// share the dynamic config delivery model.
func (c *StatsigClient) GetExperiment(experimentName string) (*DynamicConfig, error) {
	return c.getConfigImpl("getExperiment", experimentName)
}

func (c *StatsigClient) getConfigImpl(operation string, configName string) (*DynamicConfig, error) {
	var result *DynamicConfig
	err := c.errorBoundary.Capture(operation, func() error {
		if err := c.ensureReady(operation); err != nil {
			return err
		}
		if err := validateName(operation, "configName", configName); err != nil {
			return err
		}
		config := c.store.GetConfig(configName)
		config.Name = configName
		c.logExposure(logger.NewConfigExposure(config, c.identity.LoggingSnapshot(), c.metadata))
		result = &DynamicConfig{Name: configName, Value: config.Value, RuleID: config.RuleID}
		return nil
	}, func() error {
		result = nil
		return nil
	}, boundary.WithConfigName(configName))
	return result, err
}

// LogEvent records a custom event with the current user attached. Oversized
// fields are sanitized, never rejected.
func (c *StatsigClient) LogEvent(eventName string, value interface{}, metadata map[string]string) error {
	return c.errorBoundary.Capture("logEvent", func() error {
		if err := c.ensureReady("logEvent"); err != nil {
			return err
		}
		if err := validateName("logEvent", "eventName", eventName); err != nil {
			return err
		}
		if !isValidEventValue(value) {
			c.logger.Warning("logEvent: value must be a string or a number. Dropping value.")
			value = nil
		}
		c.events.Log(logger.NewCustomEvent(eventName, value, metadata, c.identity.LoggingSnapshot(), c.metadata))
		return nil
	}, func() error {
		return nil
	})
}

// UpdateUser replaces the session user and re-synchronizes the evaluation
// store against the new identity. Returns once resynchronization completes.
func (c *StatsigClient) UpdateUser(user *dtos.User) error {
	return c.errorBoundary.Capture("updateUser", func() error {
		if err := c.ensureReady("updateUser"); err != nil {
			return err
		}
		c.identity.SetUser(user)
		// Results evaluated for the previous user must not leak to the new
		// one, even while the refetch is in flight.
		c.store.Clear()
		return c.fetchAndLoad()
	}, func() error {
		return nil
	})
}

// Shutdown flushes all queued events and releases resources. It is a no-op on
// a session that never became Ready, and safe to call more than once.
func (c *StatsigClient) Shutdown() {
	c.errorBoundary.Swallow("shutdown", func() error {
		if c.status.Load() != statusReady {
			return nil
		}
		if atomic.CompareAndSwapInt32(&c.shut, 0, 1) {
			c.events.Shutdown()
		}
		return nil
	})
}

func (c *StatsigClient) logExposure(event dtos.Event) {
	if atomic.LoadInt32(&c.disableExposures) == 1 || c.events == nil {
		return
	}
	c.events.Log(event)
}

func isValidEventValue(value interface{}) bool {
	switch value.(type) {
	case nil, string, int, int32, int64, float32, float64:
		return true
	default:
		return false
	}
}
