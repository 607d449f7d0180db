// Package boundary isolates unexpected internal faults from the public API
// contract. Deliberate contract-violation errors pass through unchanged;
// anything else is reported once per distinct failure per session and the
// wrapped operation falls back to a safe default.
package boundary

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/splitio/go-toolkit/v5/datastructures/set"
	"github.com/splitio/go-toolkit/v5/logging"

	"github.com/statsig-io/go-client/statsig/diagnostics"
	"github.com/statsig-io/go-client/statsig/dtos"
	"github.com/statsig-io/go-client/statsig/sdkerrors"
	"github.com/statsig-io/go-client/statsig/service"
)

// ErrorBoundary wraps units of work identified by a tag
type ErrorBoundary struct {
	seen          *set.ThreadSafeSet
	recorderMutex sync.RWMutex
	recorder      service.ExceptionRecorder
	diagnostics   *diagnostics.Diagnostics
	metadata      dtos.SdkMetadataFields
	logger        logging.LoggerInterface
	markerCount   int64
}

type captureOptions struct {
	configName string
	extra      func() map[string]string
}

// CaptureOption tweaks a single Capture call
type CaptureOption func(*captureOptions)

// WithConfigName attaches the evaluated gate/config name to the diagnostics
// marker bracketing the call.
func WithConfigName(name string) CaptureOption {
	return func(o *captureOptions) { o.configName = name }
}

// WithExtra registers a lazily-invoked extractor for additional report
// context. It only runs on the error path.
func WithExtra(extra func() map[string]string) CaptureOption {
	return func(o *captureOptions) { o.extra = extra }
}

// New instantiates an ErrorBoundary
func New(
	recorder service.ExceptionRecorder,
	diag *diagnostics.Diagnostics,
	metadata dtos.SdkMetadataFields,
	logger logging.LoggerInterface,
) *ErrorBoundary {
	return &ErrorBoundary{
		seen:        set.NewThreadSafeSet(),
		recorder:    recorder,
		diagnostics: diag,
		metadata:    metadata,
		logger:      logger,
	}
}

// AttachRecorder sets the exception sink. The boundary exists before the sdk
// key is known, so the façade attaches the recorder during initialization.
func (b *ErrorBoundary) AttachRecorder(recorder service.ExceptionRecorder) {
	b.recorderMutex.Lock()
	defer b.recorderMutex.Unlock()
	b.recorder = recorder
}

// Capture executes task. Contract violations are returned unchanged; any
// other failure (error or panic) is reported and the call falls back to
// recoverFn, so internal faults never interrupt the caller's control flow.
func (b *ErrorBoundary) Capture(tag string, task func() error, recoverFn func() error, opts ...CaptureOption) error {
	var options captureOptions
	for _, opt := range opts {
		opt(&options)
	}

	markerID := tag + "_" + strconv.FormatInt(atomic.AddInt64(&b.markerCount, 1), 10)
	b.diagnostics.Start(tag, markerID, options.configName)

	err := runSafely(task)
	if err == nil {
		b.diagnostics.End(tag, markerID, true)
		return nil
	}
	b.diagnostics.End(tag, markerID, false)

	if sdkerrors.IsContractViolation(err) {
		return err
	}

	b.logError(tag, err, options.extra)
	if recoverFn == nil {
		return nil
	}
	return runSafely(recoverFn)
}

// Swallow is a convenience form of Capture whose recovery is a no-op
func (b *ErrorBoundary) Swallow(tag string, task func() error) {
	b.Capture(tag, task, nil)
}

// logError reports an unexpected failure at most once per distinct failure
// name per session. The report itself is fire-and-forget; it must never block
// or fail the originating operation.
func (b *ErrorBoundary) logError(tag string, err error, extra func() map[string]string) {
	name := exceptionName(err)
	if b.seen.Has(name) {
		return
	}
	b.seen.Add(name)
	b.logger.Error("Unexpected failure in ", tag, ": ", err.Error())

	b.recorderMutex.RLock()
	recorder := b.recorder
	b.recorderMutex.RUnlock()
	if recorder == nil {
		return
	}
	report := &dtos.ExceptionReport{
		Tag:             tag,
		Exception:       name,
		Info:            err.Error(),
		StatsigMetadata: b.metadata,
	}
	if extra != nil {
		report.Extra = extra()
	}
	go func() {
		defer func() { recover() }()
		recorder.Record(report)
	}()
}

// exceptionName keys the dedup set. Typed errors dedup by type, generic
// string errors by message.
func exceptionName(err error) string {
	name := fmt.Sprintf("%T", err)
	if name == "*errors.errorString" || name == "*fmt.wrapError" {
		return err.Error()
	}
	return name
}

func runSafely(task func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return task()
}
