// Package logger implements the size-bounded, flush-on-demand event queue
// that records every evaluation and custom event of a session.
package logger

import (
	"container/list"
	"sync"

	"github.com/splitio/go-toolkit/v5/asynctask"
	"github.com/splitio/go-toolkit/v5/logging"

	"github.com/statsig-io/go-client/statsig/dtos"
	"github.com/statsig-io/go-client/statsig/service"
)

// EventLogger buffers event records and drains them to the remote sink, either
// periodically, when the queue reaches its flush threshold, or on shutdown.
// Delivery is best-effort: every enqueued record is handed to the transport in
// exactly one flush attempt, and a failed attempt is not requeued.
type EventLogger struct {
	queue      *list.List
	mutexQueue sync.Mutex
	maxSize    int
	recorder   service.EventsRecorder
	metadata   dtos.SdkMetadataFields
	flushTask  *asynctask.AsyncTask
	logger     logging.LoggerInterface
}

// NewEventLogger instantiates an EventLogger. flushInterval is in seconds.
func NewEventLogger(
	recorder service.EventsRecorder,
	metadata dtos.SdkMetadataFields,
	maxQueueSize int,
	flushInterval int,
	logger logging.LoggerInterface,
) *EventLogger {
	eventLogger := &EventLogger{
		queue:    list.New(),
		maxSize:  maxQueueSize,
		recorder: recorder,
		metadata: metadata,
		logger:   logger,
	}
	eventLogger.flushTask = asynctask.NewAsyncTask(
		"events-flush",
		func(l logging.LoggerInterface) error { return eventLogger.Flush(false) },
		flushInterval,
		nil,
		nil,
		logger,
	)
	return eventLogger
}

// Start begins the periodic drain
func (e *EventLogger) Start() {
	e.flushTask.Start()
}

// Log appends an event to the queue. Reaching the flush threshold wakes the
// drain task for an immediate flush.
func (e *EventLogger) Log(event dtos.Event) {
	e.mutexQueue.Lock()
	e.queue.PushBack(event)
	full := e.queue.Len() >= e.maxSize
	e.mutexQueue.Unlock()

	if full {
		e.flushTask.WakeUp()
	}
}

// Count returns the number of queued events
func (e *EventLogger) Count() int {
	e.mutexQueue.Lock()
	defer e.mutexQueue.Unlock()
	return e.queue.Len()
}

// Flush atomically swaps the queue for an empty one and submits the swapped
// batch plus session metadata as one request. isShutdown marks the final
// best-effort flush on teardown.
func (e *EventLogger) Flush(isShutdown bool) error {
	e.mutexQueue.Lock()
	count := e.queue.Len()
	batch := make([]dtos.Event, 0, count)
	for i := 0; i < count; i++ {
		batch = append(batch, e.queue.Remove(e.queue.Front()).(dtos.Event))
	}
	e.mutexQueue.Unlock()

	if len(batch) == 0 {
		return nil
	}

	if err := e.recorder.Record(batch, e.metadata); err != nil {
		if isShutdown {
			e.logger.Warning("Failed to flush events on shutdown: ", err.Error())
			return nil
		}
		e.logger.Error("Error flushing events: ", err.Error())
		return err
	}
	return nil
}

// Shutdown stops the periodic drain and performs a final synchronous flush.
// Safe to call more than once.
func (e *EventLogger) Shutdown() {
	if e.flushTask.IsRunning() {
		e.flushTask.Stop(true)
	}
	e.Flush(true)
}
