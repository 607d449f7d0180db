package api

import (
	"github.com/goccy/go-json"
	"github.com/splitio/go-toolkit/v5/logging"

	"github.com/statsig-io/go-client/statsig/dtos"
)

type httpRecorderBase struct {
	client *HTTPClient
	logger logging.LoggerInterface
}

// HTTPEventsRecorder is responsible for submitting event batches to the
// log_event endpoint.
type HTTPEventsRecorder struct {
	httpRecorderBase
}

// NewHTTPEventsRecorder instantiates an HTTPEventsRecorder
func NewHTTPEventsRecorder(
	sdkKey string,
	eventsURL string,
	timeout int,
	metadata dtos.SdkMetadataFields,
	logger logging.LoggerInterface,
) *HTTPEventsRecorder {
	return &HTTPEventsRecorder{
		httpRecorderBase: httpRecorderBase{
			client: NewHTTPClient(sdkKey, eventsURL, timeout, metadata.SDKType, metadata.SDKVersion, logger),
			logger: logger,
		},
	}
}

// Record sends a batch of events plus session metadata as one request
func (r *HTTPEventsRecorder) Record(events []dtos.Event, metadata dtos.SdkMetadataFields) error {
	data, err := json.Marshal(dtos.LogEventRequest{
		Events:          events,
		StatsigMetadata: metadata,
	})
	if err != nil {
		r.logger.Error("Error marshaling JSON", err.Error())
		return err
	}

	if _, err := r.client.Post("/rgstr", data, true); err != nil {
		r.logger.Error("Error posting events", err.Error())
		return err
	}
	return nil
}

// HTTPExceptionRecorder is responsible for submitting unexpected-failure
// reports to the exception endpoint.
type HTTPExceptionRecorder struct {
	httpRecorderBase
}

// NewHTTPExceptionRecorder instantiates an HTTPExceptionRecorder
func NewHTTPExceptionRecorder(
	sdkKey string,
	exceptionURL string,
	timeout int,
	metadata dtos.SdkMetadataFields,
	logger logging.LoggerInterface,
) *HTTPExceptionRecorder {
	return &HTTPExceptionRecorder{
		httpRecorderBase: httpRecorderBase{
			client: NewHTTPClient(sdkKey, exceptionURL, timeout, metadata.SDKType, metadata.SDKVersion, logger),
			logger: logger,
		},
	}
}

// Record sends one exception report
func (r *HTTPExceptionRecorder) Record(report *dtos.ExceptionReport) error {
	data, err := json.Marshal(report)
	if err != nil {
		r.logger.Error("Error marshaling JSON", err.Error())
		return err
	}

	if _, err := r.client.Post("/sdk_exception", data, false); err != nil {
		r.logger.Error("Error posting exception report", err.Error())
		return err
	}
	return nil
}
