// Package service defines the transport contracts the SDK core depends on.
package service

import "github.com/statsig-io/go-client/statsig/dtos"

// InitializeFetcher retrieves the pre-evaluated result set for a user.
// The raw body is returned alongside the decoded response so callers can
// persist it for cache bootstrapping.
type InitializeFetcher interface {
	Fetch(user *dtos.User) (*dtos.InitializeResponse, []byte, error)
}

// EventsRecorder submits a batch of events to the remote sink
type EventsRecorder interface {
	Record(events []dtos.Event, metadata dtos.SdkMetadataFields) error
}

// ExceptionRecorder submits one unexpected-failure report
type ExceptionRecorder interface {
	Record(report *dtos.ExceptionReport) error
}
