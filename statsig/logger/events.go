package logger

import (
	"strconv"
	"time"

	"github.com/statsig-io/go-client/statsig/dtos"
)

// NewCustomEvent builds a sanitized event record for a LogEvent call. Name
// and string values are trimmed independently and oversized metadata is
// replaced by a sentinel, so a single oversized field never prevents the rest
// of the record from being logged.
func NewCustomEvent(
	name string,
	value interface{},
	metadata map[string]string,
	user *dtos.User,
	sdkMetadata dtos.SdkMetadataFields,
) dtos.Event {
	if s, ok := value.(string); ok {
		value = dtos.TrimString(s)
	}
	if metadata != nil && !dtos.WithinSizeLimit(metadata) {
		metadata = dtos.OversizeMetadataSentinel
	}
	return dtos.Event{
		EventName:          dtos.TrimString(name),
		User:               user,
		Value:              value,
		Metadata:           metadata,
		Time:               time.Now().UnixMilli(),
		StatsigMetadata:    sdkMetadata,
		SecondaryExposures: []dtos.SecondaryExposure{},
	}
}

// NewGateExposure builds the audit record generated when a gate is evaluated
func NewGateExposure(
	gate dtos.GateResult,
	user *dtos.User,
	sdkMetadata dtos.SdkMetadataFields,
) dtos.Event {
	secondary := gate.SecondaryExposures
	if secondary == nil {
		secondary = []dtos.SecondaryExposure{}
	}
	return dtos.Event{
		EventName: dtos.GateExposureEvent,
		User:      user,
		Metadata: map[string]string{
			"gate":      gate.Name,
			"gateValue": strconv.FormatBool(gate.Value),
			"ruleID":    gate.RuleID,
		},
		Time:               time.Now().UnixMilli(),
		StatsigMetadata:    sdkMetadata,
		SecondaryExposures: secondary,
	}
}

// NewConfigExposure builds the audit record generated when a dynamic config
// or experiment is evaluated
func NewConfigExposure(
	config dtos.ConfigResult,
	user *dtos.User,
	sdkMetadata dtos.SdkMetadataFields,
) dtos.Event {
	secondary := config.SecondaryExposures
	if secondary == nil {
		secondary = []dtos.SecondaryExposure{}
	}
	return dtos.Event{
		EventName: dtos.ConfigExposureEvent,
		User:      user,
		Metadata: map[string]string{
			"config": config.Name,
			"ruleID": config.RuleID,
		},
		Time:               time.Now().UnixMilli(),
		StatsigMetadata:    sdkMetadata,
		SecondaryExposures: secondary,
	}
}
