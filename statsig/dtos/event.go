package dtos

//
// Event DTOs
//

// GateExposureEvent is the event name recorded when a gate is evaluated
const GateExposureEvent = "statsig::gate_exposure"

// ConfigExposureEvent is the event name recorded when a config is evaluated
const ConfigExposureEvent = "statsig::config_exposure"

// SecondaryExposure describes a dependent gate evaluated server-side while
// resolving a primary gate or config.
type SecondaryExposure struct {
	Gate      string `json:"gate"`
	GateValue string `json:"gateValue"`
	RuleID    string `json:"ruleID"`
}

// Event maps one auditable occurrence: a custom event or an automatic
// exposure. User must be a logging snapshot with private attributes stripped.
type Event struct {
	EventName          string              `json:"eventName"`
	User               *User               `json:"user,omitempty"`
	Value              interface{}         `json:"value,omitempty"`
	Metadata           map[string]string   `json:"metadata,omitempty"`
	Time               int64               `json:"time"`
	StatsigMetadata    SdkMetadataFields   `json:"statsigMetadata"`
	SecondaryExposures []SecondaryExposure `json:"secondaryExposures"`
}

// SdkMetadataFields mirrors the session metadata carried on each event and on
// the log_event envelope.
type SdkMetadataFields struct {
	SDKType         string `json:"sdkType"`
	SDKVersion      string `json:"sdkVersion"`
	LanguageVersion string `json:"languageVersion,omitempty"`
	SessionID       string `json:"sessionID,omitempty"`
	StableID        string `json:"stableID,omitempty"`
}

// LogEventRequest is the body POSTed to the log_event endpoint
type LogEventRequest struct {
	Events          []Event           `json:"events"`
	StatsigMetadata SdkMetadataFields `json:"statsigMetadata"`
}

// ExceptionReport is the body POSTed to the sdk exception endpoint
type ExceptionReport struct {
	Tag             string            `json:"tag"`
	Exception       string            `json:"exception"`
	Info            string            `json:"info"`
	StatsigMetadata SdkMetadataFields `json:"statsigMetadata"`
	Extra           map[string]string `json:"extra,omitempty"`
}
