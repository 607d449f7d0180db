package dtos

import "github.com/goccy/go-json"

//
// Initialize response DTOs
//

// GateResult is the pre-evaluated outcome of a single feature gate
type GateResult struct {
	Name               string              `json:"name"`
	Value              bool                `json:"value"`
	RuleID             string              `json:"rule_id"`
	SecondaryExposures []SecondaryExposure `json:"secondary_exposures"`
}

// ConfigResult is the pre-evaluated outcome of a single dynamic config or
// experiment
type ConfigResult struct {
	Name               string                 `json:"name"`
	Value              map[string]interface{} `json:"value"`
	RuleID             string                 `json:"rule_id"`
	SecondaryExposures []SecondaryExposure    `json:"secondary_exposures"`
}

// InitializeResponse maps the payload returned by the initialize endpoint.
// Entries are kept raw here so that a single malformed gate or config can be
// skipped at decode time without failing the whole load.
type InitializeResponse struct {
	Gates                   map[string]json.RawMessage `json:"gates"`
	FeatureGates            map[string]json.RawMessage `json:"feature_gates"`
	DynamicConfigs          map[string]json.RawMessage `json:"dynamic_configs"`
	DisableAutoEventLogging bool                       `json:"disableAutoEventLogging"`
	HasUpdates              bool                       `json:"has_updates"`
	Time                    int64                      `json:"time"`
}

// GateEntries merges the two accepted spellings of the gates mapping,
// "feature_gates" taking precedence over the legacy "gates" key.
func (r *InitializeResponse) GateEntries() map[string]json.RawMessage {
	if len(r.FeatureGates) > 0 {
		return r.FeatureGates
	}
	return r.Gates
}
