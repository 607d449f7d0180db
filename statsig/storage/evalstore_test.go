package storage

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/splitio/go-toolkit/v5/logging"

	"github.com/statsig-io/go-client/statsig/dtos"
	"github.com/statsig-io/go-client/statsig/hash"
)

func buildResponse(t *testing.T, payload string) *dtos.InitializeResponse {
	t.Helper()
	var response dtos.InitializeResponse
	if err := json.Unmarshal([]byte(payload), &response); err != nil {
		t.Fatal("Error building test response: ", err)
	}
	return &response
}

func TestLoadAndLookup(t *testing.T) {
	store := NewEvalStore(logging.NewLogger(&logging.LoggerOptions{}))

	gateKey := hash.Sha256Base64("on_gate")
	configKey := hash.Sha256Base64("a_config")
	store.Load(buildResponse(t, `{
		"feature_gates": {
			"`+gateKey+`": {"value": true, "rule_id": "rule_1", "secondary_exposures": [{"gate": "dep", "gateValue": "true", "ruleID": "r"}]}
		},
		"dynamic_configs": {
			"`+configKey+`": {"value": {"color": "blue"}, "rule_id": "rule_2"}
		}
	}`))

	gate := store.GetGate("on_gate")
	if !gate.Value || gate.RuleID != "rule_1" {
		t.Error("Known gate should return the stored result")
	}
	if len(gate.SecondaryExposures) != 1 || gate.SecondaryExposures[0].Gate != "dep" {
		t.Error("Secondary exposures should be preserved")
	}

	config := store.GetConfig("a_config")
	if config.Value["color"] != "blue" || config.RuleID != "rule_2" {
		t.Error("Known config should return the stored result")
	}
}

func TestLookupFallsBackToPlainName(t *testing.T) {
	store := NewEvalStore(logging.NewLogger(&logging.LoggerOptions{}))
	store.Load(buildResponse(t, `{
		"gates": {"plain_gate": {"value": true, "rule_id": "r1"}}
	}`))

	if !store.GetGate("plain_gate").Value {
		t.Error("Lookup should fall back to the plain name key")
	}
}

func TestUnknownNamesReturnSentinels(t *testing.T) {
	store := NewEvalStore(logging.NewLogger(&logging.LoggerOptions{}))

	gate := store.GetGate("never_loaded")
	if gate.Value {
		t.Error("Unknown gates should default to false")
	}
	if gate.SecondaryExposures == nil {
		t.Error("Sentinel gate should carry an empty exposure list, not nil")
	}

	config := store.GetConfig("never_loaded")
	if config.Value == nil || len(config.Value) != 0 {
		t.Error("Unknown configs should default to an empty value object")
	}
}

func TestMalformedEntriesAreSkipped(t *testing.T) {
	store := NewEvalStore(logging.NewLogger(&logging.LoggerOptions{}))

	goodKey := hash.Sha256Base64("good_gate")
	store.Load(buildResponse(t, `{
		"feature_gates": {
			"bad": {"value": "not-a-bool", "rule_id": 42},
			"`+goodKey+`": {"value": true, "rule_id": "r1"}
		},
		"dynamic_configs": {
			"also_bad": {"value": "not-an-object"}
		}
	}`))

	if !store.GetGate("good_gate").Value {
		t.Error("Well-formed entries should survive a partially malformed load")
	}
	if store.GetGate("bad").Value {
		t.Error("Malformed entries should be skipped, not half-loaded")
	}
}

func TestLoadReplacesWholesale(t *testing.T) {
	store := NewEvalStore(logging.NewLogger(&logging.LoggerOptions{}))

	firstKey := hash.Sha256Base64("first")
	store.Load(buildResponse(t, `{"feature_gates": {"`+firstKey+`": {"value": true, "rule_id": "r1"}}}`))
	if !store.GetGate("first").Value {
		t.Error("First load should be visible")
	}

	secondKey := hash.Sha256Base64("second")
	store.Load(buildResponse(t, `{"feature_gates": {"`+secondKey+`": {"value": true, "rule_id": "r2"}}}`))
	if store.GetGate("first").Value {
		t.Error("Entries from the previous load should be gone")
	}
	if !store.GetGate("second").Value {
		t.Error("New entries should be visible")
	}

	store.Clear()
	if store.GetGate("second").Value {
		t.Error("Clear should drop everything")
	}
}
