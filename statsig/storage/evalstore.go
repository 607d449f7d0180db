// Package storage contains the in-memory store of pre-evaluated gate and
// config results delivered by the initialize endpoint.
package storage

import (
	"sync"

	"github.com/goccy/go-json"
	"github.com/splitio/go-toolkit/v5/logging"

	"github.com/statsig-io/go-client/statsig/dtos"
	"github.com/statsig-io/go-client/statsig/hash"
)

// EvalStore is an in-memory mapping of hashed gate/config names to their
// evaluation results. Contents are immutable between loads and replaced
// wholesale on each successful initialize or user update.
type EvalStore struct {
	gates   map[string]dtos.GateResult
	configs map[string]dtos.ConfigResult
	mutex   sync.RWMutex
	logger  logging.LoggerInterface
}

// NewEvalStore instantiates an empty EvalStore
func NewEvalStore(logger logging.LoggerInterface) *EvalStore {
	return &EvalStore{
		gates:   make(map[string]dtos.GateResult),
		configs: make(map[string]dtos.ConfigResult),
		logger:  logger,
	}
}

// Load replaces the store contents from a decoded initialize payload.
// Malformed entries are skipped per-entry so one bad record never fails the
// whole load.
func (s *EvalStore) Load(response *dtos.InitializeResponse) {
	gates := make(map[string]dtos.GateResult, len(response.GateEntries()))
	for name, raw := range response.GateEntries() {
		var gate dtos.GateResult
		if err := json.Unmarshal(raw, &gate); err != nil {
			s.logger.Warning("Skipping malformed gate entry: ", name, err.Error())
			continue
		}
		gates[name] = gate
	}

	configs := make(map[string]dtos.ConfigResult, len(response.DynamicConfigs))
	for name, raw := range response.DynamicConfigs {
		var config dtos.ConfigResult
		if err := json.Unmarshal(raw, &config); err != nil {
			s.logger.Warning("Skipping malformed config entry: ", name, err.Error())
			continue
		}
		configs[name] = config
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.gates = gates
	s.configs = configs
}

// Clear drops all stored results
func (s *EvalStore) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.gates = make(map[string]dtos.GateResult)
	s.configs = make(map[string]dtos.ConfigResult)
}

// GetGate returns the stored result for a gate name, falling back to a
// default-off sentinel when the gate is unknown. Lookups never fail.
func (s *EvalStore) GetGate(name string) dtos.GateResult {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if gate, ok := s.gates[hash.Sha256Base64(name)]; ok {
		return gate
	}
	// Older payloads key entries by plain name
	if gate, ok := s.gates[name]; ok {
		return gate
	}
	return dtos.GateResult{Name: name, Value: false, RuleID: "", SecondaryExposures: []dtos.SecondaryExposure{}}
}

// GetConfig returns the stored result for a config name, falling back to an
// empty-value sentinel when the config is unknown.
func (s *EvalStore) GetConfig(name string) dtos.ConfigResult {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if config, ok := s.configs[hash.Sha256Base64(name)]; ok {
		return config
	}
	if config, ok := s.configs[name]; ok {
		return config
	}
	return dtos.ConfigResult{Name: name, Value: map[string]interface{}{}, RuleID: "", SecondaryExposures: []dtos.SecondaryExposure{}}
}
