// Package identity owns the user attached to the current session. Users are
// sanitized on the way in and snapshotted with private attributes stripped on
// the way out to the event log.
package identity

import (
	"sync"

	"github.com/splitio/go-toolkit/v5/logging"

	"github.com/statsig-io/go-client/statsig/dtos"
)

// Manager holds the one sanitized user of a client session
type Manager struct {
	mutex       sync.RWMutex
	user        *dtos.User
	environment string
	logger      logging.LoggerInterface
}

// NewManager instantiates a Manager. A non-empty environment tier is attached
// to every user it stores.
func NewManager(environment string, logger logging.LoggerInterface) *Manager {
	return &Manager{
		user:        &dtos.User{},
		environment: environment,
		logger:      logger,
	}
}

// SetUser sanitizes the supplied user and makes it the session's current one.
// A nil user is stored as an empty identity.
func (m *Manager) SetUser(user *dtos.User) {
	sanitized := m.sanitize(user)
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.user = sanitized
}

// User returns a copy of the current user, private attributes included. Meant
// for evaluation requests only; use LoggingSnapshot for anything persisted.
func (m *Manager) User() *dtos.User {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.user.Copy()
}

// LoggingSnapshot returns a copy of the current user with private attributes
// stripped. This is the only form that may appear in logged payloads.
func (m *Manager) LoggingSnapshot() *dtos.User {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	snapshot := m.user.Copy()
	snapshot.PrivateAttributes = nil
	return snapshot
}

func (m *Manager) sanitize(user *dtos.User) *dtos.User {
	sanitized := user.Copy()
	if sanitized == nil {
		sanitized = &dtos.User{}
	}

	sanitized.UserID = dtos.TrimString(sanitized.UserID)
	sanitized.Email = dtos.TrimString(sanitized.Email)
	sanitized.IPAddress = dtos.TrimString(sanitized.IPAddress)
	sanitized.UserAgent = dtos.TrimString(sanitized.UserAgent)
	sanitized.Country = dtos.TrimString(sanitized.Country)
	sanitized.Locale = dtos.TrimString(sanitized.Locale)
	sanitized.AppVersion = dtos.TrimString(sanitized.AppVersion)

	// Oversized structured attributes are dropped wholesale. Truncating
	// serialized JSON would log a corrupted fragment.
	if !dtos.WithinSizeLimit(sanitized.Custom) {
		m.logger.Warning("User custom attributes exceed the size limit and will be dropped")
		sanitized.Custom = map[string]interface{}{}
	}
	if !dtos.WithinSizeLimit(sanitized.PrivateAttributes) {
		m.logger.Warning("User private attributes exceed the size limit and will be dropped")
		sanitized.PrivateAttributes = map[string]interface{}{}
	}

	if m.environment != "" {
		sanitized.StatsigEnvironment = map[string]string{"tier": m.environment}
	}
	return sanitized
}
