package identity

import (
	"strings"
	"testing"

	"github.com/splitio/go-toolkit/v5/logging"

	"github.com/statsig-io/go-client/statsig/dtos"
)

func TestSetUserTrimsStringFields(t *testing.T) {
	manager := NewManager("", logging.NewLogger(&logging.LoggerOptions{}))

	long := strings.Repeat("a", 100)
	manager.SetUser(&dtos.User{
		UserID:  long,
		Email:   long,
		Country: "AR",
	})

	user := manager.User()
	if len(user.UserID) != dtos.MaxStringLength {
		t.Error("UserID should be trimmed to the max length")
	}
	if user.UserID != long[0:dtos.MaxStringLength] {
		t.Error("Trimmed UserID should be a prefix of the original")
	}
	if len(user.Email) != dtos.MaxStringLength {
		t.Error("Email should be trimmed to the max length")
	}
	if user.Country != "AR" {
		t.Error("Fields within the limit should be untouched")
	}
}

func TestSetUserDropsOversizedAttributes(t *testing.T) {
	manager := NewManager("", logging.NewLogger(&logging.LoggerOptions{}))

	manager.SetUser(&dtos.User{
		UserID: "u1",
		Custom: map[string]interface{}{"blob": strings.Repeat("x", dtos.MaxStructuredSize+1)},
		PrivateAttributes: map[string]interface{}{
			"secret": "ok",
		},
	})

	user := manager.User()
	if len(user.Custom) != 0 {
		t.Error("Oversized custom attributes should be dropped wholesale")
	}
	if len(user.PrivateAttributes) != 1 {
		t.Error("Private attributes within the limit should survive")
	}
	if user.UserID != "u1" {
		t.Error("Other fields should be untouched")
	}
}

func TestLoggingSnapshotStripsPrivateAttributes(t *testing.T) {
	manager := NewManager("", logging.NewLogger(&logging.LoggerOptions{}))

	manager.SetUser(&dtos.User{
		UserID:            "u1",
		PrivateAttributes: map[string]interface{}{"ssn": "xxx"},
	})

	snapshot := manager.LoggingSnapshot()
	if snapshot.PrivateAttributes != nil {
		t.Error("Logging snapshot should never carry private attributes")
	}
	if snapshot.UserID != "u1" {
		t.Error("Logging snapshot should keep public fields")
	}

	// The internal user still carries them for evaluation requests
	if len(manager.User().PrivateAttributes) != 1 {
		t.Error("Evaluation user should keep private attributes")
	}
}

func TestNilUserBecomesEmptyIdentity(t *testing.T) {
	manager := NewManager("", logging.NewLogger(&logging.LoggerOptions{}))
	manager.SetUser(nil)
	if manager.User() == nil {
		t.Error("A nil user should be stored as an empty identity")
	}
}

func TestEnvironmentTierIsAttached(t *testing.T) {
	manager := NewManager("staging", logging.NewLogger(&logging.LoggerOptions{}))
	manager.SetUser(&dtos.User{UserID: "u1"})

	user := manager.User()
	if user.StatsigEnvironment["tier"] != "staging" {
		t.Error("Environment tier should be attached to the stored user")
	}
}

func TestUserCopiesAreIsolated(t *testing.T) {
	manager := NewManager("", logging.NewLogger(&logging.LoggerOptions{}))
	original := &dtos.User{UserID: "u1", Custom: map[string]interface{}{"k": "v"}}
	manager.SetUser(original)

	// Mutating the caller's map must not affect the stored snapshot
	original.Custom["k"] = "mutated"
	if manager.User().Custom["k"] != "v" {
		t.Error("Stored user should not alias the caller's maps")
	}

	// Nor should mutating a returned copy
	manager.User().Custom["k"] = "mutated-again"
	if manager.User().Custom["k"] != "v" {
		t.Error("Returned users should be copies")
	}
}
