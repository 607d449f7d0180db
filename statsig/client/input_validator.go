package client

import (
	"strings"

	"github.com/splitio/go-toolkit/v5/logging"

	"github.com/statsig-io/go-client/statsig/sdkerrors"
)

const clientKeyPrefix = "client-"
const testKeyPrefix = "test-"
const secretKeyPrefix = "secret-"

// validateSDKKey checks the key shape before any request is issued. Server
// secret keys must never ship inside a client, so they are rejected outright.
func validateSDKKey(key string, logger logging.LoggerInterface) error {
	if key == "" {
		return sdkerrors.NewInitialization("an sdk key must be provided")
	}
	if strings.HasPrefix(key, secretKeyPrefix) {
		return sdkerrors.NewInitialization("you passed a server secret key; grab a key of type \"client\" from the console instead")
	}
	if !strings.HasPrefix(key, clientKeyPrefix) && !strings.HasPrefix(key, testKeyPrefix) {
		logger.Warning("The supplied sdk key does not look like a client key. Requests may be rejected by the backend.")
	}
	return nil
}

// validateName checks that a gate/config/event name argument is usable
func validateName(operation string, argument string, value string) error {
	if strings.TrimSpace(value) == "" {
		return sdkerrors.NewInvalidArgument(operation, argument)
	}
	return nil
}
