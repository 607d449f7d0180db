// Package statsig contains version and session metadata shared across the SDK.
package statsig

import (
	"runtime"

	"github.com/statsig-io/go-client/statsig/dtos"
)

// Version is the version of the SDK submitted with every request
const Version = "1.0.0"

// SdkType identifies this SDK flavor against the backend
const SdkType = "go-client"

// NewSdkMetadata builds the session metadata attached to every outgoing
// payload. The stable ID is owned by the caller since it may come from
// persistent storage.
func NewSdkMetadata(sessionID string, stableID string) dtos.SdkMetadataFields {
	return dtos.SdkMetadataFields{
		SDKType:         SdkType,
		SDKVersion:      Version,
		LanguageVersion: runtime.Version()[2:],
		SessionID:       sessionID,
		StableID:        stableID,
	}
}
