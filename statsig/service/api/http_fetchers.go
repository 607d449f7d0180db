package api

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/splitio/go-toolkit/v5/logging"

	"github.com/statsig-io/go-client/statsig/dtos"
)

type httpFetcherBase struct {
	client *HTTPClient
	logger logging.LoggerInterface
}

// HTTPInitializeFetcher is responsible for fetching the pre-evaluated result
// set for a user from the initialize endpoint.
type HTTPInitializeFetcher struct {
	httpFetcherBase
	metadata dtos.SdkMetadataFields
}

// NewHTTPInitializeFetcher instantiates and returns an HTTPInitializeFetcher
func NewHTTPInitializeFetcher(
	sdkKey string,
	apiURL string,
	timeout int,
	metadata dtos.SdkMetadataFields,
	logger logging.LoggerInterface,
) *HTTPInitializeFetcher {
	return &HTTPInitializeFetcher{
		httpFetcherBase: httpFetcherBase{
			client: NewHTTPClient(sdkKey, apiURL, timeout, metadata.SDKType, metadata.SDKVersion, logger),
			logger: logger,
		},
		metadata: metadata,
	}
}

type initializeRequest struct {
	User            *dtos.User             `json:"user"`
	StatsigMetadata dtos.SdkMetadataFields `json:"statsigMetadata"`
	SinceTime       int64                  `json:"sinceTime"`
	Time            int64                  `json:"time"`
}

// Fetch posts the sanitized user to the initialize endpoint and returns the
// decoded response plus the raw body for caching.
func (f *HTTPInitializeFetcher) Fetch(user *dtos.User) (*dtos.InitializeResponse, []byte, error) {
	body, err := json.Marshal(initializeRequest{
		User:            user,
		StatsigMetadata: f.metadata,
		SinceTime:       0,
		Time:            time.Now().UnixMilli(),
	})
	if err != nil {
		f.logger.Error("Error marshaling initialize request JSON ", err.Error())
		return nil, nil, err
	}

	data, err := f.client.Post("/initialize", body, false)
	if err != nil {
		f.logger.Error("Error fetching initialize response ", err.Error())
		return nil, nil, err
	}

	var response dtos.InitializeResponse
	if err := json.Unmarshal(data, &response); err != nil {
		f.logger.Error("Error parsing initialize response JSON ", err.Error())
		return nil, nil, err
	}
	return &response, data, nil
}
