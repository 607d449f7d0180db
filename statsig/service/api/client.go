// Package api contains the HTTP plumbing used to talk to the Statsig backend.
package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/splitio/go-toolkit/v5/logging"
)

const defaultHTTPTimeout = 30

// HTTPClient structure to wrap up the net/http.Client
type HTTPClient struct {
	url        string
	httpClient *http.Client
	logger     logging.LoggerInterface
	sdkKey     string
	sdkType    string
	version    string
}

// NewHTTPClient instance of HTTPClient
func NewHTTPClient(
	sdkKey string,
	endpoint string,
	timeout int,
	sdkType string,
	version string,
	logger logging.LoggerInterface,
) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	client := &http.Client{Timeout: time.Duration(timeout) * time.Second}
	return &HTTPClient{
		url:        endpoint,
		httpClient: client,
		logger:     logger,
		sdkKey:     sdkKey,
		sdkType:    sdkType,
		version:    version,
	}
}

func (c *HTTPClient) addCommonHeaders(req *http.Request) {
	c.logger.Debug("Authorization [ApiKey]: ", logging.ObfuscateAPIKey(c.sdkKey))
	req.Header.Add("STATSIG-API-KEY", c.sdkKey)
	req.Header.Add("STATSIG-SDK-TYPE", c.sdkType)
	req.Header.Add("STATSIG-SDK-VERSION", c.version)
	req.Header.Add("STATSIG-CLIENT-TIME", strconv.FormatInt(time.Now().UnixMilli(), 10))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept-Encoding", "gzip")
}

// Post performs a HTTP POST request against the given service path. When
// compress is set the body is gzip-encoded before transmission.
func (c *HTTPClient) Post(service string, body []byte, compress bool) ([]byte, error) {
	serviceURL := c.url + service
	c.logger.Debug("[POST] ", serviceURL)

	payload := body
	if compress {
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		if _, err := gz.Write(body); err != nil {
			c.logger.Error("Error compressing request body: ", err.Error())
			return nil, err
		}
		if err := gz.Close(); err != nil {
			c.logger.Error("Error compressing request body: ", err.Error())
			return nil, err
		}
		payload = buf.Bytes()
	}

	req, _ := http.NewRequest("POST", serviceURL, bytes.NewBuffer(payload))
	req.Close = true // To prevent EOF error when connection is closed
	c.addCommonHeaders(req)
	if compress {
		req.Header.Add("Content-Encoding", "gzip")
	}

	c.logger.Verbose("[REQUEST_BODY]", string(body), "[END_REQUEST_BODY]")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Error posting data to API: ", req.URL.String(), err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	var reader io.ReadCloser
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		reader, err = gzip.NewReader(resp.Body)
		if err != nil {
			c.logger.Error("Error decompressing response body: ", err.Error())
			return nil, err
		}
		defer reader.Close()
	default:
		reader = resp.Body
	}

	respBody, err := io.ReadAll(reader)
	if err != nil {
		c.logger.Error(err.Error())
		return nil, err
	}

	c.logger.Verbose("[RESPONSE_BODY]", string(respBody), "[END_RESPONSE_BODY]")

	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		return respBody, nil
	}

	return nil, fmt.Errorf("POST method: Status Code: %d - %s", resp.StatusCode, resp.Status)
}
