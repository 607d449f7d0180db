// Package api contains the HTTP plumbing used to talk to the Statsig backend.
package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/splitio/go-toolkit/v5/logging"
)

func TestPostSendsCommonHeaders(t *testing.T) {
	logger := logging.NewLogger(&logging.LoggerOptions{})

	var gotHeaders http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		w.Write([]byte("{}"))
	}))
	defer ts.Close()

	client := NewHTTPClient("client-key", ts.URL, 0, "go-client", "1.0.0", logger)
	if _, err := client.Post("/initialize", []byte(`{"user":{}}`), false); err != nil {
		t.Error("Post should not fail: ", err)
	}

	if gotHeaders.Get("STATSIG-API-KEY") != "client-key" {
		t.Error("Missing api key header")
	}
	if gotHeaders.Get("STATSIG-SDK-TYPE") != "go-client" {
		t.Error("Missing sdk type header")
	}
	if gotHeaders.Get("STATSIG-SDK-VERSION") != "1.0.0" {
		t.Error("Missing sdk version header")
	}
	if gotHeaders.Get("STATSIG-CLIENT-TIME") == "" {
		t.Error("Missing client time header")
	}
	if gotHeaders.Get("Content-Type") != "application/json" {
		t.Error("Missing content type header")
	}
}

func TestPostCompressesBody(t *testing.T) {
	logger := logging.NewLogger(&logging.LoggerOptions{})

	var gotEncoding string
	var gotBody []byte
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEncoding = r.Header.Get("Content-Encoding")
		reader, err := gzip.NewReader(r.Body)
		if err != nil {
			t.Error("Body should be gzip encoded: ", err)
			return
		}
		gotBody, _ = io.ReadAll(reader)
		w.Write([]byte("{}"))
	}))
	defer ts.Close()

	client := NewHTTPClient("client-key", ts.URL, 0, "go-client", "1.0.0", logger)
	original := []byte(`{"events":[{"eventName":"purchase"}]}`)
	if _, err := client.Post("/rgstr", original, true); err != nil {
		t.Error("Post should not fail: ", err)
	}

	if gotEncoding != "gzip" {
		t.Error("Compressed posts should declare their encoding")
	}
	if string(gotBody) != string(original) {
		t.Error("Decompressed body should match the original")
	}
}

func TestPostHTTPError(t *testing.T) {
	logger := logging.NewLogger(&logging.LoggerOptions{})

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusInternalServerError),
			http.StatusInternalServerError)
	}))
	defer ts.Close()

	client := NewHTTPClient("client-key", ts.URL, 0, "go-client", "1.0.0", logger)
	if _, err := client.Post("/initialize", []byte("{}"), false); err == nil {
		t.Error("Error expected but not found")
	}
}

func TestPostDecompressesGzipResponse(t *testing.T) {
	logger := logging.NewLogger(&logging.LoggerOptions{})

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte(`{"ok":true}`))
		gz.Close()
	}))
	defer ts.Close()

	client := NewHTTPClient("client-key", ts.URL, 0, "go-client", "1.0.0", logger)
	body, err := client.Post("/initialize", []byte("{}"), false)
	if err != nil {
		t.Error("Post should not fail: ", err)
	}
	if string(body) != `{"ok":true}` {
		t.Error("Gzip responses should be transparently decoded")
	}
}
