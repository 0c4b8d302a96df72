package util

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// LoggingTransport is an http.RoundTripper that logs requests and JSON/form bodies at
// debug level. Other bodies (file content) are passed through untouched so downloads
// keep streaming.
type LoggingTransport struct {
	Base     http.RoundTripper
	LogLevel string
	Logger   *slog.Logger
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	if strings.ToLower(t.LogLevel) != "debug" {
		return base.RoundTrip(req)
	}

	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Request logging
	if req.Body != nil && isTextual(req.Header.Get("Content-Type")) {
		reqBody, _ := io.ReadAll(req.Body)
		req.Body.Close()
		req.Body = io.NopCloser(bytes.NewBuffer(reqBody))
		logger.Debug("outbound request", "method", req.Method, "url", req.URL.String(), "body", redact(string(reqBody)))
	} else {
		logger.Debug("outbound request", "method", req.Method, "url", req.URL.String())
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		logger.Debug("outbound request failed", "url", req.URL.String(), "error", err)
		return resp, err
	}

	if !isTextual(resp.Header.Get("Content-Type")) {
		logger.Debug("outbound response", "status", resp.StatusCode, "url", req.URL.String(), "length", resp.ContentLength)
		return resp, nil
	}

	respBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewBuffer(respBody))

	logger.Debug("outbound response", "status", resp.StatusCode, "url", req.URL.String(), "body", redact(string(respBody)))
	return resp, nil
}

func isTextual(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.HasPrefix(ct, "application/json") ||
		strings.HasPrefix(ct, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(ct, "text/")
}

// redact hides credentials that appear in token requests and responses.
func redact(body string) string {
	for _, key := range []string{"refresh_token", "access_token"} {
		if strings.Contains(body, key) {
			return "<redacted>"
		}
	}
	return body
}

// UserAgentTransport sets the User-Agent header on every request.
type UserAgentTransport struct {
	Base      http.RoundTripper
	UserAgent string
}

func (t *UserAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if t.UserAgent == "" {
		return base.RoundTrip(req)
	}

	// RoundTrippers must not modify the caller's request.
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.UserAgent)
	return base.RoundTrip(clone)
}
