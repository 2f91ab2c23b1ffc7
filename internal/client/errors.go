package client

import "errors"

// Provider error taxonomy. Every extractor failure wraps exactly one of these
// so callers can map to a user-visible message with errors.Is. None of them
// trigger a retry; a single failed call surfaces immediately.
var (
	// ErrNotFound means the provider does not recognize the identifier
	// (unknown city, unknown ticker symbol).
	ErrNotFound = errors.New("identifier not found")

	// ErrInvalidAPIKey means the provider rejected the configured key.
	ErrInvalidAPIKey = errors.New("invalid API key")

	// ErrRateLimited means the provider signalled throttling. Distinguished
	// from ErrUpstream so the caller can surface a clearer message; no
	// automatic backoff is performed.
	ErrRateLimited = errors.New("provider rate limited")

	// ErrUpstream covers network failures, non-2xx statuses and anything
	// else the provider did that we cannot classify more precisely.
	ErrUpstream = errors.New("upstream failure")
)

// Mode reports how a client sources its data.
type Mode string

const (
	// ModeLive means requests go out to the real provider.
	ModeLive Mode = "live"
	// ModeDemo means no API key is configured and the client serves a fixed
	// embedded sample payload instead of dialing out.
	ModeDemo Mode = "demo"
)
