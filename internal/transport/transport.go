// Package transport delivers JSON payloads to a chat-completions endpoint.
// It knows nothing about the payload shape; the engine owns encoding and
// decoding. A Result with Status 0 means no HTTP response was received at
// all (connection refused, DNS failure, timeout).
package transport

import "time"

// Config carries everything one call needs to reach the endpoint.
type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
	// Identification headers required by OpenRouter-style gateways.
	Referer string
	Title   string
}

// Result is the outcome of a single POST. Exactly one of Body and Error is
// meaningful, selected by Success.
type Result struct {
	Success bool
	Body    string
	Error   string
	Status  int
}

// Transport sends one JSON body and reports the outcome through done.
// Implementations must invoke done at most once, must enforce cfg.Timeout
// themselves, and must never retry; cancellation after dispatch is not
// supported.
type Transport interface {
	PostJSON(body []byte, cfg Config, done func(Result))
}
