package transport

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 120 * time.Second

// HTTPTransport is the blocking implementation: done fires on the caller's
// goroutine before PostJSON returns. Suitable for tests, tools and offline
// verification.
type HTTPTransport struct {
	// Client is used when set; otherwise a per-call client with cfg.Timeout
	// is constructed. Tests inject httptest-backed clients here.
	Client *http.Client
}

// NewHTTPTransport создает новый синхронный транспорт.
func NewHTTPTransport() *HTTPTransport {
	return &HTTPTransport{}
}

// PostJSON sends body to cfg.Endpoint and reports the outcome through done
// exactly once.
func (t *HTTPTransport) PostJSON(body []byte, cfg Config, done func(Result)) {
	req, err := http.NewRequest(http.MethodPost, cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		done(Result{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	if cfg.Referer != "" {
		req.Header.Set("HTTP-Referer", cfg.Referer)
	}
	if cfg.Title != "" {
		req.Header.Set("X-Title", cfg.Title)
	}

	client := t.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		// No HTTP response at all: connection failure or client timeout.
		done(Result{Error: fmt.Sprintf("request failed: %v", err), Status: 0})
		return
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		done(Result{Error: fmt.Sprintf("failed to read response body: %v", err), Status: resp.StatusCode})
		return
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		done(Result{Error: msg, Status: resp.StatusCode})
		return
	}

	done(Result{Success: true, Body: string(raw), Status: resp.StatusCode})
}
