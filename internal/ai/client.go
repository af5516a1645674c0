// Package ai is the request engine: the single authority for turning prompts
// into wire requests and completion bodies into typed results. It owns the
// two response schemas (free-text narration and the choice-dilemma JSON) and
// every failure mode between them; callers only ever see a success callback
// or a descriptive error string, never a fault.
package ai

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"storyteller/internal/model"
	"storyteller/internal/transport"
)

// Token budgets per operation. Choice payloads are JSON and verbose, so they
// get a far larger budget than flavor narration.
const (
	NarrationMaxTokens = 200
	ChoiceMaxTokens    = 2000
	testMaxTokens      = 10
)

const (
	errNotConfigured = "Not configured: no API key set"
	errNoChoices     = "No response from API"
)

// Client drives one endpoint configuration through a Transport. It holds no
// mutable state; construct one per effective configuration and pass it
// explicitly.
type Client struct {
	tcfg transport.Config
	tr   transport.Transport
	log  zerolog.Logger
}

// New создает новый экземпляр движка запросов.
func New(tcfg transport.Config, tr transport.Transport, log zerolog.Logger) *Client {
	return &Client{tcfg: tcfg, tr: tr, log: log}
}

// IsConfigured reports whether a credential is set. Operations fail fast
// through the error callback when it is not.
func (c *Client) IsConfigured() bool {
	return strings.TrimSpace(c.tcfg.APIKey) != ""
}

// BuildNarrationRequest assembles the two-message (system, user) request for
// atmospheric narration. Pure; no I/O.
func BuildNarrationRequest(modelName string, temperature float64, systemPrompt, userPrompt string) model.ChatRequest {
	return model.ChatRequest{
		Model: modelName,
		Messages: []model.ChatMessage{
			{Role: model.RoleSystem, Content: systemPrompt},
			{Role: model.RoleUser, Content: userPrompt},
		},
		Temperature: temperature,
		MaxTokens:   NarrationMaxTokens,
	}
}

// BuildChoiceRequest assembles the request for dilemma generation. Same
// shape as narration, larger token budget.
func BuildChoiceRequest(modelName string, temperature float64, systemPrompt, userPrompt string) model.ChatRequest {
	req := BuildNarrationRequest(modelName, temperature, systemPrompt, userPrompt)
	req.MaxTokens = ChoiceMaxTokens
	return req
}

// BuildTestRequest assembles the minimal single-message request used only
// for connectivity checks.
func BuildTestRequest(modelName string) model.ChatRequest {
	return model.ChatRequest{
		Model: modelName,
		Messages: []model.ChatMessage{
			{Role: model.RoleUser, Content: "Respond with one word: OK"},
		},
		Temperature: 0,
		MaxTokens:   testMaxTokens,
	}
}

// RequestNarration sends req and delivers either a NarrationResult or an
// error string. Exactly one of the callbacks fires, exactly once.
func (c *Client) RequestNarration(req model.ChatRequest, onSuccess func(model.NarrationResult), onError func(string)) {
	c.dispatch("narration", req, onError, func(resp model.ChatResponse) {
		msg := resp.Choices[0].Message
		result := model.NarrationResult{
			Success: true,
			Text:    strings.TrimSpace(msg.Content),
			Usage:   resp.Usage,
		}
		// Reasoning-capable models sometimes return empty content with the
		// real text in the reasoning side channel. Flag it; do not
		// substitute — that policy belongs to the caller.
		if result.Text == "" && strings.TrimSpace(msg.Reasoning) != "" {
			result.ReasoningOnly = true
			result.Reasoning = strings.TrimSpace(msg.Reasoning)
			c.log.Warn().Str("model", req.Model).Msg("completion has empty content with non-empty reasoning")
		}
		observeUsage(req.Model, resp.Usage)
		onSuccess(result)
	})
}

// RequestChoiceEvent sends req and runs the completion text through the
// tiered parsing chain. onSuccess receives a result with at least one valid
// event; any transport, decode or content-parse failure goes to onError.
func (c *Client) RequestChoiceEvent(req model.ChatRequest, onSuccess func(model.ChoiceEventResult), onError func(string)) {
	c.dispatch("choice", req, onError, func(resp model.ChatResponse) {
		observeUsage(req.Model, resp.Usage)
		result := ParseChoiceEventContent(resp.Choices[0].Message.Content)
		if !result.Success {
			c.log.Warn().Str("parseError", result.Error).Int("rawLen", len(result.RawContent)).
				Msg("choice completion yielded no usable event")
			onError(result.Error)
			return
		}
		onSuccess(result)
	})
}

// TestConnection performs a minimal call and maps the common HTTP failure
// classes to operator-readable messages.
func (c *Client) TestConnection(req model.ChatRequest, onSuccess func(), onError func(string)) {
	if !c.IsConfigured() {
		onError(errNotConfigured)
		return
	}
	body, err := json.Marshal(req)
	if err != nil {
		onError("Failed to encode request: " + err.Error())
		return
	}

	start := time.Now()
	c.tr.PostJSON(body, c.tcfg, func(res transport.Result) {
		if !res.Success {
			observeRequest("test", "error", time.Since(start))
			switch res.Status {
			case 401:
				onError("Invalid API key")
			case 429:
				onError("Rate limited - try again later")
			default:
				onError(res.Error)
			}
			return
		}

		var resp model.ChatResponse
		if err := json.Unmarshal([]byte(res.Body), &resp); err != nil {
			observeRequest("test", "error", time.Since(start))
			onError("Failed to parse API response: " + err.Error())
			return
		}
		if resp.Error != nil {
			observeRequest("test", "error", time.Since(start))
			onError(resp.Error.Message)
			return
		}
		observeRequest("test", "success", time.Since(start))
		onSuccess()
	})
}

// dispatch runs the shared request path: configuration guard, encoding,
// transport, envelope decode and the semantic checks common to both
// operations. onDecoded only fires with at least one choice present.
func (c *Client) dispatch(operation string, req model.ChatRequest, onError func(string), onDecoded func(model.ChatResponse)) {
	if !c.IsConfigured() {
		onError(errNotConfigured)
		return
	}

	body, err := json.Marshal(req)
	if err != nil {
		onError("Failed to encode request: " + err.Error())
		return
	}

	// Token estimation loads a tokenizer, so only pay for it when debug
	// logging is actually on.
	if e := c.log.Debug(); e.Enabled() {
		e.Str("operation", operation).
			Str("model", req.Model).
			Int("maxTokens", req.MaxTokens).
			Int("estPromptTokens", estimatePromptTokens(req)).
			Msg("dispatching request")
	}

	start := time.Now()
	c.tr.PostJSON(body, c.tcfg, func(res transport.Result) {
		elapsed := time.Since(start)
		if !res.Success {
			observeRequest(operation, "error", elapsed)
			c.log.Warn().Str("operation", operation).Int("status", res.Status).Str("error", res.Error).
				Msg("transport failure")
			onError(res.Error)
			return
		}

		var resp model.ChatResponse
		if err := json.Unmarshal([]byte(res.Body), &resp); err != nil {
			observeRequest(operation, "error_decode", elapsed)
			onError("Failed to parse API response: " + err.Error())
			return
		}
		if resp.Error != nil {
			observeRequest(operation, "error_api", elapsed)
			onError("API error: " + resp.Error.Message)
			return
		}
		if len(resp.Choices) == 0 {
			observeRequest(operation, "error_empty", elapsed)
			onError(errNoChoices)
			return
		}

		observeRequest(operation, "success", elapsed)
		c.log.Debug().Str("operation", operation).Dur("elapsed", elapsed).
			Int("contentLen", len(resp.Choices[0].Message.Content)).Msg("completion received")
		onDecoded(resp)
	})
}
