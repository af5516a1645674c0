package ai_test

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storyteller/internal/ai"
	"storyteller/internal/model"
	"storyteller/internal/transport"
)

// stubTransport completes every call with a fixed result and records the
// last body it was given.
type stubTransport struct {
	result  transport.Result
	gotBody []byte
	calls   int
}

func (s *stubTransport) PostJSON(body []byte, _ transport.Config, done func(transport.Result)) {
	s.calls++
	s.gotBody = body
	done(s.result)
}

func newTestClient(tr transport.Transport) *ai.Client {
	return ai.New(transport.Config{
		Endpoint: "https://example.test/v1/chat/completions",
		APIKey:   "test-key",
	}, tr, zerolog.Nop())
}

func successBody(t *testing.T, content string) string {
	t.Helper()
	resp := model.ChatResponse{
		ID:      "cmpl-1",
		Choices: []model.ChatChoice{{Index: 0, Message: model.ChatMessage{Role: model.RoleAssistant, Content: content}, FinishReason: "stop"}},
		Usage:   model.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(raw)
}

func TestBuildNarrationRequest(t *testing.T) {
	req := ai.BuildNarrationRequest("test/model", 0.8, "system prompt", "user prompt")

	require.Len(t, req.Messages, 2)
	assert.Equal(t, model.RoleSystem, req.Messages[0].Role)
	assert.Equal(t, "system prompt", req.Messages[0].Content)
	assert.Equal(t, model.RoleUser, req.Messages[1].Role)
	assert.Equal(t, "user prompt", req.Messages[1].Content)
	assert.Equal(t, 0.8, req.Temperature)
	assert.Equal(t, ai.NarrationMaxTokens, req.MaxTokens)
	assert.False(t, req.Stream)
}

func TestBuildChoiceRequest(t *testing.T) {
	req := ai.BuildChoiceRequest("test/model", 0.5, "sys", "usr")

	require.Len(t, req.Messages, 2)
	assert.Equal(t, model.RoleSystem, req.Messages[0].Role)
	assert.Equal(t, ai.ChoiceMaxTokens, req.MaxTokens)
}

func TestBuildTestRequest(t *testing.T) {
	req := ai.BuildTestRequest("test/model")

	require.Len(t, req.Messages, 1)
	assert.Equal(t, model.RoleUser, req.Messages[0].Role)
	assert.NotEmpty(t, req.Messages[0].Content)
	assert.Equal(t, 10, req.MaxTokens)
}

func TestChatRequestRoundTrip(t *testing.T) {
	req := ai.BuildNarrationRequest("test/model", 0.6, "sys", "usr")

	raw, err := json.Marshal(req)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "test/model", decoded["model"])
	assert.Equal(t, 0.6, decoded["temperature"])
	assert.Equal(t, float64(ai.NarrationMaxTokens), decoded["max_tokens"])
	assert.Equal(t, false, decoded["stream"])

	messages, ok := decoded["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	first := messages[0].(map[string]any)
	second := messages[1].(map[string]any)
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "user", second["role"])
}

func TestIsConfigured(t *testing.T) {
	assert.True(t, newTestClient(&stubTransport{}).IsConfigured())

	unconfigured := ai.New(transport.Config{}, &stubTransport{}, zerolog.Nop())
	assert.False(t, unconfigured.IsConfigured())
}

func TestRequestNarration_NotConfigured(t *testing.T) {
	tr := &stubTransport{}
	client := ai.New(transport.Config{}, tr, zerolog.Nop())

	var gotErr string
	client.RequestNarration(ai.BuildNarrationRequest("m", 0.7, "s", "u"),
		func(model.NarrationResult) { t.Fatal("onSuccess must not fire") },
		func(msg string) { gotErr = msg },
	)

	assert.Contains(t, gotErr, "ot configured")
	assert.Zero(t, tr.calls, "no network call before the configuration guard")
}

func TestRequestNarration_Success(t *testing.T) {
	tr := &stubTransport{result: transport.Result{Success: true, Body: successBody(t, "  The rain finally stops.  "), Status: 200}}
	client := newTestClient(tr)

	var got model.NarrationResult
	client.RequestNarration(ai.BuildNarrationRequest("m", 0.7, "s", "u"),
		func(res model.NarrationResult) { got = res },
		func(msg string) { t.Fatalf("unexpected error: %s", msg) },
	)

	assert.True(t, got.Success)
	assert.Equal(t, "The rain finally stops.", got.Text)
	assert.Equal(t, 15, got.Usage.TotalTokens)
	assert.False(t, got.ReasoningOnly)

	// The serialized request reached the transport intact.
	var sent model.ChatRequest
	require.NoError(t, json.Unmarshal(tr.gotBody, &sent))
	assert.Equal(t, "m", sent.Model)
}

func TestRequestNarration_ReasoningOnly(t *testing.T) {
	resp := model.ChatResponse{
		Choices: []model.ChatChoice{{Message: model.ChatMessage{Role: model.RoleAssistant, Content: "", Reasoning: "hidden chain of thought"}}},
	}
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	client := newTestClient(&stubTransport{result: transport.Result{Success: true, Body: string(raw), Status: 200}})

	var got model.NarrationResult
	client.RequestNarration(ai.BuildNarrationRequest("m", 0.7, "s", "u"),
		func(res model.NarrationResult) { got = res },
		func(msg string) { t.Fatalf("unexpected error: %s", msg) },
	)

	assert.True(t, got.Success)
	assert.Empty(t, got.Text, "reasoning text must not be substituted into content")
	assert.True(t, got.ReasoningOnly)
	assert.Equal(t, "hidden chain of thought", got.Reasoning)
}

func TestRequestNarration_APIError(t *testing.T) {
	body := `{"error":{"message":"model overloaded","type":"server_error"}}`
	client := newTestClient(&stubTransport{result: transport.Result{Success: true, Body: body, Status: 200}})

	var gotErr string
	client.RequestNarration(ai.BuildNarrationRequest("m", 0.7, "s", "u"),
		func(model.NarrationResult) { t.Fatal("onSuccess must not fire") },
		func(msg string) { gotErr = msg },
	)

	assert.Equal(t, "API error: model overloaded", gotErr)
}

func TestRequestNarration_NoChoices(t *testing.T) {
	client := newTestClient(&stubTransport{result: transport.Result{Success: true, Body: `{"id":"x","choices":[]}`, Status: 200}})

	var gotErr string
	client.RequestNarration(ai.BuildNarrationRequest("m", 0.7, "s", "u"),
		func(model.NarrationResult) { t.Fatal("onSuccess must not fire") },
		func(msg string) { gotErr = msg },
	)

	assert.Equal(t, "No response from API", gotErr)
}

func TestRequestNarration_MalformedBody(t *testing.T) {
	client := newTestClient(&stubTransport{result: transport.Result{Success: true, Body: "<html>bad gateway</html>", Status: 200}})

	var gotErr string
	client.RequestNarration(ai.BuildNarrationRequest("m", 0.7, "s", "u"),
		func(model.NarrationResult) { t.Fatal("onSuccess must not fire") },
		func(msg string) { gotErr = msg },
	)

	assert.Contains(t, gotErr, "Failed to parse API response")
}

func TestRequestNarration_TransportFailure(t *testing.T) {
	client := newTestClient(&stubTransport{result: transport.Result{Error: "request failed: connection refused", Status: 0}})

	var gotErr string
	client.RequestNarration(ai.BuildNarrationRequest("m", 0.7, "s", "u"),
		func(model.NarrationResult) { t.Fatal("onSuccess must not fire") },
		func(msg string) { gotErr = msg },
	)

	assert.Equal(t, "request failed: connection refused", gotErr)
}

func TestRequestChoiceEvent_Success(t *testing.T) {
	content := `{"Events":[{"NarrativeText":"A","Options":[{"Label":"X","HintText":"h","Consequences":[{"Type":"nothing","Parameters":{}}]}]}]}`
	client := newTestClient(&stubTransport{result: transport.Result{Success: true, Body: successBody(t, content), Status: 200}})

	var got model.ChoiceEventResult
	client.RequestChoiceEvent(ai.BuildChoiceRequest("m", 0.7, "s", "u"),
		func(res model.ChoiceEventResult) { got = res },
		func(msg string) { t.Fatalf("unexpected error: %s", msg) },
	)

	require.True(t, got.Success)
	require.Len(t, got.Events, 1)
	assert.Equal(t, "A", got.Events[0].NarrativeText)
	require.Len(t, got.Events[0].Options, 1)
	assert.Equal(t, "X", got.Events[0].Options[0].Label)
}

func TestRequestChoiceEvent_UnparseableContent(t *testing.T) {
	client := newTestClient(&stubTransport{result: transport.Result{Success: true, Body: successBody(t, "sorry, I cannot help with that"), Status: 200}})

	var gotErr string
	client.RequestChoiceEvent(ai.BuildChoiceRequest("m", 0.7, "s", "u"),
		func(model.ChoiceEventResult) { t.Fatal("onSuccess must not fire") },
		func(msg string) { gotErr = msg },
	)

	assert.Contains(t, gotErr, "No JSON object found")
}

func TestTestConnection_StatusMapping(t *testing.T) {
	cases := []struct {
		name    string
		result  transport.Result
		wantErr string
	}{
		{"unauthorized", transport.Result{Error: "Unauthorized", Status: 401}, "Invalid API key"},
		{"rate limited", transport.Result{Error: "Too Many Requests", Status: 429}, "Rate limited - try again later"},
		{"other failure", transport.Result{Error: "bad gateway", Status: 502}, "bad gateway"},
		{"network failure", transport.Result{Error: "request failed: dial tcp: timeout", Status: 0}, "request failed: dial tcp: timeout"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(&stubTransport{result: tc.result})

			var gotErr string
			client.TestConnection(ai.BuildTestRequest("m"),
				func() { t.Fatal("onSuccess must not fire") },
				func(msg string) { gotErr = msg },
			)
			assert.Equal(t, tc.wantErr, gotErr)
		})
	}
}

func TestTestConnection_APIErrorOn200(t *testing.T) {
	body := `{"error":{"message":"invalid model id","type":"invalid_request_error"}}`
	client := newTestClient(&stubTransport{result: transport.Result{Success: true, Body: body, Status: 200}})

	var gotErr string
	client.TestConnection(ai.BuildTestRequest("m"),
		func() { t.Fatal("onSuccess must not fire") },
		func(msg string) { gotErr = msg },
	)
	assert.Equal(t, "invalid model id", gotErr)
}

func TestTestConnection_Success(t *testing.T) {
	client := newTestClient(&stubTransport{result: transport.Result{Success: true, Body: successBody(t, "OK"), Status: 200}})

	fired := false
	client.TestConnection(ai.BuildTestRequest("m"),
		func() { fired = true },
		func(msg string) { t.Fatalf("unexpected error: %s", msg) },
	)
	assert.True(t, fired)
}
