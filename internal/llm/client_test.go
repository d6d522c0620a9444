package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(url string) *Config {
	return &Config{
		APIKey:      "test-key",
		APIURL:      url,
		Model:       "test-model",
		MaxTokens:   1000,
		Temperature: 0.7,
		Timeout:     30,
	}
}

func TestNewClient(t *testing.T) {
	config := testConfig("https://api.example.com")

	client, err := NewClient(config)
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.Equal(t, config, client.config)
	assert.Equal(t, config.APIURL, client.baseURL)
	assert.NotNil(t, client.httpClient)

	// Missing API key
	_, err = NewClient(&Config{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestChatCompletionWithMockServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "/chat/completions", r.URL.Path)

		response := `{
			"id": "test-id",
			"object": "chat.completion",
			"created": 1234567890,
			"model": "test-model",
			"choices": [{
				"index": 0,
				"message": {
					"role": "assistant",
					"content": "Hello! This is a test response."
				},
				"finish_reason": "stop"
			}],
			"usage": {
				"prompt_tokens": 10,
				"completion_tokens": 20,
				"total_tokens": 30
			}
		}`
		_, _ = w.Write([]byte(response))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	messages := []Message{
		{Role: "user", Content: "Hello, how are you?"},
	}
	response, err := client.ChatCompletion(context.Background(), messages, nil)
	require.NoError(t, err)
	require.Len(t, response.Choices, 1)
	assert.Equal(t, "Hello! This is a test response.", response.Choices[0].Message.Content)
	assert.Equal(t, 30, response.Usage.TotalTokens)
}

func TestCompleteJSONSetsResponseFormat(t *testing.T) {
	var captured ChatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "test-id",
			"choices": [{
				"index": 0,
				"message": {"role": "assistant", "content": "{\"summary\":\"ok\"}"},
				"finish_reason": "stop"
			}]
		}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	content, err := client.CompleteJSON(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)
	assert.JSONEq(t, `{"summary":"ok"}`, content)

	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "system", captured.Messages[0].Role)
	assert.Equal(t, "system prompt", captured.Messages[0].Content)
	assert.Equal(t, "user", captured.Messages[1].Role)
}

func TestChatCompletionAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{
			"error": {"message": "invalid api key", "type": "auth_error", "code": "401"}
		}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.CompleteJSON(context.Background(), "", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestChatCompletionNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "empty", "choices": []}`))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL))
	require.NoError(t, err)

	_, err = client.SimpleChat(context.Background(), "hi", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestConfigValidate(t *testing.T) {
	valid := testConfig("https://api.example.com")
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing key", func(c *Config) { c.APIKey = "" }},
		{"missing url", func(c *Config) { c.APIURL = "" }},
		{"missing model", func(c *Config) { c.Model = "" }},
		{"zero max tokens", func(c *Config) { c.MaxTokens = 0 }},
		{"temperature too high", func(c *Config) { c.Temperature = 2.5 }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := *testConfig("https://api.example.com")
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestGetHeaders(t *testing.T) {
	cfg := testConfig("https://api.example.com")
	cfg.SiteURL = "https://globalacademy.example"
	cfg.AppName = "GlobalAcademy"

	headers := cfg.GetHeaders()
	assert.Equal(t, "Bearer test-key", headers["Authorization"])
	assert.Equal(t, "https://globalacademy.example", headers["HTTP-Referer"])
	assert.Equal(t, "GlobalAcademy", headers["X-Title"])
}
