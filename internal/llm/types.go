package llm

import (
	"fmt"
)

// Message represents a chat message.
//
// Role: "system", "user", or "assistant"
// Content: Text content of the message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat requests a constrained output mode from the model.
// Type "json_object" forces the completion to be a single JSON document.
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatRequest represents a chat completion request.
// Compatible with the OpenAI API format.
type ChatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatResponse represents a chat completion response.
// Compatible with the OpenAI API format.
type ChatResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
	Error   *Error   `json:"error,omitempty"`
}

// Choice represents a completion choice.
//
// FinishReason values: "stop", "length", "content_filter", "tool_calls"
type Choice struct {
	Index        int     `json:"index"`
	Message      Message `json:"message"`
	FinishReason string  `json:"finish_reason"`
}

// Usage represents token usage statistics.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Error represents an API error payload.
type Error struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Param   string `json:"param,omitempty"`
	Code    string `json:"code,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("LLM API Error: %s (type: %s, code: %s)", e.Message, e.Type, e.Code)
}

// ChatCompletionOptions represents per-request options.
//
// SystemPrompt: System prompt to set context
// MaxTokens: Maximum tokens for the response (0 = config default)
// Temperature: Temperature for the response (<0 = config default)
// JSONMode: Whether to force a JSON object response
type ChatCompletionOptions struct {
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
	JSONMode     bool
}

// NewChatCompletionOptions creates options with defaults.
func NewChatCompletionOptions() *ChatCompletionOptions {
	return &ChatCompletionOptions{
		Temperature: -1, // use config default
	}
}

// WithSystemPrompt sets the system prompt.
func (o *ChatCompletionOptions) WithSystemPrompt(prompt string) *ChatCompletionOptions {
	o.SystemPrompt = prompt
	return o
}

// WithMaxTokens sets the max tokens.
func (o *ChatCompletionOptions) WithMaxTokens(maxTokens int) *ChatCompletionOptions {
	o.MaxTokens = maxTokens
	return o
}

// WithTemperature sets the temperature.
func (o *ChatCompletionOptions) WithTemperature(temperature float64) *ChatCompletionOptions {
	o.Temperature = temperature
	return o
}

// WithJSONMode forces a JSON object response.
func (o *ChatCompletionOptions) WithJSONMode() *ChatCompletionOptions {
	o.JSONMode = true
	return o
}
