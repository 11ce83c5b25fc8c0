// Package llm wraps the multimodal chat-completion API used to score designs.
package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrModelRequest wraps transport and API failures from the model provider.
// These are not recoverable locally and surface as HTTP 500s.
var ErrModelRequest = errors.New("model request failed")

// Config holds client settings.
type Config struct {
	APIKey    string
	Model     string        // Default: gpt-4o
	BaseURL   string        // Optional OpenAI-compatible gateway
	Timeout   time.Duration // Per-call timeout (default 120s)
	MaxTokens int           // Default 1500
}

// Client sends one prompt plus one embedded image to the completion API and
// returns the raw text reply. Callers parse the reply; the client makes no
// attempt to interpret it.
type Client struct {
	api       *openai.Client
	model     string
	maxTokens int
}

// New creates a model client from config.
func New(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm: API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = openai.GPT4o
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1500
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		api:       openai.NewClientWithConfig(clientConfig),
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// AnalyzeImage sends the prompt with the image embedded as a base64 data URL
// and returns the model's text reply verbatim.
func (c *Client) AnalyzeImage(ctx context.Context, prompt string, image []byte) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: prompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: imageDataURL(image),
						},
					},
				},
			},
		},
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModelRequest, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrModelRequest)
	}

	return resp.Choices[0].Message.Content, nil
}

// imageDataURL encodes image bytes as a data URL for the image_url content
// part. The API accepts PNG bytes under an image/jpeg data URL, so the MIME
// type is fixed rather than sniffed.
func imageDataURL(image []byte) string {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)
}
