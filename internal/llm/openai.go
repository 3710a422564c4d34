package llm

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// placeholderAPIKey is sent when OPENAI_API_KEY is unset. Ollama ignores it.
const placeholderAPIKey = "ollama"

// OpenAIClient implements the LLM interface using an OpenAI-compatible
// chat completions endpoint, such as the /v1 API Ollama serves.
type OpenAIClient struct {
	client  *openai.Client
	baseURL string
	server  string
	model   string
	timeout time.Duration
	log     zerolog.Logger
}

// NewOpenAIClient creates a new OpenAI-compatible client for the server at
// baseURL (without the /v1 suffix). OPENAI_API_KEY is used when set.
func NewOpenAIClient(baseURL, model string, opts ...Option) *OpenAIClient {
	o := buildOptions(opts)
	baseURL = strings.TrimRight(baseURL, "/") + "/v1"

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKey = placeholderAPIKey
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = baseURL
	cfg.HTTPClient = o.httpClient

	return &OpenAIClient{
		client:  openai.NewClientWithConfig(cfg),
		baseURL: baseURL,
		server:  hostOf(strings.TrimSuffix(baseURL, "/v1")),
		model:   model,
		timeout: o.timeout,
		log:     o.log.With().Str("component", "openai").Logger(),
	}
}

// Endpoint implements LLM.
func (c *OpenAIClient) Endpoint() string {
	return c.baseURL + "/chat/completions"
}

// Model implements LLM.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Generate implements LLM. The prompt is sent as a single user message.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	c.log.Debug().Str("url", c.Endpoint()).Msg("Posting chat completion request")
	start := time.Now()

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
		},
	)
	if err != nil {
		return "", c.classify(err)
	}
	c.log.Debug().Dur("elapsed", time.Since(start)).Msg("Chat completion finished")

	if len(resp.Choices) == 0 {
		return "", &NetworkError{Kind: KindMissingField, Server: c.server, Field: "choices"}
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &NetworkError{
			Kind:       KindHTTPStatus,
			Server:     c.server,
			StatusCode: apiErr.HTTPStatusCode,
			Detail:     apiErr.Message,
			Err:        err,
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &NetworkError{
			Kind:       KindHTTPStatus,
			Server:     c.server,
			StatusCode: reqErr.HTTPStatusCode,
			Err:        err,
		}
	}
	if isJSONError(err) {
		return &NetworkError{Kind: KindMalformedJSON, Server: c.server, Err: err}
	}
	return classifyTransportError(err, c.server, c.timeout)
}

var _ LLM = (*OpenAIClient)(nil)
