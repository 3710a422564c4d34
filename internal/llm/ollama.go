package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single generate request.
const DefaultTimeout = 300 * time.Second

// maxErrorDetail caps how much of an error body is echoed back to the user.
const maxErrorDetail = 512

// OllamaClient implements the LLM interface using Ollama's /api/generate endpoint.
type OllamaClient struct {
	baseURL    string
	server     string
	model      string
	timeout    time.Duration
	httpClient *http.Client
	log        zerolog.Logger
}

// Option configures an OllamaClient or OpenAIClient.
type Option func(*clientOptions)

type clientOptions struct {
	timeout    time.Duration
	httpClient *http.Client
	log        zerolog.Logger
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithHTTPClient replaces the HTTP client. Its Timeout is overwritten by the
// configured request timeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithLogger sets the logger used for request progress.
func WithLogger(log zerolog.Logger) Option {
	return func(o *clientOptions) {
		o.log = log
	}
}

func buildOptions(opts []Option) clientOptions {
	o := clientOptions{
		timeout: DefaultTimeout,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	var client http.Client
	if o.httpClient != nil {
		client = *o.httpClient
	}
	client.Timeout = o.timeout
	o.httpClient = &client
	return o
}

// NewOllamaClient creates a client for the server at baseURL
// (e.g. http://localhost:11434).
func NewOllamaClient(baseURL, model string, opts ...Option) *OllamaClient {
	o := buildOptions(opts)
	baseURL = strings.TrimRight(baseURL, "/")
	return &OllamaClient{
		baseURL:    baseURL,
		server:     hostOf(baseURL),
		model:      model,
		timeout:    o.timeout,
		httpClient: o.httpClient,
		log:        o.log.With().Str("component", "ollama").Logger(),
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response *string `json:"response"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Endpoint implements LLM.
func (c *OllamaClient) Endpoint() string {
	return c.baseURL + "/api/generate"
}

// Model implements LLM.
func (c *OllamaClient) Model() string {
	return c.model
}

// Generate implements LLM.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("couldn't marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(reqBody))
	if err != nil {
		return "", &NetworkError{Kind: KindRequest, Server: c.server, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().Str("url", c.Endpoint()).Int("bytes", len(reqBody)).Msg("Posting generate request")
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", classifyTransportError(err, c.server, c.timeout)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", classifyTransportError(err, c.server, c.timeout)
	}
	c.log.Debug().Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("Generate request finished")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &NetworkError{
			Kind:       KindHTTPStatus,
			Server:     c.server,
			StatusCode: resp.StatusCode,
			Detail:     errorDetail(body),
		}
	}

	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", &NetworkError{Kind: KindMalformedJSON, Server: c.server, Err: err}
	}
	if out.Response == nil {
		return "", &NetworkError{Kind: KindMissingField, Server: c.server, Field: "response"}
	}
	return *out.Response, nil
}

// errorDetail extracts Ollama's {"error": "..."} message, falling back to the
// raw body.
func errorDetail(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil && e.Error != "" {
		return e.Error
	}
	detail := strings.TrimSpace(string(body))
	if len(detail) > maxErrorDetail {
		detail = detail[:maxErrorDetail] + "..."
	}
	return detail
}

func hostOf(baseURL string) string {
	for _, scheme := range []string{"http://", "https://"} {
		if strings.HasPrefix(baseURL, scheme) {
			return strings.TrimPrefix(baseURL, scheme)
		}
	}
	return baseURL
}

var _ LLM = (*OllamaClient)(nil)
