// Package assistant integrates the calculator with a hosted text completion
// service over an OpenAI-compatible chat completions API. The service is an
// opaque collaborator: prompts go out, whatever text comes back is returned
// verbatim.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"
)

// Defaults target Groq's OpenAI-compatible endpoint and the model the
// calculator was originally built against.
const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.3-70b-versatile"

	// defaultRequestsPerMinute caps outbound completion calls per client.
	defaultRequestsPerMinute = 30
)

// Completer turns a prompt string into completion text. It is the only
// contract the rest of the application has with the remote model.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config carries the settings for the remote completion provider.
type Config struct {
	APIKey  string
	BaseURL string // defaults to DefaultBaseURL
	Model   string // defaults to DefaultModel

	// RequestsPerMinute limits outbound calls; 0 uses the default.
	RequestsPerMinute int
}

// Unavailable returns a Completer that fails every request with err. Used
// when the provider is not configured, so the calculator keeps working and
// only the assistant endpoints report the failure.
func Unavailable(err error) Completer {
	return unavailableCompleter{err: err}
}

type unavailableCompleter struct {
	err error
}

func (u unavailableCompleter) Complete(context.Context, string) (string, error) {
	return "", u.err
}

// Client is a Completer backed by an OpenAI-compatible chat completions API.
type Client struct {
	api     *openai.Client
	model   string
	limiter *rate.Limiter
}

// NewClient builds a Client from cfg. A missing API key fails immediately
// with ErrAuthenticationMissing rather than on the first request.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", ErrAuthenticationMissing)
	}

	apiCfg := openai.DefaultConfig(cfg.APIKey)
	apiCfg.BaseURL = DefaultBaseURL
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = defaultRequestsPerMinute
	}

	return &Client{
		api:     openai.NewClientWithConfig(apiCfg),
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 1),
	}, nil
}

// Complete sends prompt as a single user message and returns the model's
// reply. No retries: a failed call is terminal for this request only.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return "", classifyAPIError(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrRequestFailed)
	}

	tokensCounter.Add(ctx, int64(resp.Usage.TotalTokens),
		metric.WithAttributes(attribute.String("model", c.model)))

	return resp.Choices[0].Message.Content, nil
}

// classifyAPIError folds provider/transport failures into the package's
// error taxonomy, keeping the cause in the message.
func classifyAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %v", taxonomyForStatus(apiErr.HTTPStatusCode), err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%w: %v", taxonomyForStatus(reqErr.HTTPStatusCode), err)
	}

	// No HTTP status at all: the provider was never reached.
	return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
}

func taxonomyForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrAuthenticationMissing
	case status == http.StatusTooManyRequests || status >= http.StatusInternalServerError:
		return ErrServiceUnavailable
	default:
		return ErrRequestFailed
	}
}
