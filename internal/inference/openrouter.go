package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// defaultOpenRouterBaseURL is the default OpenRouter API base URL.
const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// HTTPDoer abstracts HTTP clients used by providers.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenRouterClient implements Provider against the OpenRouter
// chat-completions API.
type OpenRouterClient struct {
	APIKey  string
	BaseURL string
	Client  HTTPDoer
}

// ProviderFromEnv builds a provider using environment configuration.
func ProviderFromEnv(name, baseURL string, client HTTPDoer) (Provider, error) {
	if name == "" {
		name = strings.TrimSpace(os.Getenv("LLM_PROVIDER"))
	}
	if name == "" {
		return nil, fmt.Errorf("provider is required")
	}
	if name != "openrouter" {
		return nil, fmt.Errorf("unsupported provider %q", name)
	}
	apiKey := strings.TrimSpace(os.Getenv("LLM_API_KEY"))
	if apiKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY is required")
	}
	return NewOpenRouterClient(apiKey, baseURL, client)
}

// NewOpenRouterClient constructs an OpenRouter client with explicit settings.
func NewOpenRouterClient(apiKey, baseURL string, client HTTPDoer) (*OpenRouterClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenRouterClient{
		APIKey:  apiKey,
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  client,
	}, nil
}

// chatRequest is the JSON payload sent to the chat-completions endpoint.
type chatRequest struct {
	Model       string         `json:"model"`
	Messages    []chatMessage  `json:"messages"`
	Temperature *float64       `json:"temperature,omitempty"`
	Reasoning   *chatReasoning `json:"reasoning,omitempty"`
}

// chatMessage is a single chat message payload.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatReasoning carries the optional reasoning-effort hint.
type chatReasoning struct {
	Effort string `json:"effort,omitempty"`
}

// chatResponse is the subset of the completion response the engine reads.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Invoke sends one chat-completion request and returns the raw text.
func (c *OpenRouterClient) Invoke(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Model) == "" {
		return "", fmt.Errorf("model is required")
	}
	messages := make([]chatMessage, 0, len(req.Messages)+1)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	for _, message := range req.Messages {
		messages = append(messages, chatMessage{Role: message.Role, Content: message.Content})
	}
	body := chatRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
	}
	if strings.TrimSpace(req.ReasoningHint) != "" {
		body.Reasoning = &chatReasoning{Effort: req.ReasoningHint}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := c.BaseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		detail := strings.TrimSpace(string(raw))
		if req.Temperature != nil && isTemperatureRejection(resp.StatusCode, detail) {
			return "", fmt.Errorf("openrouter rejected request: %s: %w", detail, ErrTemperatureUnsupported)
		}
		return "", fmt.Errorf("openrouter error (%d): %s", resp.StatusCode, detail)
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("openrouter returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}

// isTemperatureRejection recognizes the unsupported-temperature condition in
// a provider error body.
func isTemperatureRejection(status int, detail string) bool {
	if status != http.StatusBadRequest {
		return false
	}
	lowered := strings.ToLower(detail)
	if !strings.Contains(lowered, "temperature") {
		return false
	}
	return strings.Contains(lowered, "unsupported") ||
		strings.Contains(lowered, "not supported") ||
		strings.Contains(lowered, "does not support")
}
