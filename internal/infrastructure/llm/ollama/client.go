package ollama

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/ca-suite-backend/internal/core/domain"
)

const DefaultModel = "llama3.1:8b"

// Client talks to a local Ollama server. It needs no credential.
type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

func New(baseURL, model string, timeout time.Duration) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model    string               `json:"model"`
	Messages []domain.ChatMessage `json:"messages"`
	Stream   bool                 `json:"stream"`
	Options  chatOptions          `json:"options"`
}

type chatOptions struct {
	NumPredict  int     `json:"num_predict,omitempty"`
	Temperature float32 `json:"temperature"`
}

type chatResponse struct {
	Message domain.ChatMessage `json:"message"`
}

func (c *Client) Generate(ctx context.Context, req domain.GenerationRequest) (string, error) {
	var response chatResponse
	err := c.postJSON(ctx, "/api/chat", chatRequest{
		Model:    c.model,
		Messages: req.Messages,
		Stream:   false,
		Options: chatOptions{
			NumPredict:  req.MaxTokens,
			Temperature: req.Temperature,
		},
	}, &response, "chat")
	if err != nil {
		return "", err
	}
	return response.Message.Content, nil
}
