package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	anthropicBaseURL = "https://api.anthropic.com"
	anthropicVersion = "2023-06-01"

	maxTokens           = 4000
	webSearchToolType   = "web_search_20250305"
	webSearchToolName   = "web_search"
	webSearchMaxUses    = 5
	stopReasonPauseTurn = "pause_turn"
)

// ErrAuthentication reports a missing or rejected generation API credential.
var ErrAuthentication = errors.New("authentication failed")

// APIError is a non-2xx response from the Anthropic API.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("anthropic API error (status %d, type %q): %s", e.StatusCode, e.Type, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.Type == "authentication_error" {
		return ErrAuthentication
	}
	return nil
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type anthropicTool struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	MaxUses int    `json:"max_uses,omitempty"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
	Tools     []anthropicTool    `json:"tools,omitempty"`
}

type anthropicUsage struct {
	InputTokens   int             `json:"input_tokens"`
	OutputTokens  int             `json:"output_tokens"`
	ServerToolUse json.RawMessage `json:"server_tool_use,omitempty"`
}

// webSearchRequests reads the search counter out of the usage record. The API
// has served server_tool_use both as a typed object and as a bare map, so try
// the typed shape first and fall back to a generic decode, defaulting to zero.
func (u anthropicUsage) webSearchRequests() int {
	if len(u.ServerToolUse) == 0 {
		return 0
	}

	var typed struct {
		WebSearchRequests int `json:"web_search_requests"`
	}
	if err := json.Unmarshal(u.ServerToolUse, &typed); err == nil {
		return typed.WebSearchRequests
	}

	var generic map[string]any
	if err := json.Unmarshal(u.ServerToolUse, &generic); err == nil {
		if n, ok := generic["web_search_requests"].(float64); ok {
			return int(n)
		}
	}
	return 0
}

type anthropicResponse struct {
	ID         string           `json:"id"`
	Role       string           `json:"role"`
	Content    []map[string]any `json:"content"`
	StopReason string           `json:"stop_reason"`
	Usage      anthropicUsage   `json:"usage"`
}

type anthropicErrorResponse struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type messagesClient interface {
	createMessage(ctx context.Context, req *anthropicRequest) (*anthropicResponse, error)
}

type anthropicClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func newAnthropicClient(apiKey string) *anthropicClient {
	return &anthropicClient{
		apiKey:  apiKey,
		baseURL: anthropicBaseURL,
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *anthropicClient) createMessage(ctx context.Context, req *anthropicRequest) (*anthropicResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)
	httpReq.Header.Set("content-type", "application/json")

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		apiErr := &APIError{
			StatusCode: httpResp.StatusCode,
			Message:    strings.TrimSpace(string(respBody)),
		}
		var errResp anthropicErrorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			apiErr.Type = errResp.Error.Type
			apiErr.Message = errResp.Error.Message
		}
		return nil, apiErr
	}

	var resp anthropicResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}

// AnthropicGenerator drives the Messages API with the web search tool,
// continuing through mid-turn pauses until the model finishes.
type AnthropicGenerator struct {
	client messagesClient
}

// NewAnthropicGenerator creates a generator backed by the Anthropic API.
func NewAnthropicGenerator(apiKey string) (*AnthropicGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic API key is required: %w", ErrAuthentication)
	}
	return &AnthropicGenerator{client: newAnthropicClient(apiKey)}, nil
}

// Generate runs the continuation loop for one newsletter and joins the
// text-bearing content blocks into the final newsletter text.
func (g *AnthropicGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	logger := log.With().Str("run_id", uuid.NewString()).Str("model", req.Model).Logger()

	messages := []anthropicMessage{{Role: "user", Content: req.Prompt}}
	tools := []anthropicTool{{Type: webSearchToolType, Name: webSearchToolName, MaxUses: webSearchMaxUses}}

	logger.Info().Msg("calling model with web search")

	var blocks []map[string]any
	searches := 0
	continues := 0

	for {
		resp, err := g.client.createMessage(ctx, &anthropicRequest{
			Model:     req.Model,
			MaxTokens: maxTokens,
			Messages:  messages,
			Tools:     tools,
		})
		if err != nil {
			return nil, fmt.Errorf("generation request failed: %w", err)
		}

		blocks = append(blocks, resp.Content...)
		searches += resp.Usage.webSearchRequests()

		if resp.StopReason != stopReasonPauseTurn {
			break
		}

		continues++
		if req.MaxContinues > 0 && continues > req.MaxContinues {
			return nil, fmt.Errorf("generation exceeded %d continuation turns", req.MaxContinues)
		}

		messages = append(messages,
			anthropicMessage{Role: "assistant", Content: resp.Content},
			anthropicMessage{Role: "user", Content: continuePrompt},
		)
		logger.Info().Int("searches", searches).Msg("model paused mid-turn, continuing")
	}

	text := joinTextBlocks(blocks)
	logger.Info().Int("chars", len(text)).Int("searches", searches).Msg("generation complete")

	return &Result{Text: text, Searches: searches}, nil
}

// joinTextBlocks keeps the narrative text segments and drops search activity
// metadata blocks.
func joinTextBlocks(blocks []map[string]any) string {
	var parts []string
	for _, block := range blocks {
		if text, ok := block["text"].(string); ok {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}
