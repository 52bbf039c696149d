package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMessage(t *testing.T) {
	t.Parallel()

	var gotReq anthropicRequest
	var gotHeaders http.Header
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeaders = r.Header.Clone()
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "msg_0123",
			"role": "assistant",
			"content": [{"type": "text", "text": "Hello."}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5, "server_tool_use": {"web_search_requests": 1}}
		}`)
	}))
	defer srv.Close()

	client := newAnthropicClient("sk-test")
	client.baseURL = srv.URL

	resp, err := client.createMessage(context.Background(), &anthropicRequest{
		Model:     "claude-sonnet-4-20250514",
		MaxTokens: maxTokens,
		Messages:  []anthropicMessage{{Role: "user", Content: "hi"}},
		Tools:     []anthropicTool{{Type: webSearchToolType, Name: webSearchToolName, MaxUses: webSearchMaxUses}},
	})
	require.NoError(t, err)

	assert.Equal(t, "/v1/messages", gotPath)
	assert.Equal(t, "sk-test", gotHeaders.Get("x-api-key"))
	assert.Equal(t, "2023-06-01", gotHeaders.Get("anthropic-version"))
	assert.Equal(t, "application/json", gotHeaders.Get("content-type"))

	assert.Equal(t, "claude-sonnet-4-20250514", gotReq.Model)
	assert.Equal(t, 4000, gotReq.MaxTokens)
	require.Len(t, gotReq.Tools, 1)
	assert.Equal(t, "web_search_20250305", gotReq.Tools[0].Type)

	assert.Equal(t, "msg_0123", resp.ID)
	assert.Equal(t, "end_turn", resp.StopReason)
	require.Len(t, resp.Content, 1)
	assert.Equal(t, "Hello.", resp.Content[0]["text"])
	assert.Equal(t, 1, resp.Usage.webSearchRequests())
}

func TestCreateMessageAuthError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"type": "error", "error": {"type": "authentication_error", "message": "invalid x-api-key"}}`)
	}))
	defer srv.Close()

	client := newAnthropicClient("sk-bad")
	client.baseURL = srv.URL

	_, err := client.createMessage(context.Background(), &anthropicRequest{Model: "m", MaxTokens: maxTokens})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAuthentication)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "authentication_error", apiErr.Type)
	assert.Equal(t, "invalid x-api-key", apiErr.Message)
}

func TestCreateMessageAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"type": "error", "error": {"type": "invalid_request_error", "message": "max_tokens required"}}`)
	}))
	defer srv.Close()

	client := newAnthropicClient("sk-test")
	client.baseURL = srv.URL

	_, err := client.createMessage(context.Background(), &anthropicRequest{Model: "m"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAuthentication)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "invalid_request_error", apiErr.Type)
	assert.Equal(t, "max_tokens required", apiErr.Message)
}

func TestCreateMessageNonJSONError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream unavailable")
	}))
	defer srv.Close()

	client := newAnthropicClient("sk-test")
	client.baseURL = srv.URL

	_, err := client.createMessage(context.Background(), &anthropicRequest{Model: "m", MaxTokens: maxTokens})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "upstream unavailable", apiErr.Message)
	assert.Empty(t, apiErr.Type)
}
