// internal/llmclient/client_test.go
package llmclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/xkilldash9x/flowlens-cli/api/schemas"
	"github.com/xkilldash9x/flowlens-cli/internal/config"
)

// -- Test Setup Helpers --

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		Model:             "gemini-2.5-flash",
		APIKey:            "test-api-key",
		APITimeout:        5 * time.Second,
		Temperature:       0.4,
		MaxTokens:         2048,
		RequestsPerMinute: 6000, // effectively unthrottled for tests
	}
}

// setupGeminiClient rigs up a GeminiClient pointed at a mock HTTP server.
// It returns the client, the mock server, and a log observer.
func setupGeminiClient(t *testing.T, handler http.HandlerFunc) (*GeminiClient, *httptest.Server, *observer.ObservedLogs) {
	t.Helper()
	if handler == nil {
		handler = func(w http.ResponseWriter, r *http.Request) {
			t.Log("Warning: Unexpected HTTP request in test.")
			w.WriteHeader(http.StatusNotFound)
		}
	}
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	loggerCore, observedLogs := observer.New(zap.InfoLevel)
	logger := zap.New(loggerCore)

	cfg := testLLMConfig()
	cfg.Endpoint = server.URL

	client, err := NewGeminiClient(cfg, logger)
	require.NoError(t, err)

	// Keep retries fast in tests.
	client.backoffFactory = func() backoff.BackOff {
		return backoff.NewConstantBackOff(10 * time.Millisecond)
	}
	return client, server, observedLogs
}

func createTestRequest() schemas.GenerationRequest {
	return schemas.GenerationRequest{
		SystemPrompt: "System prompt instructions.",
		UserPrompt:   "User query.",
		Temperature:  0.7,
	}
}

func successPayload(text string) geminiResponsePayload {
	var payload geminiResponsePayload
	payload.Candidates = append(payload.Candidates, struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	}{
		Content:      geminiContent{Parts: []geminiPart{{Text: text}}},
		FinishReason: "STOP",
	})
	return payload
}

// -- Initialization --

func TestNewGeminiClient_DefaultEndpoint(t *testing.T) {
	cfg := testLLMConfig()
	cfg.Endpoint = ""

	client, err := NewGeminiClient(cfg, zap.NewNop())
	require.NoError(t, err)

	expected := fmt.Sprintf("https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent", cfg.Model)
	assert.Equal(t, expected, client.endpoint)
	assert.Equal(t, cfg.APITimeout, client.httpClient.Timeout)
	assert.NotNil(t, client.backoffFactory)
}

func TestNewGeminiClient_MissingAPIKey(t *testing.T) {
	cfg := testLLMConfig()
	cfg.APIKey = ""

	client, err := NewGeminiClient(cfg, zap.NewNop())
	assert.Error(t, err)
	assert.Nil(t, client)
}

// -- Request Payload --

func TestBuildRequestPayload(t *testing.T) {
	client, _, _ := setupGeminiClient(t, nil)

	req := createTestRequest()
	payload := client.buildRequestPayload(req)

	require.NotNil(t, payload.SystemInstruction)
	require.Len(t, payload.Contents, 1)
	assert.Equal(t, req.SystemPrompt, payload.SystemInstruction.Parts[0].Text)
	assert.Equal(t, "user", payload.Contents[0].Role)
	assert.Equal(t, req.UserPrompt, payload.Contents[0].Parts[0].Text)
	assert.Equal(t, 0.7, payload.GenerationConfig.Temperature)
	assert.Equal(t, 2048, payload.GenerationConfig.MaxOutputTokens)
	assert.Equal(t, "application/json", payload.GenerationConfig.ResponseMimeType)
}

func TestBuildRequestPayload_ConfigFallbacks(t *testing.T) {
	client, _, _ := setupGeminiClient(t, nil)

	payload := client.buildRequestPayload(schemas.GenerationRequest{UserPrompt: "q"})
	assert.Equal(t, client.config.Temperature, payload.GenerationConfig.Temperature)
	assert.Equal(t, client.config.MaxTokens, payload.GenerationConfig.MaxOutputTokens)
}

// -- Generation --

func TestGenerateResponse_Success(t *testing.T) {
	expectedText := "This is the generated content."

	handler := func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-api-key", r.Header.Get("x-goog-api-key"))

		body, _ := io.ReadAll(r.Body)
		var payload geminiRequestPayload
		require.NoError(t, json.Unmarshal(body, &payload), "server received invalid JSON payload")
		assert.Equal(t, createTestRequest().UserPrompt, payload.Contents[0].Parts[0].Text)

		resp := successPayload(expectedText)
		resp.UsageMetadata.PromptTokenCount = 100
		resp.UsageMetadata.CandidatesTokenCount = 50
		resp.UsageMetadata.TotalTokenCount = 150

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}

	client, _, observedLogs := setupGeminiClient(t, handler)

	response, err := client.GenerateResponse(context.Background(), createTestRequest())
	require.NoError(t, err)
	assert.Equal(t, expectedText, response)

	require.Equal(t, 1, observedLogs.Len())
	logEntry := observedLogs.All()[0]
	assert.Equal(t, "LLM generation complete (Gemini)", logEntry.Message)
	assert.Equal(t, int64(100), logEntry.ContextMap()["prompt_tokens"])
	assert.Equal(t, int64(50), logEntry.ContextMap()["completion_tokens"])
}

func TestGenerateResponse_RetryOnTransientErrors(t *testing.T) {
	var attemptCounter int32
	expectedAttempts := 3

	handler := func(w http.ResponseWriter, r *http.Request) {
		attempt := atomic.AddInt32(&attemptCounter, 1)
		if int(attempt) < expectedAttempts {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("Service temporarily unavailable."))
			return
		}
		json.NewEncoder(w).Encode(successPayload("Success after retry"))
	}

	client, _, observedLogs := setupGeminiClient(t, handler)

	response, err := client.GenerateResponse(context.Background(), createTestRequest())
	require.NoError(t, err)
	assert.Equal(t, "Success after retry", response)
	assert.Equal(t, int32(expectedAttempts), atomic.LoadInt32(&attemptCounter))

	errorLogs := observedLogs.FilterLevelExact(zap.ErrorLevel)
	assert.Equal(t, expectedAttempts-1, errorLogs.Len(), "expected ERROR logs for the failed attempts")
}

func TestGenerateResponse_RetryOnNetworkError(t *testing.T) {
	client, server, observedLogs := setupGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("Handler reached despite server being closed.")
	})

	// Close the server to simulate connection refused.
	server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := client.GenerateResponse(ctx, createTestRequest())
	assert.Error(t, err)

	var permanentErr *backoff.PermanentError
	assert.False(t, errors.As(err, &permanentErr), "network errors should be treated as transient")

	warnLogs := observedLogs.FilterLevelExact(zap.WarnLevel)
	assert.Greater(t, warnLogs.Len(), 1, "expected multiple WARN logs indicating retries")
}

func TestGenerateResponse_NoRetryOnPermanentErrors(t *testing.T) {
	var attemptCounter int32
	handler := func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attemptCounter, 1)
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("API Key Invalid"))
	}

	client, _, observedLogs := setupGeminiClient(t, handler)

	response, err := client.GenerateResponse(context.Background(), createTestRequest())
	assert.Error(t, err)
	assert.Empty(t, response)
	assert.Contains(t, err.Error(), "gemini API error: status 403")
	assert.Equal(t, int32(1), atomic.LoadInt32(&attemptCounter), "permanent errors must not trigger retries")

	errorLogs := observedLogs.FilterLevelExact(zap.ErrorLevel)
	require.Equal(t, 1, errorLogs.Len())
	assert.Equal(t, int64(403), errorLogs.All()[0].ContextMap()["status"])
}

func TestGenerateResponse_SafetyBlock(t *testing.T) {
	var attemptCounter int32
	handler := func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attemptCounter, 1)
		var payload geminiResponsePayload
		payload.Candidates = append(payload.Candidates, struct {
			Content      geminiContent `json:"content"`
			FinishReason string        `json:"finishReason"`
		}{FinishReason: "SAFETY"})
		json.NewEncoder(w).Encode(payload)
	}

	client, _, _ := setupGeminiClient(t, handler)

	_, err := client.GenerateResponse(context.Background(), createTestRequest())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "blocked the request (Reason: SAFETY)")
	assert.Equal(t, int32(1), atomic.LoadInt32(&attemptCounter), "safety blocks must not trigger retries")
}

func TestGenerateResponse_NoCandidates(t *testing.T) {
	var attemptCounter int32
	handler := func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attemptCounter, 1)
		json.NewEncoder(w).Encode(geminiResponsePayload{})
	}

	client, _, _ := setupGeminiClient(t, handler)

	_, err := client.GenerateResponse(context.Background(), createTestRequest())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
	assert.Equal(t, int32(1), atomic.LoadInt32(&attemptCounter))
}

func TestGenerateResponse_InvalidJSONResponse(t *testing.T) {
	var attemptCounter int32
	handler := func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attemptCounter, 1)
		w.Write([]byte("{invalid json:"))
	}

	client, _, _ := setupGeminiClient(t, handler)

	_, err := client.GenerateResponse(context.Background(), createTestRequest())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response payload")
	assert.Equal(t, int32(1), atomic.LoadInt32(&attemptCounter))
}

func TestGenerateResponse_ContextCancellation(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}

	client, _, _ := setupGeminiClient(t, handler)
	client.backoffFactory = func() backoff.BackOff {
		return backoff.NewConstantBackOff(10 * time.Second)
	}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	_, err := client.GenerateResponse(ctx, createTestRequest())
	assert.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "error should be context.Canceled, got: %v", err)
	assert.Less(t, time.Since(start), time.Second, "operation should abort quickly upon cancellation")
}
