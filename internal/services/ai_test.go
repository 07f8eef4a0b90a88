package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/project-management-api/internal/constants"
)

func TestStubSummarizer(t *testing.T) {
	short, err := StubSummarizer{}.Summarize(context.Background(), "Build a rocket")
	require.NoError(t, err)
	assert.Equal(t, "Build a rocket"+constants.SummarySuffix, short)

	long := strings.Repeat("é", 200)
	summary, err := StubSummarizer{}.Summarize(context.Background(), long)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", constants.SummaryLength)+constants.SummarySuffix, summary)
}

func TestAIService_Summarize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"  A short summary.  "}}]}`))
	}))
	defer server.Close()

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL
	service := &AIService{client: openai.NewClientWithConfig(cfg)}

	summary, err := service.Summarize(context.Background(), "Long statement")
	require.NoError(t, err)
	assert.Equal(t, "A short summary.", summary)
}

func TestAIService_Summarize_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[]}`))
	}))
	defer server.Close()

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = server.URL
	service := &AIService{client: openai.NewClientWithConfig(cfg)}

	_, err := service.Summarize(context.Background(), "Long statement")
	assert.Error(t, err)
}
