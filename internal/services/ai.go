package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/project-management-api/internal/constants"
	"github.com/yukikurage/project-management-api/internal/metrics"
)

// Summarizer condenses a project's problem statement.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

type AIService struct {
	client *openai.Client
}

func NewAIService(apiKey string) *AIService {
	return &AIService{
		client: openai.NewClient(apiKey),
	}
}

// Summarize asks the chat completion API for a short summary of text.
func (s *AIService) Summarize(ctx context.Context, text string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	prompt := fmt.Sprintf(`Summarize the following project problem statement in at most three sentences.
Return only the summary text.

Problem statement:
%s`, text)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: openai.GPT4oMini,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	metrics.IncrementSummary("openai")
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// StubSummarizer truncates the text. It is used when no API key is configured.
type StubSummarizer struct{}

func (StubSummarizer) Summarize(_ context.Context, text string) (string, error) {
	metrics.IncrementSummary("stub")

	runes := []rune(text)
	if len(runes) > constants.SummaryLength {
		runes = runes[:constants.SummaryLength]
	}
	return string(runes) + constants.SummarySuffix, nil
}
