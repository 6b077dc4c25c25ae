package providers

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/wisker-app/wisker/internal/config"
	"github.com/wisker-app/wisker/internal/domain/tool"
	"github.com/wisker-app/wisker/internal/pkg/errors"
	"github.com/wisker-app/wisker/internal/pkg/logger"
)

// Generator produces learning tool content from note material
type Generator interface {
	Generate(ctx context.Context, toolType, title, material string) (string, error)
}

// AIClient generates learning tools through an OpenAI-compatible chat API.
// The base URL is configurable so Together-style providers work unchanged.
type AIClient struct {
	client *openai.Client
	model  string
	logger *logger.Logger
}

// NewAIClient creates a new AI generation client. Returns an error when no
// API key is configured; callers decide whether generation is optional.
func NewAIClient(cfg config.AIConfig, log *logger.Logger) (*AIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New(errors.ErrCodeInternal, "AI API key is not configured", 500)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &AIClient{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
		logger: log,
	}, nil
}

// prompts per tool type. Each asks for a strict JSON shape the frontend
// renders directly.
var toolPrompts = map[string]string{
	tool.TypeQuiz:            "Create a 10-question multiple-choice quiz from the study material below. Respond with JSON: {\"questions\":[{\"question\":\"...\",\"options\":[\"...\"],\"answer\":0,\"explanation\":\"...\"}]}.",
	tool.TypeFlashcards:      "Create 15 flashcards from the study material below. Respond with JSON: {\"cards\":[{\"front\":\"...\",\"back\":\"...\"}]}.",
	tool.TypeConceptMap:      "Build a concept map from the study material below. Respond with JSON: {\"nodes\":[{\"id\":\"...\",\"label\":\"...\"}],\"edges\":[{\"from\":\"...\",\"to\":\"...\",\"label\":\"...\"}]}.",
	tool.TypeSummary:         "Summarize the study material below into key points. Respond with JSON: {\"summary\":\"...\",\"key_points\":[\"...\"]}.",
	tool.TypeProcessNote:     "Clean up and structure the raw note below into organized study material. Respond with JSON: {\"content\":\"...\",\"sections\":[{\"heading\":\"...\",\"body\":\"...\"}]}.",
	tool.TypeAnalyzeDocument: "Analyze the document text below and extract its structure and key concepts. Respond with JSON: {\"topics\":[\"...\"],\"concepts\":[{\"name\":\"...\",\"definition\":\"...\"}],\"summary\":\"...\"}.",
}

// Generate produces the content for one learning tool
func (c *AIClient) Generate(ctx context.Context, toolType, title, material string) (string, error) {
	prompt, ok := toolPrompts[toolType]
	if !ok {
		return "", errors.BadRequest("Unknown tool type: " + toolType)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a study assistant. Always respond with valid JSON only, no prose around it.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("%s\n\nTitle: %s\n\nMaterial:\n%s", prompt, title, material),
			},
		},
		Temperature: 0.4,
	})
	if err != nil {
		c.logger.ErrorWithErr(err, "AI generation request failed")
		return "", errors.Wrap(err, errors.ErrCodeInternal, "Generation failed, please try again", 500)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New(errors.ErrCodeInternal, "Generation returned no content", 500)
	}

	return resp.Choices[0].Message.Content, nil
}
