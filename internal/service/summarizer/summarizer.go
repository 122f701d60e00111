// Package summarizer генерирует резюме заметок через OpenAI-совместимый API.
package summarizer

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"notes-client/internal/config"
	"notes-client/internal/model"
	svc "notes-client/internal/service"
)

// DefaultMaxTokens лимит токенов ответа
const DefaultMaxTokens = 250

// SystemPrompt инструкция модели
const SystemPrompt = "You are DevDash AI, an expert Senior Developer and Tech Lead. " +
	"Your goal is to make the user smarter and faster. " +
	"Analyze the input text and respond using this specific structure:\n\n" +
	"1. **The Gist**: A one-sentence high-level summary.\n" +
	"2. **Key Details**: Use bullet points (•) for the main concepts.\n" +
	"3. **Dev Insight**: If it's code, spot bugs or suggest a cleaner way to write it. " +
	"If it's a concept, give a quick analogy or a 'Why this matters' tip.\n\n" +
	"RULES:\n" +
	"- Use Markdown formatting heavily (## Headers, **Bold**, `Code`).\n" +
	"- Keep it concise but punchy.\n" +
	"- If the user asks a question, answer it directly first."

var _ svc.Summarizer = (*OpenAI)(nil)

// OpenAI summarizer поверх chat completions
type OpenAI struct {
	client    *openai.Client
	model     string
	maxTokens int
	logger    *slog.Logger
}

// New создает summarizer. Без API ключа возвращает ServiceUnavailable,
// чтобы сервер мог работать без суммаризации.
func New(cfg *config.ConfigSummarizer, logger *slog.Logger) (*OpenAI, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, &model.Error{Kind: model.KindServiceUnavailable, Op: "summarizer", Message: "api key is not set"}
	}
	if logger == nil {
		logger = slog.Default()
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	logger.Info("initializing summarizer", "model", cfg.Model, "base_url", clientCfg.BaseURL)
	return &OpenAI{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		maxTokens: maxTokens,
		logger:    logger,
	}, nil
}

// Summarize отправляет текст заметки модели и возвращает ответ в Markdown
func (o *OpenAI) Summarize(ctx context.Context, text string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens: o.maxTokens,
	}

	o.logger.Debug("requesting completion", "model", o.model)
	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		o.logger.Error("completion failed", "error", err)
		return "", unavailable(err)
	}
	if len(resp.Choices) == 0 {
		return "", unavailable(errors.New("no choices returned"))
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func unavailable(err error) error {
	return &model.Error{Kind: model.KindServiceUnavailable, Op: "summarize", Err: err}
}
