package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// ErrAnalysisFailed covers every failure between sending the photo and
// holding a parsed reply.
var ErrAnalysisFailed = errors.New("failed to analyze meal")

// ChatCompleter is the subset of the OpenAI client the analyzer needs
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Options struct {
	Model       string
	MaxTokens   int
	Temperature float32
}

type Analyzer struct {
	client  ChatCompleter
	options Options
}

func NewAnalyzer(client ChatCompleter, options Options) *Analyzer {
	return &Analyzer{
		client:  client,
		options: options,
	}
}

// NewOpenAIClient builds the upstream client. An empty baseURL or a nil
// httpClient keeps the library default.
func NewOpenAIClient(apiKey, baseURL string, httpClient *http.Client) *openai.Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	if httpClient != nil {
		config.HTTPClient = httpClient
	}
	return openai.NewClientWithConfig(config)
}

// wireTemperature keeps a configured 0 on the wire. The request field is
// omitempty, and an omitted temperature means the upstream default of 1.
func wireTemperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}

// Analyze sends the photo (an image URL or data URI) with the fixed
// instruction prompt and returns the parsed reply.
func (a *Analyzer) Analyze(ctx context.Context, imageURL, mealType string) (*Result, error) {
	request := openai.ChatCompletionRequest{
		Model:       a.options.Model,
		MaxTokens:   a.options.MaxTokens,
		Temperature: wireTemperature(a.options.Temperature),
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: userPrompt(mealType),
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
					},
				},
			},
		},
	}

	response, err := a.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("%w: completion request: %v", ErrAnalysisFailed, err)
	}
	if len(response.Choices) == 0 || response.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("%w: no content in model reply", ErrAnalysisFailed)
	}

	content := response.Choices[0].Message.Content
	result, err := parseReply(content)
	if err != nil {
		slog.Warn("analysis: unparseable model reply", "error", err, "reply_length", len(content))
		return nil, fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
	}

	slog.Debug("analysis: model reply parsed",
		"model", response.Model,
		"prompt_tokens", response.Usage.PromptTokens,
		"completion_tokens", response.Usage.CompletionTokens)
	return result, nil
}
