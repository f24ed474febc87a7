package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jo-hoe/proteinlens/internal/backend/analysis"
	"github.com/jo-hoe/proteinlens/internal/backend/commandstructure"
	"github.com/jo-hoe/proteinlens/internal/common"
)

var (
	ErrMissingImage  = errors.New("no image provided")
	ErrNotConfigured = errors.New("model API key not configured")
)

type CoreService struct {
	config   *ServiceConfig
	analyzer *analysis.Analyzer
	pipeline *commandstructure.CommandInvoker
}

// NewCoreService wires the OpenAI client from config
func NewCoreService(config *ServiceConfig) (*CoreService, error) {
	client := analysis.NewOpenAIClient(
		config.OpenAI.APIKey,
		config.OpenAI.BaseURL,
		&http.Client{Timeout: time.Duration(config.OpenAI.TimeoutSeconds) * time.Second},
	)
	return NewCoreServiceWithClient(config, client)
}

// NewCoreServiceWithClient uses the given completion client instead of OpenAI
func NewCoreServiceWithClient(config *ServiceConfig, client analysis.ChatCompleter) (*CoreService, error) {
	commands, err := commandstructure.DefaultRegistry.BuildCommands(config.Commands)
	if err != nil {
		return nil, fmt.Errorf("failed to build photo pipeline: %w", err)
	}
	slog.Info("photo pipeline initialized", "command_count", len(commands))

	return &CoreService{
		config: config,
		analyzer: analysis.NewAnalyzer(client, analysis.Options{
			Model:       config.OpenAI.Model,
			MaxTokens:   config.OpenAI.MaxTokens,
			Temperature: config.OpenAI.Temperature,
		}),
		pipeline: commandstructure.NewCommandInvoker(commands),
	}, nil
}

// AnalyzeMeal checks the input and configuration, prepares the photo and asks
// the model for the protein breakdown.
func (service *CoreService) AnalyzeMeal(ctx context.Context, image, mealType string) (*analysis.Result, error) {
	if image == "" {
		return nil, ErrMissingImage
	}
	if !service.config.HasAPIKey() {
		return nil, ErrNotConfigured
	}

	prepared, err := service.preparePhoto(image)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", analysis.ErrAnalysisFailed, err)
	}

	return service.analyzer.Analyze(ctx, prepared, mealType)
}

// preparePhoto runs the configured commands over the photo. Without commands
// the data URI is forwarded verbatim.
func (service *CoreService) preparePhoto(image string) (string, error) {
	if service.pipeline.Len() == 0 {
		return image, nil
	}

	data, _, err := common.DecodeImageDataURI(image)
	if err != nil {
		return "", err
	}
	processed, err := service.pipeline.Execute(data)
	if err != nil {
		return "", err
	}
	return common.EncodeImageDataURI(processed, "")
}
