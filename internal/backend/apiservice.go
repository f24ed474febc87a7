package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/jo-hoe/proteinlens/internal/backend/analysis"
	"github.com/jo-hoe/proteinlens/internal/core"

	"github.com/labstack/echo/v4"
)

const (
	AnalyzePath = "/api/analyze"
	ProbePath   = "/probe"

	msgInvalidBody   = "Invalid request body"
	msgNoImage       = "No image provided"
	msgNotConfigured = "OpenAI API key not configured. Please add " + core.APIKeyEnv + " to your environment variables."
	msgFailed        = "Failed to analyze meal"
)

// MealAnalyzer produces the protein breakdown of a meal photo
type MealAnalyzer interface {
	AnalyzeMeal(ctx context.Context, image, mealType string) (*analysis.Result, error)
}

type APIService struct {
	analyzer MealAnalyzer
}

type AnalyzeRequest struct {
	Image    string `json:"image" validate:"required"`
	MealType string `json:"mealType"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewAPIService(analyzer MealAnalyzer) *APIService {
	return &APIService{
		analyzer: analyzer,
	}
}

func (s *APIService) SetRoutes(e *echo.Echo) {
	e.GET(ProbePath, func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "API Service is running")
	})
	e.POST(AnalyzePath, s.analyzeHandler)
}

func (s *APIService) analyzeHandler(ctx echo.Context) error {
	request, err := decodeAnalyzeRequest(ctx.Request().Body)
	if err != nil {
		slog.Warn("analyzeHandler: failed to decode request body", "status", http.StatusBadRequest, "error", err)
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidBody})
	}
	if err := ctx.Validate(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: msgNoImage})
	}

	result, err := s.analyzer.AnalyzeMeal(ctx.Request().Context(), request.Image, request.MealType)
	switch {
	case err == nil:
		return ctx.JSON(http.StatusOK, result)
	case errors.Is(err, core.ErrMissingImage):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{Error: msgNoImage})
	case errors.Is(err, core.ErrNotConfigured):
		slog.Error("analyzeHandler: model credential missing", "status", http.StatusInternalServerError, "env", core.APIKeyEnv)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgNotConfigured})
	default:
		slog.Error("analyzeHandler: failed to analyze meal",
			"status", http.StatusInternalServerError, "meal_type", request.MealType, "error", err)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgFailed})
	}
}

// decodeAnalyzeRequest reads the JSON body whatever Content-Type the caller
// sent. An empty body decodes to an empty request.
func decodeAnalyzeRequest(body io.Reader) (AnalyzeRequest, error) {
	var request AnalyzeRequest
	if body == nil {
		return request, nil
	}
	if err := json.NewDecoder(body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		return AnalyzeRequest{}, err
	}
	return request, nil
}

// HTTPErrorHandler renders every unhandled error as {"error": ...}. Server
// errors, including recovered panics, get the generic analysis message.
func HTTPErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := msgFailed
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError {
		code = httpErr.Code
		message = http.StatusText(code)
	} else {
		slog.Error("unhandled server error", "path", ctx.Path(), "error", err)
	}

	var writeErr error
	if ctx.Request().Method == http.MethodHead {
		writeErr = ctx.NoContent(code)
	} else {
		writeErr = ctx.JSON(code, ErrorResponse{Error: message})
	}
	if writeErr != nil {
		slog.Error("failed to write error response", "error", writeErr)
	}
}
