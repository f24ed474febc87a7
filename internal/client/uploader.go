package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jo-hoe/proteinlens/internal/common"
	"github.com/jo-hoe/proteinlens/internal/meallog"
)

const analyzePath = "/api/analyze"

// maxReplySize bounds how much of a server reply is read
const maxReplySize = 1 << 20

var (
	ErrNotAnImageFile  = errors.New("please upload an image file")
	ErrAnalysisPending = errors.New("an analysis is already in progress")
	ErrAnalysisFailed  = errors.New("failed to analyze meal")
)

// UserMessage turns an error from this package into the line shown to the user
func UserMessage(err error) string {
	var serverErr *ServerError
	switch {
	case errors.Is(err, ErrNotAnImageFile):
		return "Please upload an image file"
	case errors.Is(err, ErrAnalysisPending):
		return "An analysis is already in progress"
	case errors.As(err, &serverErr) && serverErr.StatusCode < 500:
		return serverErr.Message
	case errors.Is(err, ErrAnalysisFailed):
		return "Failed to analyze meal. Please try again."
	}
	return err.Error()
}

// EncodeImageFile reads an image from disk and returns it as a data URI
func EncodeImageFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	uri, err := common.EncodeImageDataURI(data, common.SniffImageType(data))
	if err != nil {
		return "", ErrNotAnImageFile
	}
	return uri, nil
}

type analyzeRequest struct {
	Image    string `json:"image"`
	MealType string `json:"mealType"`
}

type errorReply struct {
	Error string `json:"error"`
}

// ServerError carries the message of a non-2xx reply
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Uploader submits photos to the analysis server. It allows one outstanding
// analysis at a time.
type Uploader struct {
	serverURL  string
	httpClient *http.Client
	pending    atomic.Bool
	now        func() time.Time
}

func NewUploader(serverURL string, httpClient *http.Client) *Uploader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Uploader{
		serverURL:  strings.TrimRight(serverURL, "/"),
		httpClient: httpClient,
		now:        time.Now,
	}
}

// Analyze sends the photo and turns the reply into a new meal. The meal is
// not added to any log.
func (u *Uploader) Analyze(ctx context.Context, imageURI, mealType string) (meallog.Meal, error) {
	if !u.pending.CompareAndSwap(false, true) {
		return meallog.Meal{}, ErrAnalysisPending
	}
	defer u.pending.Store(false)

	reply, err := u.post(ctx, analyzeRequest{Image: imageURI, MealType: mealType})
	if err != nil {
		return meallog.Meal{}, err
	}

	now := u.now()
	foods := reply.foods()
	slog.Debug("meal analyzed", "foods", len(foods), "totalProtein", float64(reply.TotalProtein), "confidence", string(reply.Confidence))
	return meallog.Meal{
		ID:           meallog.NewMealID(now),
		Timestamp:    now,
		Foods:        foods,
		TotalProtein: float64(reply.TotalProtein),
		ImageURL:     imageURI,
		MealType:     mealType,
	}, nil
}

func (u *Uploader) post(ctx context.Context, payload analyzeRequest) (*analyzeReply, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.serverURL+analyzePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReplySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorReply
		message := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			message = e.Error
		}
		return nil, fmt.Errorf("%w: %w", ErrAnalysisFailed, &ServerError{StatusCode: resp.StatusCode, Message: message})
	}

	var reply analyzeReply
	if err := json.Unmarshal(data, &reply); err != nil {
		return nil, fmt.Errorf("%w: unexpected reply: %w", ErrAnalysisFailed, err)
	}
	return &reply, nil
}
