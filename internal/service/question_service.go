// FILE: internal/service/question_service.go
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"focus-shield-be/internal/dto"
	"focus-shield-be/internal/pkg/logger"
)

type IQuestionService interface {
	// Next asks the classifier for the next context-gathering question given
	// the answers so far. A "DONE" answer from the flow marks completion.
	Next(ctx context.Context, req *dto.QuestionRequest) (*dto.QuestionResponse, error)
}

type questionService struct {
	httpClient  *http.Client
	questionURL string
	logger      logger.ILogger
}

func NewQuestionService(classifierBaseURL string, timeout time.Duration, log logger.ILogger) IQuestionService {
	return &questionService{
		httpClient:  &http.Client{Timeout: timeout},
		questionURL: classifierBaseURL + "/question",
		logger:      log,
	}
}

func (s *questionService) Next(ctx context.Context, req *dto.QuestionRequest) (*dto.QuestionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal question request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.questionURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build question request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := s.httpClient.Do(httpReq)
	if err != nil {
		s.logger.Error("Question", "Question request failed", map[string]interface{}{"domain": req.Domain, "error": err.Error()})
		return nil, fmt.Errorf("question request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(httpResp.Body, 512))
		return nil, fmt.Errorf("question endpoint returned status %d: %s", httpResp.StatusCode, string(raw))
	}

	var parsed struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(httpResp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode question response: %w", err)
	}

	resp := &dto.QuestionResponse{Question: parsed.Question}
	if strings.EqualFold(strings.TrimSpace(parsed.Question), "DONE") {
		resp.Done = true
		resp.Question = ""
	}
	return resp, nil
}
