package service

import (
	"bytes"
	"context"
	"edulearn_backend/internal/config"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// AIService 外部学习路径推荐服务的客户端。对方是黑盒，
// 本服务不做重试，失败原样上抛由调用方处理。
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// UpdateConfig 配置热更新入口（地址/密钥轮换无需重启）
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

func (s *AIService) currentConfig() config.AIConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

type RecommendationQuestion struct {
	Question string `json:"question"`
	Correct  bool   `json:"correct"`
}

type RecommendationRequest struct {
	Topics    []string                 `json:"topics"`
	Level     int                      `json:"level"`
	Questions []RecommendationQuestion `json:"questions"`
}

type RecommendationResponse struct {
	Advice                   string   `json:"advice"`
	RecommendedLearningPaths []string `json:"recommendedLearningPaths"`
	Explanation              string   `json:"explanation"`
}

func (s *AIService) GetRecommendation(ctx context.Context, req RecommendationRequest) (*RecommendationResponse, error) {
	cfg := s.currentConfig()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.BaseURL+"/recommend", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result RecommendationResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

type feedbackRequest struct {
	Question    string `json:"question"`
	QuestionUID string `json:"question_uid"`
}

type feedbackResponse struct {
	Feedback string `json:"feedback"`
}

// QuestionFeedback 针对单题请求 AI 点评，返回自由文本
func (s *AIService) QuestionFeedback(ctx context.Context, question, questionUID string) (string, error) {
	cfg := s.currentConfig()

	body, err := json.Marshal(feedbackRequest{Question: question, QuestionUID: questionUID})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.BaseURL+"/feedback", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result feedbackResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}
	return result.Feedback, nil
}
