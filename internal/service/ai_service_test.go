package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"edulearn_backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRecommendation(t *testing.T) {
	var gotAuth string
	var gotReq RecommendationRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/recommend", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(RecommendationResponse{
			Advice:                   "从指针基础补起",
			RecommendedLearningPaths: []string{"C语言基础", "C语言进阶"},
			Explanation:              "两道指针题都答错了",
		})
	}))
	defer server.Close()

	svc := NewAIService(config.AIConfig{BaseURL: server.URL, APIKey: "test-key"})

	resp, err := svc.GetRecommendation(context.Background(), RecommendationRequest{
		Topics: []string{"指针"},
		Level:  LearningLevelBasic,
		Questions: []RecommendationQuestion{
			{Question: "什么是野指针", Correct: false},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, []string{"指针"}, gotReq.Topics)
	assert.Equal(t, LearningLevelBasic, gotReq.Level)
	assert.Equal(t, "从指针基础补起", resp.Advice)
	assert.Equal(t, []string{"C语言基础", "C语言进阶"}, resp.RecommendedLearningPaths)
}

func TestGetRecommendationUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	svc := NewAIService(config.AIConfig{BaseURL: server.URL})

	_, err := svc.GetRecommendation(context.Background(), RecommendationRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
	assert.Contains(t, err.Error(), "model overloaded")
}

func TestQuestionFeedback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/feedback", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "什么是野指针", req["question"])
		assert.Equal(t, "q-123", req["question_uid"])

		json.NewEncoder(w).Encode(map[string]string{"feedback": "指向已释放内存的指针"})
	}))
	defer server.Close()

	svc := NewAIService(config.AIConfig{BaseURL: server.URL})

	feedback, err := svc.QuestionFeedback(context.Background(), "什么是野指针", "q-123")
	require.NoError(t, err)
	assert.Equal(t, "指向已释放内存的指针", feedback)
}

func TestUpdateConfigSwitchesEndpoint(t *testing.T) {
	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"feedback": "old"})
	}))
	defer first.Close()
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"feedback": "new"})
	}))
	defer second.Close()

	svc := NewAIService(config.AIConfig{BaseURL: first.URL})

	feedback, err := svc.QuestionFeedback(context.Background(), "q", "")
	require.NoError(t, err)
	assert.Equal(t, "old", feedback)

	// 配置热更新后走新地址，无需重建客户端
	svc.UpdateConfig(config.AIConfig{BaseURL: second.URL})

	feedback, err = svc.QuestionFeedback(context.Background(), "q", "")
	require.NoError(t, err)
	assert.Equal(t, "new", feedback)
}
