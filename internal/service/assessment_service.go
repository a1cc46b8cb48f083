package service

import (
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"
	"errors"
	"fmt"
	"math/rand"

	"gorm.io/gorm"
)

type AssessmentService struct {
	Repo *repository.AssessmentRepository
}

func NewAssessmentService(repo *repository.AssessmentRepository) *AssessmentService {
	return &AssessmentService{Repo: repo}
}

func (s *AssessmentService) ListTopics() ([]model.Topic, error) {
	return s.Repo.ListTopics()
}

type StudentAssessmentOption struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type StudentAssessmentQuestion struct {
	ID      uint                      `json:"id"`
	Content string                    `json:"content"`
	Options []StudentAssessmentOption `json:"options"`
}

// RandomQuestions 从主题题池随机抽取 count 道题（Fisher–Yates 洗牌后取前段）。
// count 超过题池大小时静默截断；题池为空返回空列表而不是错误。
// 下发给考生的响应不带 IsCorrect，正确答案只留在服务端供判分。
func (s *AssessmentService) RandomQuestions(topicID uint, count int) ([]StudentAssessmentQuestion, error) {
	if _, err := s.Repo.FindTopicByID(topicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("topic %d: %w", topicID, util.ErrNotFound)
		}
		return nil, err
	}

	pool, err := s.Repo.ListQuestionsByTopic(topicID)
	if err != nil {
		return nil, err
	}

	sampled := sampleQuestions(pool, count)

	res := make([]StudentAssessmentQuestion, len(sampled))
	for i, q := range sampled {
		sq := StudentAssessmentQuestion{
			ID:      q.ID,
			Content: q.Content,
			Options: make([]StudentAssessmentOption, len(q.Options)),
		}
		for j, opt := range q.Options {
			sq.Options[j] = StudentAssessmentOption{ID: opt.ID, Text: opt.Text}
		}
		res[i] = sq
	}
	return res, nil
}

// sampleQuestions 均匀洗牌后取前 min(n, len(pool)) 个。不修改入参。
func sampleQuestions(pool []model.AssessmentQuestion, n int) []model.AssessmentQuestion {
	if n <= 0 || len(pool) == 0 {
		return nil
	}
	shuffled := make([]model.AssessmentQuestion, len(pool))
	copy(shuffled, pool)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

// gradeAssessment 学前测评判分，标准答案规则与测验评分一致：
// 按显示顺序第一个 IsCorrect 的选项为准
func gradeAssessment(questions []model.AssessmentQuestion, answers map[uint]uint) (score, totalScore int) {
	totalScore = len(questions)
	for _, q := range questions {
		correctID, ok := canonicalAssessmentOption(q.Options)
		if !ok {
			continue
		}
		if chosen, answered := answers[q.ID]; answered && chosen == correctID {
			score++
		}
	}
	return score, totalScore
}

func canonicalAssessmentOption(options []model.AssessmentOption) (uint, bool) {
	found := false
	var bestID uint
	var bestOrder int
	for _, opt := range options {
		if !opt.IsCorrect {
			continue
		}
		if !found || opt.Order < bestOrder || (opt.Order == bestOrder && opt.ID < bestID) {
			found = true
			bestID = opt.ID
			bestOrder = opt.Order
		}
	}
	return bestID, found
}

type AssessmentOptionRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
	Order     int    `json:"order"`
}

type AssessmentQuestionRequest struct {
	Content     string                    `json:"content" binding:"required"`
	Explanation string                    `json:"explanation"`
	Order       int                       `json:"order"`
	TopicIDs    []uint                    `json:"topicIds" binding:"required"`
	Options     []AssessmentOptionRequest `json:"options" binding:"required"`
}

// CreateQuestion 教师维护题池。校验规则与测验出题一致。
func (s *AssessmentService) CreateQuestion(req AssessmentQuestionRequest) (*model.AssessmentQuestion, error) {
	if req.Content == "" {
		return nil, fmt.Errorf("%w: question content is required", util.ErrInvalidInput)
	}
	if len(req.Options) < 2 {
		return nil, fmt.Errorf("%w: a question requires at least 2 options", util.ErrInvalidInput)
	}
	hasCorrect := false
	for _, opt := range req.Options {
		if opt.Text == "" {
			return nil, fmt.Errorf("%w: option text is required", util.ErrInvalidInput)
		}
		if opt.IsCorrect {
			hasCorrect = true
		}
	}
	if !hasCorrect {
		return nil, fmt.Errorf("%w: at least one option must be marked correct", util.ErrInvalidInput)
	}
	if len(req.TopicIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one topic is required", util.ErrInvalidInput)
	}

	q := &model.AssessmentQuestion{
		Content:     req.Content,
		Explanation: req.Explanation,
		Order:       req.Order,
		Options:     make([]model.AssessmentOption, len(req.Options)),
	}
	for i, opt := range req.Options {
		q.Options[i] = model.AssessmentOption{
			Text:      opt.Text,
			IsCorrect: opt.IsCorrect,
			Order:     opt.Order,
		}
	}

	if err := s.Repo.CreateQuestion(q, req.TopicIDs); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *AssessmentService) GetQuestion(id uint) (*model.AssessmentQuestion, error) {
	q, err := s.Repo.FindQuestionByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("assessment question %d: %w", id, util.ErrNotFound)
		}
		return nil, err
	}
	return q, nil
}

func (s *AssessmentService) DeleteQuestion(id uint) error {
	if _, err := s.Repo.FindQuestionByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("assessment question %d: %w", id, util.ErrNotFound)
		}
		return err
	}
	return s.Repo.DeleteQuestion(id)
}

type TopicRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *AssessmentService) CreateTopic(req TopicRequest) (*model.Topic, error) {
	topic := &model.Topic{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
		Enabled:     true,
	}
	if err := s.Repo.CreateTopic(topic); err != nil {
		return nil, err
	}
	return topic, nil
}
