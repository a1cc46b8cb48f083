package service

import (
	"context"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// 测评结果到学习等级的映射：1 基础 2 初级 3 中级 4 高级
const (
	LearningLevelBasic        = 1
	LearningLevelElementary   = 2
	LearningLevelIntermediate = 3
	LearningLevelAdvanced     = 4
)

// adviceLockTTL 建议生成单飞锁的自动过期时间，兜底 AI 调用悬挂的情况
const adviceLockTTL = 30 * time.Second

type LearningPathService struct {
	Repo           *repository.LearningPathRepository
	AssessmentRepo *repository.AssessmentRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	AI             *AIService
	Redis          *redis.Client
}

func NewLearningPathService(
	repo *repository.LearningPathRepository,
	assessmentRepo *repository.AssessmentRepository,
	courseRepo *repository.CourseRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	ai *AIService,
	rdb *redis.Client,
) *LearningPathService {
	return &LearningPathService{
		Repo:           repo,
		AssessmentRepo: assessmentRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		AI:             ai,
		Redis:          rdb,
	}
}

type PlacementSubmission struct {
	TopicIDs    []uint        `json:"topicIds" binding:"required"`
	QuestionIDs []uint        `json:"questionIds" binding:"required"`
	Answers     map[uint]uint `json:"answers" binding:"required"` // 题目ID -> 选项ID
}

type PlacementResult struct {
	Score      int                 `json:"score"`
	TotalScore int                 `json:"totalScore"`
	Percentage int                 `json:"percentage"`
	Level      int                 `json:"level"`
	Path       *model.LearningPath `json:"path"`
}

// GenerateFromPlacement 学前测评提交：服务端判分，调用 AI 推荐服务，
// 持久化一条 NOT_STARTED 的学习路径。
// 建议生成按用户单飞（Redis SETNX + TTL），并发重复提交直接拒绝，
// 避免同一会话刷出多条路径；不用进程级全局标志，多实例部署同样成立。
func (s *LearningPathService) GenerateFromPlacement(ctx context.Context, userID uint, req PlacementSubmission) (*PlacementResult, error) {
	lockKey := fmt.Sprintf("ai:advice:inflight:%d", userID)
	acquired, err := s.Redis.SetNX(ctx, lockKey, 1, adviceLockTTL).Result()
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, fmt.Errorf("%w: advice generation already in progress", util.ErrInvalidInput)
	}
	defer s.Redis.Del(ctx, lockKey)

	questions, err := s.AssessmentRepo.FindQuestionsByIDs(req.QuestionIDs)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no assessment questions found", util.ErrInvalidInput)
	}

	score, totalScore := gradeAssessment(questions, req.Answers)
	percentage := RoundPercentage(score, totalScore)
	level := levelForPercentage(percentage)

	topicNames := make([]string, 0, len(req.TopicIDs))
	for _, topicID := range req.TopicIDs {
		topic, err := s.AssessmentRepo.FindTopicByID(topicID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("topic %d: %w", topicID, util.ErrNotFound)
			}
			return nil, err
		}
		topicNames = append(topicNames, topic.Name)
	}

	aiReq := RecommendationRequest{
		Topics:    topicNames,
		Level:     level,
		Questions: make([]RecommendationQuestion, len(questions)),
	}
	for i, q := range questions {
		correctID, ok := canonicalAssessmentOption(q.Options)
		chosen, answered := req.Answers[q.ID]
		aiReq.Questions[i] = RecommendationQuestion{
			Question: q.Content,
			Correct:  ok && answered && chosen == correctID,
		}
	}

	recommendation, err := s.AI.GetRecommendation(ctx, aiReq)
	if err != nil {
		return nil, err
	}

	courses, err := s.CourseRepo.FindByTitles(recommendation.RecommendedLearningPaths)
	if err != nil {
		return nil, err
	}

	path := &model.LearningPath{
		UserID:      userID,
		Title:       fmt.Sprintf("%s 学习路径", strings.Join(topicNames, "、")),
		Advice:      recommendation.Advice,
		Explanation: recommendation.Explanation,
		Status:      model.PathStatusNotStarted,
		Courses:     make([]model.LearningPathCourse, len(courses)),
	}
	for i, c := range courses {
		path.Courses[i] = model.LearningPathCourse{
			CourseID: c.ID,
			Position: i,
		}
	}

	if err := s.Repo.Create(path); err != nil {
		return nil, err
	}

	return &PlacementResult{
		Score:      score,
		TotalScore: totalScore,
		Percentage: percentage,
		Level:      level,
		Path:       path,
	}, nil
}

func levelForPercentage(percentage int) int {
	switch {
	case percentage < 40:
		return LearningLevelBasic
	case percentage < 60:
		return LearningLevelElementary
	case percentage < 80:
		return LearningLevelIntermediate
	default:
		return LearningLevelAdvanced
	}
}

func (s *LearningPathService) ListMyPaths(userID uint) ([]model.LearningPath, error) {
	return s.Repo.ListByUser(userID)
}

func (s *LearningPathService) findOwnedPath(userID uint, pathID string) (*model.LearningPath, error) {
	path, err := s.Repo.FindByID(pathID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("learning path %s: %w", pathID, util.ErrNotFound)
		}
		return nil, err
	}
	if path.UserID != userID {
		return nil, fmt.Errorf("learning path %s: %w", pathID, util.ErrUnauthorized)
	}
	return path, nil
}

// EnrollCourse 在学习路径内选一门课。重复选课是空操作，不报错。
// 首次选课把路径从 NOT_STARTED 推进到 IN_PROGRESS；没有回退转换。
func (s *LearningPathService) EnrollCourse(userID uint, pathID string, courseID uint) error {
	path, err := s.findOwnedPath(userID, pathID)
	if err != nil {
		return err
	}

	inPath := false
	for _, pc := range path.Courses {
		if pc.CourseID == courseID {
			inPath = true
			break
		}
	}
	if !inPath {
		return fmt.Errorf("course %d in path %s: %w", courseID, pathID, util.ErrNotFound)
	}

	if err := s.EnrollmentRepo.Upsert(userID, courseID); err != nil {
		return err
	}

	if path.Status == model.PathStatusNotStarted {
		return s.Repo.UpdateStatus(pathID, model.PathStatusInProgress)
	}
	return nil
}

// EnrollAll 路径整体报名：对路径内每门课各做一次幂等 upsert。
// 中途失败不回滚，已成功的选课保留；每次 upsert 可独立安全重试。
func (s *LearningPathService) EnrollAll(userID uint, pathID string) error {
	path, err := s.findOwnedPath(userID, pathID)
	if err != nil {
		return err
	}

	for _, pc := range path.Courses {
		if err := s.EnrollmentRepo.Upsert(userID, pc.CourseID); err != nil {
			return err
		}
	}

	if path.Status == model.PathStatusNotStarted {
		return s.Repo.UpdateStatus(pathID, model.PathStatusInProgress)
	}
	return nil
}
