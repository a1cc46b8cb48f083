package service

import (
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"
	"edulearn_backend/pkg/monitoring"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
)

type QuizService struct {
	Repo           *repository.QuizRepository
	AttemptRepo    *repository.AttemptRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewQuizService(
	repo *repository.QuizRepository,
	attemptRepo *repository.AttemptRepository,
	enrollmentRepo *repository.EnrollmentRepository,
) *QuizService {
	return &QuizService{
		Repo:           repo,
		AttemptRepo:    attemptRepo,
		EnrollmentRepo: enrollmentRepo,
	}
}

type QuizSubmissionRequest struct {
	Answers map[uint]uint `json:"answers" binding:"required"` // 题目ID -> 选项ID
}

type QuizSubmissionResult struct {
	AttemptID  string `json:"attemptId"`
	Score      int    `json:"score"`
	TotalScore int    `json:"totalScore"`
	Percentage int    `json:"percentage"`
	Passed     bool   `json:"passed"`
}

// SubmitQuiz 提交测验：重新取实时题目评分，追加一条不可变的评分记录。
// 教师在分发后修改题目会影响之后的提交，但不改写历史记录。
func (s *QuizService) SubmitQuiz(userID, quizID uint, req QuizSubmissionRequest) (*QuizSubmissionResult, error) {
	quiz, err := s.Repo.FindByIDWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("quiz %d: %w", quizID, util.ErrNotFound)
		}
		return nil, err
	}

	if err := s.requireEnrolled(userID, quizID); err != nil {
		return nil, err
	}

	score, totalScore := GradeQuiz(quiz.Questions, req.Answers)

	// 0 题测验按通过处理（0/0 视作 100%）
	percentage := 100
	if totalScore > 0 {
		percentage = RoundPercentage(score, totalScore)
	}

	passed := true
	if quiz.PassingScore != nil {
		passed = percentage >= *quiz.PassingScore
	}

	// 原始答案原样落库，供事后复查
	answersJSON, err := json.Marshal(req.Answers)
	if err != nil {
		return nil, err
	}

	attempt := &model.QuizAttempt{
		QuizID:      quizID,
		UserID:      userID,
		Score:       score,
		TotalScore:  totalScore,
		Answers:     answersJSON,
		SubmittedAt: time.Now(),
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}

	monitoring.QuizSubmissionCounter.WithLabelValues(strconv.FormatBool(passed)).Inc()

	return &QuizSubmissionResult{
		AttemptID:  attempt.ID,
		Score:      score,
		TotalScore: totalScore,
		Percentage: percentage,
		Passed:     passed,
	}, nil
}

// MyQuizSummary 学生查看自己在某测验上的汇总（总次数、平均分、最高分、最近 5 次）
func (s *QuizService) MyQuizSummary(userID, quizID uint) (*AttemptSummary, error) {
	if _, err := s.Repo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("quiz %d: %w", quizID, util.ErrNotFound)
		}
		return nil, err
	}

	if err := s.requireEnrolled(userID, quizID); err != nil {
		return nil, err
	}

	attempts, err := s.AttemptRepo.ListByUserAndQuiz(userID, quizID)
	if err != nil {
		return nil, err
	}

	summary := SummarizeAttempts(attempts, nil)
	return &summary, nil
}

type StudentOption struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type StudentQuestion struct {
	ID      uint            `json:"id"`
	Content string          `json:"content"`
	Options []StudentOption `json:"options"`
}

type StudentQuizResponse struct {
	ID           uint              `json:"id"`
	Title        string            `json:"title"`
	PassingScore *int              `json:"passingScore,omitempty"`
	Questions    []StudentQuestion `json:"questions"`
}

// GetQuizForStudent 学生端取题，IsCorrect 不下发
func (s *QuizService) GetQuizForStudent(userID, quizID uint) (*StudentQuizResponse, error) {
	quiz, err := s.Repo.FindByIDWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("quiz %d: %w", quizID, util.ErrNotFound)
		}
		return nil, err
	}

	if err := s.requireEnrolled(userID, quizID); err != nil {
		return nil, err
	}

	res := &StudentQuizResponse{
		ID:           quiz.ID,
		Title:        quiz.Title,
		PassingScore: quiz.PassingScore,
		Questions:    make([]StudentQuestion, len(quiz.Questions)),
	}
	for i, q := range quiz.Questions {
		sq := StudentQuestion{
			ID:      q.ID,
			Content: q.Content,
			Options: make([]StudentOption, len(q.Options)),
		}
		for j, opt := range q.Options {
			sq.Options[j] = StudentOption{ID: opt.ID, Text: opt.Text}
		}
		res.Questions[i] = sq
	}
	return res, nil
}

func (s *QuizService) requireEnrolled(userID, quizID uint) error {
	courseID, err := s.Repo.CourseIDOfQuiz(quizID)
	if err != nil {
		return err
	}
	enrolled, err := s.EnrollmentRepo.Exists(userID, courseID)
	if err != nil {
		return err
	}
	if !enrolled {
		return fmt.Errorf("course %d: %w", courseID, util.ErrUnauthorized)
	}
	return nil
}

type QuestionOptionRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
	Order     int    `json:"order"`
}

type QuestionRequest struct {
	Content string                  `json:"content" binding:"required"`
	Order   int                     `json:"order"`
	Options []QuestionOptionRequest `json:"options" binding:"required"`
}

func validateQuestionRequest(req QuestionRequest) error {
	if req.Content == "" {
		return fmt.Errorf("%w: question content is required", util.ErrInvalidInput)
	}
	if len(req.Options) < 2 {
		return fmt.Errorf("%w: a question requires at least 2 options", util.ErrInvalidInput)
	}
	hasCorrect := false
	for _, opt := range req.Options {
		if opt.Text == "" {
			return fmt.Errorf("%w: option text is required", util.ErrInvalidInput)
		}
		if opt.IsCorrect {
			hasCorrect = true
		}
	}
	if !hasCorrect {
		return fmt.Errorf("%w: at least one option must be marked correct", util.ErrInvalidInput)
	}
	return nil
}

// CreateQuestion 教师出题。请求体先过显式校验再落库。
func (s *QuizService) CreateQuestion(quizID uint, req QuestionRequest) (*model.Question, error) {
	if err := validateQuestionRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.Repo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("quiz %d: %w", quizID, util.ErrNotFound)
		}
		return nil, err
	}

	q := &model.Question{
		QuizID:  quizID,
		Content: req.Content,
		Order:   req.Order,
		Options: make([]model.Option, len(req.Options)),
	}
	for i, opt := range req.Options {
		q.Options[i] = model.Option{
			Text:      opt.Text,
			IsCorrect: opt.IsCorrect,
			Order:     opt.Order,
		}
	}

	if err := s.Repo.CreateQuestion(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuizService) UpdateQuestion(questionID uint, req QuestionRequest) (*model.Question, error) {
	if err := validateQuestionRequest(req); err != nil {
		return nil, err
	}

	q, err := s.Repo.FindQuestionByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("question %d: %w", questionID, util.ErrNotFound)
		}
		return nil, err
	}

	q.Content = req.Content
	q.Order = req.Order

	options := make([]model.Option, len(req.Options))
	for i, opt := range req.Options {
		options[i] = model.Option{
			Text:      opt.Text,
			IsCorrect: opt.IsCorrect,
			Order:     opt.Order,
		}
	}

	if err := s.Repo.UpdateQuestion(q, options); err != nil {
		return nil, err
	}
	q.Options = options
	return q, nil
}

func (s *QuizService) DeleteQuestion(questionID uint) error {
	if _, err := s.Repo.FindQuestionByID(questionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("question %d: %w", questionID, util.ErrNotFound)
		}
		return err
	}
	return s.Repo.DeleteQuestion(questionID)
}
