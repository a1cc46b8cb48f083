package repository

import (
	"edulearn_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// Create 追加一条评分记录。记录只插入不更新，重考产生新行。
func (r *AttemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id string) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.Where("id = ?", id).First(&attempt).Error
	return &attempt, err
}

// ListByUserAndQuiz 单个学生在单个测验上的全部记录，按提交时间倒序
func (r *AttemptRepository) ListByUserAndQuiz(userID, quizID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.
		Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("submitted_at desc").
		Find(&attempts).Error
	return attempts, err
}

// ListByUserAndQuizzes 单个学生在一组测验上的全部记录，按提交时间倒序。
// 课程花名册按课程内的测验集合调用。
func (r *AttemptRepository) ListByUserAndQuizzes(userID uint, quizIDs []uint) ([]model.QuizAttempt, error) {
	if len(quizIDs) == 0 {
		return nil, nil
	}
	var attempts []model.QuizAttempt
	err := r.DB.
		Where("user_id = ? AND quiz_id IN ?", userID, quizIDs).
		Order("submitted_at desc").
		Find(&attempts).Error
	return attempts, err
}
