package repository

import (
	"edulearn_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, id).Error
	return &quiz, err
}

// FindByIDWithQuestions 加载测验的当前题目与选项，均按显示顺序。
// 评分必须走这里取实时内容，不能用缓存副本。
func (r *QuizRepository) FindByIDWithQuestions(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.`order` asc, questions.id asc")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("options.`order` asc, options.id asc")
		}).
		First(&quiz, id).Error
	return &quiz, err
}

// ListByCourse 取课程下所有测验：quizzes -> content_items -> sections -> course
func (r *QuizRepository) ListByCourse(courseID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.
		Joins("JOIN content_items ON content_items.id = quizzes.content_item_id AND content_items.deleted_at IS NULL").
		Joins("JOIN sections ON sections.id = content_items.section_id AND sections.deleted_at IS NULL").
		Where("sections.course_id = ?", courseID).
		Order("sections.`order` asc, content_items.`order` asc").
		Find(&quizzes).Error
	return quizzes, err
}

// CourseIDOfQuiz 反查测验所属课程，用于选课鉴权
func (r *QuizRepository) CourseIDOfQuiz(quizID uint) (uint, error) {
	var courseID uint
	err := r.DB.Model(&model.Quiz{}).
		Select("sections.course_id").
		Joins("JOIN content_items ON content_items.id = quizzes.content_item_id").
		Joins("JOIN sections ON sections.id = content_items.section_id").
		Where("quizzes.id = ?", quizID).
		Scan(&courseID).Error
	return courseID, err
}

func (r *QuizRepository) FindQuestionByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Preload("Options", func(db *gorm.DB) *gorm.DB {
		return db.Order("options.`order` asc, options.id asc")
	}).First(&q, id).Error
	return &q, err
}

// CreateQuestion 题目与选项在同一事务中写入
func (r *QuizRepository) CreateQuestion(q *model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(q).Error
	})
}

// UpdateQuestion 整体替换题目内容与选项
func (r *QuizRepository) UpdateQuestion(q *model.Question, options []model.Option) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(q).Updates(map[string]interface{}{
			"content": q.Content,
			"order":   q.Order,
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", q.ID).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		for i := range options {
			options[i].ID = 0
			options[i].QuestionID = q.ID
		}
		return tx.Create(&options).Error
	})
}

func (r *QuizRepository) DeleteQuestion(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, id).Error
	})
}
