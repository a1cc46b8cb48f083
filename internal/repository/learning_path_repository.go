package repository

import (
	"edulearn_backend/internal/model"

	"gorm.io/gorm"
)

type LearningPathRepository struct {
	DB *gorm.DB
}

func NewLearningPathRepository(db *gorm.DB) *LearningPathRepository {
	return &LearningPathRepository{DB: db}
}

// Create 路径与路径内课程在同一事务中写入
func (r *LearningPathRepository) Create(path *model.LearningPath) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(path).Error
	})
}

func (r *LearningPathRepository) FindByID(id string) (*model.LearningPath, error) {
	var path model.LearningPath
	err := r.DB.
		Preload("Courses", func(db *gorm.DB) *gorm.DB {
			return db.Order("learning_path_courses.position asc")
		}).
		Preload("Courses.Course").
		Where("id = ?", id).
		First(&path).Error
	return &path, err
}

func (r *LearningPathRepository) ListByUser(userID uint) ([]model.LearningPath, error) {
	var paths []model.LearningPath
	err := r.DB.
		Preload("Courses", func(db *gorm.DB) *gorm.DB {
			return db.Order("learning_path_courses.position asc")
		}).
		Preload("Courses.Course").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&paths).Error
	return paths, err
}

func (r *LearningPathRepository) UpdateStatus(id string, status string) error {
	return r.DB.Model(&model.LearningPath{}).Where("id = ?", id).Update("status", status).Error
}
