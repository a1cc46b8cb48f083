package repository

import (
	"edulearn_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// Upsert 幂等选课：命中 (user_id, course_id) 唯一键时什么都不做。
// 并发重复选课依赖该 upsert 保证安全，不加锁。
func (r *EnrollmentRepository) Upsert(userID, courseID uint) error {
	enrollment := model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(&enrollment).Error
}

func (r *EnrollmentRepository) Exists(userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// ListByCourse 课程的全部选课记录，按选课时间倒序（花名册行序以此为准）
func (r *EnrollmentRepository) ListByCourse(courseID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.
		Preload("User").
		Where("course_id = ?", courseID).
		Order("created_at desc").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.
		Preload("User").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) ListByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.
		Preload("Course").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&enrollments).Error
	return enrollments, err
}
