package repository

import (
	"edulearn_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, id).Error
	return &course, err
}

// FindByIDWithContent 课程详情，章节与内容按显示顺序加载
func (r *CourseRepository) FindByIDWithContent(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sections.`order` asc")
		}).
		Preload("Sections.Contents", func(db *gorm.DB) *gorm.DB {
			return db.Order("content_items.`order` asc")
		}).
		First(&course, id).Error
	return &course, err
}

func (r *CourseRepository) ListPublished(page, limit int) ([]model.Course, int64, error) {
	var courses []model.Course
	var total int64
	query := r.DB.Model(&model.Course{}).Where("is_published = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&courses).Error
	return courses, total, err
}

// FindByTitles 按标题批量查课程（用于把 AI 返回的课程名落到真实课程上），
// 保持入参顺序，未匹配的标题跳过
func (r *CourseRepository) FindByTitles(titles []string) ([]model.Course, error) {
	if len(titles) == 0 {
		return nil, nil
	}
	var courses []model.Course
	if err := r.DB.Where("title IN ? AND is_published = ?", titles, true).Find(&courses).Error; err != nil {
		return nil, err
	}

	byTitle := make(map[string]model.Course, len(courses))
	for _, c := range courses {
		byTitle[c.Title] = c
	}

	ordered := make([]model.Course, 0, len(courses))
	for _, t := range titles {
		if c, ok := byTitle[t]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}

// IsTeacherOfCourse 判断用户是否为课程授课教师
func (r *CourseRepository) IsTeacherOfCourse(userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Course{}).
		Where("id = ? AND teacher_id = ?", courseID, userID).
		Count(&count).Error
	return count > 0, err
}
