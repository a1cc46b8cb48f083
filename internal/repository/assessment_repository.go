package repository

import (
	"edulearn_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) ListTopics() ([]model.Topic, error) {
	var topics []model.Topic
	err := r.DB.Where("enabled = ?", true).Order("id asc").Find(&topics).Error
	return topics, err
}

func (r *AssessmentRepository) FindTopicByID(id uint) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.First(&topic, id).Error
	return &topic, err
}

func (r *AssessmentRepository) CreateTopic(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

// ListQuestionsByTopic 某主题下的完整题池（含选项，多对多关联）
func (r *AssessmentRepository) ListQuestionsByTopic(topicID uint) ([]model.AssessmentQuestion, error) {
	var qs []model.AssessmentQuestion
	err := r.DB.
		Joins("JOIN assessment_question_topics aqt ON aqt.assessment_question_id = assessment_questions.id").
		Where("aqt.topic_id = ?", topicID).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("assessment_options.`order` asc, assessment_options.id asc")
		}).
		Order("assessment_questions.`order` asc, assessment_questions.created_at desc").
		Find(&qs).Error
	return qs, err
}

// FindQuestionsByIDs 按 ID 批量取题（含选项），用于学前测评服务端判分
func (r *AssessmentRepository) FindQuestionsByIDs(ids []uint) ([]model.AssessmentQuestion, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var qs []model.AssessmentQuestion
	err := r.DB.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("assessment_options.`order` asc, assessment_options.id asc")
		}).
		Where("id IN ?", ids).
		Find(&qs).Error
	return qs, err
}

func (r *AssessmentRepository) FindQuestionByID(id uint) (*model.AssessmentQuestion, error) {
	var q model.AssessmentQuestion
	err := r.DB.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("assessment_options.`order` asc, assessment_options.id asc")
		}).
		Preload("Topics").
		First(&q, id).Error
	return &q, err
}

// CreateQuestion 题目、选项、主题关联在同一事务中写入
func (r *AssessmentRepository) CreateQuestion(q *model.AssessmentQuestion, topicIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(q).Error; err != nil {
			return err
		}
		if len(topicIDs) > 0 {
			var topics []model.Topic
			if err := tx.Where("id IN ?", topicIDs).Find(&topics).Error; err != nil {
				return err
			}
			if err := tx.Model(q).Association("Topics").Replace(topics); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AssessmentRepository) DeleteQuestion(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.AssessmentOption{}).Error; err != nil {
			return err
		}
		q := model.AssessmentQuestion{BaseModel: model.BaseModel{ID: id}}
		if err := tx.Model(&q).Association("Topics").Clear(); err != nil {
			return err
		}
		return tx.Delete(&model.AssessmentQuestion{}, id).Error
	})
}
