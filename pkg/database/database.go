package database

import (
	"edulearn_backend/internal/config"
	"edulearn_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Section{},
		&model.ContentItem{},
		&model.Quiz{},
		&model.Question{},
		&model.Option{},
		&model.QuizAttempt{},
		&model.Enrollment{},
		&model.Topic{},
		&model.AssessmentQuestion{},
		&model.AssessmentOption{},
		&model.LearningPath{},
		&model.LearningPathCourse{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认测评主题（题库为空时插入常用主题）
	var topicCount int64
	db.Model(&model.Topic{}).Count(&topicCount)
	if topicCount == 0 {
		defaultTopics := []model.Topic{
			{Code: "basics", Name: "编程基础", Description: "变量、类型与表达式", Enabled: true},
			{Code: "control_flow", Name: "流程控制", Description: "分支与循环", Enabled: true},
			{Code: "data_structure", Name: "数据结构", Description: "数组、链表与哈希", Enabled: true},
			{Code: "algorithm", Name: "算法", Description: "排序、查找与递归", Enabled: true},
		}
		for _, t := range defaultTopics {
			db.Create(&t)
		}
	}

	return db, nil
}
