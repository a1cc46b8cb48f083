package service

import (
	"fmt"
	"testing"

	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupQuizService(t *testing.T) (*QuizService, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Section{},
		&model.ContentItem{},
		&model.Quiz{},
		&model.Question{},
		&model.Option{},
		&model.QuizAttempt{},
		&model.Enrollment{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	svc := NewQuizService(
		repository.NewQuizRepository(db),
		repository.NewAttemptRepository(db),
		repository.NewEnrollmentRepository(db),
	)
	return svc, db
}

// seedQuiz 建一条 课程 -> 章节 -> 内容项 -> 测验 链，附带题目
func seedQuiz(t *testing.T, db *gorm.DB, passingScore *int, questionCount int) (courseID, quizID uint, optionIDs map[uint][2]uint) {
	t.Helper()

	course := model.Course{Title: "C语言入门", IsPublished: true}
	require.NoError(t, db.Create(&course).Error)

	section := model.Section{CourseID: course.ID, Title: "第一章"}
	require.NoError(t, db.Create(&section).Error)

	item := model.ContentItem{SectionID: section.ID, ContentType: model.ContentTypeQuiz, Title: "章末测验"}
	require.NoError(t, db.Create(&item).Error)

	quiz := model.Quiz{ContentItemID: item.ID, Title: "章末测验", PassingScore: passingScore}
	require.NoError(t, db.Create(&quiz).Error)

	optionIDs = make(map[uint][2]uint)
	for i := 0; i < questionCount; i++ {
		q := model.Question{
			QuizID:  quiz.ID,
			Content: fmt.Sprintf("第 %d 题", i+1),
			Order:   i,
			Options: []model.Option{
				{Text: "正确选项", IsCorrect: true, Order: 0},
				{Text: "错误选项", IsCorrect: false, Order: 1},
			},
		}
		require.NoError(t, db.Create(&q).Error)
		optionIDs[q.ID] = [2]uint{q.Options[0].ID, q.Options[1].ID}
	}

	return course.ID, quiz.ID, optionIDs
}

func enroll(t *testing.T, db *gorm.DB, userID, courseID uint) {
	t.Helper()
	require.NoError(t, db.Create(&model.Enrollment{UserID: userID, CourseID: courseID}).Error)
}

func passing(v int) *int { return &v }

func TestSubmitQuiz(t *testing.T) {
	svc, db := setupQuizService(t)
	courseID, quizID, optionIDs := seedQuiz(t, db, passing(80), 4)
	enroll(t, db, 1, courseID)

	answers := make(map[uint]uint)
	i := 0
	for qid, opts := range optionIDs {
		if i < 3 {
			answers[qid] = opts[0] // 正确
		} else {
			answers[qid] = opts[1] // 错误
		}
		i++
	}

	result, err := svc.SubmitQuiz(1, quizID, QuizSubmissionRequest{Answers: answers})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Score)
	assert.Equal(t, 4, result.TotalScore)
	assert.Equal(t, 75, result.Percentage)
	assert.False(t, result.Passed) // 75 < 80
	assert.NotEmpty(t, result.AttemptID)

	// 记录落库且原始答案原样保存
	var attempt model.QuizAttempt
	require.NoError(t, db.First(&attempt, "id = ?", result.AttemptID).Error)
	assert.Equal(t, 3, attempt.Score)
	assert.Equal(t, 4, attempt.TotalScore)
	assert.NotEmpty(t, attempt.Answers)
}

func TestSubmitQuizNoPassingScore(t *testing.T) {
	svc, db := setupQuizService(t)
	courseID, quizID, optionIDs := seedQuiz(t, db, nil, 2)
	enroll(t, db, 1, courseID)

	// 全错也算通过：未设及格线
	answers := make(map[uint]uint)
	for qid, opts := range optionIDs {
		answers[qid] = opts[1]
	}

	result, err := svc.SubmitQuiz(1, quizID, QuizSubmissionRequest{Answers: answers})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Score)
	assert.True(t, result.Passed)
}

func TestSubmitQuizEmptyQuiz(t *testing.T) {
	svc, db := setupQuizService(t)
	courseID, quizID, _ := seedQuiz(t, db, passing(80), 0)
	enroll(t, db, 1, courseID)

	result, err := svc.SubmitQuiz(1, quizID, QuizSubmissionRequest{Answers: map[uint]uint{}})
	require.NoError(t, err)

	// 0 题测验视作 100% 通过
	assert.Equal(t, 0, result.TotalScore)
	assert.Equal(t, 100, result.Percentage)
	assert.True(t, result.Passed)
}

func TestSubmitQuizNotEnrolled(t *testing.T) {
	svc, db := setupQuizService(t)
	_, quizID, _ := seedQuiz(t, db, nil, 2)

	_, err := svc.SubmitQuiz(1, quizID, QuizSubmissionRequest{Answers: map[uint]uint{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrUnauthorized)
}

func TestSubmitQuizNotFound(t *testing.T) {
	svc, _ := setupQuizService(t)

	_, err := svc.SubmitQuiz(1, 9999, QuizSubmissionRequest{Answers: map[uint]uint{}})
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestSubmitQuizAppendsHistory(t *testing.T) {
	svc, db := setupQuizService(t)
	courseID, quizID, optionIDs := seedQuiz(t, db, nil, 2)
	enroll(t, db, 1, courseID)

	correct := make(map[uint]uint)
	for qid, opts := range optionIDs {
		correct[qid] = opts[0]
	}

	first, err := svc.SubmitQuiz(1, quizID, QuizSubmissionRequest{Answers: correct})
	require.NoError(t, err)

	// 教师在两次提交之间加题：历史记录的总数不被改写
	extra := model.Question{
		QuizID:  quizID,
		Content: "新加的题",
		Options: []model.Option{
			{Text: "对", IsCorrect: true},
			{Text: "错", IsCorrect: false},
		},
	}
	require.NoError(t, db.Create(&extra).Error)

	second, err := svc.SubmitQuiz(1, quizID, QuizSubmissionRequest{Answers: correct})
	require.NoError(t, err)

	assert.Equal(t, 2, first.TotalScore)
	assert.Equal(t, 3, second.TotalScore)
	assert.NotEqual(t, first.AttemptID, second.AttemptID)

	var storedFirst model.QuizAttempt
	require.NoError(t, db.First(&storedFirst, "id = ?", first.AttemptID).Error)
	assert.Equal(t, 2, storedFirst.TotalScore)
	assert.Equal(t, 100, storedFirst.Percentage())

	var count int64
	require.NoError(t, db.Model(&model.QuizAttempt{}).Where("user_id = ? AND quiz_id = ?", 1, quizID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestGetQuizForStudentHidesAnswers(t *testing.T) {
	svc, db := setupQuizService(t)
	courseID, quizID, _ := seedQuiz(t, db, nil, 2)
	enroll(t, db, 1, courseID)

	resp, err := svc.GetQuizForStudent(1, quizID)
	require.NoError(t, err)
	require.Len(t, resp.Questions, 2)
	for _, q := range resp.Questions {
		assert.Len(t, q.Options, 2)
	}
}

func TestMyQuizSummary(t *testing.T) {
	svc, db := setupQuizService(t)
	courseID, quizID, optionIDs := seedQuiz(t, db, nil, 2)
	enroll(t, db, 1, courseID)

	correct := make(map[uint]uint)
	wrong := make(map[uint]uint)
	for qid, opts := range optionIDs {
		correct[qid] = opts[0]
		wrong[qid] = opts[1]
	}

	_, err := svc.SubmitQuiz(1, quizID, QuizSubmissionRequest{Answers: wrong})
	require.NoError(t, err)
	_, err = svc.SubmitQuiz(1, quizID, QuizSubmissionRequest{Answers: correct})
	require.NoError(t, err)

	summary, err := svc.MyQuizSummary(1, quizID)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalAttempts)
	assert.Equal(t, 50.0, summary.AverageScore)
	assert.Equal(t, 100.0, summary.BestScore)
	assert.Len(t, summary.RecentAttempts, 2)
}
