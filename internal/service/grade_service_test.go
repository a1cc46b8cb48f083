package service

import (
	"fmt"
	"testing"
	"time"

	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type gradeFixture struct {
	svc      *GradeService
	db       *gorm.DB
	courseID uint
	quizA    uint
	quizB    uint
	alice    model.User
	bob      model.User
}

func setupGradeFixture(t *testing.T) *gradeFixture {
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

	f := &gradeFixture{db: db}
	f.svc = NewGradeService(
		repository.NewCourseRepository(db),
		repository.NewQuizRepository(db),
		repository.NewEnrollmentRepository(db),
		repository.NewAttemptRepository(db),
	)

	teacher := model.User{Name: "王老师", Email: "teacher@example.com", Password: "x", Role: model.Teacher}
	require.NoError(t, db.Create(&teacher).Error)

	f.alice = model.User{Name: "小红", Email: "alice@example.com", Password: "x", Role: model.Student}
	f.bob = model.User{Name: "小明", Email: "bob@example.com", Password: "x", Role: model.Student}
	require.NoError(t, db.Create(&f.alice).Error)
	require.NoError(t, db.Create(&f.bob).Error)

	course := model.Course{Title: "数据结构", TeacherID: teacher.ID, IsPublished: true}
	require.NoError(t, db.Create(&course).Error)
	f.courseID = course.ID

	section := model.Section{CourseID: course.ID, Title: "第一章"}
	require.NoError(t, db.Create(&section).Error)

	for i, title := range []string{"链表测验", "树测验"} {
		item := model.ContentItem{SectionID: section.ID, ContentType: model.ContentTypeQuiz, Title: title, Order: i}
		require.NoError(t, db.Create(&item).Error)
		quiz := model.Quiz{ContentItemID: item.ID, Title: title}
		require.NoError(t, db.Create(&quiz).Error)
		if i == 0 {
			f.quizA = quiz.ID
		} else {
			f.quizB = quiz.ID
		}
	}

	return f
}

func (f *gradeFixture) enrollAt(t *testing.T, userID uint, at time.Time) {
	t.Helper()
	e := model.Enrollment{UserID: userID, CourseID: f.courseID}
	e.CreatedAt = at
	require.NoError(t, f.db.Create(&e).Error)
}

func (f *gradeFixture) addAttempt(t *testing.T, userID, quizID uint, score, total int, at time.Time) {
	t.Helper()
	a := model.QuizAttempt{
		QuizID:      quizID,
		UserID:      userID,
		Score:       score,
		TotalScore:  total,
		SubmittedAt: at,
	}
	require.NoError(t, f.db.Create(&a).Error)
}

func TestCourseRoster(t *testing.T) {
	f := setupGradeFixture(t)
	now := time.Now()

	f.enrollAt(t, f.alice.ID, now.Add(-2*time.Hour))
	f.enrollAt(t, f.bob.ID, now.Add(-time.Hour)) // 后选课，排在前面

	// 小红：跨两个测验共 3 次提交
	f.addAttempt(t, f.alice.ID, f.quizA, 2, 4, now.Add(-50*time.Minute)) // 50%
	f.addAttempt(t, f.alice.ID, f.quizA, 4, 4, now.Add(-40*time.Minute)) // 100%
	f.addAttempt(t, f.alice.ID, f.quizB, 3, 4, now.Add(-30*time.Minute)) // 75%

	rows, err := f.svc.CourseRoster(f.courseID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// 行序与选课时间倒序一致
	assert.Equal(t, f.bob.ID, rows[0].StudentID)
	assert.Equal(t, "小明", rows[0].StudentName)
	assert.Equal(t, f.alice.ID, rows[1].StudentID)

	// 没有任何提交的学生是全零汇总，不是缺行
	assert.Equal(t, 0, rows[0].TotalAttempts)
	assert.Equal(t, 0.0, rows[0].AverageScore)
	assert.NotNil(t, rows[0].RecentAttempts)

	// 跨测验合并：(50+100+75)/3 = 75
	assert.Equal(t, 3, rows[1].TotalAttempts)
	assert.Equal(t, 75.0, rows[1].AverageScore)
	assert.Equal(t, 100.0, rows[1].BestScore)

	// 最近记录带测验标题
	require.NotEmpty(t, rows[1].RecentAttempts)
	assert.Equal(t, "树测验", rows[1].RecentAttempts[0].QuizTitle)
}

func TestCourseRosterCourseNotFound(t *testing.T) {
	f := setupGradeFixture(t)

	_, err := f.svc.CourseRoster(9999)
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestStudentCourseDetail(t *testing.T) {
	f := setupGradeFixture(t)
	now := time.Now()

	f.enrollAt(t, f.alice.ID, now.Add(-time.Hour))

	// 只在链表测验上有提交，树测验一条都没有
	f.addAttempt(t, f.alice.ID, f.quizA, 1, 4, now.Add(-30*time.Minute)) // 25%
	f.addAttempt(t, f.alice.ID, f.quizA, 3, 4, now.Add(-20*time.Minute)) // 75%

	rows, err := f.svc.StudentCourseDetail(f.courseID, f.alice.ID)
	require.NoError(t, err)

	// 没有记录的测验不出现
	require.Len(t, rows, 1)
	assert.Equal(t, f.quizA, rows[0].QuizID)
	assert.Equal(t, "链表测验", rows[0].QuizTitle)
	assert.Equal(t, 2, rows[0].TotalAttempts)
	assert.Equal(t, 50.0, rows[0].AverageScore)
	assert.Equal(t, 75.0, rows[0].BestScore)
	// 组内倒序：最近一次在前
	assert.Equal(t, 75, rows[0].RecentAttempts[0].Percentage)
}

func TestStudentCourseDetailNotEnrolled(t *testing.T) {
	f := setupGradeFixture(t)

	_, err := f.svc.StudentCourseDetail(f.courseID, f.alice.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

// 花名册与学生详情基于同一份记录，同一学生的总次数应当对得上
func TestRosterAndDetailConsistency(t *testing.T) {
	f := setupGradeFixture(t)
	now := time.Now()

	f.enrollAt(t, f.alice.ID, now.Add(-time.Hour))
	f.addAttempt(t, f.alice.ID, f.quizA, 2, 4, now.Add(-30*time.Minute))
	f.addAttempt(t, f.alice.ID, f.quizB, 4, 4, now.Add(-20*time.Minute))
	f.addAttempt(t, f.alice.ID, f.quizB, 3, 4, now.Add(-10*time.Minute))

	rosterRows, err := f.svc.CourseRoster(f.courseID)
	require.NoError(t, err)
	require.Len(t, rosterRows, 1)

	detailRows, err := f.svc.StudentCourseDetail(f.courseID, f.alice.ID)
	require.NoError(t, err)

	detailTotal := 0
	for _, row := range detailRows {
		detailTotal += row.TotalAttempts
	}
	assert.Equal(t, rosterRows[0].TotalAttempts, detailTotal)
}

func TestAuthorizeCourseTeacher(t *testing.T) {
	f := setupGradeFixture(t)

	var course model.Course
	require.NoError(t, f.db.First(&course, f.courseID).Error)

	// 任课教师放行
	assert.NoError(t, f.svc.AuthorizeCourseTeacher(course.TeacherID, f.courseID, false))

	// 其他用户拒绝
	err := f.svc.AuthorizeCourseTeacher(f.alice.ID, f.courseID, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrUnauthorized)

	// 管理员放行
	assert.NoError(t, f.svc.AuthorizeCourseTeacher(f.alice.ID, f.courseID, true))
}
