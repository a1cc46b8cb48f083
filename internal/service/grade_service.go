package service

import (
	"context"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// rosterConcurrency 花名册并发取数的上限，防止大班课打满连接池
const rosterConcurrency = 8

type GradeService struct {
	CourseRepo     *repository.CourseRepository
	QuizRepo       *repository.QuizRepository
	EnrollmentRepo *repository.EnrollmentRepository
	AttemptRepo    *repository.AttemptRepository
}

func NewGradeService(
	courseRepo *repository.CourseRepository,
	quizRepo *repository.QuizRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	attemptRepo *repository.AttemptRepository,
) *GradeService {
	return &GradeService{
		CourseRepo:     courseRepo,
		QuizRepo:       quizRepo,
		EnrollmentRepo: enrollmentRepo,
		AttemptRepo:    attemptRepo,
	}
}

// RosterRow 教师端花名册的一行：单个学生在整门课所有测验上的合并汇总
type RosterRow struct {
	StudentID    uint      `json:"studentId"`
	StudentName  string    `json:"studentName"`
	StudentEmail string    `json:"studentEmail"`
	EnrolledAt   time.Time `json:"enrolledAt"`
	AttemptSummary
}

// CourseRoster 课程花名册：每个选课学生一行，汇总其在课程内任意测验上的
// 全部评分记录（跨测验合并，不是按测验分组）。各学生的取数相互独立，
// 并发进行；行序写入预分配下标，始终与选课时间倒序一致。
func (s *GradeService) CourseRoster(courseID uint) ([]RosterRow, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %d: %w", courseID, util.ErrNotFound)
		}
		return nil, err
	}

	quizzes, err := s.QuizRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}
	quizIDs := make([]uint, len(quizzes))
	quizTitles := make(map[uint]string, len(quizzes))
	for i, q := range quizzes {
		quizIDs[i] = q.ID
		quizTitles[q.ID] = q.Title
	}

	enrollments, err := s.EnrollmentRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}

	rows := make([]RosterRow, len(enrollments))

	g, _ := errgroup.WithContext(context.Background())
	g.SetLimit(rosterConcurrency)
	for i, e := range enrollments {
		i, e := i, e
		g.Go(func() error {
			attempts, err := s.AttemptRepo.ListByUserAndQuizzes(e.UserID, quizIDs)
			if err != nil {
				return err
			}
			row := RosterRow{
				StudentID:      e.UserID,
				EnrolledAt:     e.CreatedAt,
				AttemptSummary: SummarizeAttempts(attempts, quizTitles),
			}
			if e.User != nil {
				row.StudentName = e.User.Name
				row.StudentEmail = e.User.Email
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return rows, nil
}

// QuizGradeRow 单个学生详情页的一行：一个测验一条汇总
type QuizGradeRow struct {
	QuizID    uint   `json:"quizId"`
	QuizTitle string `json:"quizTitle"`
	AttemptSummary
}

// StudentCourseDetail 单个学生在课程内按测验分组的成绩明细。
// 与花名册用同一份记录、同一套汇总算法，只是分组不同；
// 没有任何记录的测验不出现在结果里。
func (s *GradeService) StudentCourseDetail(courseID, studentID uint) ([]QuizGradeRow, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %d: %w", courseID, util.ErrNotFound)
		}
		return nil, err
	}

	if _, err := s.EnrollmentRepo.FindByUserAndCourse(studentID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("enrollment of student %d in course %d: %w", studentID, courseID, util.ErrNotFound)
		}
		return nil, err
	}

	quizzes, err := s.QuizRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}
	quizIDs := make([]uint, len(quizzes))
	for i, q := range quizzes {
		quizIDs[i] = q.ID
	}

	attempts, err := s.AttemptRepo.ListByUserAndQuizzes(studentID, quizIDs)
	if err != nil {
		return nil, err
	}

	// 按测验分组，组内保持倒序（attempts 已整体倒序）
	grouped := make(map[uint][]model.QuizAttempt)
	for _, a := range attempts {
		grouped[a.QuizID] = append(grouped[a.QuizID], a)
	}

	rows := make([]QuizGradeRow, 0, len(grouped))
	for _, q := range quizzes {
		qa, ok := grouped[q.ID]
		if !ok {
			continue
		}
		rows = append(rows, QuizGradeRow{
			QuizID:         q.ID,
			QuizTitle:      q.Title,
			AttemptSummary: SummarizeAttempts(qa, nil),
		})
	}

	return rows, nil
}

// AuthorizeCourseTeacher 校验访问者是否有权查看该课程的评分数据：
// 管理员放行，其余要求是该课程的任课教师
func (s *GradeService) AuthorizeCourseTeacher(userID, courseID uint, isAdmin bool) error {
	if isAdmin {
		return nil
	}
	ok, err := s.CourseRepo.IsTeacherOfCourse(userID, courseID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("not a teacher of course %d: %w", courseID, util.ErrUnauthorized)
	}
	return nil
}
