package service

import (
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type CourseService struct {
	Repo           *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewCourseService(repo *repository.CourseRepository, enrollmentRepo *repository.EnrollmentRepository) *CourseService {
	return &CourseService{Repo: repo, EnrollmentRepo: enrollmentRepo}
}

func (s *CourseService) ListPublished(page, limit int) ([]model.Course, int64, error) {
	return s.Repo.ListPublished(page, limit)
}

type CourseDetailResponse struct {
	model.Course
	IsEnrolled bool `json:"isEnrolled"`
}

func (s *CourseService) GetDetail(userID, courseID uint) (*CourseDetailResponse, error) {
	course, err := s.Repo.FindByIDWithContent(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course %d: %w", courseID, util.ErrNotFound)
		}
		return nil, err
	}

	enrolled, err := s.EnrollmentRepo.Exists(userID, courseID)
	if err != nil {
		return nil, err
	}

	return &CourseDetailResponse{
		Course:     *course,
		IsEnrolled: enrolled,
	}, nil
}

// Enroll 学生自助选课，重复选课幂等
func (s *CourseService) Enroll(userID, courseID uint) error {
	course, err := s.Repo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("course %d: %w", courseID, util.ErrNotFound)
		}
		return err
	}
	if !course.IsPublished {
		return fmt.Errorf("course %d: %w", courseID, util.ErrNotFound)
	}
	return s.EnrollmentRepo.Upsert(userID, courseID)
}

func (s *CourseService) MyEnrollments(userID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.ListByUser(userID)
}
