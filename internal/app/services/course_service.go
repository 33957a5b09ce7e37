package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edukit/registrar/internal/app/models"
	"github.com/edukit/registrar/internal/app/models/dto"
	"github.com/edukit/registrar/internal/pkg/apperrors"
	"github.com/edukit/registrar/internal/pkg/helpers"
)

// CourseStore is the persistence surface the course service relies on.
type CourseStore interface {
	Insert(ctx context.Context, course *models.Course) error
	FindWithStudentsByID(ctx context.Context, courseID int64) (*models.CourseWithStudents, error)
	Update(ctx context.Context, course *models.Course) error
	DeleteByID(ctx context.Context, courseID int64) error
	List(ctx context.Context) ([]*models.Course, error)
}

// CourseService handles course-related operations
type CourseService interface {
	CreateCourse(ctx context.Context, form dto.CreateCourseRequest) (*dto.CourseResponse, error)
	GetCourseByID(ctx context.Context, courseID int64) (*dto.CourseDetailResponse, error)
	UpdateCourse(ctx context.Context, courseID int64, form dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	DeleteCourse(ctx context.Context, courseID int64) error
	ListCourses(ctx context.Context) ([]dto.CourseResponse, error)
}

type courseServiceImpl struct {
	courseRepo CourseStore
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo CourseStore) CourseService {
	return &courseServiceImpl{courseRepo: courseRepo}
}

// CreateCourse creates a course and enrolls the submitted students. Unknown
// student ids surface as a data-consistency error.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, form dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if strings.TrimSpace(form.Name) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "course name cannot be empty")
	}

	course := &models.Course{
		Name:       form.Name,
		StudentIDs: helpers.UniqueIDs(form.StudentIDs),
	}

	if err := s.courseRepo.Insert(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}

	return toCourseResponse(course), nil
}

// GetCourseByID retrieves the composite course view.
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, courseID int64) (*dto.CourseDetailResponse, error) {
	view, err := s.courseRepo.FindWithStudentsByID(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	if view == nil {
		return nil, apperrors.NewResourceNotFoundError("course not found")
	}

	return toCourseDetailResponse(view), nil
}

// UpdateCourse rewrites the course's fields; the submitted student id set
// becomes the new enrollment truth.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, courseID int64, form dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	if strings.TrimSpace(form.Name) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "course name cannot be empty")
	}

	course := &models.Course{
		ID:         courseID,
		Name:       form.Name,
		StudentIDs: helpers.UniqueIDs(form.StudentIDs),
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, fmt.Errorf("error updating course: %w", err)
	}

	return toCourseResponse(course), nil
}

// DeleteCourse deletes the course and its enrollment rows.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, courseID int64) error {
	if err := s.courseRepo.DeleteByID(ctx, courseID); err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	return nil
}

// ListCourses retrieves all scalar course rows.
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.courseRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, *toCourseResponse(course))
	}
	return responses, nil
}
