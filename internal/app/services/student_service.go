package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edukit/registrar/internal/app/models"
	"github.com/edukit/registrar/internal/app/models/dto"
	"github.com/edukit/registrar/internal/app/repositories"
	"github.com/edukit/registrar/internal/pkg/apperrors"
	"github.com/edukit/registrar/internal/pkg/helpers"
)

// StudentStore is the persistence surface the student service relies on.
type StudentStore interface {
	Insert(ctx context.Context, student *models.Student) error
	FindWithCoordinatorAndCoursesByID(ctx context.Context, studentID int64) (*models.StudentWithCoordinatorAndCourses, error)
	Update(ctx context.Context, student *models.Student) error
	DeleteByID(ctx context.Context, studentID int64) error
	List(ctx context.Context, filter repositories.StudentFilter) ([]*models.Student, error)
}

// StudentService handles student-related operations
type StudentService interface {
	CreateStudent(ctx context.Context, form dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetStudentByID(ctx context.Context, studentID int64) (*dto.StudentDetailResponse, error)
	UpdateStudent(ctx context.Context, studentID int64, form dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	DeleteStudent(ctx context.Context, studentID int64) error
	ListStudents(ctx context.Context, filter repositories.StudentFilter) ([]dto.StudentResponse, error)
}

type studentServiceImpl struct {
	studentRepo StudentStore
}

// NewStudentService creates a new student service instance
func NewStudentService(studentRepo StudentStore) StudentService {
	return &studentServiceImpl{studentRepo: studentRepo}
}

// CreateStudent creates a student and enrolls it in the submitted courses.
// Unknown course ids surface as a data-consistency error.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, form dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	if strings.TrimSpace(form.Name) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "student name cannot be empty")
	}

	student := &models.Student{
		Name:          form.Name,
		CoordinatorID: form.CoordinatorID,
		CourseIDs:     helpers.UniqueIDs(form.CourseIDs),
	}

	if err := s.studentRepo.Insert(ctx, student); err != nil {
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	return toStudentResponse(student), nil
}

// GetStudentByID retrieves the composite student view. A negative lookup is
// promoted to a not-found error here; the repository reports it as absence.
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, studentID int64) (*dto.StudentDetailResponse, error) {
	view, err := s.studentRepo.FindWithCoordinatorAndCoursesByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	if view == nil {
		return nil, apperrors.NewResourceNotFoundError("student not found")
	}

	return toStudentDetailResponse(view), nil
}

// UpdateStudent rewrites the student's fields; the submitted course id set
// becomes the new enrollment truth.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, studentID int64, form dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	if strings.TrimSpace(form.Name) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "student name cannot be empty")
	}

	student := &models.Student{
		ID:            studentID,
		Name:          form.Name,
		CoordinatorID: form.CoordinatorID,
		CourseIDs:     helpers.UniqueIDs(form.CourseIDs),
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, fmt.Errorf("error updating student: %w", err)
	}

	return toStudentResponse(student), nil
}

// DeleteStudent deletes the student and its enrollment rows.
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, studentID int64) error {
	if err := s.studentRepo.DeleteByID(ctx, studentID); err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	return nil
}

// ListStudents retrieves scalar student rows matching the filter.
func (s *studentServiceImpl) ListStudents(ctx context.Context, filter repositories.StudentFilter) ([]dto.StudentResponse, error) {
	students, err := s.studentRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}

	responses := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		responses = append(responses, *toStudentResponse(student))
	}
	return responses, nil
}
