package services

import (
	"context"
	"errors"
	"testing"

	"github.com/edukit/registrar/internal/app/models"
	"github.com/edukit/registrar/internal/app/models/dto"
	"github.com/edukit/registrar/internal/pkg/apperrors"
)

type fakeCourseStore struct {
	insertErr error
	updateErr error
	findView  *models.CourseWithStudents

	inserted *models.Course
	updated  *models.Course
}

func (f *fakeCourseStore) Insert(ctx context.Context, course *models.Course) error {
	f.inserted = course
	if f.insertErr != nil {
		return f.insertErr
	}
	course.ID = 77
	return nil
}

func (f *fakeCourseStore) FindWithStudentsByID(ctx context.Context, courseID int64) (*models.CourseWithStudents, error) {
	return f.findView, nil
}

func (f *fakeCourseStore) Update(ctx context.Context, course *models.Course) error {
	f.updated = course
	return f.updateErr
}

func (f *fakeCourseStore) DeleteByID(ctx context.Context, courseID int64) error {
	return nil
}

func (f *fakeCourseStore) List(ctx context.Context) ([]*models.Course, error) {
	return nil, nil
}

func TestCreateCourseUnknownStudentsSurfaceAsConsistencyError(t *testing.T) {
	store := &fakeCourseStore{
		insertErr: apperrors.NewDataConsistencyError("invalid student ids passed"),
	}
	svc := NewCourseService(store)

	_, err := svc.CreateCourse(context.Background(), dto.CreateCourseRequest{
		Name:       "Ghost Course",
		StudentIDs: []int64{999},
	})
	if !errors.Is(err, apperrors.ErrDataConsistency) {
		t.Errorf("err = %v, want data consistency violation preserved", err)
	}
}

func TestGetCoursePromotesAbsenceToNotFound(t *testing.T) {
	svc := NewCourseService(&fakeCourseStore{})

	_, err := svc.GetCourseByID(context.Background(), 404)
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("err = %v, want resource not found", err)
	}
}

func TestUpdateCourseSubmitsFullReplacementSet(t *testing.T) {
	store := &fakeCourseStore{}
	svc := NewCourseService(store)

	resp, err := svc.UpdateCourse(context.Background(), 4, dto.UpdateCourseRequest{
		Name:       "Databases",
		StudentIDs: []int64{1, 1, 2},
	})
	if err != nil {
		t.Fatalf("UpdateCourse: %v", err)
	}
	if store.updated.ID != 4 {
		t.Errorf("updated id = %d, want 4", store.updated.ID)
	}
	if len(resp.StudentIDs) != 2 {
		t.Errorf("student ids = %v, want duplicates collapsed", resp.StudentIDs)
	}
}
