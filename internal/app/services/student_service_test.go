package services

import (
	"context"
	"errors"
	"testing"

	"github.com/edukit/registrar/internal/app/models"
	"github.com/edukit/registrar/internal/app/models/dto"
	"github.com/edukit/registrar/internal/app/repositories"
	"github.com/edukit/registrar/internal/pkg/apperrors"
)

type fakeStudentStore struct {
	insertErr error
	updateErr error
	findView  *models.StudentWithCoordinatorAndCourses
	findErr   error
	listRows  []*models.Student

	inserted *models.Student
	updated  *models.Student
}

func (f *fakeStudentStore) Insert(ctx context.Context, student *models.Student) error {
	f.inserted = student
	if f.insertErr != nil {
		return f.insertErr
	}
	student.ID = 101
	return nil
}

func (f *fakeStudentStore) FindWithCoordinatorAndCoursesByID(ctx context.Context, studentID int64) (*models.StudentWithCoordinatorAndCourses, error) {
	return f.findView, f.findErr
}

func (f *fakeStudentStore) Update(ctx context.Context, student *models.Student) error {
	f.updated = student
	return f.updateErr
}

func (f *fakeStudentStore) DeleteByID(ctx context.Context, studentID int64) error {
	return nil
}

func (f *fakeStudentStore) List(ctx context.Context, filter repositories.StudentFilter) ([]*models.Student, error) {
	return f.listRows, nil
}

func TestCreateStudentReturnsAssignedID(t *testing.T) {
	store := &fakeStudentStore{}
	svc := NewStudentService(store)

	resp, err := svc.CreateStudent(context.Background(), dto.CreateStudentRequest{
		Name:      "Ada",
		CourseIDs: []int64{2, 1, 2},
	})
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}

	if resp.ID != 101 {
		t.Errorf("id = %d, want 101", resp.ID)
	}
	if len(store.inserted.CourseIDs) != 2 {
		t.Errorf("course ids = %v, want duplicates collapsed", store.inserted.CourseIDs)
	}
}

func TestCreateStudentRejectsEmptyName(t *testing.T) {
	svc := NewStudentService(&fakeStudentStore{})

	_, err := svc.CreateStudent(context.Background(), dto.CreateStudentRequest{Name: "   "})
	if !errors.Is(err, apperrors.ErrBadRequest) {
		t.Errorf("err = %v, want bad request", err)
	}
}

func TestCreateStudentPassesConsistencyErrorThrough(t *testing.T) {
	store := &fakeStudentStore{
		insertErr: apperrors.NewDataConsistencyError("invalid course ids passed"),
	}
	svc := NewStudentService(store)

	_, err := svc.CreateStudent(context.Background(), dto.CreateStudentRequest{
		Name:      "Ghost",
		CourseIDs: []int64{999},
	})
	if !errors.Is(err, apperrors.ErrDataConsistency) {
		t.Errorf("err = %v, want data consistency violation preserved", err)
	}
}

func TestGetStudentPromotesAbsenceToNotFound(t *testing.T) {
	svc := NewStudentService(&fakeStudentStore{})

	_, err := svc.GetStudentByID(context.Background(), 404)
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		t.Errorf("err = %v, want resource not found", err)
	}
}

func TestGetStudentMapsCompositeView(t *testing.T) {
	coordinatorID := int64(7)
	store := &fakeStudentStore{
		findView: &models.StudentWithCoordinatorAndCourses{
			ID:          3,
			Name:        "Emmy",
			Coordinator: &models.Coordinator{ID: coordinatorID, Name: "Advisor"},
			Courses:     []models.Course{{ID: 1, Name: "Algebra"}},
		},
	}
	svc := NewStudentService(store)

	resp, err := svc.GetStudentByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("GetStudentByID: %v", err)
	}

	if resp.Coordinator == nil || resp.Coordinator.ID != coordinatorID {
		t.Errorf("coordinator = %+v, want id %d", resp.Coordinator, coordinatorID)
	}
	if len(resp.Courses) != 1 || resp.Courses[0].Name != "Algebra" {
		t.Errorf("courses = %v", resp.Courses)
	}
}

func TestGetStudentStorageErrorPassesThrough(t *testing.T) {
	store := &fakeStudentStore{findErr: apperrors.NewStorageError("unexpected student select failure")}
	svc := NewStudentService(store)

	_, err := svc.GetStudentByID(context.Background(), 1)
	if !errors.Is(err, apperrors.ErrStorage) {
		t.Errorf("err = %v, want storage error preserved", err)
	}
}

func TestUpdateStudentSubmitsFullReplacementSet(t *testing.T) {
	store := &fakeStudentStore{}
	svc := NewStudentService(store)

	_, err := svc.UpdateStudent(context.Background(), 5, dto.UpdateStudentRequest{
		Name:      "Renamed",
		CourseIDs: []int64{8, 9},
	})
	if err != nil {
		t.Fatalf("UpdateStudent: %v", err)
	}

	if store.updated.ID != 5 {
		t.Errorf("updated id = %d, want 5", store.updated.ID)
	}
	if len(store.updated.CourseIDs) != 2 {
		t.Errorf("updated course ids = %v", store.updated.CourseIDs)
	}
}

func TestListStudentsMapsRows(t *testing.T) {
	store := &fakeStudentStore{
		listRows: []*models.Student{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}},
	}
	svc := NewStudentService(store)

	students, err := svc.ListStudents(context.Background(), repositories.StudentFilter{})
	if err != nil {
		t.Fatalf("ListStudents: %v", err)
	}
	if len(students) != 2 || students[1].Name != "B" {
		t.Errorf("students = %v", students)
	}
}
