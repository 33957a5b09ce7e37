package services

import (
	"github.com/edukit/registrar/internal/app/models"
	"github.com/edukit/registrar/internal/app/models/dto"
)

// Mapping between entities and DTOs is done by stateless functions. Detail
// views are assembled from already-mapped related DTOs, so no mapper holds a
// reference to another.

func toStudentResponse(student *models.Student) *dto.StudentResponse {
	courseIDs := student.CourseIDs
	if courseIDs == nil {
		courseIDs = []int64{}
	}
	return &dto.StudentResponse{
		ID:            student.ID,
		Name:          student.Name,
		CoordinatorID: student.CoordinatorID,
		CourseIDs:     courseIDs,
	}
}

func toStudentDetailResponse(view *models.StudentWithCoordinatorAndCourses) *dto.StudentDetailResponse {
	resp := &dto.StudentDetailResponse{
		ID:      view.ID,
		Name:    view.Name,
		Courses: toCourseSummaries(view.Courses),
	}
	if view.Coordinator != nil {
		resp.Coordinator = toCoordinatorResponse(view.Coordinator)
	}
	return resp
}

func toStudentSummaries(students []models.Student) []dto.StudentSummary {
	summaries := make([]dto.StudentSummary, 0, len(students))
	for _, student := range students {
		summaries = append(summaries, dto.StudentSummary{
			ID:            student.ID,
			Name:          student.Name,
			CoordinatorID: student.CoordinatorID,
		})
	}
	return summaries
}

func toCourseResponse(course *models.Course) *dto.CourseResponse {
	studentIDs := course.StudentIDs
	if studentIDs == nil {
		studentIDs = []int64{}
	}
	return &dto.CourseResponse{
		ID:         course.ID,
		Name:       course.Name,
		StudentIDs: studentIDs,
	}
}

func toCourseDetailResponse(view *models.CourseWithStudents) *dto.CourseDetailResponse {
	return &dto.CourseDetailResponse{
		ID:       view.ID,
		Name:     view.Name,
		Students: toStudentSummaries(view.Students),
	}
}

func toCourseSummaries(courses []models.Course) []dto.CourseSummary {
	summaries := make([]dto.CourseSummary, 0, len(courses))
	for _, course := range courses {
		summaries = append(summaries, dto.CourseSummary{ID: course.ID, Name: course.Name})
	}
	return summaries
}

func toCoordinatorResponse(coordinator *models.Coordinator) *dto.CoordinatorResponse {
	return &dto.CoordinatorResponse{
		ID:   coordinator.ID,
		Name: coordinator.Name,
	}
}

func toCoordinatorWithStudentsResponse(coordinator *models.Coordinator) *dto.CoordinatorWithStudentsResponse {
	studentIDs := coordinator.StudentIDs
	if studentIDs == nil {
		studentIDs = []int64{}
	}
	return &dto.CoordinatorWithStudentsResponse{
		ID:         coordinator.ID,
		Name:       coordinator.Name,
		StudentIDs: studentIDs,
	}
}

func toCoordinatorDetailResponse(view *models.CoordinatorWithStudents) *dto.CoordinatorDetailResponse {
	return &dto.CoordinatorDetailResponse{
		ID:       view.ID,
		Name:     view.Name,
		Students: toStudentSummaries(view.Students),
	}
}
