package dto

// CreateStudentRequest is the form for creating a student. CourseIDs is the
// full desired enrollment set.
type CreateStudentRequest struct {
	Name          string  `json:"name" binding:"required"`
	CoordinatorID *int64  `json:"coordinatorId"`
	CourseIDs     []int64 `json:"courseIds"`
}

// UpdateStudentRequest is the form for updating a student. The submitted
// CourseIDs set fully replaces the persisted enrollment set.
type UpdateStudentRequest struct {
	Name          string  `json:"name" binding:"required"`
	CoordinatorID *int64  `json:"coordinatorId"`
	CourseIDs     []int64 `json:"courseIds"`
}

// StudentResponse mirrors the scalar student row plus its course id set.
type StudentResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	CoordinatorID *int64  `json:"coordinatorId,omitempty"`
	CourseIDs     []int64 `json:"courseIds"`
}

// StudentDetailResponse is the composite view returned by GET by id.
type StudentDetailResponse struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Coordinator *CoordinatorResponse `json:"coordinator,omitempty"`
	Courses     []CourseSummary      `json:"courses"`
}

// StudentSummary is the nested student representation inside course and
// coordinator detail responses.
type StudentSummary struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	CoordinatorID *int64 `json:"coordinatorId,omitempty"`
}
