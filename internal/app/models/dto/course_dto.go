package dto

// CreateCourseRequest is the form for creating a course. StudentIDs is the
// full desired enrollment set.
type CreateCourseRequest struct {
	Name       string  `json:"name" binding:"required"`
	StudentIDs []int64 `json:"studentIds"`
}

// UpdateCourseRequest is the form for updating a course. The submitted
// StudentIDs set fully replaces the persisted enrollment set.
type UpdateCourseRequest struct {
	Name       string  `json:"name" binding:"required"`
	StudentIDs []int64 `json:"studentIds"`
}

// CourseResponse mirrors the scalar course row plus its student id set.
type CourseResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	StudentIDs []int64 `json:"studentIds"`
}

// CourseSummary is the nested course representation inside student detail
// responses.
type CourseSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CourseDetailResponse is the composite view returned by GET by id.
type CourseDetailResponse struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	Students []StudentSummary `json:"students"`
}
