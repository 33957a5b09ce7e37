package models

// Student is the scalar student row plus the desired set of course ids used
// by write paths. CourseIDs is semantically a set; duplicates collapse.
type Student struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	CoordinatorID *int64  `json:"coordinatorId,omitempty"`
	CourseIDs     []int64 `json:"courseIds,omitempty"`
}

// StudentWithCoordinatorAndCourses is the composite read view: the student
// row joined with its coordinator (if any) and enrolled courses.
type StudentWithCoordinatorAndCourses struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Coordinator *Coordinator `json:"coordinator,omitempty"`
	Courses     []Course     `json:"courses"`
}
