package models

// Course is the scalar course row plus the desired set of enrolled student
// ids used by write paths.
type Course struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	StudentIDs []int64 `json:"studentIds"`
}

// CourseWithStudents is the composite read view: the course row joined with
// its enrolled students.
type CourseWithStudents struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Students []Student `json:"students"`
}
