package models

// Coordinator is the scalar coordinator row plus the desired set of owned
// student ids used by write paths. The relation lives on the student side as
// a nullable foreign key, not in a junction table.
type Coordinator struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	StudentIDs []int64 `json:"studentIds"`
}

// CoordinatorWithStudents is the composite read view: the coordinator row
// joined with the students referencing it.
type CoordinatorWithStudents struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Students []Student `json:"students"`
}
