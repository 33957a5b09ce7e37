package dto

// CreateCoordinatorRequest is the form for creating a coordinator.
// StudentIDs lists students to attach; ids that do not exist are skipped.
type CreateCoordinatorRequest struct {
	Name       string  `json:"name" binding:"required"`
	StudentIDs []int64 `json:"studentIds"`
}

// UpdateCoordinatorRequest is the form for updating a coordinator. The
// submitted StudentIDs set fully replaces the set of owned students.
type UpdateCoordinatorRequest struct {
	Name       string  `json:"name" binding:"required"`
	StudentIDs []int64 `json:"studentIds"`
}

// CoordinatorResponse mirrors the scalar coordinator row.
type CoordinatorResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CoordinatorWithStudentsResponse adds the owned student id set.
type CoordinatorWithStudentsResponse struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	StudentIDs []int64 `json:"studentIds"`
}

// CoordinatorDetailResponse is the composite view returned by GET by id.
type CoordinatorDetailResponse struct {
	ID       int64            `json:"id"`
	Name     string           `json:"name"`
	Students []StudentSummary `json:"students"`
}
