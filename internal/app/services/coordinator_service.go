package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/edukit/registrar/internal/app/models"
	"github.com/edukit/registrar/internal/app/models/dto"
	"github.com/edukit/registrar/internal/pkg/apperrors"
	"github.com/edukit/registrar/internal/pkg/helpers"
)

// CoordinatorStore is the persistence surface the coordinator service
// relies on.
type CoordinatorStore interface {
	Insert(ctx context.Context, coordinator *models.Coordinator) error
	FindWithStudentsByID(ctx context.Context, coordinatorID int64) (*models.CoordinatorWithStudents, error)
	Update(ctx context.Context, coordinator *models.Coordinator) error
	DeleteByID(ctx context.Context, coordinatorID int64) error
	List(ctx context.Context) ([]*models.Coordinator, error)
}

// CoordinatorService handles coordinator-related operations
type CoordinatorService interface {
	CreateCoordinator(ctx context.Context, form dto.CreateCoordinatorRequest) (*dto.CoordinatorWithStudentsResponse, error)
	GetCoordinatorByID(ctx context.Context, coordinatorID int64) (*dto.CoordinatorDetailResponse, error)
	UpdateCoordinator(ctx context.Context, coordinatorID int64, form dto.UpdateCoordinatorRequest) (*dto.CoordinatorWithStudentsResponse, error)
	DeleteCoordinator(ctx context.Context, coordinatorID int64) error
	ListCoordinators(ctx context.Context) ([]dto.CoordinatorResponse, error)
}

type coordinatorServiceImpl struct {
	coordinatorRepo CoordinatorStore
}

// NewCoordinatorService creates a new coordinator service instance
func NewCoordinatorService(coordinatorRepo CoordinatorStore) CoordinatorService {
	return &coordinatorServiceImpl{coordinatorRepo: coordinatorRepo}
}

// CreateCoordinator creates a coordinator and attaches the submitted
// students. Student ids that match no row are skipped, not rejected.
func (s *coordinatorServiceImpl) CreateCoordinator(ctx context.Context, form dto.CreateCoordinatorRequest) (*dto.CoordinatorWithStudentsResponse, error) {
	if strings.TrimSpace(form.Name) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "coordinator name cannot be empty")
	}

	coordinator := &models.Coordinator{
		Name:       form.Name,
		StudentIDs: helpers.UniqueIDs(form.StudentIDs),
	}

	if err := s.coordinatorRepo.Insert(ctx, coordinator); err != nil {
		return nil, fmt.Errorf("error creating coordinator: %w", err)
	}

	return toCoordinatorWithStudentsResponse(coordinator), nil
}

// GetCoordinatorByID retrieves the composite coordinator view.
func (s *coordinatorServiceImpl) GetCoordinatorByID(ctx context.Context, coordinatorID int64) (*dto.CoordinatorDetailResponse, error) {
	view, err := s.coordinatorRepo.FindWithStudentsByID(ctx, coordinatorID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving coordinator: %w", err)
	}
	if view == nil {
		return nil, apperrors.NewResourceNotFoundError("coordinator not found")
	}

	return toCoordinatorDetailResponse(view), nil
}

// UpdateCoordinator rewrites the coordinator's fields; the submitted
// student id set becomes the new ownership truth.
func (s *coordinatorServiceImpl) UpdateCoordinator(ctx context.Context, coordinatorID int64, form dto.UpdateCoordinatorRequest) (*dto.CoordinatorWithStudentsResponse, error) {
	if strings.TrimSpace(form.Name) == "" {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "coordinator name cannot be empty")
	}

	coordinator := &models.Coordinator{
		ID:         coordinatorID,
		Name:       form.Name,
		StudentIDs: helpers.UniqueIDs(form.StudentIDs),
	}

	if err := s.coordinatorRepo.Update(ctx, coordinator); err != nil {
		return nil, fmt.Errorf("error updating coordinator: %w", err)
	}

	return toCoordinatorWithStudentsResponse(coordinator), nil
}

// DeleteCoordinator deletes the coordinator; its students are detached, not
// deleted.
func (s *coordinatorServiceImpl) DeleteCoordinator(ctx context.Context, coordinatorID int64) error {
	if err := s.coordinatorRepo.DeleteByID(ctx, coordinatorID); err != nil {
		return fmt.Errorf("error deleting coordinator: %w", err)
	}
	return nil
}

// ListCoordinators retrieves all scalar coordinator rows.
func (s *coordinatorServiceImpl) ListCoordinators(ctx context.Context) ([]dto.CoordinatorResponse, error) {
	coordinators, err := s.coordinatorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing coordinators: %w", err)
	}

	responses := make([]dto.CoordinatorResponse, 0, len(coordinators))
	for _, coordinator := range coordinators {
		responses = append(responses, *toCoordinatorResponse(coordinator))
	}
	return responses, nil
}
