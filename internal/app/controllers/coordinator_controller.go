package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edukit/registrar/internal/app/models/dto"
	"github.com/edukit/registrar/internal/app/services"
	"github.com/edukit/registrar/internal/middleware"
	"github.com/edukit/registrar/internal/pkg/helpers"
)

// CoordinatorController handles coordinator-related operations
type CoordinatorController struct {
	coordinatorService services.CoordinatorService
}

// NewCoordinatorController creates a new CoordinatorController
func NewCoordinatorController(coordinatorService services.CoordinatorService) *CoordinatorController {
	return &CoordinatorController{
		coordinatorService: coordinatorService,
	}
}

// CreateCoordinator handles coordinator creation
// @Summary Create a new coordinator
// @Description Creates a coordinator, optionally attaching existing students
// @Tags coordinators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCoordinatorRequest true "Coordinator information"
// @Success 201 {object} dto.APIResponse{data=dto.CoordinatorWithStudentsResponse} "Coordinator created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /coordinators [post]
func (c *CoordinatorController) CreateCoordinator(ctx *gin.Context) {
	var form dto.CreateCoordinatorRequest
	if err := ctx.ShouldBindJSON(&form); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid coordinator data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	coordinator, err := c.coordinatorService.CreateCoordinator(ctx, form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(coordinator))
}

// GetCoordinatorByID retrieves a coordinator with its students
// @Summary Get coordinator by ID
// @Description Retrieves a coordinator together with its assigned students
// @Tags coordinators
// @Produce json
// @Param id path int true "Coordinator ID"
// @Success 200 {object} dto.APIResponse{data=dto.CoordinatorDetailResponse} "Coordinator retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid coordinator ID"
// @Failure 404 {object} dto.ErrorResponse "Coordinator not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /coordinators/{id} [get]
func (c *CoordinatorController) GetCoordinatorByID(ctx *gin.Context) {
	id, err := helpers.ParseID(ctx.Param("id"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid coordinator ID").
			WithDetails("Coordinator ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	coordinator, err := c.coordinatorService.GetCoordinatorByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(coordinator))
}

// UpdateCoordinator handles coordinator updates
// @Summary Update a coordinator
// @Description Rewrites the coordinator's name and student assignment from the submitted form
// @Tags coordinators
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Coordinator ID"
// @Param request body dto.UpdateCoordinatorRequest true "Coordinator information"
// @Success 200 {object} dto.APIResponse{data=dto.CoordinatorWithStudentsResponse} "Coordinator updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /coordinators/{id} [put]
func (c *CoordinatorController) UpdateCoordinator(ctx *gin.Context) {
	id, err := helpers.ParseID(ctx.Param("id"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid coordinator ID").
			WithDetails("Coordinator ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	var form dto.UpdateCoordinatorRequest
	if err := ctx.ShouldBindJSON(&form); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid coordinator data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	coordinator, err := c.coordinatorService.UpdateCoordinator(ctx, id, form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(coordinator))
}

// DeleteCoordinator handles coordinator deletion
// @Summary Delete a coordinator
// @Description Deletes the coordinator; its students are detached, not deleted
// @Tags coordinators
// @Produce json
// @Security BearerAuth
// @Param id path int true "Coordinator ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Coordinator deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid coordinator ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /coordinators/{id} [delete]
func (c *CoordinatorController) DeleteCoordinator(ctx *gin.Context) {
	id, err := helpers.ParseID(ctx.Param("id"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid coordinator ID").
			WithDetails("Coordinator ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.coordinatorService.DeleteCoordinator(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.SuccessResponse{Message: "Coordinator deleted successfully"}))
}

// ListCoordinators retrieves all coordinators
// @Summary List coordinators
// @Description Retrieves all coordinators
// @Tags coordinators
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CoordinatorResponse} "Coordinators retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /coordinators [get]
func (c *CoordinatorController) ListCoordinators(ctx *gin.Context) {
	coordinators, err := c.coordinatorService.ListCoordinators(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(coordinators))
}
