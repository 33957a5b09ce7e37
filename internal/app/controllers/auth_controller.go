package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edukit/registrar/internal/app/models/dto"
	"github.com/edukit/registrar/internal/app/services"
	"github.com/edukit/registrar/internal/middleware"
)

// AuthController handles token issuance
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// IssueToken exchanges admin credentials for an access token
// @Summary Issue an access token
// @Description Verifies the configured admin credentials and returns a bearer token for mutating endpoints
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.TokenRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Token issued successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/token [post]
func (c *AuthController) IssueToken(ctx *gin.Context) {
	var form dto.TokenRequest
	if err := ctx.ShouldBindJSON(&form); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid credentials payload").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	token, err := c.authService.IssueToken(ctx, form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(token))
}
