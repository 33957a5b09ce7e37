package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/edukit/registrar/internal/app/controllers"
	"github.com/edukit/registrar/internal/app/models/dto"
	"github.com/edukit/registrar/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	coordinatorController *controllers.CoordinatorController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/token", authController.IssueToken)
	}

	// --- Public read routes ---
	students := v1.Group("/students")
	{
		students.GET("", studentController.ListStudents)
		students.GET("/:id", studentController.GetStudentByID)
	}

	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.ListCourses)
		courses.GET("/:id", courseController.GetCourseByID)
	}

	coordinators := v1.Group("/coordinators")
	{
		coordinators.GET("", coordinatorController.ListCoordinators)
		coordinators.GET("/:id", coordinatorController.GetCoordinatorByID)
	}

	// --- Authenticated mutation routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		studentsProtected := authenticated.Group("/students")
		{
			studentsProtected.POST("", studentController.CreateStudent)
			studentsProtected.PUT("/:id", studentController.UpdateStudent)
			studentsProtected.DELETE("/:id", studentController.DeleteStudent)
		}

		coursesProtected := authenticated.Group("/courses")
		{
			coursesProtected.POST("", courseController.CreateCourse)
			coursesProtected.PUT("/:id", courseController.UpdateCourse)
			coursesProtected.DELETE("/:id", courseController.DeleteCourse)
		}

		coordinatorsProtected := authenticated.Group("/coordinators")
		{
			coordinatorsProtected.POST("", coordinatorController.CreateCoordinator)
			coordinatorsProtected.PUT("/:id", coordinatorController.UpdateCoordinator)
			coordinatorsProtected.DELETE("/:id", coordinatorController.DeleteCoordinator)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewDataResponse(gin.H{"status": "ok"}))
	})
}
