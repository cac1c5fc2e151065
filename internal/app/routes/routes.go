package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hogwarts/school/internal/app/controllers"
	"github.com/hogwarts/school/internal/app/models/dto"
	"github.com/hogwarts/school/internal/middleware"
)

// BasePath prefixes every school route.
const BasePath = "/school"

// Controllers groups the handlers mounted by SetupRouter.
type Controllers struct {
	Faculty *controllers.FacultyController
	Student *controllers.StudentController
	Avatar  *controllers.AvatarController
	Info    *controllers.InfoController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	school := router.Group(BasePath)

	faculties := school.Group("/faculty")
	{
		faculties.POST("", ctrl.Faculty.CreateFaculty)
		faculties.GET("", ctrl.Faculty.GetAllFaculties)
		faculties.GET("/by-color", ctrl.Faculty.GetFacultiesByColor)
		faculties.GET("/search", ctrl.Faculty.SearchFaculties)
		faculties.GET("/students", ctrl.Faculty.GetStudentsOfFaculty)
		faculties.GET("/longest-name", ctrl.Faculty.GetFacultyWithLongestName)
		faculties.GET("/:id", ctrl.Faculty.GetFacultyByID)
		faculties.PUT("/:id", ctrl.Faculty.UpdateFaculty)
		faculties.DELETE("/:id", ctrl.Faculty.DeleteFaculty)
	}

	students := school.Group("/student")
	{
		students.POST("", ctrl.Student.CreateStudent)
		students.GET("", ctrl.Student.GetAllStudents)
		students.GET("/by-age", ctrl.Student.GetStudentsByAge)
		students.GET("/between-age", ctrl.Student.GetStudentsBetweenAge)
		students.GET("/faculty", ctrl.Student.GetFacultyOfStudent)
		students.GET("/count", ctrl.Student.CountStudents)
		students.GET("/average-age", ctrl.Student.GetAverageAge)
		students.GET("/last-five", ctrl.Student.GetLastFive)
		students.GET("/names-starting-with", ctrl.Student.GetNamesStartingWith)
		students.GET("/:id", ctrl.Student.GetStudentByID)
		students.PUT("/:id", ctrl.Student.UpdateStudent)
		students.DELETE("/:id", ctrl.Student.DeleteStudent)
	}

	avatars := school.Group("/avatar")
	{
		avatars.POST("/:id/upload-avatar", ctrl.Avatar.UploadAvatar)
		avatars.GET("/:id/avatar/download-preview", ctrl.Avatar.DownloadPreview)
		avatars.GET("/:id/download-avatar", ctrl.Avatar.DownloadAvatar)
		avatars.GET("/get-all", ctrl.Avatar.GetAllAvatars)
		avatars.DELETE("/delete", ctrl.Avatar.DeleteAvatar)

		// Maintenance, admin token required
		maintenance := avatars.Group("")
		maintenance.Use(authMiddleware.AdminOnly()...)
		{
			maintenance.DELETE("/unused", ctrl.Avatar.RemoveUnused)
		}
	}

	school.GET("/info", ctrl.Info.GetInfo)

	// Health check endpoint (public)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})
}
