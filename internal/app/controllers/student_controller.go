package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/app/models/dto"
	"github.com/hogwarts/school/internal/app/services"
	"github.com/hogwarts/school/internal/middleware"
)

// StudentController handles student-related operations
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{
		studentService: studentService,
	}
}

// CreateStudent handles student creation
// @Summary Create a new student
// @Description Adds a student to an existing faculty
// @Tags students
// @Accept json
// @Produce json
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse} "Student created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found or no faculties exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	student := &models.Student{Name: req.Name, Age: req.Age, FacultyID: req.FacultyID}
	if _, err := c.studentService.CreateStudent(ctx.Request.Context(), student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromStudent(student)))
}

// GetStudentByID retrieves a student by ID
// @Summary Get student details
// @Tags students
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID format"
// @Failure 404 {object} dto.ErrorResponse "Student not found or no students exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.GetStudentByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromStudent(student)))
}

// GetAllStudents retrieves all students
// @Summary Get all students
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse}
// @Failure 404 {object} dto.ErrorResponse "No students exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student [get]
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	students, err := c.studentService.GetAllStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromStudents(students)))
}

// UpdateStudent replaces a student
// @Summary Update a student
// @Tags students
// @Accept json
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param request body dto.UpdateStudentRequest true "Updated student information"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Student or faculty not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	student := &models.Student{ID: id, Name: req.Name, Age: req.Age, FacultyID: req.FacultyID}
	if err := c.studentService.UpdateStudent(ctx.Request.Context(), student); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromStudent(student)))
}

// DeleteStudent removes a student with their avatar
// @Summary Delete a student
// @Description Deletes a student together with their avatar row and file
// @Tags students
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID format"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /student/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Student deleted successfully"}))
}

// GetStudentsByAge lists students of an exact age
// @Summary Students by age
// @Tags students
// @Produce json
// @Param age query int true "Age"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid age"
// @Failure 404 {object} dto.ErrorResponse "No student matched"
// @Router /student/by-age [get]
func (c *StudentController) GetStudentsByAge(ctx *gin.Context) {
	age, err := parseIntQuery(ctx, "age")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	students, err := c.studentService.GetStudentsByAge(ctx.Request.Context(), age)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromStudents(students)))
}

// GetStudentsBetweenAge lists students in an age range
// @Summary Students by age range
// @Description Lists students with from <= age <= to
// @Tags students
// @Produce json
// @Param from query int true "Lower bound"
// @Param to query int true "Upper bound"
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid range"
// @Failure 404 {object} dto.ErrorResponse "No student matched"
// @Router /student/between-age [get]
func (c *StudentController) GetStudentsBetweenAge(ctx *gin.Context) {
	from, err := parseIntQuery(ctx, "from")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	to, err := parseIntQuery(ctx, "to")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	students, err := c.studentService.GetStudentsByAgeBetween(ctx.Request.Context(), from, to)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromStudents(students)))
}

// GetFacultyOfStudent returns the faculty of a student found by name
// @Summary Faculty of a student
// @Description Finds the first student whose name contains the given text and returns their faculty
// @Tags students
// @Produce json
// @Param name query string true "Student name fragment"
// @Success 200 {object} dto.APIResponse{data=dto.FacultyResponse}
// @Failure 400 {object} dto.ErrorResponse "Name is blank"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /student/faculty [get]
func (c *StudentController) GetFacultyOfStudent(ctx *gin.Context) {
	faculty, err := c.studentService.GetFacultyOfStudent(ctx.Request.Context(), ctx.Query("name"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromFaculty(faculty)))
}

// CountStudents returns the number of students
// @Summary Count students
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.StudentCountResponse}
// @Router /student/count [get]
func (c *StudentController) CountStudents(ctx *gin.Context) {
	count, err := c.studentService.CountStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.StudentCountResponse{Count: count}))
}

// GetAverageAge returns the mean student age
// @Summary Average student age
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.AverageAgeResponse}
// @Failure 404 {object} dto.ErrorResponse "No students exist"
// @Router /student/average-age [get]
func (c *StudentController) GetAverageAge(ctx *gin.Context) {
	avg, err := c.studentService.GetAverageAge(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.AverageAgeResponse{AverageAge: avg}))
}

// GetLastFive returns the five most recently added students
// @Summary Last five students
// @Tags students
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse}
// @Failure 404 {object} dto.ErrorResponse "No students exist"
// @Router /student/last-five [get]
func (c *StudentController) GetLastFive(ctx *gin.Context) {
	students, err := c.studentService.GetLastStudents(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromStudents(students)))
}

// GetNamesStartingWith lists upper-cased names starting with a letter
// @Summary Names starting with a letter
// @Tags students
// @Produce json
// @Param letter query string false "First letter" default(A)
// @Success 200 {object} dto.APIResponse{data=[]string}
// @Failure 404 {object} dto.ErrorResponse "No name matched"
// @Router /student/names-starting-with [get]
func (c *StudentController) GetNamesStartingWith(ctx *gin.Context) {
	names, err := c.studentService.GetNamesStartingWith(ctx.Request.Context(), ctx.Query("letter"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(names))
}
