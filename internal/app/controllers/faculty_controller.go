package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hogwarts/school/internal/app/models"
	"github.com/hogwarts/school/internal/app/models/dto"
	"github.com/hogwarts/school/internal/app/services"
	"github.com/hogwarts/school/internal/middleware"
)

// FacultyController handles faculty-related operations
type FacultyController struct {
	facultyService services.FacultyService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService services.FacultyService) *FacultyController {
	return &FacultyController{
		facultyService: facultyService,
	}
}

// CreateFaculty handles faculty creation
// @Summary Create a new faculty
// @Description Creates a new faculty with the provided information
// @Tags faculties
// @Accept json
// @Produce json
// @Param request body dto.CreateFacultyRequest true "Faculty information"
// @Success 201 {object} dto.APIResponse{data=dto.FacultyResponse} "Faculty created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Faculty already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty [post]
func (c *FacultyController) CreateFaculty(ctx *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	faculty := &models.Faculty{Name: req.Name, Color: req.Color}
	if _, err := c.facultyService.CreateFaculty(ctx.Request.Context(), faculty); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromFaculty(faculty)))
}

// GetFacultyByID retrieves a faculty by ID
// @Summary Get faculty details
// @Description Retrieves a specific faculty by its ID
// @Tags faculties
// @Produce json
// @Param id path int true "Faculty ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.FacultyResponse} "Faculty retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid faculty ID format"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found or no faculties exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty/{id} [get]
func (c *FacultyController) GetFacultyByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	faculty, err := c.facultyService.GetFacultyByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromFaculty(faculty)))
}

// GetAllFaculties retrieves all faculties
// @Summary Get all faculties
// @Description Retrieves a list of all faculties
// @Tags faculties
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.FacultyResponse} "Faculties retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "No faculties exist"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty [get]
func (c *FacultyController) GetAllFaculties(ctx *gin.Context) {
	faculties, err := c.facultyService.GetAllFaculties(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromFaculties(faculties)))
}

// UpdateFaculty updates an existing faculty
// @Summary Update a faculty
// @Description Replaces the name and color of an existing faculty
// @Tags faculties
// @Accept json
// @Produce json
// @Param id path int true "Faculty ID" Format(int64) minimum(1)
// @Param request body dto.UpdateFacultyRequest true "Updated faculty information"
// @Success 200 {object} dto.APIResponse{data=dto.FacultyResponse} "Faculty updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Failure 409 {object} dto.ErrorResponse "Faculty name already taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty/{id} [put]
func (c *FacultyController) UpdateFaculty(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateFacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	faculty := &models.Faculty{ID: id, Name: req.Name, Color: req.Color}
	if err := c.facultyService.UpdateFaculty(ctx.Request.Context(), faculty); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromFaculty(faculty)))
}

// DeleteFaculty deletes a faculty
// @Summary Delete a faculty
// @Description Deletes a faculty and, through the database cascade, its students
// @Tags faculties
// @Produce json
// @Param id path int true "Faculty ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Faculty deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid faculty ID format"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /faculty/{id} [delete]
func (c *FacultyController) DeleteFaculty(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.facultyService.DeleteFaculty(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Faculty deleted successfully"}))
}

// GetFacultiesByColor filters faculties by color
// @Summary Find faculties by color
// @Description Returns faculties whose color contains the given text, ignoring case
// @Tags faculties
// @Produce json
// @Param color query string true "Color fragment"
// @Success 200 {object} dto.APIResponse{data=[]dto.FacultyResponse}
// @Failure 400 {object} dto.ErrorResponse "Color is blank"
// @Failure 404 {object} dto.ErrorResponse "No faculty matched"
// @Router /faculty/by-color [get]
func (c *FacultyController) GetFacultiesByColor(ctx *gin.Context) {
	faculties, err := c.facultyService.GetFacultiesByColor(ctx.Request.Context(), ctx.Query("color"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromFaculties(faculties)))
}

// SearchFaculties finds faculties by exact name or color
// @Summary Find faculties by name or color
// @Description Returns faculties whose name or color equals the given value, ignoring case
// @Tags faculties
// @Produce json
// @Param name query string false "Faculty name"
// @Param color query string false "Faculty color"
// @Success 200 {object} dto.APIResponse{data=[]dto.FacultyResponse}
// @Failure 400 {object} dto.ErrorResponse "Both parameters are blank"
// @Failure 404 {object} dto.ErrorResponse "No faculty matched"
// @Router /faculty/search [get]
func (c *FacultyController) SearchFaculties(ctx *gin.Context) {
	faculties, err := c.facultyService.FindFacultiesByNameOrColor(ctx.Request.Context(), ctx.Query("name"), ctx.Query("color"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromFaculties(faculties)))
}

// GetStudentsOfFaculty lists the students of a faculty found by name
// @Summary Students of a faculty
// @Description Finds the first faculty whose name contains the given text and lists its students
// @Tags faculties
// @Produce json
// @Param name query string true "Faculty name fragment"
// @Success 200 {object} dto.APIResponse{data=dto.FacultyStudentsResponse}
// @Failure 400 {object} dto.ErrorResponse "Name is blank"
// @Failure 404 {object} dto.ErrorResponse "Faculty not found"
// @Router /faculty/students [get]
func (c *FacultyController) GetStudentsOfFaculty(ctx *gin.Context) {
	faculty, err := c.facultyService.GetStudentsOfFaculty(ctx.Request.Context(), ctx.Query("name"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	students := make([]dto.StudentResponse, 0, len(faculty.Students))
	for i := range faculty.Students {
		st := dto.FromStudent(&faculty.Students[i])
		st.FacultyName = faculty.Name
		students = append(students, st)
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FacultyStudentsResponse{
		Faculty:  dto.FromFaculty(faculty),
		Students: students,
	}))
}

// GetFacultyWithLongestName returns the faculty with the longest name
// @Summary Faculty with the longest name
// @Tags faculties
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.FacultyResponse}
// @Failure 404 {object} dto.ErrorResponse "No faculties exist"
// @Router /faculty/longest-name [get]
func (c *FacultyController) GetFacultyWithLongestName(ctx *gin.Context) {
	faculty, err := c.facultyService.GetFacultyWithLongestName(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromFaculty(faculty)))
}
