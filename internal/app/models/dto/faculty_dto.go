package dto

import "github.com/hogwarts/school/internal/app/models"

// FacultyResponse represents basic faculty information
type FacultyResponse struct {
	ID    int64  `json:"id" example:"1"`
	Name  string `json:"name" example:"Gryffindor"`
	Color string `json:"color" example:"red"`
}

// CreateFacultyRequest represents faculty creation data
type CreateFacultyRequest struct {
	Name  string `json:"name" binding:"required,max=255" example:"Gryffindor"`
	Color string `json:"color" binding:"required,max=64" example:"red"`
}

// UpdateFacultyRequest represents faculty update data
type UpdateFacultyRequest struct {
	Name  string `json:"name" binding:"required,max=255" example:"Gryffindor"`
	Color string `json:"color" binding:"required,max=64" example:"scarlet"`
}

// FacultyStudentsResponse lists the students of one faculty
type FacultyStudentsResponse struct {
	Faculty  FacultyResponse   `json:"faculty"`
	Students []StudentResponse `json:"students"`
}

// FromFaculty converts a model to its response
func FromFaculty(f *models.Faculty) FacultyResponse {
	if f == nil {
		return FacultyResponse{}
	}
	return FacultyResponse{ID: f.ID, Name: f.Name, Color: f.Color}
}

// FromFaculties converts a slice of faculties
func FromFaculties(faculties []*models.Faculty) []FacultyResponse {
	out := make([]FacultyResponse, 0, len(faculties))
	for _, f := range faculties {
		out = append(out, FromFaculty(f))
	}
	return out
}
