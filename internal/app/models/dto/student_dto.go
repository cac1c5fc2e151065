package dto

import "github.com/hogwarts/school/internal/app/models"

// StudentResponse represents a student with the name of their faculty
type StudentResponse struct {
	ID          int64  `json:"id" example:"1"`
	Name        string `json:"name" example:"Harry Potter"`
	Age         int    `json:"age" example:"17"`
	FacultyID   int64  `json:"facultyId" example:"1"`
	FacultyName string `json:"facultyName,omitempty" example:"Gryffindor"`
}

// CreateStudentRequest represents student creation data
type CreateStudentRequest struct {
	Name      string `json:"name" binding:"required,max=255" example:"Hermione Granger"`
	Age       int    `json:"age" binding:"required,gt=0" example:"17"`
	FacultyID int64  `json:"facultyId" binding:"required,gt=0" example:"1"`
}

// UpdateStudentRequest represents a full replacement of a student
type UpdateStudentRequest struct {
	Name      string `json:"name" binding:"required,max=255" example:"Hermione Granger"`
	Age       int    `json:"age" binding:"required,gt=0" example:"18"`
	FacultyID int64  `json:"facultyId" binding:"required,gt=0" example:"1"`
}

// StudentCountResponse carries the number of students
type StudentCountResponse struct {
	Count int64 `json:"count" example:"42"`
}

// AverageAgeResponse carries the average student age
type AverageAgeResponse struct {
	AverageAge float64 `json:"averageAge" example:"17.5"`
}

// FromStudent converts a model to its response
func FromStudent(s *models.Student) StudentResponse {
	if s == nil {
		return StudentResponse{}
	}
	resp := StudentResponse{
		ID:        s.ID,
		Name:      s.Name,
		Age:       s.Age,
		FacultyID: s.FacultyID,
	}
	if s.Faculty != nil {
		resp.FacultyName = s.Faculty.Name
	}
	return resp
}

// FromStudents converts a slice of students
func FromStudents(students []*models.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, FromStudent(s))
	}
	return out
}
