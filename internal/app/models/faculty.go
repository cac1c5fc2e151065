package models

// Faculty represents a house of the school
type Faculty struct {
	ID    int64  `json:"id" db:"id" example:"1"`
	Name  string `json:"name" db:"name" example:"Gryffindor"`
	Color string `json:"color" db:"color" example:"red"`

	// Populated only by the faculty students query
	Students []Student `json:"students,omitempty"`
}
