package dto

// InfoResponse describes the running instance
type InfoResponse struct {
	Port string `json:"port" example:"8080"`
}
