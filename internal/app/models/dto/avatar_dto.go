package dto

import "github.com/hogwarts/school/internal/app/models"

// AvatarResponse is avatar metadata without the preview bytes
type AvatarResponse struct {
	ID        int64  `json:"id" example:"1"`
	StudentID *int64 `json:"studentId" example:"7"`
	FilePath  string `json:"filePath" example:"avatars/7.png"`
	FileSize  int64  `json:"fileSize" example:"48213"`
	MediaType string `json:"mediaType" example:"image/png"`
}

// AvatarListResponse is a page of avatars
type AvatarListResponse struct {
	Avatars    []AvatarResponse `json:"avatars"`
	Pagination PaginationInfo   `json:"pagination"`
}

// SweepResponse reports what the maintenance sweep removed
type SweepResponse struct {
	OrphanRowsRemoved  int `json:"orphanRowsRemoved" example:"2"`
	OrphanFilesRemoved int `json:"orphanFilesRemoved" example:"3"`
}

// FromAvatar converts a model to its response
func FromAvatar(a *models.Avatar) AvatarResponse {
	if a == nil {
		return AvatarResponse{}
	}
	return AvatarResponse{
		ID:        a.ID,
		StudentID: a.StudentID,
		FilePath:  a.FilePath,
		FileSize:  a.FileSize,
		MediaType: a.MediaType,
	}
}

// FromAvatars converts a slice of avatars
func FromAvatars(avatars []*models.Avatar) []AvatarResponse {
	out := make([]AvatarResponse, 0, len(avatars))
	for _, a := range avatars {
		out = append(out, FromAvatar(a))
	}
	return out
}
