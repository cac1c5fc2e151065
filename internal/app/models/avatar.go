package models

// Avatar is the image metadata attached to a student. The original file lives on disk
// at FilePath; Preview holds the encoded thumbnail.
type Avatar struct {
	ID        int64  `json:"id" db:"id"`
	StudentID *int64 `json:"studentId" db:"student_id"`
	FilePath  string `json:"filePath" db:"file_path"`
	FileSize  int64  `json:"fileSize" db:"file_size"`
	MediaType string `json:"mediaType" db:"media_type"`
	Preview   []byte `json:"-" db:"preview"`
}

// IsOrphan reports whether the owning student has been removed.
func (a *Avatar) IsOrphan() bool {
	return a.StudentID == nil
}
