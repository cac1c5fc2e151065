package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hogwarts/school/internal/app/models/dto"
	"github.com/hogwarts/school/internal/app/services"
	"github.com/hogwarts/school/internal/middleware"
	"github.com/hogwarts/school/internal/pkg/apperrors"
	"github.com/hogwarts/school/internal/pkg/helpers"
	"github.com/hogwarts/school/internal/pkg/logger"
)

// AvatarFormField is the multipart field carrying the image.
const AvatarFormField = "avatar"

// multipartOverhead is the room left for multipart boundaries and headers on top of the file cap.
const multipartOverhead = 1 << 20

// AvatarController handles avatar upload, download and maintenance
type AvatarController struct {
	avatarService services.AvatarService
	maxUploadSize int64
}

// NewAvatarController creates a new AvatarController
func NewAvatarController(avatarService services.AvatarService, maxUploadSize int64) *AvatarController {
	return &AvatarController{
		avatarService: avatarService,
		maxUploadSize: maxUploadSize,
	}
}

// UploadAvatar stores a student's avatar
// @Summary Upload an avatar
// @Description Stores the image, generates a 100px wide preview and records the metadata. Replaces any previous avatar.
// @Tags avatars
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Param avatar formData file true "Avatar image (jpg, png, gif, bmp, tiff)"
// @Success 200 {object} dto.APIResponse{data=dto.AvatarResponse} "Avatar stored"
// @Failure 400 {object} dto.ErrorResponse "Missing file, bad extension or unusable image"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 413 {object} dto.ErrorResponse "File exceeds the upload limit"
// @Failure 500 {object} dto.ErrorResponse "File operation failed"
// @Router /avatar/{id}/upload-avatar [post]
func (c *AvatarController) UploadAvatar(ctx *gin.Context) {
	studentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if c.maxUploadSize > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxUploadSize+multipartOverhead)
	}

	header, err := ctx.FormFile(AvatarFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.HandleAPIError(ctx, apperrors.NewCustomError(apperrors.ErrPayloadTooLarge, "request body exceeds the upload limit"))
			return
		}
		middleware.HandleAPIError(ctx, fmt.Errorf("%w: multipart field %q is required", apperrors.ErrInvalidInput, AvatarFormField))
		return
	}

	file, err := header.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, fmt.Errorf("%w: %w", apperrors.ErrIOFailure, err))
		return
	}
	defer file.Close()

	avatar, err := c.avatarService.StoreAvatar(ctx.Request.Context(), studentID, &services.AvatarUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromAvatar(avatar)))
}

// DownloadPreview returns the stored preview
// @Summary Download the avatar preview
// @Tags avatars
// @Produce octet-stream
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {file} binary "Preview bytes"
// @Failure 404 {object} dto.ErrorResponse "Avatar not found or no students exist"
// @Router /avatar/{id}/avatar/download-preview [get]
func (c *AvatarController) DownloadPreview(ctx *gin.Context) {
	studentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	avatar, err := c.avatarService.GetAvatar(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Length", strconv.Itoa(len(avatar.Preview)))
	ctx.Data(http.StatusOK, avatar.MediaType, avatar.Preview)
}

// DownloadAvatar streams the original file
// @Summary Download the original avatar
// @Tags avatars
// @Produce octet-stream
// @Param id path int true "Student ID" Format(int64) minimum(1)
// @Success 200 {file} binary "Original file"
// @Failure 404 {object} dto.ErrorResponse "Avatar or file not found"
// @Failure 500 {object} dto.ErrorResponse "File operation failed"
// @Router /avatar/{id}/download-avatar [get]
func (c *AvatarController) DownloadAvatar(ctx *gin.Context) {
	studentID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	r, avatar, err := c.avatarService.OpenAvatarFile(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer r.Close()

	ctx.DataFromReader(http.StatusOK, avatar.FileSize, avatar.MediaType, r, nil)
	if renderErr := ctx.Errors.Last(); renderErr != nil {
		logger.Ctx(ctx.Request.Context()).Warn().Err(renderErr).Int64("studentID", studentID).Msg("Avatar stream interrupted")
	}
}

// GetAllAvatars lists avatar metadata page by page
// @Summary List avatars
// @Tags avatars
// @Produce json
// @Param page query int false "Page number" default(1) minimum(1)
// @Param size query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.AvatarListResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid page or size"
// @Router /avatar/get-all [get]
func (c *AvatarController) GetAllAvatars(ctx *gin.Context) {
	page, size, err := helpers.ParsePaginationParams(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	avatars, total, err := c.avatarService.ListAvatars(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.AvatarListResponse{
		Avatars:    dto.FromAvatars(avatars),
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// DeleteAvatar removes an avatar's metadata
// @Summary Delete an avatar
// @Description Deletes the avatar row of a student. The file stays on disk until the maintenance sweep.
// @Tags avatars
// @Produce json
// @Param student-id query int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 404 {object} dto.ErrorResponse "Avatar not found"
// @Router /avatar/delete [delete]
func (c *AvatarController) DeleteAvatar(ctx *gin.Context) {
	studentID, err := parseInt64Query(ctx, "student-id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.avatarService.DeleteAvatar(ctx.Request.Context(), studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Avatar deleted successfully"}))
}

// RemoveUnused runs the maintenance sweep
// @Summary Remove unused avatars
// @Description Deletes avatar rows whose student is gone, their files, and files no row references
// @Tags avatars
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.SweepResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin role required"
// @Failure 500 {object} dto.ErrorResponse "File operation failed"
// @Router /avatar/unused [delete]
func (c *AvatarController) RemoveUnused(ctx *gin.Context) {
	res, err := c.avatarService.RemoveUnused(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SweepResponse{
		OrphanRowsRemoved:  res.OrphanRowsRemoved,
		OrphanFilesRemoved: res.OrphanFilesRemoved,
	}))
}
