package helpers

import (
	"fmt"
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hogwarts/school/internal/app/models/dto"
	"github.com/hogwarts/school/internal/pkg/apperrors"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // Default page is 1-based
)

// NormalizePage validates a 1-based page request and clamps the size to MaxPageSize.
// Pages whose offset does not fit a signed 64-bit integer are rejected.
func NormalizePage(page, size int) (int, int, error) {
	if page < 1 {
		return 0, 0, fmt.Errorf("%w: page must be at least 1", apperrors.ErrInvalidInput)
	}
	if size < 1 {
		return 0, 0, fmt.Errorf("%w: size must be at least 1", apperrors.ErrInvalidInput)
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if int64(page-1) > math.MaxInt64/int64(size) {
		return 0, 0, fmt.Errorf("%w: page %d is out of range", apperrors.ErrInvalidInput, page)
	}
	return page, size, nil
}

// CalculateOffsetLimit calculates the offset and limit for SQL queries based on 1-based page index.
// Callers are expected to pass values already checked by NormalizePage.
func CalculateOffsetLimit(page, size int) (offset uint64, limit uint64) {
	return uint64((page - 1) * size), uint64(size)
}

// NewPaginationInfo creates a standard PaginationInfo DTO.
// page should be the 1-based page number.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	totalPages := 0
	if totalItems > 0 && size > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(size)))
	}

	return dto.PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

// ParsePaginationParams extracts pagination parameters from the request.
// Missing parameters fall back to defaults; malformed or non-positive ones are rejected.
func ParsePaginationParams(c *gin.Context) (page, size int, err error) {
	page, err = strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: page must be an integer", apperrors.ErrInvalidInput)
	}

	size, err = strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(DefaultPageSize)))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: size must be an integer", apperrors.ErrInvalidInput)
	}

	return NormalizePage(page, size)
}
