package controllers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hogwarts/school/internal/pkg/apperrors"
)

// parseIDParam reads a positive int64 path parameter.
func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive number", apperrors.ErrInvalidInput, name)
	}
	return id, nil
}

// parseIntQuery reads a required integer query parameter.
func parseIntQuery(ctx *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(ctx.Query(name))
	if raw == "" {
		return 0, fmt.Errorf("%w: query parameter %q is required", apperrors.ErrInvalidInput, name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: query parameter %q must be an integer", apperrors.ErrBadRequest, name)
	}
	return v, nil
}

// parseInt64Query reads a required positive int64 query parameter.
func parseInt64Query(ctx *gin.Context, name string) (int64, error) {
	raw := strings.TrimSpace(ctx.Query(name))
	if raw == "" {
		return 0, fmt.Errorf("%w: query parameter %q is required", apperrors.ErrInvalidInput, name)
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: query parameter %q must be a positive number", apperrors.ErrInvalidInput, name)
	}
	return v, nil
}
