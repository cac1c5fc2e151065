package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hogwarts/school/internal/app/models/dto"
)

// InfoController reports instance information
type InfoController struct {
	port string
}

// NewInfoController creates a new InfoController
func NewInfoController(port string) *InfoController {
	return &InfoController{port: port}
}

// GetInfo returns the port this instance listens on
// @Summary Instance info
// @Tags info
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.InfoResponse}
// @Router /info [get]
func (c *InfoController) GetInfo(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.InfoResponse{Port: c.port}))
}
