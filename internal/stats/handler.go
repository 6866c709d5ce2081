package stats

import (
	"net/http"

	"github.com/dmytro-malyk-dm/gym-manager/internal/api"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{
		service: service,
	}
}

// @Summary      Gym overview
// @Description  Counts of trainers, specializations and clients, plus a visit counter.
// @Tags         system
// @Produce      json
// @Success      200 {object} stats.Overview
// @Failure      500 {object} api.ErrorResponse
// @Router       /stats [get]
func (h *Handler) Overview(c *gin.Context) {
	overview, err := h.service.Overview(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch stats"})
		return
	}

	c.JSON(http.StatusOK, overview)
}
