package trainer

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmytro-malyk-dm/gym-manager/internal/api"
	"github.com/dmytro-malyk-dm/gym-manager/internal/auth"

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

// @Summary      List trainers
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} trainer.TrainerWithUser
// @Failure      500 {object} api.ErrorResponse
// @Router       /trainers [get]
func (h *Handler) List(c *gin.Context) {
	trainers, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch trainers"})
		return
	}

	c.JSON(http.StatusOK, trainers)
}

// @Summary      Get trainer
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Param        trainerID path int true "Trainer ID"
// @Success      200 {object} trainer.TrainerWithUser
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /trainers/{trainerID} [get]
func (h *Handler) Get(c *gin.Context) {
	trainerID, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
		return
	}

	trainer, err := h.service.GetByID(c.Request.Context(), trainerID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Trainer not found"})
		return
	}

	c.JSON(http.StatusOK, trainer)
}

// @Summary      Create trainer
// @Description  Admin-only: promote an existing user to trainer and create the profile.
// @Tags         admin,trainers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body trainer.CreateTrainerRequest true "Trainer payload"
// @Success      201 {object} trainer.TrainerProfile
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/trainers [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	profile, err := h.service.CreateTrainer(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrAlreadyTrainer):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create trainer"})
		}
		return
	}

	c.JSON(http.StatusCreated, profile)
}

// @Summary      Update trainer profile
// @Description  Admin, or the owning trainer editing their own bio and specialization.
// @Tags         trainers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        trainerID path int true "Trainer ID"
// @Param        request body trainer.UpdateTrainerRequest true "Profile payload"
// @Success      200 {object} trainer.TrainerProfile
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /trainers/{trainerID} [put]
func (h *Handler) Update(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}
	role, _ := auth.GetUserRole(c)

	trainerID, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
		return
	}

	var req UpdateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	profile, err := h.service.UpdateTrainer(c.Request.Context(), Actor{ID: userID, Role: role}, trainerID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTrainerNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrNotAllowed):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update trainer"})
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// @Summary      List specializations
// @Tags         trainers
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} trainer.Specialization
// @Failure      500 {object} api.ErrorResponse
// @Router       /specializations [get]
func (h *Handler) ListSpecializations(c *gin.Context) {
	specializations, err := h.service.ListSpecializations(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch specializations"})
		return
	}

	c.JSON(http.StatusOK, specializations)
}

// @Summary      Create specialization
// @Description  Admin-only.
// @Tags         admin,trainers
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body trainer.CreateSpecializationRequest true "Specialization payload"
// @Success      201 {object} trainer.Specialization
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/specializations [post]
func (h *Handler) CreateSpecialization(c *gin.Context) {
	var req CreateSpecializationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	specialization, err := h.service.CreateSpecialization(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrSpecializationExists) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create specialization"})
		return
	}

	c.JSON(http.StatusCreated, specialization)
}
