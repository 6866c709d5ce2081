package workout

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

// @Summary      List workouts
// @Tags         workouts
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} workout.WorkoutWithTrainer
// @Failure      500 {object} api.ErrorResponse
// @Router       /workouts [get]
func (h *Handler) List(c *gin.Context) {
	workouts, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch workouts"})
		return
	}

	c.JSON(http.StatusOK, workouts)
}

// @Summary      Get workout
// @Tags         workouts
// @Security     BearerAuth
// @Produce      json
// @Param        workoutID path int true "Workout ID"
// @Success      200 {object} workout.WorkoutWithTrainer
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /workouts/{workoutID} [get]
func (h *Handler) Get(c *gin.Context) {
	workoutID, err := strconv.Atoi(c.Param("workoutID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid workout ID"})
		return
	}

	workout, err := h.service.GetByID(c.Request.Context(), workoutID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Workout not found"})
		return
	}

	c.JSON(http.StatusOK, workout)
}

// @Summary      List workouts of a trainer
// @Tags         workouts
// @Security     BearerAuth
// @Produce      json
// @Param        trainerID path int true "Trainer profile ID"
// @Success      200 {array} workout.Workout
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /trainers/{trainerID}/workouts [get]
func (h *Handler) ListByTrainer(c *gin.Context) {
	trainerID, err := strconv.Atoi(c.Param("trainerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid trainer ID"})
		return
	}

	workouts, err := h.service.ListByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch workouts"})
		return
	}

	c.JSON(http.StatusOK, workouts)
}

// @Summary      Create workout
// @Tags         workouts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body workout.CreateWorkoutRequest true "Workout payload"
// @Success      201 {object} workout.Workout
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /workouts [post]
func (h *Handler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	workout, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create workout")
		return
	}

	c.JSON(http.StatusCreated, workout)
}

// @Summary      Update workout
// @Tags         workouts
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        workoutID path int true "Workout ID"
// @Param        request body workout.UpdateWorkoutRequest true "Workout payload"
// @Success      200 {object} workout.Workout
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /workouts/{workoutID} [put]
func (h *Handler) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	workoutID, err := strconv.Atoi(c.Param("workoutID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid workout ID"})
		return
	}

	var req UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	workout, err := h.service.Update(c.Request.Context(), actor, workoutID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update workout")
		return
	}

	c.JSON(http.StatusOK, workout)
}

// @Summary      Delete workout
// @Description  Deletion cascades to schedules and bookings of the workout.
// @Tags         workouts
// @Security     BearerAuth
// @Produce      json
// @Param        workoutID path int true "Workout ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /workouts/{workoutID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	workoutID, err := strconv.Atoi(c.Param("workoutID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid workout ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, workoutID); err != nil {
		respondServiceError(c, err, "Failed to delete workout")
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Workout deleted"})
}

func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrWorkoutNotFound), errors.Is(err, ErrTrainerNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotAllowed):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: fallback})
	}
}

func currentActor(c *gin.Context) (Actor, bool) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		return Actor{}, false
	}

	role, ok := auth.GetUserRole(c)
	if !ok {
		return Actor{}, false
	}

	return Actor{ID: userID, Role: role}, true
}
