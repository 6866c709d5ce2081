package schedule

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

// @Summary      List schedules
// @Description  All schedules with workout, trainer and occupancy info. Pass only_future=true to hide past slots.
// @Tags         schedules
// @Security     BearerAuth
// @Produce      json
// @Param        only_future query bool false "Only future schedules"
// @Success      200 {array} schedule.ScheduleWithDetails
// @Failure      500 {object} api.ErrorResponse
// @Router       /schedules [get]
func (h *Handler) List(c *gin.Context) {
	onlyFuture := c.Query("only_future") == "true"

	schedules, err := h.service.List(c.Request.Context(), onlyFuture)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch schedules"})
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// @Summary      Get schedule
// @Tags         schedules
// @Security     BearerAuth
// @Produce      json
// @Param        scheduleID path int true "Schedule ID"
// @Success      200 {object} schedule.Schedule
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /schedules/{scheduleID} [get]
func (h *Handler) Get(c *gin.Context) {
	scheduleID, err := strconv.Atoi(c.Param("scheduleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid schedule ID"})
		return
	}

	schedule, err := h.service.GetByID(c.Request.Context(), scheduleID)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Schedule not found"})
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// @Summary      List schedules of a workout
// @Tags         schedules
// @Security     BearerAuth
// @Produce      json
// @Param        workoutID path int true "Workout ID"
// @Success      200 {array} schedule.Schedule
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /workouts/{workoutID}/schedules [get]
func (h *Handler) ListByWorkout(c *gin.Context) {
	workoutID, err := strconv.Atoi(c.Param("workoutID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid workout ID"})
		return
	}

	schedules, err := h.service.ListByWorkout(c.Request.Context(), workoutID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch schedules"})
		return
	}

	c.JSON(http.StatusOK, schedules)
}

// @Summary      Create schedule
// @Description  Trainer (own workouts) or admin: create a bookable slot starting in the future.
// @Tags         schedules
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body schedule.CreateScheduleRequest true "Schedule payload"
// @Success      201 {object} schedule.Schedule
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /schedules [post]
func (h *Handler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if errs := api.BindingErrors(err); errs != nil {
			api.RespondWithValidationErrors(c, errs)
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	schedule, err := h.service.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create schedule")
		return
	}

	c.JSON(http.StatusCreated, schedule)
}

// @Summary      Update schedule
// @Description  Allowed only while the schedule's current start time is still in the future.
// @Tags         schedules
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        scheduleID path int true "Schedule ID"
// @Param        request body schedule.UpdateScheduleRequest true "Schedule payload"
// @Success      200 {object} schedule.Schedule
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /schedules/{scheduleID} [put]
func (h *Handler) Update(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	scheduleID, err := strconv.Atoi(c.Param("scheduleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid schedule ID"})
		return
	}

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	schedule, err := h.service.Update(c.Request.Context(), actor, scheduleID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update schedule")
		return
	}

	c.JSON(http.StatusOK, schedule)
}

// @Summary      Delete schedule
// @Description  Deletion cascades to all bookings of the schedule.
// @Tags         schedules
// @Security     BearerAuth
// @Produce      json
// @Param        scheduleID path int true "Schedule ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      403 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /schedules/{scheduleID} [delete]
func (h *Handler) Delete(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	scheduleID, err := strconv.Atoi(c.Param("scheduleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid schedule ID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), actor, scheduleID); err != nil {
		respondServiceError(c, err, "Failed to delete schedule")
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Schedule deleted"})
}

func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrWorkoutNotFound), errors.Is(err, ErrScheduleNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotAllowed):
		c.JSON(http.StatusForbidden, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrInvalidStartTime), errors.Is(err, ErrStartTimeInPast), errors.Is(err, ErrAlreadyStarted):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
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
