package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmytro-malyk-dm/gym-manager/internal/api"
	"github.com/dmytro-malyk-dm/gym-manager/internal/auth"
	"github.com/dmytro-malyk-dm/gym-manager/internal/user"

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

// outcomeStatus maps each declined outcome to the HTTP status the
// presentation layer reports. already_booked is informational, not an
// error.
var outcomeStatus = map[Outcome]int{
	OutcomeConfirmed:      http.StatusCreated,
	OutcomeRoleNotAllowed: http.StatusForbidden,
	OutcomeNotFound:       http.StatusNotFound,
	OutcomeAlreadyStarted: http.StatusBadRequest,
	OutcomeFull:           http.StatusConflict,
	OutcomeAlreadyBooked:  http.StatusOK,
	OutcomeTimeConflict:   http.StatusConflict,
	OutcomeCancelled:      http.StatusOK,
}

var outcomeMessage = map[Outcome]string{
	OutcomeConfirmed:      "Successfully booked",
	OutcomeRoleNotAllowed: "Only clients can book workouts",
	OutcomeNotFound:       "Schedule not found",
	OutcomeAlreadyStarted: "This workout has already started",
	OutcomeFull:           "No available spots",
	OutcomeAlreadyBooked:  "You are already booked",
	OutcomeTimeConflict:   "You already have a workout at this time",
	OutcomeCancelled:      "Booking cancelled",
}

// @Summary      Reserve a seat
// @Description  Attempts to book the authenticated client into a schedule.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        scheduleID path int true "Schedule ID"
// @Success      201 {object} booking.ReserveResponse
// @Failure      400 {object} booking.ReserveResponse
// @Failure      403 {object} booking.ReserveResponse
// @Failure      404 {object} booking.ReserveResponse
// @Failure      409 {object} booking.ReserveResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /schedules/{scheduleID}/book [post]
func (h *Handler) Reserve(c *gin.Context) {
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

	outcome, booking, err := h.service.Reserve(c.Request.Context(), actor, scheduleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to process reservation"})
		return
	}

	c.JSON(outcomeStatus[outcome], ReserveResponse{
		Outcome: outcome,
		Booking: booking,
		Message: outcomeMessage[outcome],
	})
}

// @Summary      Cancel a reservation
// @Description  Removes the authenticated client's booking for a schedule. Always reports cancelled.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        scheduleID path int true "Schedule ID"
// @Success      200 {object} booking.ReleaseResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /schedules/{scheduleID}/cancel [post]
func (h *Handler) Release(c *gin.Context) {
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

	outcome, err := h.service.Release(c.Request.Context(), actor, scheduleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel booking"})
		return
	}

	c.JSON(http.StatusOK, ReleaseResponse{
		Outcome: outcome,
		Message: outcomeMessage[outcome],
	})
}

// @Summary      Schedule availability
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        scheduleID path int true "Schedule ID"
// @Success      200 {object} booking.Availability
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /schedules/{scheduleID}/availability [get]
func (h *Handler) Availability(c *gin.Context) {
	scheduleID, err := strconv.Atoi(c.Param("scheduleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid schedule ID"})
		return
	}

	availability, err := h.service.Availability(c.Request.Context(), scheduleID)
	if err != nil {
		if errors.Is(err, ErrScheduleNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Schedule not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch availability"})
		return
	}

	if actor, ok := currentActor(c); ok && actor.Role == user.RoleClient {
		booked, err := h.service.IsBooked(c.Request.Context(), actor.ID, scheduleID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch availability"})
			return
		}
		availability.IsBooked = booked
	}

	c.JSON(http.StatusOK, availability)
}

// @Summary      List my bookings
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array} booking.BookingWithDetails
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "User not authenticated"})
		return
	}

	bookings, err := h.service.ListMyBookings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// @Summary      List participants of a schedule
// @Description  Trainer/admin view of all bookings for a schedule.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        scheduleID path int true "Schedule ID"
// @Success      200 {array} booking.BookingWithDetails
// @Failure      400 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /schedules/{scheduleID}/bookings [get]
func (h *Handler) ListBySchedule(c *gin.Context) {
	scheduleID, err := strconv.Atoi(c.Param("scheduleID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid schedule ID"})
		return
	}

	bookings, err := h.service.ListBySchedule(c.Request.Context(), scheduleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
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
