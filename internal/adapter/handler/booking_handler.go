package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/srgjo27/staybook/internal/core/domain"
	"github.com/srgjo27/staybook/internal/core/services"
)

// BookingHandler serves the bookings collection in the json-server layout the
// front-end expects: /bookings and /bookings/:id.
type BookingHandler struct {
	resource *services.BookingResource
	rules    domain.FormRules
	logger   *slog.Logger
}

func NewBookingHandler(resource *services.BookingResource, rules domain.FormRules, logger *slog.Logger) *BookingHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookingHandler{resource: resource, rules: rules, logger: logger}
}

type bookingRequest struct {
	Property  string     `json:"property" binding:"required"`
	CheckIn   time.Time  `json:"checkIn"`
	CheckOut  time.Time  `json:"checkOut"`
	Adults    int        `json:"adults"`
	CreatedAt *time.Time `json:"createdAt"`
}

func (r bookingRequest) booking() domain.Booking {
	return domain.Booking{
		Property:  r.Property,
		CheckIn:   r.CheckIn,
		CheckOut:  r.CheckOut,
		Adults:    r.Adults,
		CreatedAt: r.CreatedAt,
	}
}

// List accepts both json-server (_sort, _order) and plain (sort, order) parameters.
func (h *BookingHandler) List(c *gin.Context) {
	sort := c.Query("_sort")
	if sort == "" {
		sort = c.Query("sort")
	}
	order := c.Query("_order")
	if order == "" {
		order = c.Query("order")
	}

	query, err := domain.ParseListQuery(sort, order)
	if err != nil {
		h.writeError(c, err)
		return
	}

	bookings, err := h.resource.List(c.Request.Context(), query)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) Get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	booking, err := h.resource.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) Create(c *gin.Context) {
	booking, ok := h.bindBooking(c)
	if !ok {
		return
	}

	created, err := h.resource.Create(c.Request.Context(), booking)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *BookingHandler) Update(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	booking, ok := h.bindBooking(c)
	if !ok {
		return
	}

	updated, err := h.resource.Update(c.Request.Context(), id, booking)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	if err := h.resource.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *BookingHandler) bindBooking(c *gin.Context) (domain.Booking, bool) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json body: " + err.Error()})
		return domain.Booking{}, false
	}

	booking := req.booking()
	if err := domain.FormFromBooking(booking).Validate(h.rules); err != nil {
		h.writeError(c, err)
		return domain.Booking{}, false
	}
	return booking, true
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return 0, false
	}
	return id, true
}

func (h *BookingHandler) writeError(c *gin.Context, err error) {
	if fields := domain.FieldErrors(err); len(fields) > 0 {
		details := make(map[string]string, len(fields))
		for _, f := range fields {
			if _, seen := details[f.Field]; !seen {
				details[f.Field] = f.Reason
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidBooking.Error(), "fields": details})
		return
	}

	var overlap *domain.OverlapError
	switch {
	case errors.As(err, &overlap):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "conflictId": overlap.Conflict.ID})
	case errors.Is(err, domain.ErrDatesUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidBooking), errors.Is(err, domain.ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("booking request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString("request_id"),
			"error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
