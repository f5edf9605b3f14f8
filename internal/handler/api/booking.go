package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/handler/middleware"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Reserve a room for a stay; a physical room number is claimed atomically
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params, err := req.ToParams(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	created, err := h.bookingCommands.ReserveRoom(c.Request.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrHotelNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Hotel not found",
			})
		case errors.Is(err, commands.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found for this hotel",
			})
		case errors.Is(err, commands.ErrNoRoomsAvailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "No rooms available for the requested dates",
			})
		case errors.Is(err, commands.ErrBookingValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Booking validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBooking(created))
}

// @Summary Get booking
// @Description Get booking by ID; users only see their own bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), userID, middleware.IsAdmin(c), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, queries.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Booking belongs to another user",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary List bookings
// @Description List bookings with filters and pagination; non-admins only see their own
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Booking status"
// @Param paymentStatus query string false "Payment status"
// @Param checkInFrom query string false "Check-in on or after (YYYY-MM-DD)"
// @Param checkInTo query string false "Check-in on or before (YYYY-MM-DD)"
// @Param minTotalCents query int false "Minimum total"
// @Param maxTotalCents query int false "Maximum total"
// @Param search query string false "Match guest or hotel names"
// @Param sortBy query string false "created_at, check_in or total_cents"
// @Param order query string false "asc or desc"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size"
// @Success 200 {object} resdto.BookingPageResponse
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	filter := bookingFilterFromQuery(c)
	if !middleware.IsAdmin(c) {
		filter.UserID = &userID
	}

	sort := queries.BookingSort{
		Field: c.Query("sortBy"),
		Desc:  c.DefaultQuery("order", "desc") == "desc",
	}
	page := queries.Page{
		Number: queryInt(c, "page", 1),
		Size:   queryInt(c, "pageSize", 20),
	}

	items, total, err := h.bookingQueries.List(c.Request.Context(), filter, sort, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	resp := &resdto.BookingPageResponse{
		Items: make([]*resdto.BookingListResponse, 0, len(items)),
		Total: total,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, resdto.FromBookingListItem(item))
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Cancel booking
// @Description Cancel a booking and release its room claim
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	cancelled, err := h.bookingCommands.CancelBooking(c.Request.Context(), id, userID, middleware.IsAdmin(c))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, commands.ErrNotBookingOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Booking belongs to another user",
			})
		case errors.Is(err, commands.ErrBookingAlreadyCancelled):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Booking already cancelled",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBooking(cancelled))
}

// @Summary Update booking status
// @Description Override booking or payment status (admin only)
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.UpdateBookingStatusRequest true "Status overrides"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/status [patch]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	updated, err := h.bookingCommands.UpdateStatus(c.Request.Context(), req.ToParams(id))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBooking(updated))
}

func bookingFilterFromQuery(c *gin.Context) queries.BookingFilter {
	var filter queries.BookingFilter

	if s := c.Query("status"); s != "" {
		filter.Status = &s
	}
	if s := c.Query("paymentStatus"); s != "" {
		filter.PaymentStatus = &s
	}
	if s := c.Query("checkInFrom"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.CheckInFrom = &t
		}
	}
	if s := c.Query("checkInTo"); s != "" {
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			filter.CheckInTo = &t
		}
	}
	if s := c.Query("minTotalCents"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			filter.MinTotalCents = &n
		}
	}
	if s := c.Query("maxTotalCents"); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			filter.MaxTotalCents = &n
		}
	}
	if s := c.Query("search"); s != "" {
		filter.Search = &s
	}

	return filter
}

func queryInt(c *gin.Context, name string, fallback int) int {
	s := c.Query(name)
	if s == "" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
