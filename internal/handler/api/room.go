package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	roomCommands commands.RoomCommands
	roomQueries  queries.RoomQueries
}

func NewRoomHandler(roomCommands commands.RoomCommands, roomQueries queries.RoomQueries) *RoomHandler {
	return &RoomHandler{
		roomCommands: roomCommands,
		roomQueries:  roomQueries,
	}
}

// @Summary Create room type
// @Description Create a room type with its physical room numbers (admin only)
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRoomRequest true "Room definition"
// @Success 201 {object} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms [post]
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req reqdto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	rm, err := h.roomCommands.CreateRoom(c.Request.Context(), req.ToParams())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRoomValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid room definition",
			})
		case errors.Is(err, commands.ErrHotelNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Hotel not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRoom(rm))
}

// @Summary Room availability
// @Description List the physical room numbers free for the whole stay
// @Tags rooms
// @Produce json
// @Param id path string true "Room type ID"
// @Param checkIn query string true "Check-in date (YYYY-MM-DD)"
// @Param checkOut query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id}/availability [get]
func (h *RoomHandler) GetAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	checkIn, err := time.Parse(time.DateOnly, c.Query("checkIn"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "checkIn must be a YYYY-MM-DD date",
		})
		return
	}
	checkOut, err := time.Parse(time.DateOnly, c.Query("checkOut"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "checkOut must be a YYYY-MM-DD date",
		})
		return
	}

	numbers, err := h.roomQueries.AvailableNumbers(c.Request.Context(), id, checkIn, checkOut)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidStay):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Check-out must be after check-in",
			})
		case errors.Is(err, queries.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, &resdto.AvailabilityResponse{
		RoomID:           id,
		CheckIn:          checkIn.Format(time.DateOnly),
		CheckOut:         checkOut.Format(time.DateOnly),
		AvailableNumbers: numbers,
	})
}
