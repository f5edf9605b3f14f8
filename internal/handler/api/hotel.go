package api

import (
	"errors"
	"net/http"

	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type HotelHandler struct {
	hotelQueries queries.HotelQueries
	roomQueries  queries.RoomQueries
}

func NewHotelHandler(hotelQueries queries.HotelQueries, roomQueries queries.RoomQueries) *HotelHandler {
	return &HotelHandler{
		hotelQueries: hotelQueries,
		roomQueries:  roomQueries,
	}
}

// @Summary List hotels
// @Description List all hotels
// @Tags hotels
// @Produce json
// @Success 200 {array} resdto.HotelResponse
// @Router /hotels [get]
func (h *HotelHandler) ListHotels(c *gin.Context) {
	hotels, err := h.hotelQueries.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromHotelViews(hotels))
}

// @Summary Get hotel
// @Description Get hotel by ID
// @Tags hotels
// @Produce json
// @Param id path string true "Hotel ID"
// @Success 200 {object} resdto.HotelResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /hotels/{id} [get]
func (h *HotelHandler) GetHotel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid hotel ID format",
		})
		return
	}

	hotel, err := h.hotelQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrHotelNotFound):
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

	c.JSON(http.StatusOK, resdto.FromHotelView(hotel))
}

// @Summary List hotel rooms
// @Description List room types of a hotel
// @Tags hotels
// @Produce json
// @Param id path string true "Hotel ID"
// @Success 200 {array} resdto.RoomResponse
// @Failure 400 {object} map[string]string
// @Router /hotels/{id}/rooms [get]
func (h *HotelHandler) ListHotelRooms(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid hotel ID format",
		})
		return
	}

	rooms, err := h.roomQueries.ListByHotel(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomViews(rooms))
}
