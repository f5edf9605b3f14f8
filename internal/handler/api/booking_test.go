//go:build unit

package api_test

import (
	"net/http"
	"testing"
	"time"

	"stayhub/internal/domain/user"
	"stayhub/internal/handler/api"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"
	"stayhub/tests/common/builder"
	"stayhub/tests/common/httptest"
	commandsmock "stayhub/tests/mock/commands"
	queriesmock "stayhub/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	userID       uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.userID)
		role := user.RoleGuest
		if c.GetHeader("Authorization") == "Bearer admin-token" {
			role = user.RoleAdmin
		}
		c.Set("user_role", role)
		c.Next()
	}

	s.router.POST("/bookings", authMiddleware, s.handler.CreateBooking)
	s.router.GET("/bookings", authMiddleware, s.handler.ListBookings)
	s.router.GET("/bookings/:id", authMiddleware, s.handler.GetBooking)
	s.router.POST("/bookings/:id/cancel", authMiddleware, s.handler.CancelBooking)
	s.router.PATCH("/bookings/:id/status", authMiddleware, s.handler.UpdateStatus)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

func (s *BookingHandlerTestSuite) createRequestBody() map[string]any {
	return map[string]any{
		"bookingType": "Hotel",
		"hotelId":     uuid.New().String(),
		"roomId":      uuid.New().String(),
		"checkIn":     "2024-06-01",
		"checkOut":    "2024-06-03",
		"adults":      2,
		"guests": []map[string]any{
			{"fullName": "Asha Verma", "age": 34},
			{"fullName": "Rohan Verma", "age": 36},
		},
	}
}

func (s *BookingHandlerTestSuite) TestCreateBooking() {
	s.Run("creates a booking and returns 201", func() {
		created, err := builder.NewBookingBuilder().BuildDomain()
		s.Require().NoError(err)

		s.mockCommands.EXPECT().
			ReserveRoom(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, params commands.ReserveRoomParams) (any, error) {
				s.Equal(s.userID, params.UserID)
				s.Equal(2, params.Adults)
				s.Len(params.Guests, 2)
				return created, nil
			})

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", s.createRequestBody(), "guest-token")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &resp)
		s.Equal("Hotel", resp.BookingType)
		s.Equal("Pending", resp.Status)
		s.Equal("Pending", resp.PaymentStatus)
		s.Equal([]int{101}, resp.RoomNumbers)
	})

	s.Run("accepts an infant guest with age zero", func() {
		created, err := builder.NewBookingBuilder().BuildDomain()
		s.Require().NoError(err)

		body := s.createRequestBody()
		body["guests"] = []map[string]any{
			{"fullName": "Asha Verma", "age": 34},
			{"fullName": "Kiran Verma", "age": 0},
		}

		s.mockCommands.EXPECT().
			ReserveRoom(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, params commands.ReserveRoomParams) (any, error) {
				s.Require().Len(params.Guests, 2)
				s.Equal(0, params.Guests[1].Age)
				return created, nil
			})

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", body, "guest-token")
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, nil)
	})

	s.Run("rejects a negative guest age", func() {
		body := s.createRequestBody()
		body["guests"] = []map[string]any{
			{"fullName": "Asha Verma", "age": -1},
		}

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", body, "guest-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("rejects unauthenticated requests", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", s.createRequestBody(), "")
		httptest.AssertErrorResponse(s.T(), w, http.StatusUnauthorized, "")
	})

	s.Run("maps sold out to 409", func() {
		s.mockCommands.EXPECT().
			ReserveRoom(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrNoRoomsAvailable)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", s.createRequestBody(), "guest-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "No rooms available")
	})

	s.Run("maps unknown room to 404", func() {
		s.mockCommands.EXPECT().
			ReserveRoom(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrRoomNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", s.createRequestBody(), "guest-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Room not found")
	})

	s.Run("rejects malformed dates", func() {
		body := s.createRequestBody()
		body["checkIn"] = "June 1st"

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", body, "guest-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")
	})

	s.Run("rejects missing guests", func() {
		body := s.createRequestBody()
		delete(body, "guests")

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings", body, "guest-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}

func (s *BookingHandlerTestSuite) TestGetBooking() {
	bookingID := uuid.New()

	s.Run("returns the booking view", func() {
		view := &queries.BookingView{
			ID:          bookingID,
			UserID:      s.userID,
			BookingType: "Hotel",
			CheckIn:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			CheckOut:    time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			TotalCents:  500000,
			Currency:    "INR",
			Status:      "Confirmed",
		}
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), s.userID, false, bookingID).
			Return(view, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+bookingID.String(), nil, "guest-token")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(bookingID, resp.ID)
		s.Equal("2024-06-01", resp.CheckIn)
		s.Equal("Confirmed", resp.Status)
	})

	s.Run("maps foreign booking to 403", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), s.userID, false, bookingID).
			Return(nil, queries.ErrNotOwner)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+bookingID.String(), nil, "guest-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "another user")
	})

	s.Run("maps missing booking to 404", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), s.userID, false, bookingID).
			Return(nil, queries.ErrBookingNotFound)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/"+bookingID.String(), nil, "guest-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Booking not found")
	})

	s.Run("rejects malformed IDs", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/not-a-uuid", nil, "guest-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid booking ID")
	})
}

func (s *BookingHandlerTestSuite) TestListBookings() {
	s.Run("scopes non-admins to their own bookings", func() {
		s.mockQueries.EXPECT().
			List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, filter queries.BookingFilter, _ queries.BookingSort, _ queries.Page) ([]*queries.BookingListItem, int64, error) {
				s.Require().NotNil(filter.UserID)
				s.Equal(s.userID, *filter.UserID)
				return []*queries.BookingListItem{
					{ID: uuid.New(), BookingType: "Hotel", TotalCents: 500000, Currency: "INR", Status: "Pending"},
				}, 1, nil
			})

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings", nil, "guest-token")

		var resp resdto.BookingPageResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal(int64(1), resp.Total)
		s.Len(resp.Items, 1)
	})

	s.Run("admins see everything and filters pass through", func() {
		s.mockQueries.EXPECT().
			List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, filter queries.BookingFilter, sort queries.BookingSort, page queries.Page) ([]*queries.BookingListItem, int64, error) {
				s.Nil(filter.UserID)
				s.Require().NotNil(filter.Status)
				s.Equal("Confirmed", *filter.Status)
				s.Equal("total_cents", sort.Field)
				s.False(sort.Desc)
				s.Equal(2, page.Number)
				return nil, 0, nil
			})

		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/bookings?status=Confirmed&sortBy=total_cents&order=asc&page=2", nil, "admin-token")

		var resp resdto.BookingPageResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Empty(resp.Items)
	})
}

func (s *BookingHandlerTestSuite) TestCancelBooking() {
	bookingID := uuid.New()

	s.Run("cancels and returns the booking", func() {
		b, err := builder.NewBookingBuilder().BuildDomain()
		s.Require().NoError(err)
		s.Require().NoError(b.Cancel())

		s.mockCommands.EXPECT().
			CancelBooking(gomock.Any(), bookingID, s.userID, false).
			Return(b, nil)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+bookingID.String()+"/cancel", nil, "guest-token")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Equal("Cancelled", resp.Status)
	})

	s.Run("maps double cancel to 409", func() {
		s.mockCommands.EXPECT().
			CancelBooking(gomock.Any(), bookingID, s.userID, false).
			Return(nil, commands.ErrBookingAlreadyCancelled)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+bookingID.String()+"/cancel", nil, "guest-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusConflict, "already cancelled")
	})

	s.Run("maps foreign booking to 403", func() {
		s.mockCommands.EXPECT().
			CancelBooking(gomock.Any(), bookingID, s.userID, false).
			Return(nil, commands.ErrNotBookingOwner)

		w := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/bookings/"+bookingID.String()+"/cancel", nil, "guest-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusForbidden, "another user")
	})
}

func (s *BookingHandlerTestSuite) TestUpdateStatus() {
	bookingID := uuid.New()

	s.Run("applies status overrides", func() {
		b, err := builder.NewBookingBuilder().BuildDomain()
		s.Require().NoError(err)

		s.mockCommands.EXPECT().
			UpdateStatus(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, params commands.UpdateStatusParams) (any, error) {
				s.Equal(bookingID, params.BookingID)
				s.Require().NotNil(params.Status)
				s.Equal("Confirmed", string(*params.Status))
				s.Nil(params.PaymentStatus)
				return b, nil
			})

		body := map[string]any{"status": "Confirmed"}
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/"+bookingID.String()+"/status", body, "admin-token")

		var resp resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	})

	s.Run("rejects unknown status values", func() {
		body := map[string]any{"status": "Archived"}
		w := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/"+bookingID.String()+"/status", body, "admin-token")
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "Invalid request format")
	})
}
