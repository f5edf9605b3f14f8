//go:build e2e

package auth_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"stayhub/internal/handler/dto/request"
	resdto "stayhub/internal/handler/dto/response"
	"stayhub/tests/common/dbtest"
	"stayhub/tests/common/httptest"
	"stayhub/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const loginURL = "/api/auth/login"

type authSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	suite.Run(t, new(authSuite))
}

func (s *authSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	dbtest.CreateTestUser(s.T(), s.DB, "guest@example.com", "guest")
	dbtest.CreateTestUser(s.T(), s.DB, "admin@example.com", "admin")
}

func (s *authSuite) login(email, password string) (*resdto.LoginResponse, int) {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, loginURL,
		request.LoginRequest{Email: email, Password: password}, "")
	if w.Code != http.StatusOK {
		return nil, w.Code
	}
	var resp resdto.LoginResponse
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	return &resp, w.Code
}

func (s *authSuite) TestLogin() {
	tests := []struct {
		name           string
		email          string
		password       string
		expectedStatus int
	}{
		{"valid credentials", "guest@example.com", "password123", http.StatusOK},
		{"unknown user", "nobody@example.com", "password123", http.StatusUnauthorized},
		{"wrong password", "guest@example.com", "hunter2", http.StatusUnauthorized},
		{"empty email", "", "password123", http.StatusBadRequest},
		{"empty password", "guest@example.com", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			resp, code := s.login(tt.email, tt.password)
			require.Equal(s.T(), tt.expectedStatus, code)

			if code == http.StatusOK {
				require.NotEmpty(s.T(), resp.AccessToken)
				require.NotEmpty(s.T(), resp.UserID)
				require.Equal(s.T(), "guest", resp.Role)
			}
		})
	}
}

func (s *authSuite) TestTokenEnforcement() {
	s.Run("a protected route without a token is rejected", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/bookings", nil, "")
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})

	s.Run("a garbage token is rejected", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/bookings", nil, "not-a-jwt")
		require.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})

	s.Run("a valid token grants access", func() {
		resp, code := s.login("guest@example.com", "password123")
		require.Equal(s.T(), http.StatusOK, code)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/bookings", nil, resp.AccessToken)
		require.Equal(s.T(), http.StatusOK, w.Code)
	})
}

func (s *authSuite) TestAdminGate() {
	roomBody := func() request.CreateRoomRequest {
		hotelID := dbtest.CreateTestHotel(s.T(), s.DB, "Gate Test Hotel", "Pune", "INR")
		return request.CreateRoomRequest{
			HotelID:      hotelID,
			TypeName:     "Standard",
			PriceCents:   150000,
			MaxOccupancy: 2,
			Amenities:    []string{"wifi"},
			RoomNumbers:  []int{201, 202},
		}
	}

	s.Run("a guest cannot create rooms", func() {
		resp, code := s.login("guest@example.com", "password123")
		require.Equal(s.T(), http.StatusOK, code)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/rooms", roomBody(), resp.AccessToken)
		require.Equal(s.T(), http.StatusForbidden, w.Code)
	})

	s.Run("an admin can create rooms", func() {
		resp, code := s.login("admin@example.com", "password123")
		require.Equal(s.T(), http.StatusOK, code)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/rooms", roomBody(), resp.AccessToken)
		require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
	})
}
