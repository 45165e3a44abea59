package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/vehicle-booking-board/internal/booking"
	"github.com/nekogravitycat/vehicle-booking-board/internal/pkg/request"
	"github.com/nekogravitycat/vehicle-booking-board/internal/pkg/response"
	"github.com/nekogravitycat/vehicle-booking-board/internal/store"
	"github.com/nekogravitycat/vehicle-booking-board/internal/user"
)

var fixedNow = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

func setupRouter(seed ...user.Record) (*gin.Engine, *store.MemoryStore) {
	gin.SetMode(gin.TestMode)
	repo := store.NewMemoryStore(seed...)
	svc := booking.NewService(repo, func() time.Time { return fixedNow })

	r := gin.New()
	RegisterRoutes(r.Group("/v1"), NewHandler(svc))
	return r, repo
}

func executeRequest(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) response.ListResponse[VehicleResponse] {
	var resp response.ListResponse[VehicleResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	var resp response.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}

func TestBookingFlow(t *testing.T) {
	r, repo := setupRouter(
		user.Record{Username: "Alice", Password: "pw1", Phone: "+911234567890"},
		user.Record{Username: "Carol", Password: "pw3", Phone: "+919999999999"},
	)

	t.Run("Request", func(t *testing.T) {
		w := executeRequest(r, "POST", "/v1/vehicles/Alice/requests", CreateRequestRequest{Name: "Bob", Date: "2025-06-01", StartTime: "10:00", EndTime: "11:00"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.NotContains(t, w.Body.String(), "pw1")

		resp := decodeList(t, w)
		assert.Equal(t, 2, resp.Total)
		var alice VehicleResponse
		for _, v := range resp.Items {
			if v.Username == "Alice" {
				alice = v
			}
		}
		require.Len(t, alice.BookingRequests, 1)
		assert.Equal(t, "Sunday", alice.BookingRequests[0].Day)
		assert.Equal(t, "2025-06-01T08:00:00.000Z", alice.BookingRequests[0].RequestedAt)
		assert.NotNil(t, alice.ConfirmedBookings, "lists are never null")
	})

	t.Run("Duplicate request", func(t *testing.T) {
		w := executeRequest(r, "POST", "/v1/vehicles/Alice/requests", CreateRequestRequest{Name: "Bob", Date: "2025-06-01", StartTime: "14:00", EndTime: "15:00"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Confirm with wrong password", func(t *testing.T) {
		saves := repo.Saves()
		w := executeRequest(r, "POST", "/v1/vehicles/Alice/requests/confirm", OwnerActionRequest{Requester: "Bob", CredentialsRequest: credentials("nope")})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "incorrect password", decodeError(t, w))
		assert.Equal(t, saves, repo.Saves())
	})

	t.Run("Confirm", func(t *testing.T) {
		w := executeRequest(r, "POST", "/v1/vehicles/Alice/requests/confirm", OwnerActionRequest{Requester: "Bob", CredentialsRequest: credentials("pw1")})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := decodeList(t, w)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "Carol", resp.Items[0].Username, "available owners come first")
		alice := resp.Items[1]
		assert.False(t, alice.Available)
		assert.Empty(t, alice.BookingRequests)
		require.Len(t, alice.ConfirmedBookings, 1)
		assert.Empty(t, alice.ConfirmedBookings[0].RequestedAt)
	})

	t.Run("Filter", func(t *testing.T) {
		w := executeRequest(r, "GET", "/v1/vehicles?date=2025-06-01&start_time=12:00&end_time=13:00", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2, decodeList(t, w).Total)

		w = executeRequest(r, "GET", "/v1/vehicles?date=2025-06-01&start_time=10:30&end_time=12:00", nil)
		resp := decodeList(t, w)
		require.Equal(t, 1, resp.Total)
		assert.Equal(t, "Carol", resp.Items[0].Username)

		w = executeRequest(r, "GET", "/v1/vehicles?name=ali", nil)
		assert.Equal(t, 1, decodeList(t, w).Total)

		w = executeRequest(r, "GET", "/v1/vehicles?date=01/06/2025", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Delete confirmed booking", func(t *testing.T) {
		w := executeRequest(r, "DELETE", "/v1/vehicles/Alice/bookings", OwnerActionRequest{Requester: "Bob", CredentialsRequest: credentials("pw1")})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		resp := decodeList(t, w)
		for _, v := range resp.Items {
			assert.True(t, v.Available)
		}

		w = executeRequest(r, "DELETE", "/v1/vehicles/Alice/bookings", OwnerActionRequest{Requester: "Bob", CredentialsRequest: credentials("pw1")})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestBookingHandler_Errors(t *testing.T) {
	r, repo := setupRouter(user.Record{Username: "Alice", Password: "pw1"})

	tests := []struct {
		name     string
		method   string
		path     string
		body     any
		wantCode int
		wantMsg  string
	}{
		{name: "Unknown owner", method: "POST", path: "/v1/vehicles/Zed/requests", body: CreateRequestRequest{Name: "Bob", Date: "2025-06-01", StartTime: "10:00", EndTime: "11:00"}, wantCode: http.StatusNotFound, wantMsg: "owner not found"},
		{name: "Blank fields", method: "POST", path: "/v1/vehicles/Alice/requests", body: CreateRequestRequest{Name: " ", Date: "2025-06-01"}, wantCode: http.StatusBadRequest, wantMsg: "please fill all booking details"},
		{name: "Cancel unknown request", method: "POST", path: "/v1/vehicles/Alice/requests/cancel", body: OwnerActionRequest{Requester: "Bob", CredentialsRequest: credentials("pw1")}, wantCode: http.StatusNotFound, wantMsg: "booking request not found"},
		{name: "Missing requester", method: "POST", path: "/v1/vehicles/Alice/requests/confirm", body: map[string]string{"password": "pw1"}, wantCode: http.StatusBadRequest, wantMsg: "invalid request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := executeRequest(r, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantMsg, decodeError(t, w))
		})
	}

	t.Run("Malformed JSON", func(t *testing.T) {
		req, _ := http.NewRequest("POST", "/v1/vehicles/Alice/requests", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	assert.Equal(t, 0, repo.Saves())
}

func credentials(password string) request.CredentialsRequest {
	return request.CredentialsRequest{Password: password}
}
