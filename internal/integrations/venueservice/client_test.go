package venueservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/QuickCourt-SlotService/pkg/logger"
	"github.com/m04kA/QuickCourt-SlotService/pkg/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/", time.Second, logger.NewNop())
}

func TestClient_GetActiveCourt(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/courts/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":7,"venueId":3,"name":"Court A","sport":"badminton","openTime":"06:00","closeTime":"22:00","slotDurationMinutes":60,"pricePerSlot":250,"maxBookings":1,"isActive":true}`))
	})

	court, err := client.GetActiveCourt(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), court.VenueID)
	assert.Equal(t, types.TimeString("06:00"), court.OpenTime)
	assert.Equal(t, types.TimeString("22:00"), court.CloseTime)
	assert.Equal(t, 60, court.SlotDurationMinutes)
	assert.Equal(t, 250.0, court.PricePerSlot)
}

func TestClient_GetActiveCourt_Inactive(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":7,"openTime":"06:00","closeTime":"22:00","slotDurationMinutes":60,"isActive":false}`))
	})

	_, err := client.GetActiveCourt(context.Background(), 7)
	require.ErrorIs(t, err, ErrCourtInactive)
}

func TestClient_GetCourt_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"code":404,"message":"not found"}`, wantErr: ErrCourtNotFound},
		{name: "bad request", status: http.StatusBadRequest, body: `{}`, wantErr: ErrInvalidResponse},
		{name: "server error", status: http.StatusInternalServerError, body: `boom`, wantErr: ErrInvalidResponse},
		{name: "broken json", status: http.StatusOK, body: `{`, wantErr: ErrInvalidResponse},
		{name: "bad hours", status: http.StatusOK, body: `{"id":7,"openTime":"6am","closeTime":"22:00"}`, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.GetCourt(context.Background(), 7)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_GetCourt_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, logger.NewNop())

	_, err := client.GetCourt(context.Background(), 7)
	require.ErrorIs(t, err, ErrInternal)
}
