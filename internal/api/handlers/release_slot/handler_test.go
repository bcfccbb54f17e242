package release_slot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/QuickCourt-SlotService/internal/api/middleware"
	"github.com/m04kA/QuickCourt-SlotService/internal/domain"
	"github.com/m04kA/QuickCourt-SlotService/internal/service/slots"
	"github.com/m04kA/QuickCourt-SlotService/internal/service/slots/models"
	"github.com/m04kA/QuickCourt-SlotService/pkg/logger"
)

type fakeService struct {
	slotID int64
	got    *models.ReleaseSlotRequest
	err    error
}

func (f *fakeService) Release(_ context.Context, slotID int64, req *models.ReleaseSlotRequest) (*models.SlotResponse, error) {
	f.slotID = slotID
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.SlotResponse{ID: slotID, Status: "available", MaxBookings: 1, AvailableSpots: 1}, nil
}

func newRequest(slotID, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/"+slotID+"/release", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"slotId": slotID})
	return req.WithContext(middleware.WithUser(req.Context(), 9, domain.RoleUser))
}

func TestHandler_Handle(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("3", `{"bookingRef":"b-7"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), svc.slotID)
	assert.Equal(t, &models.ReleaseSlotRequest{UserID: 9, BookingRef: "b-7"}, svc.got)
	assert.Contains(t, rec.Body.String(), `"status":"available"`)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		slotID string
		body   string
		err    error
		want   int
	}{
		{name: "bad slot id", slotID: "0", body: `{"bookingRef":"b-7"}`, want: http.StatusBadRequest},
		{name: "unknown field", slotID: "3", body: `{"ref":"b-7"}`, want: http.StatusBadRequest},
		{name: "invalid input", slotID: "3", body: `{"bookingRef":""}`, err: slots.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "not found", slotID: "3", body: `{"bookingRef":"b-7"}`, err: slots.ErrSlotNotFound, want: http.StatusNotFound},
		{name: "wrong ref", slotID: "3", body: `{"bookingRef":"b-8"}`, err: slots.ErrSlotConflict, want: http.StatusConflict},
		{name: "internal", slotID: "3", body: `{"bookingRef":"b-7"}`, err: slots.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.slotID, tt.body))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
