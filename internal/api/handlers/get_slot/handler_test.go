package get_slot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/QuickCourt-SlotService/internal/service/slots"
	"github.com/m04kA/QuickCourt-SlotService/internal/service/slots/models"
	"github.com/m04kA/QuickCourt-SlotService/pkg/logger"
)

type fakeService struct {
	got int64
	err error
}

func (f *fakeService) GetByID(_ context.Context, id int64) (*models.SlotResponse, error) {
	f.got = id
	if f.err != nil {
		return nil, f.err
	}
	return &models.SlotResponse{ID: id, CourtID: 7, Date: "2025-03-02", Status: "available", MaxBookings: 1, AvailableSpots: 1}, nil
}

func newRequest(slotID string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots/"+slotID, nil)
	return mux.SetURLVars(req, map[string]string{"slotId": slotID})
}

func TestHandler_Handle(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("12"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(12), svc.got)

	var resp models.SlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(12), resp.ID)
	assert.Equal(t, "2025-03-02", resp.Date)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		slotID string
		err    error
		want   int
	}{
		{name: "bad slot id", slotID: "abc", want: http.StatusBadRequest},
		{name: "zero slot id", slotID: "0", want: http.StatusBadRequest},
		{name: "not found", slotID: "12", err: slots.ErrSlotNotFound, want: http.StatusNotFound},
		{name: "internal", slotID: "12", err: slots.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeService{err: tt.err}, logger.NewNop())

			rec := httptest.NewRecorder()
			h.Handle(rec, newRequest(tt.slotID))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
