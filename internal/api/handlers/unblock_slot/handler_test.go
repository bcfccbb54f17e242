package unblock_slot

import (
	"context"
	"net/http"
	"net/http/httptest"
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
	userID int64
	err    error
}

func (f *fakeService) Unblock(_ context.Context, slotID int64, userID int64) (*models.SlotResponse, error) {
	f.slotID = slotID
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.SlotResponse{ID: slotID, Status: "available"}, nil
}

func newRequest(slotID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/"+slotID+"/unblock", nil)
	req = mux.SetURLVars(req, map[string]string{"slotId": slotID})
	return req.WithContext(middleware.WithUser(req.Context(), 5, domain.RoleAdmin))
}

func TestHandler_Handle(t *testing.T) {
	svc := &fakeService{}
	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, newRequest("4"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(4), svc.slotID)
	assert.Equal(t, int64(5), svc.userID)
	assert.Contains(t, rec.Body.String(), `"status":"available"`)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		slotID string
		err    error
		want   int
	}{
		{name: "bad slot id", slotID: "x", want: http.StatusBadRequest},
		{name: "not found", slotID: "4", err: slots.ErrSlotNotFound, want: http.StatusNotFound},
		{name: "not blocked", slotID: "4", err: slots.ErrSlotConflict, want: http.StatusConflict},
		{name: "invalid input", slotID: "4", err: slots.ErrInvalidInput, want: http.StatusBadRequest},
		{name: "internal", slotID: "4", err: slots.ErrInternal, want: http.StatusInternalServerError},
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
