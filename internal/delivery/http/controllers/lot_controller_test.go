package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proeventos/internal/domain"
)

// fakeLotService implements domain.LotService for controller tests.
type fakeLotService struct {
	lots      []*domain.Lot
	listErr   error
	saved     []*domain.Lot
	saveErr   error
	lastBatch []*domain.Lot
	deleteErr error
}

func (f *fakeLotService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Lot, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.lots, nil
}

func (f *fakeLotService) SaveBatch(ctx context.Context, eventID string, lots []*domain.Lot) ([]*domain.Lot, error) {
	f.lastBatch = lots
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	return f.saved, nil
}

func (f *fakeLotService) Delete(ctx context.Context, eventID, lotID string) error {
	return f.deleteErr
}

func TestLotController_ListByEvent(t *testing.T) {
	// No identity needed: the lot routes are mounted without auth.
	svc := &fakeLotService{lots: []*domain.Lot{{ID: "lot-1", Name: "Early bird"}}}
	ctrl := NewLotController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/api/Lotes/e1", nil)
	req.SetPathValue("eventID", "e1")
	rec := httptest.NewRecorder()

	ctrl.ListByEvent(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	data, _ := decodeEnvelope(t, rec.Body)
	var lots []*domain.Lot
	require.NoError(t, json.Unmarshal(data, &lots))
	require.Len(t, lots, 1)
}

func TestLotController_SaveBatch(t *testing.T) {
	t.Run("submits full set stamped with the event id", func(t *testing.T) {
		svc := &fakeLotService{saved: []*domain.Lot{{ID: "lot-1", EventID: "e1", Name: "Early bird"}}}
		ctrl := NewLotController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodPut, "/api/Lotes/e1",
			bytes.NewBufferString(`[{"nome":"Early bird","preco":90,"quantidade":100}]`))
		req.SetPathValue("eventID", "e1")
		rec := httptest.NewRecorder()

		ctrl.SaveBatch(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, svc.lastBatch, 1)
		assert.Equal(t, "e1", svc.lastBatch[0].EventID)
	})

	t.Run("negative price is rejected", func(t *testing.T) {
		ctrl := NewLotController(testLogger(), &fakeLotService{})

		req := httptest.NewRequest(http.MethodPut, "/api/Lotes/e1",
			bytes.NewBufferString(`[{"nome":"Bad","preco":-1}]`))
		req.SetPathValue("eventID", "e1")
		rec := httptest.NewRecorder()

		ctrl.SaveBatch(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLotController_Delete(t *testing.T) {
	t.Run("missing lot responds 204", func(t *testing.T) {
		svc := &fakeLotService{deleteErr: domain.ErrNotFound}
		ctrl := NewLotController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodDelete, "/api/Lotes/e1/ghost", nil)
		req.SetPathValue("eventID", "e1")
		req.SetPathValue("lotID", "ghost")
		rec := httptest.NewRecorder()

		ctrl.Delete(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("success confirms deletion", func(t *testing.T) {
		ctrl := NewLotController(testLogger(), &fakeLotService{})

		req := httptest.NewRequest(http.MethodDelete, "/api/Lotes/e1/lot-1", nil)
		req.SetPathValue("eventID", "e1")
		req.SetPathValue("lotID", "lot-1")
		rec := httptest.NewRecorder()

		ctrl.Delete(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"deleted"`)
	})
}
