package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proeventos/internal/delivery/http/helpers"
	"proeventos/internal/delivery/http/middleware"
	"proeventos/internal/domain"
)

// fakeEventService implements domain.EventService for controller tests.
type fakeEventService struct {
	listEvents  []*domain.Event
	listTotal   int
	listErr     error
	lastTerm    string
	lastParams  domain.PaginationParams
	getEvent    *domain.Event
	getErr      error
	createEvent *domain.Event
	createErr   error
	updateEvent *domain.Event
	updateErr   error
	deleteErr   error
	deletedID   string
	imageEvent  *domain.Event
	imageErr    error
}

func (f *fakeEventService) List(ctx context.Context, ownerID, term string, params domain.PaginationParams) ([]*domain.Event, int, error) {
	f.lastTerm = term
	f.lastParams = params
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return f.listEvents, f.listTotal, nil
}

func (f *fakeEventService) GetByID(ctx context.Context, eventID, ownerID string) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getEvent, nil
}

func (f *fakeEventService) Create(ctx context.Context, ownerID string, input domain.EventInput) (*domain.Event, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createEvent, nil
}

func (f *fakeEventService) Update(ctx context.Context, eventID, ownerID string, input domain.EventInput) (*domain.Event, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return f.updateEvent, nil
}

func (f *fakeEventService) Delete(ctx context.Context, eventID, ownerID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletedID = eventID
	return nil
}

func (f *fakeEventService) SetImage(ctx context.Context, eventID, ownerID, fileName string, size int64, contents io.Reader) (*domain.Event, error) {
	if f.imageErr != nil {
		return nil, f.imageErr
	}
	return f.imageEvent, nil
}

func TestEventController_List(t *testing.T) {
	t.Run("writes pagination header", func(t *testing.T) {
		svc := &fakeEventService{
			listEvents: []*domain.Event{{ID: "e1", Theme: "GopherCon"}},
			listTotal:  41,
		}
		ctrl := NewEventController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodGet, "/api/Eventos?term=go&page=2&page_size=20", nil)
		req = req.WithContext(middleware.SetIdentity(req.Context(), "owner-1", "alice"))
		rec := httptest.NewRecorder()

		ctrl.List(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "go", svc.lastTerm)
		assert.Equal(t, 2, svc.lastParams.Page)

		var meta helpers.PaginationMeta
		require.NoError(t, json.Unmarshal([]byte(rec.Header().Get("Pagination")), &meta))
		assert.Equal(t, 41, meta.Total)
		assert.Equal(t, 3, meta.TotalPages)
		assert.Contains(t, rec.Header().Values("Access-Control-Expose-Headers"), "Pagination")
	})

	t.Run("no identity", func(t *testing.T) {
		ctrl := NewEventController(testLogger(), &fakeEventService{})
		req := httptest.NewRequest(http.MethodGet, "/api/Eventos", nil)
		rec := httptest.NewRecorder()

		ctrl.List(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestEventController_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &fakeEventService{getEvent: &domain.Event{ID: "e1", Theme: "GopherCon"}}
		ctrl := NewEventController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodGet, "/api/Eventos/e1", nil)
		req.SetPathValue("eventID", "e1")
		req = req.WithContext(middleware.SetIdentity(req.Context(), "owner-1", "alice"))
		rec := httptest.NewRecorder()

		ctrl.GetByID(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		data, _ := decodeEnvelope(t, rec.Body)
		var event domain.Event
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, "GopherCon", event.Theme)
	})

	t.Run("missing or foreign event responds 204", func(t *testing.T) {
		svc := &fakeEventService{getErr: domain.ErrNotFound}
		ctrl := NewEventController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodGet, "/api/Eventos/ghost", nil)
		req.SetPathValue("eventID", "ghost")
		req = req.WithContext(middleware.SetIdentity(req.Context(), "owner-1", "alice"))
		rec := httptest.NewRecorder()

		ctrl.GetByID(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.Bytes())
	})
}

func TestEventController_Create(t *testing.T) {
	t.Run("created responds 201", func(t *testing.T) {
		svc := &fakeEventService{createEvent: &domain.Event{ID: "e-new", Theme: "GopherCon"}}
		ctrl := NewEventController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodPost, "/api/Eventos",
			bytes.NewBufferString(`{"tema":"GopherCon","local":"SP","qtdPessoas":100}`))
		req = req.WithContext(middleware.SetIdentity(req.Context(), "owner-1", "alice"))
		rec := httptest.NewRecorder()

		ctrl.Create(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("missing theme is rejected", func(t *testing.T) {
		ctrl := NewEventController(testLogger(), &fakeEventService{})

		req := httptest.NewRequest(http.MethodPost, "/api/Eventos",
			bytes.NewBufferString(`{"local":"SP"}`))
		req = req.WithContext(middleware.SetIdentity(req.Context(), "owner-1", "alice"))
		rec := httptest.NewRecorder()

		ctrl.Create(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEventController_Delete(t *testing.T) {
	t.Run("confirms deletion", func(t *testing.T) {
		svc := &fakeEventService{}
		ctrl := NewEventController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodDelete, "/api/Eventos/e1", nil)
		req.SetPathValue("eventID", "e1")
		req = req.WithContext(middleware.SetIdentity(req.Context(), "owner-1", "alice"))
		rec := httptest.NewRecorder()

		ctrl.Delete(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "e1", svc.deletedID)
		assert.Contains(t, rec.Body.String(), `"deleted"`)
	})

	t.Run("missing or foreign event responds 204", func(t *testing.T) {
		svc := &fakeEventService{deleteErr: domain.ErrNotFound}
		ctrl := NewEventController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodDelete, "/api/Eventos/ghost", nil)
		req.SetPathValue("eventID", "ghost")
		req = req.WithContext(middleware.SetIdentity(req.Context(), "owner-1", "alice"))
		rec := httptest.NewRecorder()

		ctrl.Delete(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("internal error exposes the message", func(t *testing.T) {
		svc := &fakeEventService{deleteErr: errors.New("db down")}
		ctrl := NewEventController(testLogger(), svc)

		req := httptest.NewRequest(http.MethodDelete, "/api/Eventos/e1", nil)
		req.SetPathValue("eventID", "e1")
		req = req.WithContext(middleware.SetIdentity(req.Context(), "owner-1", "alice"))
		rec := httptest.NewRecorder()

		ctrl.Delete(rec, req)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		_, apiErr := decodeEnvelope(t, rec.Body)
		require.NotNil(t, apiErr)
		assert.Equal(t, "db down", apiErr.Message)
	})
}
