package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"proeventos/internal/delivery/http/helpers"
	"proeventos/internal/delivery/http/middleware"
	"proeventos/internal/domain"
)

// EventRequest is the request body for creating and updating events.
type EventRequest struct {
	Local       string     `json:"local"`
	EventDate   *time.Time `json:"dataEvento"`
	Theme       string     `json:"tema"`
	Capacity    int        `json:"qtdPessoas"`
	PhoneNumber string     `json:"telefone"`
	Email       string     `json:"email"`
}

// Validate implements Validator.
func (e EventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(e.Theme) == "" {
		errs = append(errs, "tema is required")
	}
	if strings.TrimSpace(e.Local) == "" {
		errs = append(errs, "local is required")
	}
	if e.Capacity < 0 {
		errs = append(errs, "qtdPessoas must not be negative")
	}
	return errs
}

func (e EventRequest) toInput() domain.EventInput {
	return domain.EventInput{
		Local:       e.Local,
		EventDate:   e.EventDate,
		Theme:       e.Theme,
		Capacity:    e.Capacity,
		PhoneNumber: e.PhoneNumber,
		Email:       e.Email,
	}
}

// EventListSuccessResponse is the success response envelope for GET /api/Eventos (200).
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventSuccessResponse is the success response envelope for single-event operations (200/201).
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventDeletedResponse is the payload confirming an event deletion.
type EventDeletedResponse struct {
	Status string `json:"status"`
}

// EventDeleteSuccessResponse is the success response envelope for DELETE /api/Eventos/{eventID} (200).
type EventDeleteSuccessResponse struct {
	Data  EventDeletedResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// EventController handles event CRUD and event image upload.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

// NewEventController creates an EventController with the given logger and
// service.
func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *EventController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}

// List godoc
// @Summary List my events
// @Description Returns the caller's events, optionally filtered by theme substring, one page at a time. Pagination metadata travels in the Pagination response header.
// @Tags eventos
// @Produce json
// @Security BearerAuth
// @Param term query string false "Theme substring filter (case-insensitive)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.EventListSuccessResponse "data contains the page of events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/Eventos [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	params := helpers.ParsePagination(r)
	term := r.URL.Query().Get("term")
	events, total, err := c.Service.List(r.Context(), ownerID, term, params)
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	helpers.WritePaginationHeader(w, helpers.NewPaginationMeta(params.Page, params.PageSize, total))
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetByID godoc
// @Summary Get one of my events
// @Description Returns the event with its lots and social links. An event that does not exist, or that belongs to someone else, responds 204.
// @Tags eventos
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the event"
// @Success 204 "event missing or not owned by the caller"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/Eventos/{eventID} [get]
func (c *EventController) GetByID(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := c.Service.GetByID(r.Context(), r.PathValue("eventID"), ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteNoContent(w)
			return
		}
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Create godoc
// @Summary Create an event
// @Description Creates an event owned by the caller.
// @Tags eventos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body EventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/Eventos [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.Create(r.Context(), ownerID, req.toInput())
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// Update godoc
// @Summary Update one of my events
// @Description Replaces the event's mutable fields. An event that does not exist, or that belongs to someone else, responds 204.
// @Tags eventos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body EventRequest true "Event data"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Success 204 "event missing or not owned by the caller"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/Eventos/{eventID} [put]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.Update(r.Context(), r.PathValue("eventID"), ownerID, req.toInput())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteNoContent(w)
			return
		}
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete one of my events
// @Description Removes the event; dependent lots and social links go with it. The stored image file is removed best-effort after the record. An event that does not exist, or that belongs to someone else, responds 204.
// @Tags eventos
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventDeleteSuccessResponse "data confirms the deletion"
// @Success 204 "event missing or not owned by the caller"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/Eventos/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Delete(r.Context(), r.PathValue("eventID"), ownerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteNoContent(w)
			return
		}
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventDeletedResponse{Status: "deleted"})
}

// UploadImage godoc
// @Summary Upload an event image
// @Description Replaces the event's image with the first uploaded file. An empty file leaves the current image in place. The old file is removed best-effort.
// @Tags eventos
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param file formData file true "Image file"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Success 204 "event missing or not owned by the caller"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/Eventos/upload-image/{eventID} [post]
func (c *EventController) UploadImage(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	file, header, err := helpers.FormImageFile(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	defer file.Close()

	event, err := c.Service.SetImage(r.Context(), r.PathValue("eventID"), ownerID, header.Filename, header.Size, file)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteNoContent(w)
			return
		}
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
