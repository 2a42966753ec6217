package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"proeventos/internal/delivery/http/helpers"
	"proeventos/internal/delivery/http/middleware"
	"proeventos/internal/domain"
)

// SpeakerRequest is the request body for creating and updating the caller's
// speaker profile.
type SpeakerRequest struct {
	MiniResume string `json:"miniCurriculo"`
}

// Validate implements Validator.
func (s SpeakerRequest) Validate() []string {
	return nil
}

// SpeakerListSuccessResponse is the success response envelope for GET /api/Palestrantes/all (200).
type SpeakerListSuccessResponse struct {
	Data  []*domain.Speaker `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SpeakerSuccessResponse is the success response envelope for single-speaker operations (200/201).
type SpeakerSuccessResponse struct {
	Data  *domain.Speaker   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SpeakerController handles speaker profile endpoints.
type SpeakerController struct {
	Logger  *slog.Logger
	Service domain.SpeakerService
}

// NewSpeakerController creates a SpeakerController with the given logger and
// service.
func NewSpeakerController(logger *slog.Logger, svc domain.SpeakerService) *SpeakerController {
	return &SpeakerController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *SpeakerController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}

// ListAll godoc
// @Summary List speakers
// @Description Returns the speaker directory, each entry joined with the owning user's public profile. Optionally filtered by name substring. Pagination metadata travels in the Pagination response header.
// @Tags palestrantes
// @Produce json
// @Security BearerAuth
// @Param term query string false "Name substring filter (case-insensitive)"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.SpeakerListSuccessResponse "data contains the page of speakers"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/Palestrantes/all [get]
func (c *SpeakerController) ListAll(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	term := r.URL.Query().Get("term")
	speakers, total, err := c.Service.ListAll(r.Context(), term, params)
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	helpers.WritePaginationHeader(w, helpers.NewPaginationMeta(params.Page, params.PageSize, total))
	helpers.WriteJSONSuccess(w, http.StatusOK, speakers)
}

// GetMine godoc
// @Summary Get my speaker profile
// @Description Returns the caller's own speaker record. A caller with no speaker profile responds 204.
// @Tags palestrantes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.SpeakerSuccessResponse "data contains the speaker"
// @Success 204 "caller has no speaker profile"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/Palestrantes [get]
func (c *SpeakerController) GetMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	speaker, err := c.Service.GetMine(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteNoContent(w)
			return
		}
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}

// CreateMine godoc
// @Summary Create my speaker profile
// @Description Creates a speaker record for the caller. If the caller already has one, the existing record is returned unchanged.
// @Tags palestrantes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SpeakerRequest true "Speaker data"
// @Success 201 {object} controllers.SpeakerSuccessResponse "data contains the speaker"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/Palestrantes [post]
func (c *SpeakerController) CreateMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	speaker, err := c.Service.CreateMine(r.Context(), userID, req.MiniResume)
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, speaker)
}

// UpdateMine godoc
// @Summary Update my speaker profile
// @Description Updates the caller's own speaker record. A caller with no speaker profile responds 204.
// @Tags palestrantes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SpeakerRequest true "Speaker data"
// @Success 200 {object} controllers.SpeakerSuccessResponse "data contains the speaker"
// @Success 204 "caller has no speaker profile"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/Palestrantes [put]
func (c *SpeakerController) UpdateMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	speaker, err := c.Service.UpdateMine(r.Context(), userID, req.MiniResume)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteNoContent(w)
			return
		}
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speaker)
}
