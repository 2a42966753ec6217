package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"proeventos/internal/delivery/http/helpers"
	"proeventos/internal/delivery/http/middleware"
	"proeventos/internal/domain"
)

// SocialLinkBatchRequest is the request body for the social link save
// endpoints: the owner's full desired link set. Anything absent from the
// batch is removed.
type SocialLinkBatchRequest []SocialLinkRequest

// SocialLinkRequest is one link inside a batch save.
type SocialLinkRequest struct {
	ID   string `json:"id"`
	Name string `json:"nome"`
	URL  string `json:"url"`
}

// Validate implements Validator.
func (b SocialLinkBatchRequest) Validate() []string {
	var errs []string
	for _, link := range b {
		if strings.TrimSpace(link.Name) == "" {
			errs = append(errs, "nome is required for all links")
		}
		if strings.TrimSpace(link.URL) == "" {
			errs = append(errs, "url is required for all links")
		}
		if len(errs) > 0 {
			break
		}
	}
	return errs
}

func (b SocialLinkBatchRequest) toDomain() []*domain.SocialLink {
	links := make([]*domain.SocialLink, 0, len(b))
	for _, l := range b {
		links = append(links, &domain.SocialLink{
			ID:   l.ID,
			Name: l.Name,
			URL:  l.URL,
		})
	}
	return links
}

// SocialLinkListSuccessResponse is the success response envelope for social link list and save operations (200).
type SocialLinkListSuccessResponse struct {
	Data  []*domain.SocialLink `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// SocialLinkDeletedResponse is the payload confirming a link deletion.
type SocialLinkDeletedResponse struct {
	Status string `json:"status"`
}

// SocialLinkDeleteSuccessResponse is the success response envelope for the social link delete operations (200).
type SocialLinkDeleteSuccessResponse struct {
	Data  SocialLinkDeletedResponse `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// SocialLinkController handles social link endpoints for both owner kinds:
// the event branch and the speaker branch.
type SocialLinkController struct {
	Logger  *slog.Logger
	Service domain.SocialLinkService
}

// NewSocialLinkController creates a SocialLinkController with the given
// logger and service.
func NewSocialLinkController(logger *slog.Logger, svc domain.SocialLinkService) *SocialLinkController {
	return &SocialLinkController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *SocialLinkController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}

func (c *SocialLinkController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "acesso negado")
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteNoContent(w)
	default:
		c.internalError(w, r, err)
	}
}

// ListByEvent godoc
// @Summary List an event's social links
// @Description Returns the links of an event the caller owns. An event owned by someone else is rejected with 401.
// @Tags redesSociais
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.SocialLinkListSuccessResponse "data contains the links"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/RedesSociais/evento/{eventID} [get]
func (c *SocialLinkController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	links, err := c.Service.ListByEvent(r.Context(), r.PathValue("eventID"), callerID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, links)
}

// SaveByEvent godoc
// @Summary Save an event's social links
// @Description Replaces the full link set of an event the caller owns, in one transaction. An event owned by someone else is rejected with 401.
// @Tags redesSociais
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body SocialLinkBatchRequest true "Full desired link set"
// @Success 200 {object} controllers.SocialLinkListSuccessResponse "data contains the stored links"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/RedesSociais/evento/{eventID} [put]
func (c *SocialLinkController) SaveByEvent(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SocialLinkBatchRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	links, err := c.Service.SaveByEvent(r.Context(), r.PathValue("eventID"), callerID, req.toDomain())
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, links)
}

// DeleteByEvent godoc
// @Summary Delete one of an event's social links
// @Description Removes a single link from an event the caller owns. A link that does not exist under the event responds 204; an event owned by someone else is rejected with 401.
// @Tags redesSociais
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param linkID path string true "Link ID"
// @Success 200 {object} controllers.SocialLinkDeleteSuccessResponse "data confirms the deletion"
// @Success 204 "link missing under the event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/RedesSociais/evento/{eventID}/{linkID} [delete]
func (c *SocialLinkController) DeleteByEvent(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	err := c.Service.DeleteByEvent(r.Context(), r.PathValue("eventID"), callerID, r.PathValue("linkID"))
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SocialLinkDeletedResponse{Status: "deleted"})
}

// ListBySpeaker godoc
// @Summary List my speaker profile's social links
// @Description Returns the links of the caller's own speaker record. A caller with no speaker profile is rejected with 401.
// @Tags redesSociais
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.SocialLinkListSuccessResponse "data contains the links"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/RedesSociais/palestrante [get]
func (c *SocialLinkController) ListBySpeaker(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	links, err := c.Service.ListBySpeaker(r.Context(), callerID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, links)
}

// SaveBySpeaker godoc
// @Summary Save my speaker profile's social links
// @Description Replaces the full link set of the caller's own speaker record, in one transaction. A caller with no speaker profile is rejected with 401.
// @Tags redesSociais
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SocialLinkBatchRequest true "Full desired link set"
// @Success 200 {object} controllers.SocialLinkListSuccessResponse "data contains the stored links"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/RedesSociais/palestrante [put]
func (c *SocialLinkController) SaveBySpeaker(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req SocialLinkBatchRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	links, err := c.Service.SaveBySpeaker(r.Context(), callerID, req.toDomain())
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, links)
}

// DeleteBySpeaker godoc
// @Summary Delete one of my speaker profile's social links
// @Description Removes a single link from the caller's own speaker record. A link that does not exist under the profile responds 204; a caller with no speaker profile is rejected with 401.
// @Tags redesSociais
// @Produce json
// @Security BearerAuth
// @Param linkID path string true "Link ID"
// @Success 200 {object} controllers.SocialLinkDeleteSuccessResponse "data confirms the deletion"
// @Success 204 "link missing under the profile"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/RedesSociais/palestrante/{linkID} [delete]
func (c *SocialLinkController) DeleteBySpeaker(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	err := c.Service.DeleteBySpeaker(r.Context(), callerID, r.PathValue("linkID"))
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SocialLinkDeletedResponse{Status: "deleted"})
}
