package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"proeventos/internal/delivery/http/helpers"
	"proeventos/internal/domain"
)

// LotBatchRequest is the request body for PUT /api/Lotes/{eventID}: the full
// desired set of lots for the event. Lots carrying an ID are treated as kept,
// the rest as new; anything absent from the batch is removed.
type LotBatchRequest []LotRequest

// LotRequest is one lot inside a batch save.
type LotRequest struct {
	ID        string     `json:"id"`
	Name      string     `json:"nome"`
	Price     float64    `json:"preco"`
	StartDate *time.Time `json:"dataInicio"`
	EndDate   *time.Time `json:"dataFim"`
	Quantity  int        `json:"quantidade"`
}

// Validate implements Validator.
func (b LotBatchRequest) Validate() []string {
	var errs []string
	for _, lot := range b {
		if strings.TrimSpace(lot.Name) == "" {
			errs = append(errs, "nome is required for all lots")
		}
		if lot.Price < 0 {
			errs = append(errs, "preco must not be negative")
		}
		if lot.Quantity < 0 {
			errs = append(errs, "quantidade must not be negative")
		}
		if len(errs) > 0 {
			// the batch is all-or-nothing, reporting the first bad lot is enough
			break
		}
	}
	return errs
}

// LotListSuccessResponse is the success response envelope for lot list operations (200).
type LotListSuccessResponse struct {
	Data  []*domain.Lot     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// LotDeletedResponse is the payload confirming a lot deletion.
type LotDeletedResponse struct {
	Status string `json:"status"`
}

// LotDeleteSuccessResponse is the success response envelope for DELETE /api/Lotes/{eventID}/{lotID} (200).
type LotDeleteSuccessResponse struct {
	Data  LotDeletedResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// LotController handles ticket lot endpoints.
type LotController struct {
	Logger  *slog.Logger
	Service domain.LotService
}

// NewLotController creates a LotController with the given logger and service.
func NewLotController(logger *slog.Logger, svc domain.LotService) *LotController {
	return &LotController{
		Logger:  logger,
		Service: svc,
	}
}

func (c *LotController) internalError(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}

// ListByEvent godoc
// @Summary List an event's lots
// @Description Returns every lot of the event. An unknown event yields an empty list.
// @Tags lotes
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.LotListSuccessResponse "data contains the lots"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/Lotes/{eventID} [get]
func (c *LotController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	lots, err := c.Service.ListByEvent(r.Context(), r.PathValue("eventID"))
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, lots)
}

// SaveBatch godoc
// @Summary Save an event's lots
// @Description Replaces the event's full lot set with the submitted batch in one transaction. Lots omitted from the batch are removed.
// @Tags lotes
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param body body LotBatchRequest true "Full desired lot set"
// @Success 200 {object} controllers.LotListSuccessResponse "data contains the stored lots"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/Lotes/{eventID} [put]
func (c *LotController) SaveBatch(w http.ResponseWriter, r *http.Request) {
	var req LotBatchRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	eventID := r.PathValue("eventID")
	lots := make([]*domain.Lot, 0, len(req))
	for _, l := range req {
		lots = append(lots, &domain.Lot{
			ID:        l.ID,
			EventID:   eventID,
			Name:      l.Name,
			Price:     l.Price,
			StartDate: l.StartDate,
			EndDate:   l.EndDate,
			Quantity:  l.Quantity,
		})
	}
	stored, err := c.Service.SaveBatch(r.Context(), eventID, lots)
	if err != nil {
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stored)
}

// Delete godoc
// @Summary Delete one lot
// @Description Removes a single lot. A lot that does not exist under the event responds 204.
// @Tags lotes
// @Produce json
// @Param eventID path string true "Event ID"
// @Param lotID path string true "Lot ID"
// @Success 200 {object} controllers.LotDeleteSuccessResponse "data confirms the deletion"
// @Success 204 "lot missing under the event"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/Lotes/{eventID}/{lotID} [delete]
func (c *LotController) Delete(w http.ResponseWriter, r *http.Request) {
	err := c.Service.Delete(r.Context(), r.PathValue("eventID"), r.PathValue("lotID"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteNoContent(w)
			return
		}
		c.internalError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, LotDeletedResponse{Status: "deleted"})
}
