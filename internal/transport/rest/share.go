package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/domainshare-backend/internal/domain"
	"github.com/heartmarshall/domainshare-backend/internal/service/approval"
)

type shareService interface {
	SubmitShareRequest(ctx context.Context, input approval.ShareRequestInput) (*domain.WorkflowInstance, error)
	GetInstance(ctx context.Context, id uuid.UUID) (*domain.WorkflowInstance, error)
	ListShares(ctx context.Context, input approval.ListSharesInput) ([]domain.ShareMapping, int, error)
}

// ShareHandler serves share request and share history endpoints.
type ShareHandler struct {
	svc shareService
	log *slog.Logger
}

func NewShareHandler(svc shareService, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{svc: svc, log: logger.With("handler", "share")}
}

// Create handles POST /api/v1/share-requests.
// The instance may already be terminal when the response is written.
func (h *ShareHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body shareRequestBody
	if err := decodeJSON(w, r, &body); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	input := approval.ShareRequestInput{
		OwnerDomainID:  body.OwnerDomainID,
		TargetDomainID: body.TargetDomainID,
		Tags:           toTags(body.Tags),
	}
	if body.Resource != nil {
		input.Resource = &domain.ResourceSelector{Database: body.Resource.Database, Table: body.Resource.Table}
	}

	inst, err := h.svc.SubmitShareRequest(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, toInstanceResponse(inst))
}

// Get handles GET /api/v1/share-requests/{instanceId}.
func (h *ShareHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "instanceId"))
	if err != nil {
		handleError(h.log, w, r, domain.NewValidationError("instanceId", "must be a UUID"))
		return
	}

	inst, err := h.svc.GetInstance(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toInstanceResponse(inst))
}

// List handles GET /api/v1/shares?domainId=&limit=&offset=.
func (h *ShareHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	items, total, err := h.svc.ListShares(r.Context(), approval.ListSharesInput{
		DomainID: r.URL.Query().Get("domainId"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := sharesPageResponse{Items: make([]shareMappingResponse, len(items)), Total: total}
	for i, m := range items {
		resp.Items[i] = toShareMappingResponse(m)
	}
	writeJSON(w, http.StatusOK, resp)
}
