package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/domainshare-backend/internal/domain"
	"github.com/heartmarshall/domainshare-backend/internal/service/approval"
)

type approvalService interface {
	ListPending(ctx context.Context, input approval.ListPendingInput) (*approval.PendingPage, error)
	PendingCount(ctx context.Context, domainID string) (int, error)
	SubmitDecision(ctx context.Context, input approval.DecisionInput) (*domain.WorkflowInstance, error)
}

// ApprovalHandler serves the reviewer-facing approval endpoints.
type ApprovalHandler struct {
	svc approvalService
	log *slog.Logger
}

func NewApprovalHandler(svc approvalService, logger *slog.Logger) *ApprovalHandler {
	return &ApprovalHandler{svc: svc, log: logger.With("handler", "approval")}
}

// Pending handles GET /api/v1/approvals/pending?domainId=&limit=&cursor=.
func (h *ApprovalHandler) Pending(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	q := r.URL.Query()
	page, err := h.svc.ListPending(r.Context(), approval.ListPendingInput{
		DomainID: q.Get("domainId"),
		Limit:    limit,
		Cursor:   q.Get("cursor"),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := pendingPageResponse{
		Items:      make([]approvalResponse, len(page.Items)),
		NextCursor: page.NextCursor,
	}
	for i, req := range page.Items {
		resp.Items[i] = toApprovalResponse(req)
	}
	writeJSON(w, http.StatusOK, resp)
}

// PendingCount handles GET /api/v1/approvals/pending-count?domainId=.
// Without domainId the count covers every domain the caller administers.
func (h *ApprovalHandler) PendingCount(w http.ResponseWriter, r *http.Request) {
	domainID := r.URL.Query().Get("domainId")
	n, err := h.svc.PendingCount(r.Context(), domainID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pendingCountResponse{DomainID: domainID, PendingCount: n})
}

// Decide handles POST /api/v1/approvals/decision.
func (h *ApprovalHandler) Decide(w http.ResponseWriter, r *http.Request) {
	var body decisionBody
	if err := decodeJSON(w, r, &body); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	inst, err := h.svc.SubmitDecision(r.Context(), approval.DecisionInput{
		OwnerDomainID: body.OwnerDomainID,
		RequestID:     body.RequestID,
		Action:        domain.DecisionAction(body.ActionType),
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toInstanceResponse(inst))
}
