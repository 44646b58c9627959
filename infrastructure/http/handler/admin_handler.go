package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/clubly/clubly/application/port/inbound"
	"github.com/clubly/clubly/infrastructure/http/middleware"
	"github.com/clubly/clubly/infrastructure/http/response"
	"github.com/clubly/clubly/infrastructure/http/validator"
)

// AdminHandler exposes the privileged call sites. Routes behind it run
// under RequireAdmin, so an ActorContext is always on the request.
type AdminHandler struct {
	adminUseCase inbound.AdminUseCase
}

func NewAdminHandler(adminUseCase inbound.AdminUseCase) *AdminHandler {
	return &AdminHandler{
		adminUseCase: adminUseCase,
	}
}

type grantCreditRequest struct {
	CreditCode          string            `json:"credit_code"`
	SourceTransactionID string            `json:"source_transaction_id"`
	Reason              string            `json:"reason"`
	Metadata            map[string]string `json:"metadata,omitempty"`
}

func (h *AdminHandler) GrantCredit(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor context")
		return
	}

	var req grantCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !validator.ValidateRequired(req.Reason) {
		response.UnprocessableEntity(w, "Reason is required")
		return
	}

	res, err := h.adminUseCase.GrantCredit(r.Context(), actor, inbound.GrantCreditRequest{
		UserID:              mux.Vars(r)["id"],
		CreditCode:          req.CreditCode,
		SourceTransactionID: req.SourceTransactionID,
		Reason:              req.Reason,
		Metadata:            req.Metadata,
	})
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Credit granted", res)
}

type extendSubscriptionRequest struct {
	Days     int               `json:"days"`
	Reason   string            `json:"reason"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (h *AdminHandler) ExtendSubscription(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor context")
		return
	}

	var req extendSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !validator.ValidateRequired(req.Reason) {
		response.UnprocessableEntity(w, "Reason is required")
		return
	}

	res, err := h.adminUseCase.ExtendSubscription(r.Context(), actor, inbound.ExtendSubscriptionRequest{
		UserID:   mux.Vars(r)["id"],
		Days:     req.Days,
		Reason:   req.Reason,
		Metadata: req.Metadata,
	})
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Subscription extended", res)
}

type setAccountStatusRequest struct {
	Status   string            `json:"status"`
	Reason   string            `json:"reason"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

func (h *AdminHandler) SetAccountStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor context")
		return
	}

	var req setAccountStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if !validator.ValidateRequired(req.Reason) {
		response.UnprocessableEntity(w, "Reason is required")
		return
	}

	res, err := h.adminUseCase.SetAccountStatus(r.Context(), actor, inbound.SetAccountStatusRequest{
		UserID:   mux.Vars(r)["id"],
		Status:   req.Status,
		Reason:   req.Reason,
		Metadata: req.Metadata,
	})
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Account status updated", res)
}

func (h *AdminHandler) ListAuditTrail(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.UnprocessableEntity(w, "limit must be an integer")
			return
		}
		limit = parsed
	}

	records, err := h.adminUseCase.ListAuditTrail(r.Context(), inbound.ListAuditTrailRequest{
		TargetType: r.URL.Query().Get("target_type"),
		TargetID:   r.URL.Query().Get("target_id"),
		ActorID:    r.URL.Query().Get("actor_id"),
		Limit:      limit,
	})
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Audit trail", records)
}
