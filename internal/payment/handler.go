// AngelaMos | 2026
// handler.go

package payment

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/makao-dev/makao-api/internal/core"
	"github.com/makao-dev/makao-api/internal/middleware"
	"github.com/makao-dev/makao-api/internal/shape"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payments", func(r chi.Router) {
		r.Get("/", h.ListMine)
		r.Post("/", h.Submit)
		r.Get("/{paymentID}/invoice", h.Invoice)
	})
	r.Route("/admin/payments", func(r chi.Router) {
		r.Get("/", h.ListAll)
		r.Post("/verify", h.Verify)
		r.Post("/reject", h.Reject)
	})
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	rows, err := h.service.ListMine(r.Context(), caller, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, map[string]any{"payments": toPaymentResponses(rows)})
}

func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	rows, err := h.service.ListAll(r.Context(), caller, limit)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, map[string]any{"payments": toPaymentResponses(rows)})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	var req SubmitPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	p, err := h.service.Submit(r.Context(), caller, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.SuccessCreated(w, map[string]any{
		"payment_id":   p.ID,
		"lease_id":     shape.ID(p.LeaseID),
		"amount":       p.Amount,
		"status":       p.Status,
		"payment_date": p.PaymentDate.Format(time.RFC3339),
	})
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	var req VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if req.PaymentID == "" {
		core.BadRequest(w, "Payment ID is required")
		return
	}

	p, err := h.service.Verify(r.Context(), caller, req.PaymentID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Success(w, ToVerificationResponse(p))
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())

	var req RejectPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if req.PaymentID == "" {
		core.BadRequest(w, "Payment ID is required")
		return
	}

	p, err := h.service.Reject(r.Context(), caller, req.PaymentID, req.Reason)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Success(w, ToVerificationResponse(p))
}

func (h *Handler) Invoice(w http.ResponseWriter, r *http.Request) {
	caller := middleware.CallerFromContext(r.Context())
	paymentID := chi.URLParam(r, "paymentID")

	row, err := h.service.Invoice(r.Context(), caller, paymentID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, ToInvoiceResponse(row))
}

func toPaymentResponses(rows []PaymentRow) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToPaymentResponse(&rows[i]))
	}
	return out
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrUnauthenticated),
		errors.Is(err, core.ErrForbidden):
		middleware.WriteAuthzError(w, err)
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "payment")
	case core.IsAppError(err):
		core.JSONError(w, err)
	default:
		core.InternalServerError(w, err)
	}
}
