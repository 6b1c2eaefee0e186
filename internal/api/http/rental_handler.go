package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"toolrental-backend/internal/domain"
	"toolrental-backend/internal/logger"
	"toolrental-backend/internal/repository"
	"toolrental-backend/internal/service"
)

// RentalHandler adapts the reserve/checkout services to a thin JSON
// surface. All pricing and state decisions live in the services; handlers
// only translate requests and map errors to status codes.
type RentalHandler struct {
	checkout service.CheckoutService
	resolver service.RentalResolver
}

func NewRentalHandler(checkout service.CheckoutService, resolver service.RentalResolver) *RentalHandler {
	return &RentalHandler{checkout: checkout, resolver: resolver}
}

// RegisterRoutes attaches the rental endpoints to the router
func (h *RentalHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/reservations", h.HandleReserve).Methods(http.MethodPost)
	r.HandleFunc("/api/reservations/checkout", h.HandleCheckout).Methods(http.MethodPost)
}

type reserveRequest struct {
	ToolCode string `json:"tool_code"`
}

func (h *RentalHandler) HandleReserve(w http.ResponseWriter, r *http.Request) {
	var req reserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ToolCode == "" {
		writeError(w, http.StatusBadRequest, "tool_code is required")
		return
	}

	reservation, err := h.checkout.Reserve(r.Context(), domain.ToolCode(req.ToolCode))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, repository.ErrReservationFailed):
			writeError(w, http.StatusConflict, err.Error())
		default:
			logger.Error("Reserve failed", "code", req.ToolCode, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, reservation)
}

type checkoutRequest struct {
	ReservationID   string `json:"reservation_id"`
	ToolCode        string `json:"tool_code"`
	CheckoutDate    string `json:"checkout_date"` // yyyy-mm-dd
	RentalDays      int    `json:"rental_days"`
	DiscountPercent int    `json:"discount_percent"`
}

type checkoutResponse struct {
	Agreement *domain.RentalAgreement `json:"agreement"`
	Summary   string                  `json:"summary"`
}

func (h *RentalHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ReservationID == "" || req.ToolCode == "" {
		writeError(w, http.StatusBadRequest, "reservation_id and tool_code are required")
		return
	}
	checkoutDate, err := time.Parse("2006-01-02", req.CheckoutDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "checkout_date must be yyyy-mm-dd")
		return
	}

	// Rebuild the reservation from the resolver; its validity is decided
	// by row state at checkout time, not by anything held here.
	tool, err := h.resolver.GetTool(r.Context(), domain.ToolCode(req.ToolCode))
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown tool code")
		return
	}
	price, err := h.resolver.GetRentalPrice(r.Context(), tool.Type)
	if err != nil {
		writeError(w, http.StatusNotFound, "no rental price for tool type")
		return
	}
	reservation := &domain.Reservation{
		ID:          domain.ReservationID(req.ReservationID),
		Tool:        *tool,
		RentalPrice: *price,
	}

	duration := time.Duration(req.RentalDays) * 24 * time.Hour
	agreement, err := h.checkout.Checkout(r.Context(), reservation, checkoutDate, duration, req.DiscountPercent)
	if err != nil {
		var violations domain.ValidationErrors
		switch {
		case errors.As(err, &violations):
			writeViolations(w, violations)
		case errors.Is(err, repository.ErrCheckoutFailed):
			writeError(w, http.StatusConflict, err.Error())
		default:
			logger.Error("Checkout failed", "code", req.ToolCode, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, checkoutResponse{Agreement: agreement, Summary: agreement.String()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeViolations(w http.ResponseWriter, violations domain.ValidationErrors) {
	msgs := make([]string, len(violations))
	for i, v := range violations {
		msgs[i] = v.Error()
	}
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"violations": msgs})
}
