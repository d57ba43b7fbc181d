package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/seydina/distriops/internal/stock/domain"
	"github.com/seydina/distriops/internal/stock/usecase/command"
	"github.com/seydina/distriops/internal/stock/usecase/query"
	"github.com/seydina/distriops/pkg/logger"
)

// StockHandler handles HTTP requests for stock movements
type StockHandler struct {
	applyHandler *command.ApplyMovementHandler
	listHandler  *query.ListMovementsHandler

	movementCounter *prometheus.CounterVec
}

// NewStockHandler creates a new stock handler
func NewStockHandler(repo domain.StockRepository, publisher command.MovementPublisher) *StockHandler {
	movementCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_movements_total",
			Help: "Total number of stock movements applied, by type",
		},
		[]string{"type"},
	)
	prometheus.MustRegister(movementCounter)

	return &StockHandler{
		applyHandler:    command.NewApplyMovementHandler(repo, publisher),
		listHandler:     query.NewListMovementsHandler(repo),
		movementCounter: movementCounter,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateMovement handles POST /api/stock-movements
func (h *StockHandler) CreateMovement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VariantID uint   `json:"variant_id"`
		Type      string `json:"type"`
		Quantity  int    `json:"quantity"`
		Reason    string `json:"reason"`
		UserID    uint   `json:"user_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	result, err := h.applyHandler.Handle(r.Context(), command.ApplyMovementCommand{
		VariantID: req.VariantID,
		Type:      req.Type,
		Quantity:  req.Quantity,
		Reason:    req.Reason,
		UserID:    req.UserID,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to apply stock movement")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	h.movementCounter.WithLabelValues(req.Type).Inc()

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Stock movement applied successfully",
		Data:    result,
	})
}

// ListMovements handles GET /api/stock-movements
func (h *StockHandler) ListMovements(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	variantID, _ := strconv.ParseUint(r.URL.Query().Get("variant_id"), 10, 32)

	movements, err := h.listHandler.Handle(query.ListMovementsQuery{
		VariantID: uint(variantID),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list stock movements")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list movements"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: movements})
}

// RegisterRoutes registers all stock routes
func (h *StockHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/stock-movements", h.ListMovements).Methods("GET")
	router.HandleFunc("/api/stock-movements", h.CreateMovement).Methods("POST")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
