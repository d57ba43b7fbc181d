package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/seydina/distriops/internal/analytics/domain"
)

// AnalyticsHandler serves the daily report read endpoints
type AnalyticsHandler struct {
	repo domain.AnalyticsRepository
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(repo domain.AnalyticsRepository) *AnalyticsHandler {
	return &AnalyticsHandler{repo: repo}
}

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes registers report routes on the router
func (h *AnalyticsHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/reports/sales", h.SalesReports).Methods("GET")
	router.HandleFunc("/api/reports/stock", h.StockReports).Methods("GET")
}

// SalesReports lists daily sales reports, filtered by date or vendor
func (h *AnalyticsHandler) SalesReports(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	vendorID, _ := strconv.Atoi(r.URL.Query().Get("vendor_id"))

	var (
		reports []domain.DailySalesReport
		err     error
	)
	if vendorID != 0 {
		reports, err = h.repo.FindSalesReportsByVendor(uint(vendorID), limit, offset)
	} else {
		reports, err = h.repo.FindSalesReports(r.URL.Query().Get("date"), limit, offset)
	}
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: reports})
}

// StockReports lists daily stock reports, optionally for one date
func (h *AnalyticsHandler) StockReports(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	reports, err := h.repo.FindStockReports(r.URL.Query().Get("date"), limit, offset)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: reports})
}

func pagination(r *http.Request) (limit, offset int) {
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	if limit == 0 {
		limit = 30
	}
	if limit > 100 {
		limit = 100
	}
	return limit, offset
}

func respondJSON(w http.ResponseWriter, status int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
