package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/seydina/distriops/internal/vendors/domain"
	"github.com/seydina/distriops/internal/vendors/usecase/command"
	"github.com/seydina/distriops/internal/vendors/usecase/query"
	"github.com/seydina/distriops/pkg/logger"
)

// VendorHandler handles HTTP requests for vendors, activities and sales
type VendorHandler struct {
	registerHandler       *command.RegisterVendorHandler
	loginHandler          *command.LoginVendorHandler
	createActivityHandler *command.CreateActivityHandler
	createSaleHandler     *command.CreateSaleHandler
	getActivityHandler    *query.GetActivityHandler
	listActivitiesHandler *query.ListActivitiesHandler
	listSalesHandler      *query.ListSalesHandler
	listVendorsHandler    *query.ListVendorsHandler
	vendorStatsHandler    *query.GetVendorStatsHandler

	salesTotal     *prometheus.CounterVec
	salesRejected  prometheus.Counter
	salesQuantity  prometheus.Counter
}

// NewVendorHandler creates a new vendor handler
func NewVendorHandler(
	registerHandler *command.RegisterVendorHandler,
	loginHandler *command.LoginVendorHandler,
	createActivityHandler *command.CreateActivityHandler,
	createSaleHandler *command.CreateSaleHandler,
	getActivityHandler *query.GetActivityHandler,
	listActivitiesHandler *query.ListActivitiesHandler,
	listSalesHandler *query.ListSalesHandler,
	listVendorsHandler *query.ListVendorsHandler,
	vendorStatsHandler *query.GetVendorStatsHandler,
) *VendorHandler {
	salesTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_total",
		Help: "Total number of sales recorded, by outcome",
	}, []string{"outcome"})
	salesRejected := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sale_rejections_total",
		Help: "Total number of sales rejected for exceeding remaining stock",
	})
	salesQuantity := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sales_quantity_total",
		Help: "Total units sold",
	})
	prometheus.MustRegister(salesTotal, salesRejected, salesQuantity)

	return &VendorHandler{
		registerHandler:       registerHandler,
		loginHandler:          loginHandler,
		createActivityHandler: createActivityHandler,
		createSaleHandler:     createSaleHandler,
		getActivityHandler:    getActivityHandler,
		listActivitiesHandler: listActivitiesHandler,
		listSalesHandler:      listSalesHandler,
		listVendorsHandler:    listVendorsHandler,
		vendorStatsHandler:    vendorStatsHandler,
		salesTotal:            salesTotal,
		salesRejected:         salesRejected,
		salesQuantity:         salesQuantity,
	}
}

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes registers vendor routes on the router. Everything past
// login requires a valid token.
func (h *VendorHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/register", h.Register).Methods("POST")
	router.HandleFunc("/auth/login", h.Login).Methods("POST")

	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(AuthMiddleware)
	protected.HandleFunc("/vendors", h.ListVendors).Methods("GET")
	protected.HandleFunc("/vendors/{id}/stats", h.VendorStats).Methods("GET")
	protected.HandleFunc("/activities", h.CreateActivity).Methods("POST")
	protected.HandleFunc("/activities", h.ListActivities).Methods("GET")
	protected.HandleFunc("/activities/{id}", h.GetActivity).Methods("GET")
	protected.HandleFunc("/sales", h.CreateSale).Methods("POST")
	protected.HandleFunc("/sales", h.ListSales).Methods("GET")
}

// Register creates a vendor account
func (h *VendorHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
		Phone    string `json:"phone"`
		Zone     string `json:"zone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	vendor, err := h.registerHandler.Handle(command.RegisterVendorCommand{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		Zone:     req.Zone,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "vendor registered", Data: vendor})
}

// Login authenticates a vendor and returns a token
func (h *VendorHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	result, err := h.loginHandler.Handle(command.LoginVendorCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "login successful", Data: result})
}

// ListVendors lists vendor accounts
func (h *VendorHandler) ListVendors(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	vendors, err := h.listVendorsHandler.Handle(query.ListVendorsQuery{Limit: limit, Offset: offset})
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: vendors})
}

// VendorStats returns one vendor's assignment and sales totals
func (h *VendorHandler) VendorStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid vendor id"})
		return
	}

	stats, err := h.vendorStatsHandler.Handle(query.GetVendorStatsQuery{VendorID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}

// CreateActivity records a vendor activity. A stock_replenishment
// linked to an order distributes the assigned quantity across the
// order's items before returning.
func (h *VendorHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VendorID  uint    `json:"vendor_id"`
		Type      string  `json:"type"`
		Zone      string  `json:"zone"`
		Notes     string  `json:"notes"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		OrderID   uint    `json:"order_id"`
		VariantID uint    `json:"variant_id"`
		Quantity  int     `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	if req.VendorID == 0 {
		if claims, ok := ClaimsFromContext(r.Context()); ok {
			req.VendorID = claims.VendorID
		}
	}

	activity, err := h.createActivityHandler.Handle(r.Context(), command.CreateActivityCommand{
		VendorID:  req.VendorID,
		Type:      req.Type,
		Zone:      req.Zone,
		Notes:     req.Notes,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		OrderID:   req.OrderID,
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("failed to create activity")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "activity created", Data: activity})
}

// ListActivities lists activities, optionally filtered by vendor
func (h *VendorHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	vendorID, _ := strconv.Atoi(r.URL.Query().Get("vendor_id"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	activities, err := h.listActivitiesHandler.Handle(query.ListActivitiesQuery{
		VendorID: uint(vendorID),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: activities})
}

// GetActivity returns one activity
func (h *VendorHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid activity id"})
		return
	}

	activity, err := h.getActivityHandler.Handle(r.Context(), query.GetActivityQuery{ID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: activity})
}

// CreateSale records a sale against an activity's remaining stock
func (h *VendorHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActivityID  uint    `json:"activity_id"`
		VariantID   uint    `json:"variant_id"`
		Quantity    int     `json:"quantity"`
		UnitPrice   float64 `json:"unit_price"`
		TotalAmount float64 `json:"total_amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	result, err := h.createSaleHandler.Handle(r.Context(), command.CreateSaleCommand{
		ActivityID:  req.ActivityID,
		VariantID:   req.VariantID,
		Quantity:    req.Quantity,
		UnitPrice:   req.UnitPrice,
		TotalAmount: req.TotalAmount,
	})
	if err != nil {
		var sellErr *domain.SellError
		if errors.As(err, &sellErr) {
			h.salesTotal.WithLabelValues("rejected").Inc()
			h.salesRejected.Inc()
			respondJSON(w, http.StatusConflict, Response{Success: false, Error: err.Error()})
			return
		}
		h.salesTotal.WithLabelValues("error").Inc()
		logger.Error(r.Context()).Err(err).Msg("failed to create sale")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	h.salesTotal.WithLabelValues("completed").Inc()
	h.salesQuantity.Add(float64(result.Sale.Quantity))
	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "sale recorded", Data: result})
}

// ListSales lists sales, optionally filtered by vendor or activity
func (h *VendorHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	vendorID, _ := strconv.Atoi(r.URL.Query().Get("vendor_id"))
	activityID, _ := strconv.Atoi(r.URL.Query().Get("activity_id"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	sales, err := h.listSalesHandler.Handle(query.ListSalesQuery{
		VendorID:   uint(vendorID),
		ActivityID: uint(activityID),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: sales})
}

func pathID(r *http.Request, key string) (uint, error) {
	raw := mux.Vars(r)[key]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func respondJSON(w http.ResponseWriter, status int, payload Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
