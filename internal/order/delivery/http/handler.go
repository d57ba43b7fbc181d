package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/seydina/distriops/internal/order/domain"
	"github.com/seydina/distriops/internal/order/usecase/command"
	"github.com/seydina/distriops/internal/order/usecase/query"
	"github.com/seydina/distriops/pkg/logger"
)

// OrderHandler handles HTTP requests for orders and order items
type OrderHandler struct {
	createOrderHandler  *command.CreateOrderHandler
	updateItemHandler   *command.UpdateItemHandler
	deleteItemHandler   *command.DeleteItemHandler
	updateStatusHandler *command.UpdateStatusHandler
	getOrderHandler     *query.GetOrderHandler
	listOrdersHandler   *query.ListOrdersHandler

	ordersCreated prometheus.Counter
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	createOrderHandler *command.CreateOrderHandler,
	updateItemHandler *command.UpdateItemHandler,
	deleteItemHandler *command.DeleteItemHandler,
	updateStatusHandler *command.UpdateStatusHandler,
	getOrderHandler *query.GetOrderHandler,
	listOrdersHandler *query.ListOrdersHandler,
) *OrderHandler {
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})
	prometheus.MustRegister(ordersCreated)

	return &OrderHandler{
		createOrderHandler:  createOrderHandler,
		updateItemHandler:   updateItemHandler,
		deleteItemHandler:   deleteItemHandler,
		updateStatusHandler: updateStatusHandler,
		getOrderHandler:     getOrderHandler,
		listOrdersHandler:   listOrdersHandler,
		ordersCreated:       ordersCreated,
	}
}

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes registers order routes on the router
func (h *OrderHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/orders", h.CreateOrder).Methods("POST")
	router.HandleFunc("/api/orders", h.ListOrders).Methods("GET")
	router.HandleFunc("/api/orders/{id}", h.GetOrder).Methods("GET")
	router.HandleFunc("/api/orders/{id}/status", h.UpdateStatus).Methods("PATCH")
	router.HandleFunc("/api/order-items/{id}", h.UpdateItem).Methods("PATCH")
	router.HandleFunc("/api/order-items/{id}", h.DeleteItem).Methods("DELETE")
}

type createOrderRequest struct {
	PointOfSale string `json:"point_of_sale"`
	Phone       string `json:"phone"`
	Items       []struct {
		VariantID uint    `json:"variant_id"`
		Quantity  int     `json:"quantity"`
		Price     float64 `json:"price"`
	} `json:"items"`
}

// CreateOrder creates an order with its items, debiting variant stock
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	cmd := command.CreateOrderCommand{
		PointOfSale: req.PointOfSale,
		Phone:       req.Phone,
	}
	for _, it := range req.Items {
		cmd.Items = append(cmd.Items, command.OrderItemInput{
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	order, err := h.createOrderHandler.Handle(cmd)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("failed to create order")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	h.ordersCreated.Inc()
	respondJSON(w, http.StatusCreated, Response{Success: true, Message: "order created", Data: order})
}

// ListOrders lists orders, optionally filtered by status
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	orders, err := h.listOrdersHandler.Handle(query.ListOrdersQuery{
		Status: r.URL.Query().Get("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("failed to list orders")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: orders})
}

// GetOrder returns one order with its items
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid order id"})
		return
	}

	order, err := h.getOrderHandler.Handle(query.GetOrderQuery{ID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: order})
}

// UpdateStatus updates an order's status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid order id"})
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	if err := h.updateStatusHandler.Handle(command.UpdateStatusCommand{OrderID: id, Status: req.Status}); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "status updated"})
}

// UpdateItem changes an order item's quantity, adjusting variant stock
func (h *OrderHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid item id"})
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid request body"})
		return
	}

	item, err := h.updateItemHandler.Handle(command.UpdateItemCommand{ItemID: id, Quantity: req.Quantity})
	if err != nil {
		var allocErr *domain.AllocationError
		var lockedErr *domain.AllocatedQuantityError
		status := http.StatusBadRequest
		if errors.As(err, &allocErr) || errors.As(err, &lockedErr) {
			status = http.StatusConflict
		}
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "item updated", Data: item})
}

// DeleteItem removes an order item, restoring variant stock
func (h *OrderHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "invalid item id"})
		return
	}

	if err := h.deleteItemHandler.Handle(command.DeleteItemCommand{ItemID: id}); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "item deleted"})
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
