package http

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/seydina/distriops/internal/catalog/domain"
	"github.com/seydina/distriops/internal/catalog/usecase/command"
	"github.com/seydina/distriops/internal/catalog/usecase/query"
	"github.com/seydina/distriops/pkg/logger"
)

// CatalogHandler handles HTTP requests for products and variants
type CatalogHandler struct {
	createProductHandler *command.CreateProductHandler
	updateProductHandler *command.UpdateProductHandler
	deleteProductHandler *command.DeleteProductHandler
	createVariantHandler *command.CreateVariantHandler
	updateVariantHandler *command.UpdateVariantHandler

	getProductHandler   *query.GetProductHandler
	listProductsHandler *query.ListProductsHandler
	statsHandler        *query.GetStatsHandler
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(repo domain.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{
		createProductHandler: command.NewCreateProductHandler(repo),
		updateProductHandler: command.NewUpdateProductHandler(repo),
		deleteProductHandler: command.NewDeleteProductHandler(repo),
		createVariantHandler: command.NewCreateVariantHandler(repo),
		updateVariantHandler: command.NewUpdateVariantHandler(repo),
		getProductHandler:    query.NewGetProductHandler(repo),
		listProductsHandler:  query.NewListProductsHandler(repo),
		statsHandler:         query.NewGetStatsHandler(repo),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// CreateProduct handles POST /api/products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Category    string `json:"category"`
		SKU         string `json:"sku"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	product, err := h.createProductHandler.Handle(command.CreateProductCommand{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		SKU:         req.SKU,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create product")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// GetProduct handles GET /api/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	product, err := h.getProductHandler.Handle(query.GetProductQuery{ID: id})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Product not found"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	category := r.URL.Query().Get("category")

	products, err := h.listProductsHandler.Handle(query.ListProductsQuery{
		Category: category,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list products")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list products"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// UpdateProduct handles PATCH /api/products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Category    string `json:"category"`
		IsActive    *bool  `json:"is_active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	product, err := h.updateProductHandler.Handle(command.UpdateProductCommand{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		IsActive:    req.IsActive,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /api/products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	if err := h.deleteProductHandler.Handle(command.DeleteProductCommand{ID: id}); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Message: "Product deleted successfully"})
}

// CreateVariant handles POST /api/products/{id}/variants
func (h *CatalogHandler) CreateVariant(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid product ID"})
		return
	}

	var req struct {
		Name         string  `json:"name"`
		CurrentStock int     `json:"current_stock"`
		MinStock     int     `json:"min_stock"`
		MaxStock     int     `json:"max_stock"`
		Price        float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	variant, err := h.createVariantHandler.Handle(command.CreateVariantCommand{
		ProductID:    productID,
		Name:         req.Name,
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
		MaxStock:     req.MaxStock,
		Price:        req.Price,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to create variant")
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Variant created successfully",
		Data:    variant,
	})
}

// UpdateVariant handles PATCH /api/variants/{id}
func (h *CatalogHandler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid variant ID"})
		return
	}

	var req struct {
		Name     string   `json:"name"`
		MinStock *int     `json:"min_stock"`
		MaxStock *int     `json:"max_stock"`
		Price    *float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	variant, err := h.updateVariantHandler.Handle(command.UpdateVariantCommand{
		ID:       id,
		Name:     req.Name,
		MinStock: req.MinStock,
		MaxStock: req.MaxStock,
		Price:    req.Price,
	})
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Variant updated successfully",
		Data:    variant,
	})
}

// GetStats handles GET /api/products/stats
func (h *CatalogHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(query.GetStatsQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to get catalog stats")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to get stats"})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", h.ListProducts).Methods("GET")
	router.HandleFunc("/api/products", h.CreateProduct).Methods("POST")
	router.HandleFunc("/api/products/stats", h.GetStats).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.GetProduct).Methods("GET")
	router.HandleFunc("/api/products/{id}", h.UpdateProduct).Methods("PATCH")
	router.HandleFunc("/api/products/{id}", h.DeleteProduct).Methods("DELETE")
	router.HandleFunc("/api/products/{id}/variants", h.CreateVariant).Methods("POST")
	router.HandleFunc("/api/variants/{id}", h.UpdateVariant).Methods("PATCH")
}

// RegisterHealthCheck registers health check endpoint
func (h *CatalogHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "Database unavailable"})
			return
		}
		respondJSON(w, http.StatusOK, Response{Success: true, Message: "Service is healthy"})
	}).Methods("GET")
}

func pathID(r *http.Request, key string) (uint, error) {
	raw := mux.Vars(r)[key]
	id, err := strconv.ParseUint(raw, 10, 32)
	return uint(id), err
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
