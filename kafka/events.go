package kafka

import "time"

// SaleCompletedEvent is emitted after a sale and its activity debit commit.
type SaleCompletedEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	SaleID      uint      `json:"sale_id"`
	VendorID    uint      `json:"vendor_id"`
	ActivityID  uint      `json:"activity_id"`
	VariantID   uint      `json:"variant_id"`
	Quantity    int       `json:"quantity"`
	TotalAmount float64   `json:"total_amount"`
	Timestamp   time.Time `json:"timestamp"`
}

// StockMovementAppliedEvent is emitted after a stock movement commits.
type StockMovementAppliedEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	MovementID    uint      `json:"movement_id"`
	VariantID     uint      `json:"variant_id"`
	MovementType  string    `json:"movement_type"`
	Quantity      int       `json:"quantity"`
	NewStock      int       `json:"new_stock"`
	ProductStatus string    `json:"product_status"`
	Timestamp     time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeSaleCompleted        = "sale.completed"
	EventTypeStockMovementApplied = "stock.movement.applied"
)

// Kafka topics
const (
	TopicSaleCompleted        = "sale-completed"
	TopicStockMovementApplied = "stock-movement-applied"
)
