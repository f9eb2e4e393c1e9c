package kafka

import "time"

// CatalogChangedEvent announces a committed catalog mutation
type CatalogChangedEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	Kind       string    `json:"kind"`
	ProductIDs []string  `json:"product_ids"`
	Origin     string    `json:"origin"`
	Timestamp  time.Time `json:"timestamp"`
}

// OrderPlacedEvent announces one recorded order
type OrderPlacedEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	OrderID     string    `json:"order_id"`
	Username    string    `json:"username"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Total       float64   `json:"total"`
	Origin      string    `json:"origin"`
	Timestamp   time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeCatalogChanged = "catalog.changed"
	EventTypeOrderPlaced    = "order.placed"
)

// Kafka topics
const (
	TopicCatalogChanged = "catalog-changed"
	TopicOrderPlaced    = "order-placed"
)

// Record headers
const (
	headerEventType = "event_type"
	headerEventID   = "event_id"
	headerOrigin    = "origin"
)
