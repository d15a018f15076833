// Package store is a sample domain of persisted entities. It is loaded by
// the source analyzer tests and used in the command line examples.
package store

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

//go:generate go tool stringer -type=OrderStatus -linecomment -output=orderstatus_string.go

// Product represents an individual item available for sale.
// Prices are kept in cents.
type Product struct {
	ID          bson.ObjectID `bson:"_id"`
	SKU         string        `bson:"sku"`
	Name        string
	Description string `bson:"description,omitempty"`
	PriceCents  int64  `bson:"price_cents"`
	Inventory   int    `bson:"inventory_count"`
	CreatedAt   time.Time
}

// CollectionName stores products in "products".
func (Product) CollectionName() string { return "products" }

// Customer represents the user placing orders.
type Customer struct {
	ID       bson.ObjectID `bson:"_id"`
	Email    string
	FullName string   `bson:"full_name"`
	Address  *Address // Embedded document
	IsActive bool     `bson:"is_active"`
}

// Address is embedded in customers; it has no collection of its own.
type Address struct {
	Street     string
	City       string
	PostalCode string `bson:"postal_code"`
}

// Order represents a transaction made by a customer.
type Order struct {
	ID         bson.ObjectID `bson:"_id"`
	Customer   *Customer     `odm:"ref"`
	Status     OrderStatus
	TotalCents int64       `bson:"total_cents"`
	Items      []OrderItem // Has-Many, embedded
	OrderedAt  time.Time   `bson:"ordered_at"`
	Audit      `bson:",inline"`

	cacheKey string
}

// OrderItem represents a specific product line within an order.
// It snapshots the price at the time of purchase.
type OrderItem struct {
	Product   *Product `odm:"ref"`
	Name      string
	Quantity  int
	UnitPrice int64 `bson:"unit_price"`
}

// Audit holds bookkeeping fields inlined into several documents.
type Audit struct {
	CreatedBy string `bson:"created_by"`
	Revision  int    `bson:"-"`
}

// OrderStatus is stored by name.
type OrderStatus int

const (
	StatusPending   OrderStatus = iota // PENDING
	StatusPaid                         // PAID
	StatusShipped                      // SHIPPED
	StatusCancelled                    // CANCELLED
)
