// Package warehouse is a second sample domain. Its Order clashes by name
// with store.Order, which the source analyzer resolves by qualifying both.
package warehouse

import (
	"time"

	"docmapper/store"
)

// Shipment moves the items of a store order out of a warehouse.
type Shipment struct {
	ID        string       `odm:"id"`
	Order     *store.Order `odm:"ref"`
	Warehouse *Location    `odm:"ref"`
	Parcels   []Parcel
	ShippedAt *time.Time `bson:"shipped_at,omitempty"`
}

// Parcel is a single package of a shipment.
type Parcel struct {
	Tracking string `bson:"tracking_no"`
	WeightG  int    `bson:"weight_g"`
}

// Location is a warehouse site.
type Location struct {
	Id   string
	Name string
	Tags []string
}

// Order is a replenishment order placed by a warehouse.
type Order struct {
	ID       string    `bson:"_id"`
	Location *Location `odm:"ref"`
	Lines    map[string]int
}
