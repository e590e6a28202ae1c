package models

import (
	"time"
)

type Product struct {
	ID          int      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string   `gorm:"not null"                  json:"name"`
	Price       float64  `gorm:"not null"                  json:"price"`
	Description string   `gorm:"not null"                  json:"description"`
	Image       string   `json:"image"`
	Categories  []string `gorm:"serializer:json"           json:"categories"`
	Colors      []string `gorm:"serializer:json"           json:"colors"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
}

// CartEntry is one (product id, quantity) pair of a stored cart.
// Stored quantity is always >= 1; an update that would drop below 1 removes the entry.
type CartEntry struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// CartLineItem is a CartEntry joined against the catalog, used for display and totals.
type CartLineItem struct {
	Product
	Quantity int `json:"quantity"`
}

func (li CartLineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}

// CartRecord is the persisted cart blob, one row per session key.
type CartRecord struct {
	SessionKey string    `gorm:"primaryKey"  json:"session_key"`
	Payload    []byte    `gorm:"not null"    json:"payload"`
	UpdatedAt  time.Time `json:"updated_at"`
}
