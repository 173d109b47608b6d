package model

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SkinStatus string

const (
	SkinStatusAvailable SkinStatus = "available"
	SkinStatusPending   SkinStatus = "pending"
	SkinStatusSold      SkinStatus = "sold"
	SkinStatusCanceled  SkinStatus = "canceled"
)

// Purchasable reports whether a listing may still accept a purchase.
func (s SkinStatus) Purchasable() bool {
	return s == SkinStatusAvailable || s == SkinStatusPending
}

type Skin struct {
	ID             uuid.UUID     `json:"id"`
	SellerID       uuid.UUID     `json:"seller_id"`
	BuyerID        uuid.NullUUID `json:"-"`
	MarketHashName string        `json:"market_hash_name"`
	AssetID        string        `json:"asset_id"`
	IconURL        string        `json:"icon_url"`
	Description    string        `json:"description,omitempty"`

	// Settlement figures are computed at listing time and frozen.
	Price            decimal.Decimal `json:"price"`
	CommissionRate   decimal.Decimal `json:"-"`
	CommissionAmount decimal.Decimal `json:"-"`
	SellerRevenue    decimal.Decimal `json:"-"`

	Advertising      bool            `json:"advertising"`
	AdvertisingHours int             `json:"advertising_hours,omitempty"`
	AdvertisingCost  decimal.Decimal `json:"-"`
	PublishAt        sql.NullTime    `json:"-"`
	ExpiresAt        sql.NullTime    `json:"-"`

	// MessageID of the channel post announcing the listing, if published.
	MessageID sql.NullString `json:"-"`
	Status    SkinStatus     `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}

// MarshalJSON implements the json.Marshaler interface.
func (s Skin) MarshalJSON() ([]byte, error) {
	o := struct {
		ID             uuid.UUID       `json:"id"`
		SellerID       uuid.UUID       `json:"seller_id"`
		MarketHashName string          `json:"market_hash_name"`
		IconURL        string          `json:"icon_url"`
		Description    string          `json:"description,omitempty"`
		Price          decimal.Decimal `json:"price"`
		Advertising    bool            `json:"advertising"`
		Status         SkinStatus      `json:"status"`
		CreatedAt      time.Time       `json:"created_at"`
	}{
		ID:             s.ID,
		SellerID:       s.SellerID,
		MarketHashName: s.MarketHashName,
		IconURL:        s.IconURL,
		Description:    s.Description,
		Price:          s.Price,
		Advertising:    s.Advertising,
		Status:         s.Status,
		CreatedAt:      s.CreatedAt,
	}

	return json.Marshal(o)
}
