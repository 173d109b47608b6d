package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID          uuid.UUID       `json:"id"`
	TelegramID  string          `json:"telegram_id"`
	SteamID     string          `json:"steam_id,omitempty"`
	TradeURL    string          `json:"trade_url,omitempty"`
	Personaname string          `json:"personaname,omitempty"`
	Balance     decimal.Decimal `json:"-"`
	Cashback    decimal.Decimal `json:"-"`
}

// TradeReady reports whether the user has a linked Steam identity and a
// trade destination on file, both required before any trade settlement.
func (u *User) TradeReady() bool {
	return u.SteamID != "" && u.TradeURL != ""
}
