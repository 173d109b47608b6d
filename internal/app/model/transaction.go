package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionKind string

const (
	KindDeposit  TransactionKind = "deposit"
	KindWithdraw TransactionKind = "withdraw"
	KindTrade    TransactionKind = "trade"
	KindBonus    TransactionKind = "bonus"
)

type TransactionState string

const (
	StatePending         TransactionState = "pending"
	StatePaid            TransactionState = "paid"
	StatePendingCanceled TransactionState = "pending_canceled"
	StatePaidCanceled    TransactionState = "paid_canceled"
	StateFailed          TransactionState = "failed"
)

// Terminal states are never re-entered or re-mutated.
func (s TransactionState) Terminal() bool {
	switch s {
	case StatePaid, StatePaidCanceled, StateFailed:
		return true
	}
	return false
}

// CanTransition reports whether the state machine allows s -> to.
func (s TransactionState) CanTransition(to TransactionState) bool {
	switch s {
	case StatePending:
		return to == StatePaid || to == StatePendingCanceled || to == StateFailed
	case StatePendingCanceled:
		return to == StatePaidCanceled
	}
	return false
}

type Transaction struct {
	ID uuid.UUID `json:"id"`
	// ExternalID is the gateway transaction id (click_trans_id), unique when present.
	ExternalID sql.NullString `json:"-"`
	// OfferID is the external trade offer id, assigned once dispatch succeeds.
	OfferID    sql.NullString   `json:"-"`
	Kind       TransactionKind  `json:"kind"`
	State      TransactionState `json:"state"`
	Amount     decimal.Decimal  `json:"amount"`
	OwnerID    uuid.UUID        `json:"owner_id"`
	ReceiverID uuid.NullUUID    `json:"receiver_id,omitempty"`
	SkinID     uuid.NullUUID    `json:"skin_id,omitempty"`
	CardNumber sql.NullString   `json:"-"`

	CreatedAt   time.Time    `json:"created_at"`
	PreparedAt  sql.NullTime `json:"-"`
	CompletedAt sql.NullTime `json:"-"`
	CanceledAt  sql.NullTime `json:"-"`
}

// StampColumn names the timestamp column written alongside a state
// transition. Each column is set exactly once.
type StampColumn string

const (
	StampNone      StampColumn = ""
	StampPrepared  StampColumn = "prepared_at"
	StampCompleted StampColumn = "completed_at"
	StampCanceled  StampColumn = "canceled_at"
)
