//go:generate mockgen -source=./interface.go -destination=./mock/storage.go -package=storagemock
package storage

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"skinsbay/internal/app/model"
)

// Tx* methods run inside a caller-supplied transaction so that a settlement
// session can span the transaction record, the ledger and the listing as one
// atomic unit.

type UserRepository interface {
	// Create a new model.User
	Create(ctx context.Context, m *model.User) (*model.User, error)
	// Read instance of model.User
	Read(ctx context.Context, id uuid.UUID) (*model.User, error)
	// ReadByTelegramID instance of model.User
	ReadByTelegramID(ctx context.Context, telegramID string) (*model.User, error)
	// Update mutable profile fields (steam id, trade url, personaname)
	Update(ctx context.Context, m *model.User) (*model.User, error)
	// TxRead locks the user row for the duration of the tx
	TxRead(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.User, error)
	// TxIncrementBalance applies a signed delta to the spendable balance
	TxIncrementBalance(ctx context.Context, tx *sql.Tx, id uuid.UUID, delta decimal.Decimal) error
	// TxIncrementCashback applies a signed delta to the cashback pool
	TxIncrementCashback(ctx context.Context, tx *sql.Tx, id uuid.UUID, delta decimal.Decimal) error
}

type SkinRepository interface {
	// Create a new model.Skin
	Create(ctx context.Context, m *model.Skin) (*model.Skin, error)
	// TxCreate a new model.Skin within the tx
	TxCreate(ctx context.Context, tx *sql.Tx, m *model.Skin) (*model.Skin, error)
	// Read instance of model.Skin
	Read(ctx context.Context, id uuid.UUID) (*model.Skin, error)
	// TxRead locks the skin row for the duration of the tx
	TxRead(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Skin, error)
	// AllBySellerID returns all skins listed by the user
	AllBySellerID(ctx context.Context, sellerID uuid.UUID) ([]*model.Skin, error)
	// TxMarkSold flips status fromStatus -> sold, assigns the buyer and
	// freezes the commission figures. Compare-and-set: reports
	// apperr.ErrConflict when the row no longer holds fromStatus.
	TxMarkSold(ctx context.Context, tx *sql.Tx, id uuid.UUID, fromStatus model.SkinStatus, buyerID uuid.UUID, commission, sellerRevenue decimal.Decimal) error
	// TxRestoreListing reverts a sold skin to available with the buyer cleared
	TxRestoreListing(ctx context.Context, tx *sql.Tx, id uuid.UUID) error
	// UpdateStatus flips status fromStatus -> toStatus (compare-and-set)
	UpdateStatus(ctx context.Context, id uuid.UUID, fromStatus, toStatus model.SkinStatus) error
	// UpdateMessageID records the channel post id after publication
	UpdateMessageID(ctx context.Context, id uuid.UUID, messageID string) error
	// Delete removes the listing record entirely
	Delete(ctx context.Context, id uuid.UUID) error
	// LatestAdvertisedExpiry returns the latest expires_at among advertised listings
	LatestAdvertisedExpiry(ctx context.Context) (sql.NullTime, error)
}

type TransactionRepository interface {
	// Create a new model.Transaction
	Create(ctx context.Context, m *model.Transaction) (*model.Transaction, error)
	// TxCreate a new model.Transaction within the tx
	TxCreate(ctx context.Context, tx *sql.Tx, m *model.Transaction) (*model.Transaction, error)
	// Read instance of model.Transaction
	Read(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	// ReadByExternalID instance of model.Transaction keyed by the gateway id
	ReadByExternalID(ctx context.Context, externalID string) (*model.Transaction, error)
	// TxRead locks the transaction row for the duration of the tx
	TxRead(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Transaction, error)
	// TxUpdateState advances the state machine and stamps the transition time
	TxUpdateState(ctx context.Context, tx *sql.Tx, id uuid.UUID, state model.TransactionState, stamp model.StampColumn) error
	// TxSetOfferID records the external trade offer id, set once
	TxSetOfferID(ctx context.Context, tx *sql.Tx, id uuid.UUID, offerID string) error
	// AllByUserID returns all transactions the user participates in
	AllByUserID(ctx context.Context, userID uuid.UUID) ([]*model.Transaction, error)
}
