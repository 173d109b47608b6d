package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	pg "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"skinsbay/internal/app/apperr"
	"skinsbay/internal/app/logger"
	"skinsbay/internal/app/model"
	"skinsbay/internal/app/storage"
)

// storage.SkinRepository interface implementation
var _ storage.SkinRepository = (*SkinRepository)(nil)

const skinColumns = `id, seller_id, buyer_id, market_hash_name, asset_id, icon_url, description, price, commission_rate, commission_amount, seller_revenue, advertising, advertising_hours, advertising_cost, publish_at, expires_at, message_id, status, created_at`

type SkinRepository struct {
	db *sql.DB
}

func (r *SkinRepository) LoggerComponent() string {
	return "SkinRepository"
}

func NewSkinRepository(db *sql.DB) (*SkinRepository, error) {
	s := &SkinRepository{
		db: db,
	}
	return s, nil
}

// Create implementation of interface storage.SkinRepository
func (r *SkinRepository) Create(ctx context.Context, m *model.Skin) (*model.Skin, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelDefault,
	})
	if err != nil {
		return nil, fmt.Errorf("tx begin: %w", err)
	}

	res, err := r.TxCreate(ctx, tx, m)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("tx commit: %w", err)
	}

	return res, nil
}

// TxCreate implementation of interface storage.SkinRepository
func (r *SkinRepository) TxCreate(ctx context.Context, tx *sql.Tx, m *model.Skin) (*model.Skin, error) {
	if m.MarketHashName == "" || m.AssetID == "" || m.Price.IsNegative() {
		return nil, apperr.ErrInvalidInput
	}

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	if m.Status == "" {
		m.Status = model.SkinStatusAvailable
	}

	const SQL = `
		INSERT INTO skins (id, seller_id, market_hash_name, asset_id, icon_url, description, price, commission_rate, commission_amount, seller_revenue, advertising, advertising_hours, advertising_cost, publish_at, expires_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
`

	_, err := tx.ExecContext(ctx, SQL,
		m.ID, m.SellerID, m.MarketHashName, m.AssetID, m.IconURL, m.Description,
		m.Price, m.CommissionRate, m.CommissionAmount, m.SellerRevenue,
		m.Advertising, m.AdvertisingHours, m.AdvertisingCost,
		m.PublishAt, m.ExpiresAt, m.Status,
	)
	if err != nil {
		if pgErr, ok := err.(*pg.Error); ok {
			if pgerrcode.IsIntegrityConstraintViolation(string(pgErr.Code)) {
				return nil, apperr.ErrConflict
			}
		}

		return nil, fmt.Errorf("insert: %w", err)
	}

	return m, nil
}

// Read implementation of interface storage.SkinRepository
func (r *SkinRepository) Read(ctx context.Context, id uuid.UUID) (*model.Skin, error) {
	const SQL = `
		SELECT ` + skinColumns + `
		FROM skins
		WHERE id=$1
`
	return scanSkin(r.db.QueryRowContext(ctx, SQL, id))
}

// TxRead implementation of interface storage.SkinRepository
func (r *SkinRepository) TxRead(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Skin, error) {
	const SQL = `
		SELECT ` + skinColumns + `
		FROM skins
		WHERE id=$1
		FOR UPDATE
`
	return scanSkin(tx.QueryRowContext(ctx, SQL, id))
}

// AllBySellerID implementation of interface storage.SkinRepository
func (r *SkinRepository) AllBySellerID(ctx context.Context, sellerID uuid.UUID) ([]*model.Skin, error) {
	l := logger.Ctx(ctx).With().Str("method", "AllBySellerID").Logger()

	const SQL = `
		SELECT ` + skinColumns + `
		FROM skins
		WHERE seller_id=$1
		ORDER BY created_at DESC
`
	rows, err := r.db.QueryContext(ctx, SQL, sellerID)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	res := make([]*model.Skin, 0)
	for rows.Next() {
		m, err := scanSkin(rows)
		if err != nil {
			l.Debug().Err(err).Send()
			return nil, err
		}
		res = append(res, m)
	}

	return res, rows.Err()
}

// TxMarkSold implementation of interface storage.SkinRepository.
// Conditioned on the status the caller read under the row lock, so two
// racing purchases cannot both flip the same listing to sold.
func (r *SkinRepository) TxMarkSold(ctx context.Context, tx *sql.Tx, id uuid.UUID, fromStatus model.SkinStatus, buyerID uuid.UUID, commission, sellerRevenue decimal.Decimal) error {
	const SQL = `
		UPDATE skins
		SET status=$1, buyer_id=$2, commission_amount=$3, seller_revenue=$4
		WHERE id=$5 AND status=$6
`

	res, err := tx.ExecContext(ctx, SQL, model.SkinStatusSold, buyerID, commission, sellerRevenue, id, fromStatus)
	if err != nil {
		return fmt.Errorf("mark sold: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrConflict
	}

	return nil
}

// TxRestoreListing implementation of interface storage.SkinRepository
func (r *SkinRepository) TxRestoreListing(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	const SQL = `
		UPDATE skins
		SET status=$1, buyer_id=NULL
		WHERE id=$2 AND status=$3
`

	res, err := tx.ExecContext(ctx, SQL, model.SkinStatusAvailable, id, model.SkinStatusSold)
	if err != nil {
		return fmt.Errorf("restore listing: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrConflict
	}

	return nil
}

// UpdateStatus implementation of interface storage.SkinRepository
func (r *SkinRepository) UpdateStatus(ctx context.Context, id uuid.UUID, fromStatus, toStatus model.SkinStatus) error {
	const SQL = `UPDATE skins SET status=$1 WHERE id=$2 AND status=$3`

	res, err := r.db.ExecContext(ctx, SQL, toStatus, id, fromStatus)
	if err != nil {
		return fmt.Errorf("status update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrConflict
	}

	return nil
}

// UpdateMessageID implementation of interface storage.SkinRepository
func (r *SkinRepository) UpdateMessageID(ctx context.Context, id uuid.UUID, messageID string) error {
	const SQL = `UPDATE skins SET message_id=$1 WHERE id=$2`

	if _, err := r.db.ExecContext(ctx, SQL, messageID, id); err != nil {
		return fmt.Errorf("message id update: %w", err)
	}

	return nil
}

// Delete implementation of interface storage.SkinRepository
func (r *SkinRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const SQL = `DELETE FROM skins WHERE id=$1`

	res, err := r.db.ExecContext(ctx, SQL, id)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

// LatestAdvertisedExpiry implementation of interface storage.SkinRepository
func (r *SkinRepository) LatestAdvertisedExpiry(ctx context.Context) (sql.NullTime, error) {
	const SQL = `
		SELECT max(expires_at)
		FROM skins
		WHERE advertising AND expires_at IS NOT NULL
`
	var t sql.NullTime

	err := r.db.QueryRowContext(ctx, SQL).Scan(&t)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return t, fmt.Errorf("select: %w", err)
	}

	return t, nil
}

func scanSkin(row rowScanner) (*model.Skin, error) {
	m := &model.Skin{}

	err := row.Scan(
		&m.ID, &m.SellerID, &m.BuyerID, &m.MarketHashName, &m.AssetID, &m.IconURL, &m.Description,
		&m.Price, &m.CommissionRate, &m.CommissionAmount, &m.SellerRevenue,
		&m.Advertising, &m.AdvertisingHours, &m.AdvertisingCost,
		&m.PublishAt, &m.ExpiresAt, &m.MessageID, &m.Status, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("scan: %w", err)
	}

	return m, nil
}
