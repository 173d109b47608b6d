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

	"skinsbay/internal/app/apperr"
	"skinsbay/internal/app/logger"
	"skinsbay/internal/app/model"
	"skinsbay/internal/app/storage"
)

// storage.TransactionRepository interface implementation
var _ storage.TransactionRepository = (*TransactionRepository)(nil)

const transactionColumns = `id, external_id, offer_id, kind, state, amount, owner_id, receiver_id, skin_id, card_number, created_at, prepared_at, completed_at, canceled_at`

type TransactionRepository struct {
	db *sql.DB
}

func (r *TransactionRepository) LoggerComponent() string {
	return "TransactionRepository"
}

func NewTransactionRepository(db *sql.DB) (*TransactionRepository, error) {
	s := &TransactionRepository{
		db: db,
	}
	return s, nil
}

// Create implementation of interface storage.TransactionRepository
func (r *TransactionRepository) Create(ctx context.Context, m *model.Transaction) (*model.Transaction, error) {
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

// TxCreate implementation of interface storage.TransactionRepository
func (r *TransactionRepository) TxCreate(ctx context.Context, tx *sql.Tx, m *model.Transaction) (*model.Transaction, error) {
	l := logger.Ctx(ctx).With().Str("method", "TxCreate").Logger()

	if m.Amount.IsNegative() {
		return nil, apperr.ErrInvalidInput
	}

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()

	const SQL = `
		INSERT INTO transactions (id, external_id, offer_id, kind, state, amount, owner_id, receiver_id, skin_id, card_number, prepared_at, completed_at, canceled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
`

	_, err := tx.ExecContext(ctx, SQL,
		m.ID, m.ExternalID, m.OfferID, m.Kind, m.State, m.Amount,
		m.OwnerID, m.ReceiverID, m.SkinID, m.CardNumber,
		m.PreparedAt, m.CompletedAt, m.CanceledAt,
	)
	if err != nil {
		if pgErr, ok := err.(*pg.Error); ok {
			if pgerrcode.IsIntegrityConstraintViolation(string(pgErr.Code)) {
				l.Debug().Err(err).Msg("Duplicate external id")
				return nil, apperr.ErrConflict
			}
		}

		return nil, fmt.Errorf("insert: %w", err)
	}

	return m, nil
}

// Read implementation of interface storage.TransactionRepository
func (r *TransactionRepository) Read(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	const SQL = `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id=$1
`
	return scanTransaction(r.db.QueryRowContext(ctx, SQL, id))
}

// ReadByExternalID implementation of interface storage.TransactionRepository
func (r *TransactionRepository) ReadByExternalID(ctx context.Context, externalID string) (*model.Transaction, error) {
	const SQL = `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE external_id=$1
`
	return scanTransaction(r.db.QueryRowContext(ctx, SQL, externalID))
}

// TxRead implementation of interface storage.TransactionRepository
func (r *TransactionRepository) TxRead(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Transaction, error) {
	const SQL = `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id=$1
		FOR UPDATE
`
	return scanTransaction(tx.QueryRowContext(ctx, SQL, id))
}

// TxUpdateState implementation of interface storage.TransactionRepository.
// The stamp column is filled only if still NULL, so each transition time is
// written exactly once.
func (r *TransactionRepository) TxUpdateState(ctx context.Context, tx *sql.Tx, id uuid.UUID, state model.TransactionState, stamp model.StampColumn) error {
	SQL := `UPDATE transactions SET state=$1 WHERE id=$2`
	switch stamp {
	case model.StampPrepared:
		SQL = `UPDATE transactions SET state=$1, prepared_at=coalesce(prepared_at, now()) WHERE id=$2`
	case model.StampCompleted:
		SQL = `UPDATE transactions SET state=$1, completed_at=coalesce(completed_at, now()) WHERE id=$2`
	case model.StampCanceled:
		SQL = `UPDATE transactions SET state=$1, canceled_at=coalesce(canceled_at, now()) WHERE id=$2`
	}

	res, err := tx.ExecContext(ctx, SQL, state, id)
	if err != nil {
		return fmt.Errorf("state update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

// TxSetOfferID implementation of interface storage.TransactionRepository
func (r *TransactionRepository) TxSetOfferID(ctx context.Context, tx *sql.Tx, id uuid.UUID, offerID string) error {
	const SQL = `UPDATE transactions SET offer_id=$1 WHERE id=$2 AND offer_id IS NULL`

	res, err := tx.ExecContext(ctx, SQL, offerID, id)
	if err != nil {
		return fmt.Errorf("offer id update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperr.ErrConflict
	}

	return nil
}

// AllByUserID implementation of interface storage.TransactionRepository
func (r *TransactionRepository) AllByUserID(ctx context.Context, userID uuid.UUID) ([]*model.Transaction, error) {
	l := logger.Ctx(ctx).With().Str("method", "AllByUserID").Logger()

	const SQL = `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_id=$1 OR receiver_id=$1
		ORDER BY created_at DESC
`
	rows, err := r.db.QueryContext(ctx, SQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	res := make([]*model.Transaction, 0)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			l.Debug().Err(err).Send()
			return nil, err
		}
		res = append(res, m)
	}

	return res, rows.Err()
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	m := &model.Transaction{}

	err := row.Scan(
		&m.ID, &m.ExternalID, &m.OfferID, &m.Kind, &m.State, &m.Amount,
		&m.OwnerID, &m.ReceiverID, &m.SkinID, &m.CardNumber,
		&m.CreatedAt, &m.PreparedAt, &m.CompletedAt, &m.CanceledAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("scan: %w", err)
	}

	return m, nil
}
