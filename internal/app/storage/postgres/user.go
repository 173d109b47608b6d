package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	pg "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"skinsbay/internal/app/apperr"
	"skinsbay/internal/app/model"
	"skinsbay/internal/app/storage"
)

// storage.UserRepository interface implementation
var _ storage.UserRepository = (*UserRepository)(nil)

type UserRepository struct {
	db *sql.DB
}

func (r *UserRepository) LoggerComponent() string {
	return "UserRepository"
}

func NewUserRepository(db *sql.DB) (*UserRepository, error) {
	s := &UserRepository{
		db: db,
	}
	return s, nil
}

// Create implementation of interface storage.UserRepository
func (r *UserRepository) Create(ctx context.Context, m *model.User) (*model.User, error) {
	const SQL = `
		INSERT INTO users (telegram_id, steam_id, trade_url, personaname)
		VALUES ($1, $2, $3, $4)
		RETURNING id
`

	err := r.db.QueryRowContext(ctx, SQL, m.TelegramID, m.SteamID, m.TradeURL, m.Personaname).Scan(&m.ID)
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

// Read implementation of interface storage.UserRepository
func (r *UserRepository) Read(ctx context.Context, id uuid.UUID) (*model.User, error) {
	const SQL = `
		SELECT id, telegram_id, steam_id, trade_url, personaname, balance, cashback
		FROM users
		WHERE id=$1
`
	return r.scanRow(r.db.QueryRowContext(ctx, SQL, id))
}

// ReadByTelegramID implementation of interface storage.UserRepository
func (r *UserRepository) ReadByTelegramID(ctx context.Context, telegramID string) (*model.User, error) {
	const SQL = `
		SELECT id, telegram_id, steam_id, trade_url, personaname, balance, cashback
		FROM users
		WHERE telegram_id=$1
`
	return r.scanRow(r.db.QueryRowContext(ctx, SQL, telegramID))
}

// Update implementation of interface storage.UserRepository
func (r *UserRepository) Update(ctx context.Context, m *model.User) (*model.User, error) {
	const SQL = `
		UPDATE users
		SET steam_id=$1, trade_url=$2, personaname=$3
		WHERE id=$4
`

	res, err := r.db.ExecContext(ctx, SQL, m.SteamID, m.TradeURL, m.Personaname, m.ID)
	if err != nil {
		return nil, fmt.Errorf("update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, apperr.ErrNotFound
	}

	return m, nil
}

// TxRead implementation of interface storage.UserRepository
func (r *UserRepository) TxRead(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.User, error) {
	const SQL = `
		SELECT id, telegram_id, steam_id, trade_url, personaname, balance, cashback
		FROM users
		WHERE id=$1
		FOR UPDATE
`
	return r.scanRow(tx.QueryRowContext(ctx, SQL, id))
}

// TxIncrementBalance implementation of interface storage.UserRepository
func (r *UserRepository) TxIncrementBalance(ctx context.Context, tx *sql.Tx, id uuid.UUID, delta decimal.Decimal) error {
	const SQL = `UPDATE users SET balance=balance+$1 WHERE id=$2`

	if _, err := tx.ExecContext(ctx, SQL, delta, id); err != nil {
		return fmt.Errorf("balance update: %w", err)
	}

	return nil
}

// TxIncrementCashback implementation of interface storage.UserRepository
func (r *UserRepository) TxIncrementCashback(ctx context.Context, tx *sql.Tx, id uuid.UUID, delta decimal.Decimal) error {
	const SQL = `UPDATE users SET cashback=cashback+$1 WHERE id=$2`

	if _, err := tx.ExecContext(ctx, SQL, delta, id); err != nil {
		return fmt.Errorf("cashback update: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *UserRepository) scanRow(row rowScanner) (*model.User, error) {
	m := &model.User{}

	err := row.Scan(&m.ID, &m.TelegramID, &m.SteamID, &m.TradeURL, &m.Personaname, &m.Balance, &m.Cashback)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select: %w", err)
	}

	return m, nil
}
