// Package click implements the merchant side of the Click.uz two-phase
// payment protocol: signature verification, the prepare admission check and
// the complete settlement that credits the ledger.
package click

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"skinsbay/internal/app/apperr"
	"skinsbay/internal/app/config"
	"skinsbay/internal/app/logger"
	"skinsbay/internal/app/model"
	"skinsbay/internal/app/storage"
)

// nowFn is swapped in tests
var nowFn = time.Now

type Service struct {
	db           *sql.DB
	cfg          config.ClickConfig
	users        storage.UserRepository
	transactions storage.TransactionRepository
	logger       logger.Logger
}

func (s *Service) LoggerComponent() string {
	return "Click.Service"
}

func NewService(db *sql.DB, cfg config.ClickConfig, users storage.UserRepository, transactions storage.TransactionRepository) (*Service, error) {
	s := &Service{
		db:           db,
		cfg:          cfg,
		users:        users,
		transactions: transactions,
	}
	s.logger = logger.Global().Component(s)

	return s, nil
}

// Response is the JSON body the gateway expects on both phases.
type Response struct {
	ClickTransID      string `json:"click_trans_id"`
	MerchantTransID   string `json:"merchant_trans_id"`
	MerchantPrepareID string `json:"merchant_prepare_id,omitempty"`
	MerchantConfirmID string `json:"merchant_confirm_id,omitempty"`
	Error             int    `json:"error"`
	ErrorNote         string `json:"error_note"`
}

func fail(p Payload, code int) Response {
	return Response{
		ClickTransID:    p.ClickTransID,
		MerchantTransID: p.MerchantTransID,
		Error:           code,
		ErrorNote:       ErrorNote(code),
	}
}

// Prepare admits a deposit: verifies the signature, resolves the paying
// user from merchant_trans_id and creates the PENDING transaction whose id
// the gateway must echo back as merchant_prepare_id. Duplicate prepares for
// the same gateway id are rejected, never doubled.
func (s *Service) Prepare(ctx context.Context, p Payload) Response {
	l := s.logger.With().
		Str("click_trans_id", p.ClickTransID).
		Str("merchant_trans_id", p.MerchantTransID).
		Logger()

	if !Verify(s.cfg.SecretKey, p) {
		l.Warn().Msg("Prepare sign check failed")
		return fail(p, CodeSignFailed)
	}

	if p.Action != ActionPrepare {
		l.Warn().Str("action", p.Action).Msg("Prepare with wrong action")
		return fail(p, CodeActionNotFound)
	}

	userID, err := uuid.Parse(p.MerchantTransID)
	if err != nil {
		l.Warn().Msg("Prepare with malformed user reference")
		return fail(p, CodeUserNotFound)
	}
	user, err := s.users.Read(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			l.Warn().Msg("Prepare for unknown user")
			return fail(p, CodeUserNotFound)
		}
		l.Error().Err(err).Msg("User lookup failed")
		return fail(p, CodeInternalError)
	}

	existing, err := s.transactions.ReadByExternalID(ctx, p.ClickTransID)
	if err == nil {
		switch existing.State {
		case model.StatePending, model.StatePaid:
			l.Warn().Str("transaction_id", existing.ID.String()).Msg("Duplicate prepare")
			return fail(p, CodeAlreadyPaid)
		default:
			return fail(p, CodeTransactionCanceled)
		}
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		l.Error().Err(err).Msg("Transaction lookup failed")
		return fail(p, CodeInternalError)
	}

	amount, err := decimal.NewFromString(p.Amount)
	if err != nil || amount.IsNegative() {
		l.Warn().Str("amount", p.Amount).Msg("Prepare with malformed amount")
		return fail(p, CodeInvalidAmount)
	}

	m := &model.Transaction{
		ExternalID: sql.NullString{String: p.ClickTransID, Valid: true},
		Kind:       model.KindDeposit,
		State:      model.StatePending,
		Amount:     amount,
		OwnerID:    user.ID,
		PreparedAt: sql.NullTime{Time: nowFn(), Valid: true},
	}

	m, err = s.transactions.Create(ctx, m)
	if err != nil {
		// a racing duplicate lost to the unique external id index
		if errors.Is(err, apperr.ErrConflict) {
			l.Warn().Msg("Duplicate prepare (insert race)")
			return fail(p, CodeAlreadyPaid)
		}
		l.Error().Err(err).Msg("Transaction create failed")
		return fail(p, CodeInternalError)
	}

	l.Info().
		Str("transaction_id", m.ID.String()).
		Str("amount", amount.String()).
		Msg("Prepare accepted")

	return Response{
		ClickTransID:      p.ClickTransID,
		MerchantTransID:   p.MerchantTransID,
		MerchantPrepareID: m.ID.String(),
		Error:             CodeSuccess,
		ErrorNote:         ErrorNote(CodeSuccess),
	}
}

// Complete settles a prepared deposit. State flip and balance credit are a
// single storage transaction; replays of an already settled complete are
// acknowledged without re-crediting.
func (s *Service) Complete(ctx context.Context, p Payload) Response {
	l := s.logger.With().
		Str("click_trans_id", p.ClickTransID).
		Str("merchant_prepare_id", p.MerchantPrepareID).
		Logger()

	prepareID, err := uuid.Parse(p.MerchantPrepareID)
	if err != nil {
		l.Warn().Msg("Complete with malformed prepare id")
		return fail(p, CodeTransactionNotFound)
	}
	tr, err := s.transactions.Read(ctx, prepareID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			l.Warn().Msg("Complete for unknown transaction")
			return fail(p, CodeTransactionNotFound)
		}
		l.Error().Err(err).Msg("Transaction lookup failed")
		return fail(p, CodeInternalError)
	}

	if !Verify(s.cfg.SecretKey, p) {
		l.Warn().Msg("Complete sign check failed")
		return fail(p, CodeSignFailed)
	}

	if p.Action != ActionComplete {
		l.Warn().Str("action", p.Action).Msg("Complete with wrong action")
		return fail(p, CodeActionNotFound)
	}

	if tr.State == model.StatePaid {
		l.Warn().Msg("Duplicate complete")
		return fail(p, CodeAlreadyPaid)
	}

	amount, err := decimal.NewFromString(p.Amount)
	if err != nil || !amount.Equal(tr.Amount) {
		l.Warn().
			Str("payload_amount", p.Amount).
			Str("prepared_amount", tr.Amount.String()).
			Msg("Complete amount mismatch")
		return fail(p, CodeInvalidAmount)
	}

	switch tr.State {
	case model.StatePendingCanceled:
		// the gateway acknowledged the cancel; settle the cancel branch
		if err := s.settleCancel(ctx, tr.ID, model.StatePaidCanceled, model.StampNone); err != nil {
			l.Error().Err(err).Msg("Cancel settlement failed")
			return fail(p, CodeInternalError)
		}
		return fail(p, CodeTransactionCanceled)
	case model.StatePaidCanceled, model.StateFailed:
		return fail(p, CodeTransactionCanceled)
	}

	if p.Error != "" && p.Error != "0" {
		l.Info().Str("gateway_error", p.Error).Msg("Complete reports gateway failure")
		if err := s.settleCancel(ctx, tr.ID, model.StatePendingCanceled, model.StampCanceled); err != nil {
			l.Error().Err(err).Msg("Cancel settlement failed")
			return fail(p, CodeInternalError)
		}
		return fail(p, CodeTransactionCanceled)
	}

	code := s.settlePaid(ctx, l, tr)
	if code != CodeSuccess {
		return fail(p, code)
	}

	l.Info().
		Str("transaction_id", tr.ID.String()).
		Str("amount", tr.Amount.String()).
		Msg("Deposit settled")

	return Response{
		ClickTransID:      p.ClickTransID,
		MerchantTransID:   p.MerchantTransID,
		MerchantConfirmID: tr.ID.String(),
		Error:             CodeSuccess,
		ErrorNote:         ErrorNote(CodeSuccess),
	}
}

// settlePaid flips the transaction to PAID and credits the owner inside one
// serializable session. The state is re-read under the row lock so a racing
// duplicate settles exactly once.
func (s *Service) settlePaid(ctx context.Context, l zerolog.Logger, tr *model.Transaction) int {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		l.Error().Err(err).Msg("DB transaction begin")
		return CodeInternalError
	}

	locked, err := s.transactions.TxRead(ctx, tx, tr.ID)
	if err != nil {
		_ = tx.Rollback()
		l.Error().Err(err).Msg("DB lock error")
		return CodeInternalError
	}

	if locked.State == model.StatePaid {
		_ = tx.Rollback()
		return CodeAlreadyPaid
	}
	if locked.State != model.StatePending {
		_ = tx.Rollback()
		return CodeTransactionCanceled
	}

	if err := s.transactions.TxUpdateState(ctx, tx, tr.ID, model.StatePaid, model.StampCompleted); err != nil {
		_ = tx.Rollback()
		l.Error().Err(err).Msg("State update failed")
		return CodeInternalError
	}

	if err := s.users.TxIncrementBalance(ctx, tx, locked.OwnerID, locked.Amount); err != nil {
		_ = tx.Rollback()
		l.Error().Err(err).Msg("Balance update failed")
		return CodeInternalError
	}

	if err := tx.Commit(); err != nil {
		l.Error().Err(err).Msg("TX commit failed")
		return CodeInternalError
	}

	return CodeSuccess
}

func (s *Service) settleCancel(ctx context.Context, id uuid.UUID, to model.TransactionState, stamp model.StampColumn) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return err
	}

	locked, err := s.transactions.TxRead(ctx, tx, id)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	if !locked.State.CanTransition(to) {
		// settled concurrently; nothing left to do
		_ = tx.Rollback()
		return nil
	}

	if err := s.transactions.TxUpdateState(ctx, tx, id, to, stamp); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
