// Package reconciler folds asynchronously-arriving trade offer outcomes
// back into ledger state. Offers were dispatched by an already committed
// purchase, so a failed offer is compensated in its own transaction; the
// compensation applies exactly once no matter how often the poll result is
// delivered.
package reconciler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"skinsbay/internal/app/apperr"
	"skinsbay/internal/app/config"
	"skinsbay/internal/app/logger"
	"skinsbay/internal/app/model"
	"skinsbay/internal/app/queue"
	"skinsbay/internal/app/storage"
	"skinsbay/pkg/steam"
)

//go:generate mockgen -source=./service.go -destination=./mock/service.go -package=reconcilermock

// OfferPoller queries the current state of a dispatched trade offer.
type OfferPoller interface {
	GetOffer(ctx context.Context, in *steam.GetOfferRequest, out *steam.GetOfferResponse) error
}

// Enqueuer schedules follow-up presentation and notification jobs.
type Enqueuer interface {
	Enqueue(ctx context.Context, kind queue.Kind, data interface{}, delay time.Duration) error
}

type Service struct {
	db           *sql.DB
	tg           config.TelegramConfig
	users        storage.UserRepository
	skins        storage.SkinRepository
	transactions storage.TransactionRepository
	poller       OfferPoller
	jobs         Enqueuer
	logger       logger.Logger
}

func (s *Service) LoggerComponent() string {
	return "Reconciler.Service"
}

func NewService(
	db *sql.DB,
	tg config.TelegramConfig,
	users storage.UserRepository,
	skins storage.SkinRepository,
	transactions storage.TransactionRepository,
	poller OfferPoller,
	jobs Enqueuer,
) (*Service, error) {
	s := &Service{
		db:           db,
		tg:           tg,
		users:        users,
		skins:        skins,
		transactions: transactions,
		poller:       poller,
		jobs:         jobs,
	}
	s.logger = logger.Global().Component(s)

	return s, nil
}

// CheckTradeOffer is the poll job body. Returns queue.ErrRetry while the
// offer has not reached a terminal state.
func (s *Service) CheckTradeOffer(ctx context.Context, job queue.CheckTradeOfferJob) error {
	l := s.logger.With().
		Str("transaction_id", job.TransactionID.String()).
		Str("offer_id", job.OfferID).
		Logger()

	tr, err := s.transactions.Read(ctx, job.TransactionID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			l.Warn().Msg("Transaction gone, dropping poll")
			return nil
		}
		return err
	}
	if tr.State.Terminal() {
		// duplicate delivery after resolution
		return nil
	}
	if !tr.OfferID.Valid || tr.OfferID.String != job.OfferID {
		// a stale or replayed job must never settle against a different offer
		l.Warn().Str("recorded_offer_id", tr.OfferID.String).Msg("Offer id mismatch, dropping poll")
		return nil
	}

	out := &steam.GetOfferResponse{}
	if err := s.poller.GetOffer(ctx, &steam.GetOfferRequest{OfferID: job.OfferID}, out); err != nil {
		l.Error().Err(err).Msg("Offer status fetch failed")
		return err
	}

	switch {
	case out.State == steam.OfferStateAccepted:
		return s.settleAccepted(ctx, l, job.TransactionID)
	case out.State.Failed():
		l.Warn().Int("offer_state", int(out.State)).Msg("Trade offer voided")
		return s.Compensate(ctx, job.TransactionID, "Trade offer was not accepted.")
	default:
		l.Debug().Int("offer_state", int(out.State)).Msg("Trade offer still pending")
		return queue.ErrRetry
	}
}

// OfferExhausted is the dead-letter hook: a poll budget spent without a
// terminal answer counts as a decline.
func (s *Service) OfferExhausted(ctx context.Context, job queue.CheckTradeOfferJob) error {
	l := s.logger.With().
		Str("transaction_id", job.TransactionID.String()).
		Str("offer_id", job.OfferID).
		Logger()
	l.Warn().Msg("Trade offer poll budget exhausted, treating as declined")

	return s.Compensate(ctx, job.TransactionID, "Trade offer expired.")
}

func (s *Service) settleAccepted(ctx context.Context, l zerolog.Logger, transactionID uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return fmt.Errorf("tx begin: %w", err)
	}

	tr, err := s.transactions.TxRead(ctx, tx, transactionID)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if tr.State.Terminal() {
		_ = tx.Rollback()
		return nil
	}

	// balances were already adjusted at purchase time
	if err := s.transactions.TxUpdateState(ctx, tx, transactionID, model.StatePaid, model.StampCompleted); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx commit: %w", err)
	}

	l.Info().Msg("Trade offer accepted, transaction settled")

	s.announceOutcome(ctx, tr, true)

	return nil
}

// Compensate reverses a committed purchase after its trade offer was
// voided: buyer gets the price back, the seller revenue is withdrawn and
// the listing returns to the market. Safe to call repeatedly; only the
// first call past the state check applies.
func (s *Service) Compensate(ctx context.Context, transactionID uuid.UUID, reason string) error {
	l := s.logger.With().Str("transaction_id", transactionID.String()).Logger()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return fmt.Errorf("tx begin: %w", err)
	}

	tr, err := s.transactions.TxRead(ctx, tx, transactionID)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if tr.State.Terminal() {
		_ = tx.Rollback()
		return nil
	}
	if !tr.SkinID.Valid || !tr.ReceiverID.Valid {
		_ = tx.Rollback()
		return fmt.Errorf("transaction %s is not a trade: %w", transactionID, apperr.ErrInvalidInput)
	}

	skin, err := s.skins.TxRead(ctx, tx, tr.SkinID.UUID)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("skin: %w", err)
	}

	if err := s.transactions.TxUpdateState(ctx, tx, transactionID, model.StateFailed, model.StampCanceled); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := s.users.TxIncrementBalance(ctx, tx, tr.ReceiverID.UUID, tr.Amount); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := s.users.TxIncrementBalance(ctx, tx, tr.OwnerID, skin.SellerRevenue.Neg()); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := s.skins.TxRestoreListing(ctx, tx, skin.ID); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx commit: %w", err)
	}

	l.Warn().Str("reason", reason).Msg("Purchase compensated")

	s.announceOutcome(ctx, tr, false)

	return nil
}

// announceOutcome runs after commit; failures are logged, never escalated.
func (s *Service) announceOutcome(ctx context.Context, tr *model.Transaction, accepted bool) {
	l := s.logger.With().Str("transaction_id", tr.ID.String()).Logger()

	if !tr.SkinID.Valid {
		return
	}
	skin, err := s.skins.Read(ctx, tr.SkinID.UUID)
	if err != nil {
		l.Error().Err(err).Msg("Skin lookup for announcement failed")
		return
	}

	if accepted {
		if tr.ReceiverID.Valid {
			s.enqueueJob(ctx, queue.KindNotifyUser, queue.NotifyUserJob{
				UserID: tr.ReceiverID.UUID,
				Text:   fmt.Sprintf("Trade for %q completed. Enjoy!", skin.MarketHashName),
			})
		}
		s.enqueueJob(ctx, queue.KindNotifyUser, queue.NotifyUserJob{
			UserID: tr.OwnerID,
			Text:   fmt.Sprintf("Your %q was delivered. %s stays on your balance.", skin.MarketHashName, skin.SellerRevenue.String()),
		})
		if skin.MessageID.Valid && s.tg.ChannelID != "" {
			var buyerName string
			if tr.ReceiverID.Valid {
				if buyer, err := s.users.Read(ctx, tr.ReceiverID.UUID); err == nil {
					buyerName = buyer.Personaname
				}
			}
			s.enqueueJob(ctx, queue.KindUpdateListingStatus, queue.UpdateListingStatusJob{
				SkinID:    skin.ID,
				ChatID:    s.tg.ChannelID,
				MessageID: skin.MessageID.String,
				Caption: fmt.Sprintf("✅ SOLD ✅\n\n<s>%s — %s</s>\n\n👤 Buyer: %s",
					skin.MarketHashName, skin.Price.String(), buyerName),
			})
		}
		return
	}

	if tr.ReceiverID.Valid {
		s.enqueueJob(ctx, queue.KindNotifyUser, queue.NotifyUserJob{
			UserID: tr.ReceiverID.UUID,
			Text:   fmt.Sprintf("Purchase of %q was canceled, %s returned to your balance.", skin.MarketHashName, tr.Amount.String()),
		})
	}
	s.enqueueJob(ctx, queue.KindNotifyUser, queue.NotifyUserJob{
		UserID: tr.OwnerID,
		Text:   fmt.Sprintf("Sale of %q was canceled; the item is listed again.", skin.MarketHashName),
	})
	if skin.MessageID.Valid && s.tg.ChannelID != "" {
		s.enqueueJob(ctx, queue.KindUpdateListingStatus, queue.UpdateListingStatusJob{
			SkinID:    skin.ID,
			ChatID:    s.tg.ChannelID,
			MessageID: skin.MessageID.String,
			Caption: fmt.Sprintf("❌ Purchase canceled ❌\n\n%s — %s\n\n<i>Reason: trade offer was not accepted.</i>",
				skin.MarketHashName, skin.Price.String()),
			Restore:    true,
			ButtonText: skin.Price.String() + " so'm",
			ButtonURL:  s.buyButtonURL(skin.ID),
		})
	}
}

func (s *Service) buyButtonURL(skinID uuid.UUID) string {
	if s.tg.BotURL == "" {
		return ""
	}
	return fmt.Sprintf("%s?startapp=skins_buy_%s", s.tg.BotURL, skinID)
}

func (s *Service) enqueueJob(ctx context.Context, kind queue.Kind, data interface{}) {
	if err := s.jobs.Enqueue(ctx, kind, data, 0); err != nil {
		s.logger.Error().Err(err).Str("job_kind", string(kind)).Msg("Enqueue failed")
	}
}
