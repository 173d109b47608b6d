// Package market owns the trade-settlement branch of the transaction state
// machine: listing lifecycle, the atomic purchase session and the money
// movements it implies.
package market

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ferdypruis/go-luhn"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"skinsbay/internal/app/apperr"
	"skinsbay/internal/app/config"
	"skinsbay/internal/app/logger"
	"skinsbay/internal/app/model"
	"skinsbay/internal/app/queue"
	"skinsbay/internal/app/storage"
	"skinsbay/pkg/steam"
)

// nowFn is swapped in tests
var nowFn = time.Now

var (
	baseCommissionRate        = decimal.NewFromFloat(0.05)
	advertisingCommissionRate = decimal.NewFromFloat(0.02)
	advertisingHourCost       = decimal.NewFromInt(1000)
)

// advertised listings queue up behind each other with a small gap
const advertisingGap = 2 * time.Minute

type Service struct {
	db           *sql.DB
	tg           config.TelegramConfig
	users        storage.UserRepository
	skins        storage.SkinRepository
	transactions storage.TransactionRepository
	dispatcher   Dispatcher
	jobs         Enqueuer
	pollDelay    time.Duration
	logger       logger.Logger
}

func (s *Service) LoggerComponent() string {
	return "Market.Service"
}

func NewService(
	db *sql.DB,
	tg config.TelegramConfig,
	users storage.UserRepository,
	skins storage.SkinRepository,
	transactions storage.TransactionRepository,
	dispatcher Dispatcher,
	jobs Enqueuer,
	pollDelay time.Duration,
) (*Service, error) {
	s := &Service{
		db:           db,
		tg:           tg,
		users:        users,
		skins:        skins,
		transactions: transactions,
		dispatcher:   dispatcher,
		jobs:         jobs,
		pollDelay:    pollDelay,
	}
	s.logger = logger.Global().Component(s)

	return s, nil
}

// BuySkin settles a purchase: debits the buyer, credits the seller, flips
// the listing to sold, records the trade transaction and dispatches the
// transfer — all inside one serializable session. Any dispatch failure
// rolls the whole session back; nothing is ever left half-applied.
func (s *Service) BuySkin(ctx context.Context, buyerID, skinID uuid.UUID) (*model.Transaction, error) {
	l := s.logger.With().
		Str("buyer_id", buyerID.String()).
		Str("skin_id", skinID.String()).
		Logger()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return nil, fmt.Errorf("tx begin: %w", err)
	}

	buyer, err := s.users.TxRead(ctx, tx, buyerID)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("buyer: %w", err)
	}

	skin, err := s.skins.TxRead(ctx, tx, skinID)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("skin: %w", err)
	}
	if !skin.Status.Purchasable() {
		_ = tx.Rollback()
		return nil, apperr.ErrItemUnavailable
	}

	seller, err := s.users.TxRead(ctx, tx, skin.SellerID)
	if err != nil {
		_ = tx.Rollback()
		return nil, fmt.Errorf("seller: %w", err)
	}

	if buyer.Balance.LessThan(skin.Price) {
		_ = tx.Rollback()
		return nil, apperr.ErrInsufficientFunds
	}

	if buyer.ID == seller.ID {
		_ = tx.Rollback()
		return nil, apperr.ErrSelfPurchase
	}

	if !buyer.TradeReady() {
		_ = tx.Rollback()
		return nil, fmt.Errorf("buyer: %w", apperr.ErrNotTradeReady)
	}
	if !seller.TradeReady() {
		_ = tx.Rollback()
		s.notify(ctx, seller.ID, fmt.Sprintf(
			"Your listing %q attracted a buyer, but your Steam trade URL is missing. Add it to sell.",
			skin.MarketHashName))
		return nil, fmt.Errorf("seller: %w", apperr.ErrNotTradeReady)
	}

	commission := skin.Price.Mul(skin.CommissionRate)
	sellerRevenue := skin.Price.Sub(commission)

	if err := s.users.TxIncrementBalance(ctx, tx, buyer.ID, skin.Price.Neg()); err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	if err := s.users.TxIncrementBalance(ctx, tx, seller.ID, sellerRevenue); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := s.skins.TxMarkSold(ctx, tx, skin.ID, skin.Status, buyer.ID, commission, sellerRevenue); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	tr, err := s.transactions.TxCreate(ctx, tx, &model.Transaction{
		Kind:       model.KindTrade,
		State:      model.StatePending,
		Amount:     skin.Price,
		OwnerID:    seller.ID,
		ReceiverID: uuid.NullUUID{UUID: buyer.ID, Valid: true},
		SkinID:     uuid.NullUUID{UUID: skin.ID, Valid: true},
	})
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	// Dispatch before commit: the ledger and listing mutations become
	// visible only together with a successfully sent offer.
	present, err := s.dispatcher.HasAsset(ctx, seller.SteamID, skin.AssetID)
	if err != nil {
		_ = tx.Rollback()
		s.recordDispatchFailure(ctx, l, tr)
		return nil, apperr.ErrDispatchFailed
	}
	if !present {
		_ = tx.Rollback()
		l.Warn().Str("asset_id", skin.AssetID).Msg("Item vanished from seller holdings")
		if err := s.skins.Delete(ctx, skin.ID); err != nil && !errors.Is(err, apperr.ErrNotFound) {
			l.Error().Err(err).Msg("Listing delete failed")
		}
		s.deleteListingMessage(ctx, skin)
		return nil, apperr.ErrItemGone
	}

	offer := &steam.SendOfferResponse{}
	err = s.dispatcher.SendOffer(ctx, &steam.SendOfferRequest{
		PartnerSteamID: buyer.SteamID,
		TradeURL:       buyer.TradeURL,
		AssetIDs:       []string{skin.AssetID},
	}, offer)
	if err != nil {
		_ = tx.Rollback()
		l.Error().Err(err).Msg("Trade dispatch failed")
		s.recordDispatchFailure(ctx, l, tr)
		return nil, apperr.ErrDispatchFailed
	}

	if err := s.transactions.TxSetOfferID(ctx, tx, tr.ID, offer.OfferID); err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	tr.OfferID = sql.NullString{String: offer.OfferID, Valid: true}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("tx commit: %w", err)
	}

	l.Info().
		Str("transaction_id", tr.ID.String()).
		Str("offer_id", offer.OfferID).
		Str("amount", skin.Price.String()).
		Msg("Purchase settled, awaiting trade offer")

	// settlement is committed; everything below is best effort
	if err := s.jobs.Enqueue(ctx, queue.KindCheckTradeOffer, queue.CheckTradeOfferJob{
		TransactionID: tr.ID,
		OfferID:       offer.OfferID,
	}, s.pollDelay); err != nil {
		l.Error().Err(err).Msg("Trade offer poll enqueue failed")
	}

	if skin.MessageID.Valid && s.tg.ChannelID != "" {
		s.enqueueJob(ctx, queue.KindUpdateListingStatus, queue.UpdateListingStatusJob{
			SkinID:    skin.ID,
			ChatID:    s.tg.ChannelID,
			MessageID: skin.MessageID.String,
			Caption: fmt.Sprintf("✅ SOLD ✅\n\n<s>%s — %s</s>\n\n👤 Buyer: %s",
				skin.MarketHashName, skin.Price.String(), buyer.Personaname),
		})
	}
	s.notify(ctx, buyer.ID, fmt.Sprintf("Trade offer for %q sent. Accept it on Steam to finish the purchase.", skin.MarketHashName))
	s.notify(ctx, seller.ID, fmt.Sprintf("Your %q was bought for %s. Revenue %s will stay on your balance once the trade completes.",
		skin.MarketHashName, skin.Price.String(), sellerRevenue.String()))

	return tr, nil
}

// recordDispatchFailure keeps the audit trail: the rolled-back purchase is
// remembered as a FAILED trade transaction.
func (s *Service) recordDispatchFailure(ctx context.Context, l zerolog.Logger, tr *model.Transaction) {
	tr.ID = uuid.Nil
	tr.State = model.StateFailed
	tr.CanceledAt = sql.NullTime{Time: nowFn(), Valid: true}

	if _, err := s.transactions.Create(ctx, tr); err != nil {
		l.Error().Err(err).Msg("Failed-transaction record create failed")
	}
}

type CreateListingInput struct {
	MarketHashName   string          `json:"market_hash_name" validate:"required"`
	AssetID          string          `json:"asset_id" validate:"required"`
	IconURL          string          `json:"icon_url"`
	Description      string          `json:"description"`
	Price            decimal.Decimal `json:"price"`
	Advertising      bool            `json:"advertising"`
	AdvertisingHours int             `json:"advertising_hours"`
}

// CreateListing freezes the commission figures at listing time and, for
// advertised listings, charges the advertising cost cashback-first and
// schedules the channel publication.
func (s *Service) CreateListing(ctx context.Context, sellerID uuid.UUID, in CreateListingInput) (*model.Skin, error) {
	l := s.logger.With().Str("seller_id", sellerID.String()).Logger()

	if in.Price.IsNegative() {
		return nil, apperr.ErrInvalidInput
	}

	rate := decimal.Zero
	if in.Price.IsPositive() {
		rate = baseCommissionRate
	}

	cost := decimal.Zero
	if in.Advertising {
		if in.AdvertisingHours <= 0 {
			return nil, apperr.ErrInvalidInput
		}
		rate = rate.Add(advertisingCommissionRate)
		cost = advertisingHourCost.Mul(decimal.NewFromInt(int64(in.AdvertisingHours)))
	}

	now := nowFn()
	publishAt := now
	var expiresAt time.Time
	if in.Advertising {
		latest, err := s.skins.LatestAdvertisedExpiry(ctx)
		if err != nil {
			return nil, err
		}
		if latest.Valid && latest.Time.After(now) {
			publishAt = latest.Time.Add(advertisingGap)
		}
		expiresAt = publishAt.Add(time.Duration(in.AdvertisingHours) * time.Hour)
	}

	commission := in.Price.Mul(rate)

	m := &model.Skin{
		SellerID:         sellerID,
		MarketHashName:   in.MarketHashName,
		AssetID:          in.AssetID,
		IconURL:          in.IconURL,
		Description:      in.Description,
		Price:            in.Price,
		CommissionRate:   rate,
		CommissionAmount: commission,
		SellerRevenue:    in.Price.Sub(commission),
		Advertising:      in.Advertising,
		AdvertisingHours: in.AdvertisingHours,
		AdvertisingCost:  cost,
		Status:           model.SkinStatusAvailable,
	}
	if in.Advertising {
		m.PublishAt = sql.NullTime{Time: publishAt, Valid: true}
		m.ExpiresAt = sql.NullTime{Time: expiresAt, Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return nil, fmt.Errorf("tx begin: %w", err)
	}

	seller, err := s.users.TxRead(ctx, tx, sellerID)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if cost.IsPositive() {
		// cashback is the spend-first pool
		fromCashback := decimal.Min(seller.Cashback, cost)
		fromBalance := cost.Sub(fromCashback)
		if seller.Balance.LessThan(fromBalance) {
			_ = tx.Rollback()
			return nil, apperr.ErrInsufficientFunds
		}
		if fromCashback.IsPositive() {
			if err := s.users.TxIncrementCashback(ctx, tx, sellerID, fromCashback.Neg()); err != nil {
				_ = tx.Rollback()
				return nil, err
			}
		}
		if fromBalance.IsPositive() {
			if err := s.users.TxIncrementBalance(ctx, tx, sellerID, fromBalance.Neg()); err != nil {
				_ = tx.Rollback()
				return nil, err
			}
		}
	}

	if _, err := s.skins.TxCreate(ctx, tx, m); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("tx commit: %w", err)
	}

	l.Info().
		Str("skin_id", m.ID.String()).
		Str("price", m.Price.String()).
		Bool("advertising", m.Advertising).
		Msg("Listing created")

	if m.Advertising && s.tg.ChannelID != "" {
		s.enqueueJobDelayed(ctx, queue.KindPublishListing, queue.PublishListingJob{
			SkinID:     m.ID,
			ChatID:     s.tg.ChannelID,
			Caption:    fmt.Sprintf("New skin for sale: %s — %s", m.MarketHashName, m.Price.String()),
			PhotoURL:   m.IconURL,
			ButtonText: buyButtonText(m.Price),
			ButtonURL:  s.buyButtonURL(m.ID),
		}, publishAt.Sub(now))
	}

	return m, nil
}

// CancelListing is the explicit cancel of a still-listed item. It never
// touches an in-flight settlement.
func (s *Service) CancelListing(ctx context.Context, sellerID, skinID uuid.UUID) error {
	skin, err := s.skins.Read(ctx, skinID)
	if err != nil {
		return err
	}
	if skin.SellerID != sellerID {
		return apperr.ErrNotFound
	}
	if !skin.Status.Purchasable() {
		return apperr.ErrItemUnavailable
	}

	if err := s.skins.UpdateStatus(ctx, skinID, skin.Status, model.SkinStatusCanceled); err != nil {
		return err
	}

	s.deleteListingMessage(ctx, skin)

	return nil
}

// InitiateWithdrawal debits the balance and opens a PENDING withdrawal to a
// luhn-valid card. The debit is rejected up front, never rolled back after.
func (s *Service) InitiateWithdrawal(ctx context.Context, userID uuid.UUID, cardNumber string, amount decimal.Decimal) (*model.Transaction, error) {
	l := s.logger.With().Str("user_id", userID.String()).Logger()

	if cardNumber == "" || !luhn.Valid(cardNumber) {
		return nil, apperr.ErrInvalidInput
	}
	if !amount.IsPositive() {
		return nil, apperr.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return nil, fmt.Errorf("tx begin: %w", err)
	}

	user, err := s.users.TxRead(ctx, tx, userID)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if user.Balance.LessThan(amount) {
		_ = tx.Rollback()
		return nil, apperr.ErrInsufficientFunds
	}

	if err := s.users.TxIncrementBalance(ctx, tx, userID, amount.Neg()); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	tr, err := s.transactions.TxCreate(ctx, tx, &model.Transaction{
		Kind:       model.KindWithdraw,
		State:      model.StatePending,
		Amount:     amount,
		OwnerID:    userID,
		CardNumber: sql.NullString{String: cardNumber, Valid: true},
	})
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("tx commit: %w", err)
	}

	l.Info().
		Str("transaction_id", tr.ID.String()).
		Str("amount", amount.String()).
		Msg("Withdrawal initiated")

	return tr, nil
}

// GrantBonus credits the cashback pool and records a settled BONUS
// transaction.
func (s *Service) GrantBonus(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*model.Transaction, error) {
	if !amount.IsPositive() {
		return nil, apperr.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return nil, fmt.Errorf("tx begin: %w", err)
	}

	if _, err := s.users.TxRead(ctx, tx, userID); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := s.users.TxIncrementCashback(ctx, tx, userID, amount); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	tr, err := s.transactions.TxCreate(ctx, tx, &model.Transaction{
		Kind:        model.KindBonus,
		State:       model.StatePaid,
		Amount:      amount,
		OwnerID:     userID,
		CompletedAt: sql.NullTime{Time: nowFn(), Valid: true},
	})
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("tx commit: %w", err)
	}

	return tr, nil
}

func buyButtonText(price decimal.Decimal) string {
	if price.IsZero() {
		return "FREE 😊"
	}
	return price.String() + " so'm"
}

func (s *Service) buyButtonURL(skinID uuid.UUID) string {
	if s.tg.BotURL == "" {
		return ""
	}
	return fmt.Sprintf("%s?startapp=skins_buy_%s", s.tg.BotURL, skinID)
}

func (s *Service) notify(ctx context.Context, userID uuid.UUID, text string) {
	s.enqueueJob(ctx, queue.KindNotifyUser, queue.NotifyUserJob{UserID: userID, Text: text})
}

func (s *Service) deleteListingMessage(ctx context.Context, skin *model.Skin) {
	if !skin.MessageID.Valid || s.tg.ChannelID == "" {
		return
	}
	s.enqueueJob(ctx, queue.KindDeleteListingMessage, queue.DeleteListingMessageJob{
		ChatID:    s.tg.ChannelID,
		MessageID: skin.MessageID.String,
	})
}

func (s *Service) enqueueJob(ctx context.Context, kind queue.Kind, data interface{}) {
	s.enqueueJobDelayed(ctx, kind, data, 0)
}

func (s *Service) enqueueJobDelayed(ctx context.Context, kind queue.Kind, data interface{}, delay time.Duration) {
	if err := s.jobs.Enqueue(ctx, kind, data, delay); err != nil {
		s.logger.Error().Err(err).Str("job_kind", string(kind)).Msg("Enqueue failed")
	}
}
