package market_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skinsbay/internal/app/apperr"
	"skinsbay/internal/app/config"
	"skinsbay/internal/app/model"
	"skinsbay/internal/app/queue"
	"skinsbay/internal/app/service/market"
	marketmock "skinsbay/internal/app/service/market/mock"
	storagemock "skinsbay/internal/app/storage/mock"
	"skinsbay/pkg/steam"
)

type fixture struct {
	svc          *market.Service
	db           sqlmock.Sqlmock
	users        *storagemock.MockUserRepository
	skins        *storagemock.MockSkinRepository
	transactions *storagemock.MockTransactionRepository
	dispatcher   *marketmock.MockDispatcher
	jobs         *marketmock.MockEnqueuer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctrl := gomock.NewController(t)
	f := &fixture{
		db:           mock,
		users:        storagemock.NewMockUserRepository(ctrl),
		skins:        storagemock.NewMockSkinRepository(ctrl),
		transactions: storagemock.NewMockTransactionRepository(ctrl),
		dispatcher:   marketmock.NewMockDispatcher(ctrl),
		jobs:         marketmock.NewMockEnqueuer(ctrl),
	}

	svc, err := market.NewService(db, config.TelegramConfig{
		ChannelID: "@skinsbay",
		BotURL:    "https://t.me/skinsbay_bot",
	}, f.users, f.skins, f.transactions, f.dispatcher, f.jobs, 15*time.Second)
	require.NoError(t, err)
	f.svc = svc

	return f
}

func tradeReadyUser(balance string) *model.User {
	return &model.User{
		ID:       uuid.New(),
		SteamID:  "76561198000000001",
		TradeURL: "https://steamcommunity.com/tradeoffer/new/?partner=1&token=abc",
		Balance:  decimal.RequireFromString(balance),
	}
}

func listedSkin(sellerID uuid.UUID, price string) *model.Skin {
	p := decimal.RequireFromString(price)
	rate := decimal.RequireFromString("0.05")
	commission := p.Mul(rate)
	return &model.Skin{
		ID:             uuid.New(),
		SellerID:       sellerID,
		MarketHashName: "AK-47 | Redline (Field-Tested)",
		AssetID:        "10000001",
		Price:          p,
		CommissionRate: rate,
		CommissionAmount: commission,
		SellerRevenue:  p.Sub(commission),
		MessageID:      sql.NullString{String: "42", Valid: true},
		Status:         model.SkinStatusPending,
	}
}

func TestBuySkinSuccess(t *testing.T) {
	f := newFixture(t)
	buyer := tradeReadyUser("10000.00")
	seller := tradeReadyUser("0.00")
	skin := listedSkin(seller.ID, "5000.00")
	trID := uuid.New()

	commission := skin.Price.Mul(skin.CommissionRate)
	revenue := skin.Price.Sub(commission)

	f.db.ExpectBegin()
	f.users.EXPECT().TxRead(gomock.Any(), gomock.Any(), buyer.ID).Return(buyer, nil)
	f.skins.EXPECT().TxRead(gomock.Any(), gomock.Any(), skin.ID).Return(skin, nil)
	f.users.EXPECT().TxRead(gomock.Any(), gomock.Any(), seller.ID).Return(seller, nil)
	f.users.EXPECT().TxIncrementBalance(gomock.Any(), gomock.Any(), buyer.ID, skin.Price.Neg()).Return(nil)
	f.users.EXPECT().TxIncrementBalance(gomock.Any(), gomock.Any(), seller.ID, revenue).Return(nil)
	f.skins.EXPECT().TxMarkSold(gomock.Any(), gomock.Any(), skin.ID, model.SkinStatusPending, buyer.ID, commission, revenue).Return(nil)
	f.transactions.EXPECT().TxCreate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, m *model.Transaction) (*model.Transaction, error) {
			assert.Equal(t, model.KindTrade, m.Kind)
			assert.Equal(t, model.StatePending, m.State)
			assert.Equal(t, seller.ID, m.OwnerID)
			assert.Equal(t, buyer.ID, m.ReceiverID.UUID)
			m.ID = trID
			return m, nil
		})
	f.dispatcher.EXPECT().HasAsset(gomock.Any(), seller.SteamID, skin.AssetID).Return(true, nil)
	f.dispatcher.EXPECT().SendOffer(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *steam.SendOfferRequest, out *steam.SendOfferResponse) error {
			assert.Equal(t, buyer.SteamID, in.PartnerSteamID)
			assert.Equal(t, []string{skin.AssetID}, in.AssetIDs)
			out.OfferID = "offer-77"
			return nil
		})
	f.transactions.EXPECT().TxSetOfferID(gomock.Any(), gomock.Any(), trID, "offer-77").Return(nil)
	f.db.ExpectCommit()

	f.jobs.EXPECT().Enqueue(gomock.Any(), queue.KindCheckTradeOffer, gomock.Any(), 15*time.Second).Return(nil)
	f.jobs.EXPECT().Enqueue(gomock.Any(), queue.KindUpdateListingStatus, gomock.Any(), time.Duration(0)).Return(nil)
	f.jobs.EXPECT().Enqueue(gomock.Any(), queue.KindNotifyUser, gomock.Any(), time.Duration(0)).Return(nil).Times(2)

	tr, err := f.svc.BuySkin(context.Background(), buyer.ID, skin.ID)
	require.NoError(t, err)
	assert.Equal(t, "offer-77", tr.OfferID.String)
	assert.NoError(t, f.db.ExpectationsWereMet())
}

func TestBuySkinInsufficientFunds(t *testing.T) {
	f := newFixture(t)
	buyer := tradeReadyUser("100.00")
	seller := tradeReadyUser("0.00")
	skin := listedSkin(seller.ID, "5000.00")

	f.db.ExpectBegin()
	f.users.EXPECT().TxRead(gomock.Any(), gomock.Any(), buyer.ID).Return(buyer, nil)
	f.skins.EXPECT().TxRead(gomock.Any(), gomock.Any(), skin.ID).Return(skin, nil)
	f.users.EXPECT().TxRead(gomock.Any(), gomock.Any(), seller.ID).Return(seller, nil)
	f.db.ExpectRollback()

	_, err := f.svc.BuySkin(context.Background(), buyer.ID, skin.ID)
	assert.ErrorIs(t, err, apperr.ErrInsufficientFunds)
	assert.NoError(t, f.db.ExpectationsWereMet())
}

func TestBuySkinSelfPurchase(t *testing.T) {
	f := newFixture(t)
	seller := tradeReadyUser("10000.00")
	skin := listedSkin(seller.ID, "5000.00")

	f.db.ExpectBegin()
	f.users.EXPECT().TxRead(gomock.Any(), gomock.Any(), seller.ID).Return(seller, nil).Times(2)
	f.skins.EXPECT().TxRead(gomock.Any(), gomock.Any(), skin.ID).Return(skin, nil)
	f.db.ExpectRollback()

	_, err := f.svc.BuySkin(context.Background(), seller.ID, skin.ID)
	assert.ErrorIs(t, err, apperr.ErrSelfPurchase)
}

func TestBuySkinUnavailable(t *testing.T) {
	f := newFixture(t)
	buyer := tradeReadyUser("10000.00")
	seller := tradeReadyUser("0.00")
	skin := listedSkin(seller.ID, "5000.00")
	skin.Status = model.SkinStatusSold

	f.db.ExpectBegin()
	f.users.EXPECT().TxRead(gomock.Any(), gomock.Any(), buyer.ID).Return(buyer, nil)
	f.skins.EXPECT().TxRead(gomock.Any(), gomock.Any(), skin.ID).Return(skin, nil)
	f.db.ExpectRollback()

	_, err := f.svc.BuySkin(context.Background(), buyer.ID, skin.ID)
	assert.ErrorIs(t, err, apperr.ErrItemUnavailable)
}

func TestBuySkinSellerNotTradeReady(t *testing.T) {
	f := newFixture(t)
	buyer := tradeReadyUser("10000.00")
	seller := &model.User{ID: uuid.New(), Balance: decimal.Zero}
	skin := listedSkin(seller.ID, "5000.00")

	f.db.ExpectBegin()
	f.users.EXPECT().TxRead(gomock.Any(), gomock.Any(), buyer.ID).Return(buyer, nil)
	f.skins.EXPECT().TxRead(gomock.Any(), gomock.Any(), skin.ID).Return(skin, nil)
	f.users.EXPECT().TxRead(gomock.Any(), gomock.Any(), seller.ID).Return(seller, nil)
	f.db.ExpectRollback()
	f.jobs.EXPECT().Enqueue(gomock.Any(), queue.KindNotifyUser, gomock.Any(), time.Duration(0)).Return(nil)

	_, err := f.svc.BuySkin(context.Background(), buyer.ID, skin.ID)
	assert.ErrorIs(t, err, apperr.ErrNotTradeReady)
}

func TestBuySkinItemGone(t *testing.T) {
	f := newFixture(t)
	buyer := tradeReadyUser("10000.00")
	seller := tradeReadyUser("0.00")
	skin := listedSkin(seller.ID, "5000.00")

	f.db.ExpectBegin()
	f.users.EXPECT().TxRead(gomock.Any(), gomock.Any(), buyer.ID).Return(buyer, nil)
	f.skins.EXPECT().TxRead(gomock.Any(), gomock.Any(), skin.ID).Return(skin, nil)
	f.users.EXPECT().TxRead(gomock.Any(), gomock.Any(), seller.ID).Return(seller, nil)
	f.users.EXPECT().TxIncrementBalance(gomock.Any(), gomock.Any(), buyer.ID, gomock.Any()).Return(nil)
	f.users.EXPECT().TxIncrementBalance(gomock.Any(), gomock.Any(), seller.ID, gomock.Any()).Return(nil)
	f.skins.EXPECT().TxMarkSold(gomock.Any(), gomock.Any(), skin.ID, gomock.Any(), buyer.ID, gomock.Any(), gomock.Any()).Return(nil)
	f.transactions.EXPECT().TxCreate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, m *model.Transaction) (*model.Transaction, error) {
			m.ID = uuid.New()
			return m, nil
		})
	f.dispatcher.EXPECT().HasAsset(gomock.Any(), seller.SteamID, skin.AssetID).Return(false, nil)
	f.db.ExpectRollback()

	// listing and its channel post are purged
	f.skins.EXPECT().Delete(gomock.Any(), skin.ID).Return(nil)
	f.jobs.EXPECT().Enqueue(gomock.Any(), queue.KindDeleteListingMessage, gomock.Any(), time.Duration(0)).Return(nil)

	_, err := f.svc.BuySkin(context.Background(), buyer.ID, skin.ID)
	assert.ErrorIs(t, err, apperr.ErrItemGone)
	assert.NoError(t, f.db.ExpectationsWereMet())
}

func TestBuySkinDispatchFailure(t *testing.T) {
	f := newFixture(t)
	buyer := tradeReadyUser("10000.00")
	seller := tradeReadyUser("0.00")
	skin := listedSkin(seller.ID, "5000.00")

	f.db.ExpectBegin()
	f.users.EXPECT().TxRead(gomock.Any(), gomock.Any(), buyer.ID).Return(buyer, nil)
	f.skins.EXPECT().TxRead(gomock.Any(), gomock.Any(), skin.ID).Return(skin, nil)
	f.users.EXPECT().TxRead(gomock.Any(), gomock.Any(), seller.ID).Return(seller, nil)
	f.users.EXPECT().TxIncrementBalance(gomock.Any(), gomock.Any(), buyer.ID, gomock.Any()).Return(nil)
	f.users.EXPECT().TxIncrementBalance(gomock.Any(), gomock.Any(), seller.ID, gomock.Any()).Return(nil)
	f.skins.EXPECT().TxMarkSold(gomock.Any(), gomock.Any(), skin.ID, gomock.Any(), buyer.ID, gomock.Any(), gomock.Any()).Return(nil)
	f.transactions.EXPECT().TxCreate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, m *model.Transaction) (*model.Transaction, error) {
			m.ID = uuid.New()
			return m, nil
		})
	f.dispatcher.EXPECT().HasAsset(gomock.Any(), seller.SteamID, skin.AssetID).Return(true, nil)
	f.dispatcher.EXPECT().SendOffer(gomock.Any(), gomock.Any(), gomock.Any()).Return(assert.AnError)
	f.db.ExpectRollback()

	// the rolled back purchase is remembered as a FAILED trade
	f.transactions.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *model.Transaction) (*model.Transaction, error) {
			assert.Equal(t, model.StateFailed, m.State)
			assert.True(t, m.CanceledAt.Valid)
			return m, nil
		})

	_, err := f.svc.BuySkin(context.Background(), buyer.ID, skin.ID)
	assert.ErrorIs(t, err, apperr.ErrDispatchFailed)
	assert.NoError(t, f.db.ExpectationsWereMet())
}

func TestCreateListingAdvertisingCashbackFirst(t *testing.T) {
	f := newFixture(t)
	seller := tradeReadyUser("500.00")
	seller.Cashback = decimal.RequireFromString("1500.00")

	f.skins.EXPECT().LatestAdvertisedExpiry(gomock.Any()).Return(sql.NullTime{}, nil)
	f.db.ExpectBegin()
	f.users.EXPECT().TxRead(gomock.Any(), gomock.Any(), seller.ID).Return(seller, nil)
	// 2h x 1000: cashback covers 1500, balance the remaining 500
	f.users.EXPECT().TxIncrementCashback(gomock.Any(), gomock.Any(), seller.ID, decimal.RequireFromString("-1500.00")).Return(nil)
	f.users.EXPECT().TxIncrementBalance(gomock.Any(), gomock.Any(), seller.ID, decimal.RequireFromString("-500.00")).Return(nil)
	f.skins.EXPECT().TxCreate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, m *model.Skin) (*model.Skin, error) {
			m.ID = uuid.New()
			return m, nil
		})
	f.db.ExpectCommit()
	f.jobs.EXPECT().Enqueue(gomock.Any(), queue.KindPublishListing, gomock.Any(), gomock.Any()).Return(nil)

	skin, err := f.svc.CreateListing(context.Background(), seller.ID, market.CreateListingInput{
		MarketHashName:   "AWP | Asiimov (Battle-Scarred)",
		AssetID:          "10000002",
		Price:            decimal.RequireFromString("10000.00"),
		Advertising:      true,
		AdvertisingHours: 2,
	})
	require.NoError(t, err)
	// 5% base + 2% advertising
	assert.True(t, decimal.RequireFromString("0.07").Equal(skin.CommissionRate), skin.CommissionRate.String())
	assert.True(t, decimal.RequireFromString("9300.00").Equal(skin.SellerRevenue), skin.SellerRevenue.String())
	assert.True(t, skin.ExpiresAt.Valid)
	assert.NoError(t, f.db.ExpectationsWereMet())
}

func TestCreateListingInsufficientFunds(t *testing.T) {
	f := newFixture(t)
	seller := tradeReadyUser("100.00")

	f.skins.EXPECT().LatestAdvertisedExpiry(gomock.Any()).Return(sql.NullTime{}, nil)
	f.db.ExpectBegin()
	f.users.EXPECT().TxRead(gomock.Any(), gomock.Any(), seller.ID).Return(seller, nil)
	f.db.ExpectRollback()

	_, err := f.svc.CreateListing(context.Background(), seller.ID, market.CreateListingInput{
		MarketHashName:   "AWP | Asiimov (Battle-Scarred)",
		AssetID:          "10000002",
		Price:            decimal.RequireFromString("10000.00"),
		Advertising:      true,
		AdvertisingHours: 5,
	})
	assert.ErrorIs(t, err, apperr.ErrInsufficientFunds)
}

func TestInitiateWithdrawal(t *testing.T) {
	f := newFixture(t)
	user := tradeReadyUser("9000.00")
	amount := decimal.RequireFromString("5000.00")

	f.db.ExpectBegin()
	f.users.EXPECT().TxRead(gomock.Any(), gomock.Any(), user.ID).Return(user, nil)
	f.users.EXPECT().TxIncrementBalance(gomock.Any(), gomock.Any(), user.ID, amount.Neg()).Return(nil)
	f.transactions.EXPECT().TxCreate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, m *model.Transaction) (*model.Transaction, error) {
			assert.Equal(t, model.KindWithdraw, m.Kind)
			assert.Equal(t, model.StatePending, m.State)
			assert.Equal(t, "4539578763621486", m.CardNumber.String)
			m.ID = uuid.New()
			return m, nil
		})
	f.db.ExpectCommit()

	tr, err := f.svc.InitiateWithdrawal(context.Background(), user.ID, "4539578763621486", amount)
	require.NoError(t, err)
	assert.Equal(t, model.StatePending, tr.State)
	assert.NoError(t, f.db.ExpectationsWereMet())
}

func TestInitiateWithdrawalBadCard(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.InitiateWithdrawal(context.Background(), uuid.New(), "4539578763621487", decimal.RequireFromString("100.00"))
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestGrantBonus(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	amount := decimal.RequireFromString("2500.00")

	f.db.ExpectBegin()
	f.users.EXPECT().TxRead(gomock.Any(), gomock.Any(), userID).Return(&model.User{ID: userID}, nil)
	f.users.EXPECT().TxIncrementCashback(gomock.Any(), gomock.Any(), userID, amount).Return(nil)
	f.transactions.EXPECT().TxCreate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, m *model.Transaction) (*model.Transaction, error) {
			assert.Equal(t, model.KindBonus, m.Kind)
			assert.Equal(t, model.StatePaid, m.State)
			assert.True(t, m.CompletedAt.Valid)
			m.ID = uuid.New()
			return m, nil
		})
	f.db.ExpectCommit()

	tr, err := f.svc.GrantBonus(context.Background(), userID, amount)
	require.NoError(t, err)
	assert.Equal(t, model.StatePaid, tr.State)
}

func TestCancelListing(t *testing.T) {
	f := newFixture(t)
	sellerID := uuid.New()
	skin := listedSkin(sellerID, "5000.00")

	f.skins.EXPECT().Read(gomock.Any(), skin.ID).Return(skin, nil)
	f.skins.EXPECT().UpdateStatus(gomock.Any(), skin.ID, model.SkinStatusPending, model.SkinStatusCanceled).Return(nil)
	f.jobs.EXPECT().Enqueue(gomock.Any(), queue.KindDeleteListingMessage, gomock.Any(), time.Duration(0)).Return(nil)

	assert.NoError(t, f.svc.CancelListing(context.Background(), sellerID, skin.ID))
}

func TestCancelListingForeignListing(t *testing.T) {
	f := newFixture(t)
	skin := listedSkin(uuid.New(), "5000.00")

	f.skins.EXPECT().Read(gomock.Any(), skin.ID).Return(skin, nil)

	err := f.svc.CancelListing(context.Background(), uuid.New(), skin.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
