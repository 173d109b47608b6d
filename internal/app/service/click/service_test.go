package click_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skinsbay/internal/app/apperr"
	"skinsbay/internal/app/config"
	"skinsbay/internal/app/model"
	"skinsbay/internal/app/service/click"
	storagemock "skinsbay/internal/app/storage/mock"
)

const testSecret = "TestSecretKey"

type fixture struct {
	svc          *click.Service
	db           sqlmock.Sqlmock
	users        *storagemock.MockUserRepository
	transactions *storagemock.MockTransactionRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctrl := gomock.NewController(t)
	users := storagemock.NewMockUserRepository(ctrl)
	transactions := storagemock.NewMockTransactionRepository(ctrl)

	svc, err := click.NewService(db, config.ClickConfig{
		ServiceID: "219042",
		SecretKey: testSecret,
	}, users, transactions)
	require.NoError(t, err)

	return &fixture{svc: svc, db: mock, users: users, transactions: transactions}
}

func signedPrepare(userID uuid.UUID) click.Payload {
	p := click.Payload{
		ClickTransID:    "1234567",
		ServiceID:       "219042",
		MerchantTransID: userID.String(),
		Amount:          "5000.00",
		Action:          click.ActionPrepare,
		Error:           "0",
		SignTime:        "2023-08-01 12:00:00",
	}
	p.SignString = click.Sign(testSecret, p)
	return p
}

func signedComplete(userID, prepareID uuid.UUID) click.Payload {
	p := click.Payload{
		ClickTransID:      "1234567",
		ServiceID:         "219042",
		MerchantTransID:   userID.String(),
		MerchantPrepareID: prepareID.String(),
		Amount:            "5000.00",
		Action:            click.ActionComplete,
		Error:             "0",
		SignTime:          "2023-08-01 12:05:00",
	}
	p.SignString = click.Sign(testSecret, p)
	return p
}

func TestPrepareSuccess(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	createdID := uuid.New()

	f.users.EXPECT().Read(gomock.Any(), userID).Return(&model.User{ID: userID}, nil)
	f.transactions.EXPECT().ReadByExternalID(gomock.Any(), "1234567").Return(nil, apperr.ErrNotFound)
	f.transactions.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *model.Transaction) (*model.Transaction, error) {
			assert.Equal(t, model.KindDeposit, m.Kind)
			assert.Equal(t, model.StatePending, m.State)
			assert.Equal(t, userID, m.OwnerID)
			assert.True(t, m.PreparedAt.Valid)
			assert.True(t, decimal.RequireFromString("5000.00").Equal(m.Amount))
			m.ID = createdID
			return m, nil
		})

	res := f.svc.Prepare(context.Background(), signedPrepare(userID))
	assert.Equal(t, click.CodeSuccess, res.Error)
	assert.Equal(t, createdID.String(), res.MerchantPrepareID)
}

func TestPrepareSignFailed(t *testing.T) {
	f := newFixture(t)

	p := signedPrepare(uuid.New())
	p.Amount = "9999.00"

	res := f.svc.Prepare(context.Background(), p)
	assert.Equal(t, click.CodeSignFailed, res.Error)
}

func TestPrepareUnknownUser(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()

	f.users.EXPECT().Read(gomock.Any(), userID).Return(nil, apperr.ErrNotFound)

	res := f.svc.Prepare(context.Background(), signedPrepare(userID))
	assert.Equal(t, click.CodeUserNotFound, res.Error)
}

func TestPrepareDuplicate(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()

	f.users.EXPECT().Read(gomock.Any(), userID).Return(&model.User{ID: userID}, nil)
	f.transactions.EXPECT().ReadByExternalID(gomock.Any(), "1234567").Return(&model.Transaction{
		ID:    uuid.New(),
		State: model.StatePending,
	}, nil)

	res := f.svc.Prepare(context.Background(), signedPrepare(userID))
	assert.Equal(t, click.CodeAlreadyPaid, res.Error)
}

func TestPrepareInsertRace(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()

	f.users.EXPECT().Read(gomock.Any(), userID).Return(&model.User{ID: userID}, nil)
	f.transactions.EXPECT().ReadByExternalID(gomock.Any(), "1234567").Return(nil, apperr.ErrNotFound)
	f.transactions.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, apperr.ErrConflict)

	res := f.svc.Prepare(context.Background(), signedPrepare(userID))
	assert.Equal(t, click.CodeAlreadyPaid, res.Error)
}

func TestCompleteSuccess(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	prepareID := uuid.New()
	amount := decimal.RequireFromString("5000.00")

	tr := &model.Transaction{
		ID:      prepareID,
		Kind:    model.KindDeposit,
		State:   model.StatePending,
		Amount:  amount,
		OwnerID: userID,
	}

	f.transactions.EXPECT().Read(gomock.Any(), prepareID).Return(tr, nil)
	f.db.ExpectBegin()
	f.transactions.EXPECT().TxRead(gomock.Any(), gomock.Any(), prepareID).Return(tr, nil)
	f.transactions.EXPECT().TxUpdateState(gomock.Any(), gomock.Any(), prepareID, model.StatePaid, model.StampCompleted).Return(nil)
	f.users.EXPECT().TxIncrementBalance(gomock.Any(), gomock.Any(), userID, amount).Return(nil)
	f.db.ExpectCommit()

	res := f.svc.Complete(context.Background(), signedComplete(userID, prepareID))
	assert.Equal(t, click.CodeSuccess, res.Error)
	assert.Equal(t, prepareID.String(), res.MerchantConfirmID)
	assert.NoError(t, f.db.ExpectationsWereMet())
}

func TestCompleteDuplicate(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	prepareID := uuid.New()

	f.transactions.EXPECT().Read(gomock.Any(), prepareID).Return(&model.Transaction{
		ID:     prepareID,
		State:  model.StatePaid,
		Amount: decimal.RequireFromString("5000.00"),
	}, nil)

	res := f.svc.Complete(context.Background(), signedComplete(userID, prepareID))
	assert.Equal(t, click.CodeAlreadyPaid, res.Error)
}

func TestCompleteDuplicateRace(t *testing.T) {
	// the row read outside the session is stale: the lock re-check must
	// refuse the second credit
	f := newFixture(t)
	userID := uuid.New()
	prepareID := uuid.New()
	amount := decimal.RequireFromString("5000.00")

	pending := &model.Transaction{ID: prepareID, State: model.StatePending, Amount: amount, OwnerID: userID}
	paid := &model.Transaction{ID: prepareID, State: model.StatePaid, Amount: amount, OwnerID: userID}

	f.transactions.EXPECT().Read(gomock.Any(), prepareID).Return(pending, nil)
	f.db.ExpectBegin()
	f.transactions.EXPECT().TxRead(gomock.Any(), gomock.Any(), prepareID).Return(paid, nil)
	f.db.ExpectRollback()

	res := f.svc.Complete(context.Background(), signedComplete(userID, prepareID))
	assert.Equal(t, click.CodeAlreadyPaid, res.Error)
	assert.NoError(t, f.db.ExpectationsWereMet())
}

func TestCompleteAmountMismatch(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	prepareID := uuid.New()

	f.transactions.EXPECT().Read(gomock.Any(), prepareID).Return(&model.Transaction{
		ID:     prepareID,
		State:  model.StatePending,
		Amount: decimal.RequireFromString("100.00"),
	}, nil)

	res := f.svc.Complete(context.Background(), signedComplete(userID, prepareID))
	assert.Equal(t, click.CodeInvalidAmount, res.Error)
}

func TestCompleteUnknownTransaction(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	prepareID := uuid.New()

	f.transactions.EXPECT().Read(gomock.Any(), prepareID).Return(nil, apperr.ErrNotFound)

	res := f.svc.Complete(context.Background(), signedComplete(userID, prepareID))
	assert.Equal(t, click.CodeTransactionNotFound, res.Error)
}

func TestCompleteGatewayError(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()
	prepareID := uuid.New()
	amount := decimal.RequireFromString("5000.00")

	pending := &model.Transaction{ID: prepareID, State: model.StatePending, Amount: amount, OwnerID: userID}

	p := click.Payload{
		ClickTransID:      "1234567",
		ServiceID:         "219042",
		MerchantTransID:   userID.String(),
		MerchantPrepareID: prepareID.String(),
		Amount:            "5000.00",
		Action:            click.ActionComplete,
		Error:             "-5017",
		ErrorNote:         "Declined",
		SignTime:          "2023-08-01 12:05:00",
	}
	p.SignString = click.Sign(testSecret, p)

	f.transactions.EXPECT().Read(gomock.Any(), prepareID).Return(pending, nil)
	f.db.ExpectBegin()
	f.transactions.EXPECT().TxRead(gomock.Any(), gomock.Any(), prepareID).Return(pending, nil)
	f.transactions.EXPECT().TxUpdateState(gomock.Any(), gomock.Any(), prepareID, model.StatePendingCanceled, model.StampCanceled).Return(nil)
	f.db.ExpectCommit()

	res := f.svc.Complete(context.Background(), p)
	assert.Equal(t, click.CodeTransactionCanceled, res.Error)
	assert.NoError(t, f.db.ExpectationsWereMet())
}

func TestCompleteAfterCancel(t *testing.T) {
	// a complete replayed against a PENDING_CANCELED row settles the cancel
	// branch to PAID_CANCELED and still answers -9
	f := newFixture(t)
	userID := uuid.New()
	prepareID := uuid.New()
	amount := decimal.RequireFromString("5000.00")

	canceled := &model.Transaction{ID: prepareID, State: model.StatePendingCanceled, Amount: amount, OwnerID: userID}

	f.transactions.EXPECT().Read(gomock.Any(), prepareID).Return(canceled, nil)
	f.db.ExpectBegin()
	f.transactions.EXPECT().TxRead(gomock.Any(), gomock.Any(), prepareID).Return(canceled, nil)
	f.transactions.EXPECT().TxUpdateState(gomock.Any(), gomock.Any(), prepareID, model.StatePaidCanceled, model.StampNone).Return(nil)
	f.db.ExpectCommit()

	res := f.svc.Complete(context.Background(), signedComplete(userID, prepareID))
	assert.Equal(t, click.CodeTransactionCanceled, res.Error)
	assert.NoError(t, f.db.ExpectationsWereMet())
}
