package publisher_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skinsbay/internal/app/apperr"
	"skinsbay/internal/app/model"
	"skinsbay/internal/app/queue"
	"skinsbay/internal/app/service/publisher"
	publishermock "skinsbay/internal/app/service/publisher/mock"
	storagemock "skinsbay/internal/app/storage/mock"
	"skinsbay/pkg/telegram"
)

type fixture struct {
	svc       *publisher.Service
	messenger *publishermock.MockMessenger
	users     *storagemock.MockUserRepository
	skins     *storagemock.MockSkinRepository
	jobs      *publishermock.MockEnqueuer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		messenger: publishermock.NewMockMessenger(ctrl),
		users:     storagemock.NewMockUserRepository(ctrl),
		skins:     storagemock.NewMockSkinRepository(ctrl),
		jobs:      publishermock.NewMockEnqueuer(ctrl),
	}

	svc, err := publisher.NewService(f.messenger, f.users, f.skins, f.jobs)
	require.NoError(t, err)
	f.svc = svc

	return f
}

func publishJob(skinID uuid.UUID) queue.PublishListingJob {
	return queue.PublishListingJob{
		SkinID:     skinID,
		ChatID:     "@skinsbay",
		Caption:    "New skin for sale: AK-47 | Redline (Field-Tested) — 5000.00",
		PhotoURL:   "https://cdn.example/icon.png",
		ButtonText: "5000.00 so'm",
		ButtonURL:  "https://t.me/skinsbay_bot?startapp=skins_buy_" + skinID.String(),
	}
}

func TestPublishListing(t *testing.T) {
	f := newFixture(t)
	skinID := uuid.New()
	job := publishJob(skinID)
	expiry := time.Now().Add(3 * time.Hour)

	f.skins.EXPECT().Read(gomock.Any(), skinID).Return(&model.Skin{
		ID:        skinID,
		Status:    model.SkinStatusAvailable,
		ExpiresAt: sql.NullTime{Time: expiry, Valid: true},
	}, nil)
	f.messenger.EXPECT().
		SendPhoto(gomock.Any(), job.ChatID, job.PhotoURL, job.Caption, telegram.InlineButton{Text: job.ButtonText, URL: job.ButtonURL}).
		Return(int64(4242), nil)
	f.skins.EXPECT().UpdateMessageID(gomock.Any(), skinID, "4242").Return(nil)
	f.skins.EXPECT().UpdateStatus(gomock.Any(), skinID, model.SkinStatusAvailable, model.SkinStatusPending).Return(nil)
	f.jobs.EXPECT().
		Enqueue(gomock.Any(), queue.KindDeleteListingMessage, queue.DeleteListingMessageJob{ChatID: job.ChatID, MessageID: "4242"}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ queue.Kind, _ interface{}, delay time.Duration) error {
			assert.InDelta(t, (3 * time.Hour).Seconds(), delay.Seconds(), 5)
			return nil
		})

	require.NoError(t, f.svc.PublishListing(context.Background(), job))
}

func TestPublishListingSoldMeanwhile(t *testing.T) {
	f := newFixture(t)
	skinID := uuid.New()

	f.skins.EXPECT().Read(gomock.Any(), skinID).Return(&model.Skin{
		ID:     skinID,
		Status: model.SkinStatusSold,
	}, nil)

	// nothing is posted for a listing that already changed hands
	require.NoError(t, f.svc.PublishListing(context.Background(), publishJob(skinID)))
}

func TestPublishListingGone(t *testing.T) {
	f := newFixture(t)
	skinID := uuid.New()

	f.skins.EXPECT().Read(gomock.Any(), skinID).Return(nil, apperr.ErrNotFound)

	require.NoError(t, f.svc.PublishListing(context.Background(), publishJob(skinID)))
}

func TestPublishListingRaceWithPurchase(t *testing.T) {
	f := newFixture(t)
	skinID := uuid.New()
	job := publishJob(skinID)

	f.skins.EXPECT().Read(gomock.Any(), skinID).Return(&model.Skin{
		ID:     skinID,
		Status: model.SkinStatusAvailable,
	}, nil)
	f.messenger.EXPECT().SendPhoto(gomock.Any(), job.ChatID, job.PhotoURL, job.Caption, gomock.Any()).Return(int64(4242), nil)
	f.skins.EXPECT().UpdateMessageID(gomock.Any(), skinID, "4242").Return(nil)
	// sold between the read and the status flip
	f.skins.EXPECT().UpdateStatus(gomock.Any(), skinID, model.SkinStatusAvailable, model.SkinStatusPending).Return(apperr.ErrConflict)

	require.NoError(t, f.svc.PublishListing(context.Background(), job))
}

func TestUpdateListingStatusRestore(t *testing.T) {
	f := newFixture(t)
	job := queue.UpdateListingStatusJob{
		ChatID:     "@skinsbay",
		MessageID:  "4242",
		Caption:    "back on sale",
		Restore:    true,
		ButtonText: "5000.00 so'm",
		ButtonURL:  "https://t.me/skinsbay_bot?startapp=skins_buy_x",
	}

	f.messenger.EXPECT().
		EditMessageCaption(gomock.Any(), job.ChatID, job.MessageID, job.Caption, telegram.InlineButton{Text: job.ButtonText, URL: job.ButtonURL}).
		Return(nil)

	require.NoError(t, f.svc.UpdateListingStatus(context.Background(), job))
}

func TestUpdateListingStatusSoldDropsButton(t *testing.T) {
	f := newFixture(t)
	job := queue.UpdateListingStatusJob{
		ChatID:    "@skinsbay",
		MessageID: "4242",
		Caption:   "sold",
		ButtonURL: "https://t.me/skinsbay_bot?startapp=skins_buy_x",
	}

	f.messenger.EXPECT().EditMessageCaption(gomock.Any(), job.ChatID, job.MessageID, job.Caption).Return(nil)

	require.NoError(t, f.svc.UpdateListingStatus(context.Background(), job))
}

func TestNotifyUser(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()

	f.users.EXPECT().Read(gomock.Any(), userID).Return(&model.User{ID: userID, TelegramID: "100500"}, nil)
	f.messenger.EXPECT().SendMessage(gomock.Any(), "100500", "hello").Return(int64(1), nil)

	require.NoError(t, f.svc.NotifyUser(context.Background(), queue.NotifyUserJob{UserID: userID, Text: "hello"}))
}

func TestNotifyUserNoTelegram(t *testing.T) {
	f := newFixture(t)
	userID := uuid.New()

	f.users.EXPECT().Read(gomock.Any(), userID).Return(&model.User{ID: userID}, nil)

	require.NoError(t, f.svc.NotifyUser(context.Background(), queue.NotifyUserJob{UserID: userID, Text: "hello"}))
}

func TestDeleteListingMessage(t *testing.T) {
	f := newFixture(t)

	f.messenger.EXPECT().DeleteMessage(gomock.Any(), "@skinsbay", "4242").Return(nil)

	require.NoError(t, f.svc.DeleteListingMessage(context.Background(), queue.DeleteListingMessageJob{
		ChatID:    "@skinsbay",
		MessageID: "4242",
	}))
}
