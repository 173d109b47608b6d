// Package publisher runs the presentation side effects scheduled by the
// market: channel posts for advertised listings, caption updates when a
// listing changes hands and direct buyer/seller notifications. Everything
// here is best-effort; the ledger never depends on it.
package publisher

import (
	"context"
	"errors"
	"strconv"
	"time"

	"skinsbay/internal/app/apperr"
	"skinsbay/internal/app/logger"
	"skinsbay/internal/app/model"
	"skinsbay/internal/app/queue"
	"skinsbay/internal/app/storage"
	"skinsbay/pkg/telegram"
)

var nowFn = time.Now

type Service struct {
	messenger Messenger
	users     storage.UserRepository
	skins     storage.SkinRepository
	jobs      Enqueuer
	logger    logger.Logger
}

func (s *Service) LoggerComponent() string {
	return "Publisher.Service"
}

func NewService(messenger Messenger, users storage.UserRepository, skins storage.SkinRepository, jobs Enqueuer) (*Service, error) {
	s := &Service{
		messenger: messenger,
		users:     users,
		skins:     skins,
		jobs:      jobs,
	}
	s.logger = logger.Global().Component(s)

	return s, nil
}

// PublishListing posts an advertised listing to the channel, records the
// message id and flips the listing to its advertised state. A listing that
// was sold or canceled before its publish slot came up is skipped.
func (s *Service) PublishListing(ctx context.Context, job queue.PublishListingJob) error {
	l := s.logger.With().Str("skin_id", job.SkinID.String()).Logger()

	skin, err := s.skins.Read(ctx, job.SkinID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			l.Debug().Msg("Listing gone before publication, skipping")
			return nil
		}
		return err
	}
	if skin.Status != model.SkinStatusAvailable {
		l.Debug().Str("status", string(skin.Status)).Msg("Listing no longer publishable, skipping")
		return nil
	}

	var buttons []telegram.InlineButton
	if job.ButtonURL != "" {
		buttons = append(buttons, telegram.InlineButton{Text: job.ButtonText, URL: job.ButtonURL})
	}

	messageID, err := s.messenger.SendPhoto(ctx, job.ChatID, job.PhotoURL, job.Caption, buttons...)
	if err != nil {
		return err
	}

	msgID := strconv.FormatInt(messageID, 10)
	if err := s.skins.UpdateMessageID(ctx, job.SkinID, msgID); err != nil {
		l.Error().Err(err).Msg("Message id not recorded")
		return err
	}

	// sold out from under us between read and flip is fine
	if err := s.skins.UpdateStatus(ctx, job.SkinID, model.SkinStatusAvailable, model.SkinStatusPending); err != nil && !errors.Is(err, apperr.ErrConflict) {
		return err
	}

	l.Info().Str("message_id", msgID).Msg("Listing published")

	if skin.ExpiresAt.Valid {
		delay := skin.ExpiresAt.Time.Sub(nowFn())
		if delay < 0 {
			delay = 0
		}
		if err := s.jobs.Enqueue(ctx, queue.KindDeleteListingMessage, queue.DeleteListingMessageJob{
			ChatID:    job.ChatID,
			MessageID: msgID,
		}, delay); err != nil {
			l.Error().Err(err).Msg("Expiry cleanup not scheduled")
		}
	}

	return nil
}

// UpdateListingStatus rewrites a channel post caption after a sale resolves;
// Restore re-attaches the buy button.
func (s *Service) UpdateListingStatus(ctx context.Context, job queue.UpdateListingStatusJob) error {
	var buttons []telegram.InlineButton
	if job.Restore && job.ButtonURL != "" {
		buttons = append(buttons, telegram.InlineButton{Text: job.ButtonText, URL: job.ButtonURL})
	}

	return s.messenger.EditMessageCaption(ctx, job.ChatID, job.MessageID, job.Caption, buttons...)
}

func (s *Service) DeleteListingMessage(ctx context.Context, job queue.DeleteListingMessageJob) error {
	return s.messenger.DeleteMessage(ctx, job.ChatID, job.MessageID)
}

// NotifyUser delivers a direct message; users without a linked Telegram chat
// are silently skipped.
func (s *Service) NotifyUser(ctx context.Context, job queue.NotifyUserJob) error {
	u, err := s.users.Read(ctx, job.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil
		}
		return err
	}
	if u.TelegramID == "" {
		return nil
	}

	_, err = s.messenger.SendMessage(ctx, u.TelegramID, job.Text)
	return err
}
