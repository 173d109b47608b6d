//go:generate mockgen -source=./deps.go -destination=./mock/deps.go -package=publishermock
package publisher

import (
	"context"
	"time"

	"skinsbay/internal/app/queue"
	"skinsbay/pkg/telegram"
)

// Messenger is the slice of the Telegram bot API the publisher drives.
type Messenger interface {
	SendMessage(ctx context.Context, chatID, text string) (int64, error)
	SendPhoto(ctx context.Context, chatID, photoURL, caption string, buttons ...telegram.InlineButton) (int64, error)
	EditMessageCaption(ctx context.Context, chatID, messageID, caption string, buttons ...telegram.InlineButton) error
	DeleteMessage(ctx context.Context, chatID, messageID string) error
}

// Enqueuer schedules follow-up jobs (advertising expiry cleanup).
type Enqueuer interface {
	Enqueue(ctx context.Context, kind queue.Kind, data interface{}, delay time.Duration) error
}
