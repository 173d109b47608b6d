//go:generate mockgen -source=./deps.go -destination=./mock/deps.go -package=marketmock
package market

import (
	"context"
	"time"

	"skinsbay/internal/app/queue"
	"skinsbay/pkg/steam"
)

// Dispatcher hands item transfers to the external trade system.
type Dispatcher interface {
	HasAsset(ctx context.Context, steamID, assetID string) (bool, error)
	SendOffer(ctx context.Context, in *steam.SendOfferRequest, out *steam.SendOfferResponse) error
}

// Enqueuer schedules background jobs. All enqueued work is fire-and-forget
// relative to the settlement decision.
type Enqueuer interface {
	Enqueue(ctx context.Context, kind queue.Kind, data interface{}, delay time.Duration) error
}
