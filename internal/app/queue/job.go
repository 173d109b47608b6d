package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/xid"
)

type Kind string

const (
	KindPublishListing       Kind = "publish-listing"
	KindUpdateListingStatus  Kind = "update-listing-status"
	KindDeleteListingMessage Kind = "delete-listing-message"
	KindNotifyUser           Kind = "notify-user"
	KindCheckTradeOffer      Kind = "check-trade-offer"
)

// One payload type per job kind. The envelope carries exactly one of them,
// selected by Kind; dispatch decodes into the matching type and nothing else.

type PublishListingJob struct {
	SkinID     uuid.UUID `json:"skin_id"`
	ChatID     string    `json:"chat_id"`
	Caption    string    `json:"caption"`
	PhotoURL   string    `json:"photo_url"`
	ButtonText string    `json:"button_text"`
	ButtonURL  string    `json:"button_url"`
}

type UpdateListingStatusJob struct {
	SkinID    uuid.UUID `json:"skin_id"`
	ChatID    string    `json:"chat_id"`
	MessageID string    `json:"message_id"`
	Caption   string    `json:"caption"`
	// Restore re-attaches the buy button after a canceled sale.
	Restore    bool   `json:"restore,omitempty"`
	ButtonText string `json:"button_text,omitempty"`
	ButtonURL  string `json:"button_url,omitempty"`
}

type DeleteListingMessageJob struct {
	ChatID    string `json:"chat_id"`
	MessageID string `json:"message_id"`
}

type NotifyUserJob struct {
	UserID uuid.UUID `json:"user_id"`
	Text   string    `json:"text"`
}

type CheckTradeOfferJob struct {
	TransactionID uuid.UUID `json:"transaction_id"`
	OfferID       string    `json:"offer_id"`
}

// Envelope is the wire form of a scheduled job.
type Envelope struct {
	ID         string          `json:"id"`
	Kind       Kind            `json:"kind"`
	Attempt    int             `json:"attempt"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
	Data       json.RawMessage `json:"data"`
}

func NewEnvelope(kind Kind, data interface{}) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("payload encode: %w", err)
	}

	return Envelope{
		ID:         xid.New().String(),
		Kind:       kind,
		EnqueuedAt: time.Now(),
		Data:       raw,
	}, nil
}

// RetryPolicy bounds re-delivery of a failed or still-pending job.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Backoff returns the delay before the given retry attempt (1-based),
// doubling from BaseDelay up to MaxDelay.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}

	d := p.BaseDelay
	for i := 1; i < attempt; i++ {
		d *= 2
		if d >= p.MaxDelay {
			return p.MaxDelay
		}
	}
	if p.MaxDelay > 0 && d > p.MaxDelay {
		return p.MaxDelay
	}

	return d
}
