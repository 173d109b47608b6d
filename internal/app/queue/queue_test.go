package queue

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skinsbay/internal/app/logger"
)

func TestBackoff(t *testing.T) {
	p := RetryPolicy{MaxAttempts: 20, BaseDelay: 5 * time.Second, MaxDelay: time.Minute}

	tests := []struct {
		attempt int
		want    time.Duration
	}{
		{0, 5 * time.Second},
		{1, 5 * time.Second},
		{2, 10 * time.Second},
		{3, 20 * time.Second},
		{4, 40 * time.Second},
		{5, time.Minute},
		{100, time.Minute},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Backoff(tt.attempt), "attempt %d", tt.attempt)
	}
}

func TestNewEnvelope(t *testing.T) {
	job := NotifyUserJob{UserID: uuid.New(), Text: "hello"}

	env, err := NewEnvelope(KindNotifyUser, job)
	require.NoError(t, err)
	assert.NotEmpty(t, env.ID)
	assert.Equal(t, KindNotifyUser, env.Kind)
	assert.Zero(t, env.Attempt)

	var got NotifyUserJob
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, job, got)
}

func TestDispatch(t *testing.T) {
	var got CheckTradeOfferJob
	q := New(nil, Handlers{
		CheckTradeOffer: func(_ context.Context, job CheckTradeOfferJob) error {
			got = job
			return nil
		},
	})

	want := CheckTradeOfferJob{TransactionID: uuid.New(), OfferID: "offer-77"}
	env, err := NewEnvelope(KindCheckTradeOffer, want)
	require.NoError(t, err)

	require.NoError(t, q.dispatch(context.Background(), env))
	assert.Equal(t, want, got)
}

func TestDispatchUnknownKind(t *testing.T) {
	q := New(nil, Handlers{})

	env, err := NewEnvelope(Kind("definitely-not-a-job"), struct{}{})
	require.NoError(t, err)

	assert.Error(t, q.dispatch(context.Background(), env))
}

func TestExhaustedDeadLetter(t *testing.T) {
	var got CheckTradeOfferJob
	q := New(nil, Handlers{
		CheckTradeOfferExhausted: func(_ context.Context, job CheckTradeOfferJob) error {
			got = job
			return nil
		},
	})

	want := CheckTradeOfferJob{TransactionID: uuid.New(), OfferID: "offer-77"}
	env, err := NewEnvelope(KindCheckTradeOffer, want)
	require.NoError(t, err)

	q.exhausted(context.Background(), *logger.Global(), env, ErrRetry)
	assert.Equal(t, want, got)
}

func TestExhaustedDropsBestEffortKinds(t *testing.T) {
	q := New(nil, Handlers{})

	env, err := NewEnvelope(KindNotifyUser, NotifyUserJob{UserID: uuid.New(), Text: "x"})
	require.NoError(t, err)

	// nothing to call, nothing to panic on
	q.exhausted(context.Background(), *logger.Global(), env, ErrRetry)
}

func TestWithPolicyOverride(t *testing.T) {
	q := New(nil, Handlers{}, WithPolicy(KindCheckTradeOffer, RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    2 * time.Second,
	}))

	assert.Equal(t, 3, q.policies[KindCheckTradeOffer].MaxAttempts)
	assert.Equal(t, 2*time.Second, q.policies[KindCheckTradeOffer].Backoff(5))
}
