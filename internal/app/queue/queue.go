package queue

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"skinsbay/internal/app/logger"
)

// ErrRetry marks a job outcome that is not a failure, just not resolvable
// yet (e.g. a trade offer still pending). The queue reschedules it under the
// same bounded policy as an error.
var ErrRetry = errors.New("retryable")

const defaultKey = "skinsbay:queue:scheduled"

// popDue atomically removes and returns one job whose readiness score has
// passed.
var popDue = redis.NewScript(`
local due = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1], 'LIMIT', 0, 1)
if #due == 0 then return false end
redis.call('ZREM', KEYS[1], due[1])
return due[1]
`)

// Handlers holds one callback per job kind. CheckTradeOfferExhausted is the
// dead-letter hook invoked when the poll budget is spent; the remaining
// kinds are best-effort and are simply dropped after their last attempt.
type Handlers struct {
	PublishListing       func(ctx context.Context, job PublishListingJob) error
	UpdateListingStatus  func(ctx context.Context, job UpdateListingStatusJob) error
	DeleteListingMessage func(ctx context.Context, job DeleteListingMessageJob) error
	NotifyUser           func(ctx context.Context, job NotifyUserJob) error
	CheckTradeOffer      func(ctx context.Context, job CheckTradeOfferJob) error

	CheckTradeOfferExhausted func(ctx context.Context, job CheckTradeOfferJob) error
}

type Queue struct {
	rdb      *redis.Client
	key      string
	logger   logger.Logger
	handlers Handlers
	policies map[Kind]RetryPolicy

	jobs       chan Envelope
	stopCh     chan struct{}
	wg         sync.WaitGroup
	pollPeriod time.Duration
	jobTimeout time.Duration
}

func (q *Queue) LoggerComponent() string {
	return "Queue"
}

type Option func(*Queue)

func WithKey(key string) Option {
	return func(q *Queue) {
		q.key = key
	}
}

func WithPolicy(kind Kind, p RetryPolicy) Option {
	return func(q *Queue) {
		q.policies[kind] = p
	}
}

func New(rdb *redis.Client, handlers Handlers, opts ...Option) *Queue {
	q := &Queue{
		rdb:      rdb,
		key:      defaultKey,
		handlers: handlers,
		policies: map[Kind]RetryPolicy{
			KindPublishListing:       {MaxAttempts: 5, BaseDelay: 5 * time.Second, MaxDelay: time.Minute},
			KindUpdateListingStatus:  {MaxAttempts: 5, BaseDelay: 5 * time.Second, MaxDelay: time.Minute},
			KindDeleteListingMessage: {MaxAttempts: 5, BaseDelay: 5 * time.Second, MaxDelay: time.Minute},
			KindNotifyUser:           {MaxAttempts: 3, BaseDelay: 5 * time.Second, MaxDelay: time.Minute},
			KindCheckTradeOffer:      {MaxAttempts: 20, BaseDelay: 15 * time.Second, MaxDelay: 10 * time.Minute},
		},
		jobs:       make(chan Envelope),
		stopCh:     make(chan struct{}),
		pollPeriod: time.Second,
		jobTimeout: 30 * time.Second,
	}

	for _, o := range opts {
		o(q)
	}

	q.logger = logger.Global().Component(q)

	return q
}

// Enqueue schedules a job for execution after the given delay.
func (q *Queue) Enqueue(ctx context.Context, kind Kind, data interface{}, delay time.Duration) error {
	env, err := NewEnvelope(kind, data)
	if err != nil {
		return err
	}

	return q.push(ctx, env, time.Now().Add(delay))
}

func (q *Queue) push(ctx context.Context, env Envelope, readyAt time.Time) error {
	raw, err := json.Marshal(env)
	if err != nil {
		return errors.Wrap(err, "envelope encode")
	}

	err = q.rdb.ZAdd(ctx, q.key, &redis.Z{
		Score:  float64(readyAt.UnixNano()),
		Member: string(raw),
	}).Err()
	if err != nil {
		return errors.Wrap(err, "zadd")
	}

	return nil
}

func (q *Queue) Start(numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		q.wg.Add(1)
		go func(workerID int) {
			defer q.wg.Done()
			for {
				select {
				case <-q.stopCh:
					return
				case env, ok := <-q.jobs:
					if !ok {
						return
					}
					l := q.logger.With().
						Int("worker_id", workerID).
						Str("job_id", env.ID).
						Str("job_kind", string(env.Kind)).
						Int("attempt", env.Attempt+1).
						Logger()
					l.Debug().Msg("Running job")
					q.process(logger.Logger{Logger: l}, env)
				}
			}
		}(i)
	}

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		t := time.NewTicker(q.pollPeriod)
		defer t.Stop()
		for {
			select {
			case <-q.stopCh:
				return
			case <-t.C:
				q.fetchDue()
			}
		}
	}()
}

func (q *Queue) Stop() {
	q.logger.Debug().Msg("Queue shutdown")
	close(q.stopCh)
	q.wg.Wait()
}

func (q *Queue) fetchDue() {
	ctx, cancel := context.WithTimeout(context.Background(), q.pollPeriod)
	defer cancel()

	for {
		raw, err := popDue.Run(ctx, q.rdb, []string{q.key}, strconv.FormatInt(time.Now().UnixNano(), 10)).Text()
		if err != nil {
			if !errors.Is(err, redis.Nil) {
				q.logger.Error().Err(err).Msg("Queue poll failed")
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal([]byte(raw), &env); err != nil {
			q.logger.Error().Err(err).Str("raw", raw).Msg("Dropping undecodable job")
			continue
		}

		select {
		case q.jobs <- env:
		case <-q.stopCh:
			return
		}
	}
}

func (q *Queue) process(l logger.Logger, env Envelope) {
	ctx, cancel := context.WithTimeout(context.Background(), q.jobTimeout)
	defer cancel()
	ctx = l.WithContext(ctx)

	err := q.dispatch(ctx, env)
	if err == nil {
		l.Debug().Msg("Job done")
		return
	}

	policy := q.policies[env.Kind]
	attempts := env.Attempt + 1
	if attempts >= policy.MaxAttempts {
		l.Warn().Err(err).Msg("Job attempts exhausted")
		q.exhausted(ctx, l, env, err)
		return
	}

	env.Attempt = attempts
	delay := policy.Backoff(attempts)
	if errors.Is(err, ErrRetry) {
		l.Debug().Dur("delay", delay).Msg("Job not resolvable yet, rescheduling")
	} else {
		l.Error().Err(err).Dur("delay", delay).Msg("Job failed, rescheduling")
	}

	if err := q.push(ctx, env, time.Now().Add(delay)); err != nil {
		l.Error().Err(err).Msg("Job reschedule failed")
	}
}

// dispatch decodes the payload into the variant selected by Kind. Unknown
// kinds are a hard error, never silently dropped into a generic handler.
func (q *Queue) dispatch(ctx context.Context, env Envelope) error {
	switch env.Kind {
	case KindPublishListing:
		var job PublishListingJob
		if err := json.Unmarshal(env.Data, &job); err != nil {
			return errors.Wrap(err, "payload decode")
		}
		return q.handlers.PublishListing(ctx, job)
	case KindUpdateListingStatus:
		var job UpdateListingStatusJob
		if err := json.Unmarshal(env.Data, &job); err != nil {
			return errors.Wrap(err, "payload decode")
		}
		return q.handlers.UpdateListingStatus(ctx, job)
	case KindDeleteListingMessage:
		var job DeleteListingMessageJob
		if err := json.Unmarshal(env.Data, &job); err != nil {
			return errors.Wrap(err, "payload decode")
		}
		return q.handlers.DeleteListingMessage(ctx, job)
	case KindNotifyUser:
		var job NotifyUserJob
		if err := json.Unmarshal(env.Data, &job); err != nil {
			return errors.Wrap(err, "payload decode")
		}
		return q.handlers.NotifyUser(ctx, job)
	case KindCheckTradeOffer:
		var job CheckTradeOfferJob
		if err := json.Unmarshal(env.Data, &job); err != nil {
			return errors.Wrap(err, "payload decode")
		}
		return q.handlers.CheckTradeOffer(ctx, job)
	default:
		return errors.Errorf("unknown job kind %q", env.Kind)
	}
}

func (q *Queue) exhausted(ctx context.Context, l logger.Logger, env Envelope, cause error) {
	switch env.Kind {
	case KindCheckTradeOffer:
		if q.handlers.CheckTradeOfferExhausted == nil {
			return
		}
		var job CheckTradeOfferJob
		if err := json.Unmarshal(env.Data, &job); err != nil {
			l.Error().Err(err).Msg("Dead-letter payload decode failed")
			return
		}
		if err := q.handlers.CheckTradeOfferExhausted(ctx, job); err != nil {
			l.Error().Err(err).Msg("Dead-letter handler failed")
		}
	default:
		// best-effort side effects are logged and dropped
		l.Warn().Err(cause).Msg("Dropping job")
	}
}
