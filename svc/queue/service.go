package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/dispatch/pkg/directory"
	"github.com/dmitrymomot/dispatch/pkg/historykey"
	"github.com/dmitrymomot/dispatch/pkg/logger"
	"github.com/dmitrymomot/dispatch/pkg/metrics"
	"github.com/dmitrymomot/dispatch/pkg/quota"
	redisx "github.com/dmitrymomot/dispatch/pkg/redis"
	"github.com/dmitrymomot/dispatch/pkg/schedule"
	"github.com/dmitrymomot/dispatch/pkg/tracker"
)

// Service is the boundary of the delivery queue.
type Service interface {
	// HistoryKey issues a fresh history key for a sender.
	HistoryKey(ctx context.Context, senderID int64) (string, error)
	// RateLimitStatus reports the daily counter of a user.
	RateLimitStatus(ctx context.Context, userID int64) (quota.Status, error)
	// Enqueue stores a message for delivery.
	Enqueue(ctx context.Context, req EnqueueRequest) (EnqueueResult, error)
	// Track waits for delivery progress on a stored message.
	Track(ctx context.Context, req TrackRequest) (tracker.Result, error)
}

type service struct {
	client    redis.UniversalClient
	directory directory.Directory
	limiter   *quota.Limiter
	resolver  *schedule.Resolver
	tracker   *tracker.Tracker
	keys      *historykey.Generator

	log           *slog.Logger
	metrics       *metrics.Metrics
	txAttempts    int
	lookupLimit   int
	lookupTimeout time.Duration
}

// NewService wires the queue. Panics on missing dependencies.
func NewService(
	client redis.UniversalClient,
	dir directory.Directory,
	limiter *quota.Limiter,
	resolver *schedule.Resolver,
	trk *tracker.Tracker,
	opts ...ServiceOption,
) Service {
	if client == nil {
		panic("queue: redis client is required")
	}
	if dir == nil {
		panic("queue: directory is required")
	}
	if limiter == nil || resolver == nil || trk == nil {
		panic("queue: limiter, resolver and tracker are required")
	}

	s := &service{
		client:        client,
		directory:     dir,
		limiter:       limiter,
		resolver:      resolver,
		tracker:       trk,
		keys:          historykey.NewGenerator(),
		log:           logger.Discard(),
		txAttempts:    3,
		lookupLimit:   8,
		lookupTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("queue"))
	return s
}

func (s *service) HistoryKey(_ context.Context, senderID int64) (string, error) {
	if err := validateSenderID("sender_id", senderID); err != nil {
		return "", err
	}
	return s.keys.Generate(senderID)
}

func (s *service) RateLimitStatus(ctx context.Context, userID int64) (quota.Status, error) {
	if err := validateSenderID("uid", userID); err != nil {
		return quota.Status{}, err
	}
	user, err := s.directory.User(ctx, userID)
	if err != nil {
		return quota.Status{}, err
	}
	return s.limiter.Status(ctx, userID, user.Role)
}

func (s *service) Enqueue(ctx context.Context, req EnqueueRequest) (EnqueueResult, error) {
	if err := validateEnqueue(req); err != nil {
		s.metrics.Rejected("validation")
		return EnqueueResult{}, err
	}

	log := s.log.With(logger.HistoryKey(req.HistoryKey), logger.SenderID(req.Sender.ID))

	ticket, err := s.limiter.Check(ctx, req.Sender.ID, req.Sender.Role)
	if err != nil {
		return EnqueueResult{}, s.rejected(ctx, log, err)
	}

	when, err := s.resolver.Resolve(req.DeliverAt)
	if err != nil {
		s.metrics.Rejected("validation")
		return EnqueueResult{}, invalidDeliverAt(err)
	}

	recipients, err := s.recipients(ctx, req.Recipients)
	if err != nil {
		log.ErrorContext(ctx, "directory lookup failed", logger.Error(err))
		return EnqueueResult{}, err
	}

	record, err := json.Marshal(Record{
		Sender:     req.Sender,
		Recipients: recipients,
		Text:       req.Text,
		Provider:   req.Provider,
		DeliverAt:  when.ISO(),
	})
	if err != nil {
		return EnqueueResult{}, fmt.Errorf("queue: encode record: %w", err)
	}

	if err := s.commit(ctx, req.HistoryKey, record, when, ticket); err != nil {
		if errors.Is(err, quota.ErrDailyLimitExceeded) {
			return EnqueueResult{}, s.rejected(ctx, log, err)
		}
		log.ErrorContext(ctx, "enqueue transaction failed", logger.Error(err))
		return EnqueueResult{}, err
	}

	s.metrics.Enqueued(when.Scheduled())
	log.InfoContext(ctx, "message enqueued",
		logger.DeliverAt(when.ISO()),
		logger.Scheduled(when.Scheduled()),
		logger.Recipients(len(recipients)),
	)

	return EnqueueResult{DeliverAt: when.ISO(), Scheduled: when.Scheduled()}, nil
}

func (s *service) rejected(ctx context.Context, log *slog.Logger, err error) error {
	var limitErr *quota.LimitExceededError
	switch {
	case errors.As(err, &limitErr):
		s.metrics.Rejected("daily_limit")
		log.WarnContext(ctx, "daily limit exceeded", logger.RetryAfter(limitErr.RetryAfter))
	case errors.Is(err, quota.ErrUnknownRole):
		s.metrics.Rejected("unknown_role")
		log.WarnContext(ctx, "unknown sender role", logger.Error(err))
	}
	return err
}

// recipients resolves the origin of every recipient concurrently and
// returns them ordered by id.
func (s *service) recipients(ctx context.Context, contacts []Contact) ([]Recipient, error) {
	ctx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	defer cancel()

	out := make([]Recipient, len(contacts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.lookupLimit)
	for i, c := range contacts {
		g.Go(func() error {
			groups, err := s.directory.Groups(gctx, c.ID)
			if err != nil {
				return fmt.Errorf("queue: groups of user %d: %w", c.ID, err)
			}
			if groups == nil {
				groups = []int64{}
			}
			out[i] = Recipient{Contact: c, Origin: groups, ReceivedIn: []string{}}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortStableFunc(out, func(a, b Recipient) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out, nil
}

// commit applies the record, the tracking key and the counter increment
// atomically. The counter is watched and re-checked so that a concurrent
// send of the same user aborts and retries the transaction.
func (s *service) commit(ctx context.Context, key string, record []byte, when schedule.DeliveryTime, ticket quota.Ticket) error {
	tracking, err := historykey.Tracking(key)
	if err != nil {
		return err
	}

	txf := func(tx *redis.Tx) error {
		t, err := s.limiter.Recheck(ctx, redisx.NewStorage(tx), ticket)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, record, 0)
			pipe.Set(ctx, tracking, when.ISO(), 0)
			if when.Scheduled() {
				pipe.PExpireAt(ctx, tracking, when.Time())
			} else {
				pipe.Del(ctx, tracking)
			}
			s.limiter.Advance(ctx, pipe, t)
			return nil
		})
		return err
	}

	for range s.txAttempts {
		err := s.client.Watch(ctx, txf, ticket.Key)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		s.metrics.TxRetried()
	}
	return ErrConcurrentUpdate
}

func (s *service) Track(ctx context.Context, req TrackRequest) (tracker.Result, error) {
	if err := validateTrack(req); err != nil {
		return tracker.Result{}, err
	}

	timeout := time.Duration(*req.Timeout) * time.Second
	res, err := s.tracker.Track(ctx, req.HistoryKey, *req.TouchCount, timeout)
	if err != nil {
		if !errors.Is(err, tracker.ErrHistoryKeyNotFound) && ctx.Err() == nil {
			s.log.ErrorContext(ctx, "track failed", logger.HistoryKey(req.HistoryKey), logger.Error(err))
		}
		return tracker.Result{}, err
	}

	switch {
	case timeout == 0:
		s.metrics.Tracked("peek")
	case res.TimedOut:
		s.metrics.Tracked("timeout")
		s.log.DebugContext(ctx, "track timed out",
			logger.HistoryKey(req.HistoryKey),
			logger.TouchCount(*req.TouchCount),
		)
	default:
		s.metrics.Tracked("reached")
	}
	return res, nil
}
