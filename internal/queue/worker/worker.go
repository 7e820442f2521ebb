package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/geocoder89/memberhub/internal/jobs"
	"github.com/geocoder89/memberhub/internal/notifications"
	"github.com/geocoder89/memberhub/internal/observability"
	"github.com/geocoder89/memberhub/internal/queue/redisclient"
)

// Queue is the blocking-pop side of the notification queue.
type Queue interface {
	Pop(ctx context.Context, key string, timeout time.Duration) ([]byte, error)
}

type Config struct {
	QueueKey   string
	PopTimeout time.Duration
}

type Worker struct {
	cfg      Config
	queue    Queue
	notifier notifications.Notifier
	prom     *observability.Prom
	log      *slog.Logger
}

func New(cfg Config, queue Queue, notifier notifications.Notifier, prom *observability.Prom, log *slog.Logger) *Worker {
	if cfg.PopTimeout <= 0 {
		cfg.PopTimeout = 5 * time.Second
	}

	return &Worker{
		cfg:      cfg,
		queue:    queue,
		notifier: notifier,
		prom:     prom,
		log:      log,
	}
}

func (w *Worker) Run(ctx context.Context) error {
	errStreak := 0

	for {
		if ctx.Err() != nil {
			w.log.Info("worker received shutdown signal")
			return nil
		}

		data, err := w.queue.Pop(ctx, w.cfg.QueueKey, w.cfg.PopTimeout)

		if err != nil {
			if errors.Is(err, redisclient.ErrEmpty) {
				errStreak = 0
				continue
			}

			if errors.Is(err, context.Canceled) {
				return nil
			}

			delay := ExponentialBackoff(errStreak)
			errStreak++
			w.log.Error("queue pop failed", "err", err, "retry_in", delay.String())

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(delay):
			}
			continue
		}

		errStreak = 0
		w.processOne(ctx, data)
	}
}

// processOne decodes and executes a single job. A job that fails is logged
// and dropped; there is no retry queue for notifications, they are best
// effort by design.
func (w *Worker) processOne(ctx context.Context, data []byte) {
	j, err := jobs.DecodeJob(data)

	if err != nil {
		w.log.Error("dropping undecodable job", "err", err)
		return
	}

	start := time.Now()
	err = w.execute(ctx, j)
	result := "done"

	if err != nil {
		result = "failed"
		w.log.Error("job failed", "job_id", j.ID, "job_type", string(j.Type), "err", err)
	} else {
		w.log.Info("job done", "job_id", j.ID, "job_type", string(j.Type))
	}

	if w.prom != nil {
		w.prom.ObserveJob(string(j.Type), result, time.Since(start))
	}
}

func (w *Worker) execute(ctx context.Context, j jobs.Job) error {
	payload, err := jobs.DecodePayload(j)

	if err != nil {
		return err
	}

	switch p := payload.(type) {
	case jobs.WelcomePayload:
		return w.notifier.SendWelcome(ctx, notifications.SendWelcomeInput{
			Email:     p.Email,
			FirstName: p.FirstName,
			MemberID:  p.MemberID,
		})

	case jobs.VerifiedPayload:
		return w.notifier.SendMembershipVerified(ctx, notifications.SendMembershipVerifiedInput{
			Email:      p.Email,
			FirstName:  p.FirstName,
			MemberID:   p.MemberID,
			VerifiedBy: p.VerifiedBy,
		})

	default:
		return jobs.ErrInvalidJobType
	}
}
