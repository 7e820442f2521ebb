package worker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/geocoder89/memberhub/internal/jobs"
	"github.com/geocoder89/memberhub/internal/notifications"
	"github.com/geocoder89/memberhub/internal/queue/redisclient"
	"github.com/geocoder89/memberhub/internal/queue/worker"
)

type fakeQueue struct {
	items  [][]byte
	cancel context.CancelFunc
}

func (q *fakeQueue) Pop(ctx context.Context, key string, timeout time.Duration) ([]byte, error) {
	if len(q.items) == 0 {
		// drained; stop the worker instead of blocking the test
		q.cancel()
		return nil, redisclient.ErrEmpty
	}

	item := q.items[0]
	q.items = q.items[1:]
	return item, nil
}

type recordingNotifier struct {
	welcome  []notifications.SendWelcomeInput
	verified []notifications.SendMembershipVerifiedInput
	fail     bool
}

func (n *recordingNotifier) SendWelcome(ctx context.Context, in notifications.SendWelcomeInput) error {
	if n.fail {
		return errors.New("send failed")
	}
	n.welcome = append(n.welcome, in)
	return nil
}

func (n *recordingNotifier) SendMembershipVerified(ctx context.Context, in notifications.SendMembershipVerifiedInput) error {
	if n.fail {
		return errors.New("send failed")
	}
	n.verified = append(n.verified, in)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func encodeJob(t *testing.T, jt jobs.JobType, payload any) []byte {
	t.Helper()

	data, err := jobs.EncodeJob(jt, payload)
	if err != nil {
		t.Fatalf("EncodeJob returned error: %v", err)
	}
	return data
}

func runWorker(t *testing.T, queue *fakeQueue, notifier notifications.Notifier) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	queue.cancel = cancel

	w := worker.New(worker.Config{QueueKey: "test:queue"}, queue, notifier, nil, discardLogger())

	if err := w.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
}

func TestWorkerDeliversWelcomeAndVerified(t *testing.T) {
	queue := &fakeQueue{
		items: [][]byte{
			encodeJob(t, jobs.JobSendWelcome, jobs.WelcomePayload{Email: "m1@example.com", MemberID: "M-1"}),
			encodeJob(t, jobs.JobSendVerified, jobs.VerifiedPayload{Email: "m2@example.com", MemberID: "M-2", VerifiedBy: "o@example.com"}),
		},
	}
	notifier := &recordingNotifier{}

	runWorker(t, queue, notifier)

	if len(notifier.welcome) != 1 || notifier.welcome[0].MemberID != "M-1" {
		t.Errorf("welcome deliveries = %+v, want one for M-1", notifier.welcome)
	}
	if len(notifier.verified) != 1 || notifier.verified[0].VerifiedBy != "o@example.com" {
		t.Errorf("verified deliveries = %+v, want one verified by o@example.com", notifier.verified)
	}
}

func TestWorkerDropsUndecodableJobs(t *testing.T) {
	queue := &fakeQueue{
		items: [][]byte{
			[]byte("not a job"),
			encodeJob(t, jobs.JobSendWelcome, jobs.WelcomePayload{Email: "m1@example.com", MemberID: "M-1"}),
		},
	}
	notifier := &recordingNotifier{}

	runWorker(t, queue, notifier)

	// bad payload is dropped, the rest of the queue still drains
	if len(notifier.welcome) != 1 {
		t.Errorf("welcome deliveries = %d, want 1", len(notifier.welcome))
	}
}

func TestWorkerSurvivesNotifierFailure(t *testing.T) {
	queue := &fakeQueue{
		items: [][]byte{
			encodeJob(t, jobs.JobSendWelcome, jobs.WelcomePayload{Email: "m1@example.com", MemberID: "M-1"}),
		},
	}
	notifier := &recordingNotifier{fail: true}

	// a failing provider must not crash or hang the loop
	runWorker(t, queue, notifier)
}
