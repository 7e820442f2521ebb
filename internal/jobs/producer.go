package jobs

import "context"

// QueuePusher is whatever can push raw bytes onto the notification queue;
// in production that is the redis client.
type QueuePusher interface {
	Push(ctx context.Context, key string, data []byte) error
}

type Producer struct {
	queue QueuePusher
	key   string
}

func NewProducer(queue QueuePusher, key string) *Producer {
	return &Producer{
		queue: queue,
		key:   key,
	}
}

func (p *Producer) EnqueueWelcome(ctx context.Context, payload WelcomePayload) error {
	data, err := EncodeJob(JobSendWelcome, payload)

	if err != nil {
		return err
	}

	return p.queue.Push(ctx, p.key, data)
}

func (p *Producer) EnqueueVerified(ctx context.Context, payload VerifiedPayload) error {
	data, err := EncodeJob(JobSendVerified, payload)

	if err != nil {
		return err
	}

	return p.queue.Push(ctx, p.key, data)
}
