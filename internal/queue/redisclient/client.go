package redisclient

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrEmpty reports a blocking pop that timed out with nothing queued.
var ErrEmpty = errors.New("queue empty")

type Client struct {
	redisdb *redis.Client
}

type Config struct {
	Addr     string
	Password string
	DB       int
}

func New(cfg Config) *Client {
	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  -1, // BRPOP manages its own timeout
		WriteTimeout: 2 * time.Second,
	})

	return &Client{redisdb: redisdb}
}

func (c *Client) Ping(ctx context.Context) error {
	return c.redisdb.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.redisdb.Close()
}

// Push appends a job to the tail of the list; the worker pops from the head,
// so the queue is FIFO.
func (c *Client) Push(ctx context.Context, key string, data []byte) error {
	return c.redisdb.LPush(ctx, key, data).Err()
}

// Pop blocks up to timeout waiting for a job. Returns ErrEmpty on timeout so
// callers can tell "nothing to do" from a broken connection.
func (c *Client) Pop(ctx context.Context, key string, timeout time.Duration) ([]byte, error) {
	res, err := c.redisdb.BRPop(ctx, timeout, key).Result()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrEmpty
		}
		return nil, err
	}

	// BRPOP returns [key, value]
	if len(res) != 2 {
		return nil, ErrEmpty
	}

	return []byte(res[1]), nil
}
