package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/usermgmt/user-management-api/internal/core/ports"
)

const deadLetterKey = "mail:deadletter"

// DeadLetter is the Redis-backed sink for verification mails whose delivery
// retries were exhausted. Jobs land on a list an operator can inspect and
// replay; nothing in the request path ever reads it.
type DeadLetter struct {
	client *redis.Client
}

func NewDeadLetter(client *redis.Client) *DeadLetter {
	return &DeadLetter{client: client}
}

// Push appends a failed mail job to the dead-letter list.
func (d *DeadLetter) Push(ctx context.Context, mail ports.VerificationMail) error {
	payload, err := json.Marshal(mail)
	if err != nil {
		return fmt.Errorf("dead letter marshal: %w", err)
	}
	if err := d.client.LPush(ctx, deadLetterKey, payload).Err(); err != nil {
		return fmt.Errorf("dead letter push: %w", err)
	}
	return nil
}

// Len reports the number of dead-lettered mail jobs.
func (d *DeadLetter) Len(ctx context.Context) (int64, error) {
	n, err := d.client.LLen(ctx, deadLetterKey).Result()
	if err != nil {
		return 0, fmt.Errorf("dead letter len: %w", err)
	}
	return n, nil
}
