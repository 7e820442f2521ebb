package jobs

import (
	"encoding/json"
	"time"
)

type JobType string

const (
	JobSendWelcome  JobType = "member.welcome"
	JobSendVerified JobType = "member.verified"
)

func (t JobType) IsValid() bool {
	switch t {
	case JobSendWelcome, JobSendVerified:
		return true
	default:
		return false
	}
}

// Job is the envelope that travels over the queue.
type Job struct {
	ID         string          `json:"id"`
	Type       JobType         `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueuedAt"`
}
