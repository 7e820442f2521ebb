package jobs

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EncodeJob wraps a typed payload into a Job envelope and serializes it.
// The payload type must match the job type; a mismatch here is a programming
// error and gets caught before anything hits the queue.
func EncodeJob(t JobType, payload any) ([]byte, error) {
	if !t.IsValid() {
		return nil, ErrInvalidJobType
	}

	switch t {
	case JobSendWelcome:
		_, ok := payload.(WelcomePayload)

		if !ok {
			_, ok2 := payload.(*WelcomePayload)

			if !ok2 {
				return nil, ErrPayloadTypeMismatch
			}
		}

	case JobSendVerified:
		_, ok := payload.(VerifiedPayload)

		if !ok {
			_, ok2 := payload.(*VerifiedPayload)

			if !ok2 {
				return nil, ErrPayloadTypeMismatch
			}
		}
	}

	raw, err := json.Marshal(payload)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
	}

	return json.Marshal(Job{
		ID:         uuid.NewString(),
		Type:       t,
		Payload:    raw,
		EnqueuedAt: time.Now().UTC(),
	})
}

func DecodeJob(data []byte) (Job, error) {
	var j Job

	if err := json.Unmarshal(data, &j); err != nil {
		return Job{}, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
	}

	if !j.Type.IsValid() {
		return Job{}, ErrInvalidJobType
	}

	return j, nil
}

// DecodePayload unmarshals job.Payload into the correct typed payload struct.
func DecodePayload(j Job) (any, error) {
	if !j.Type.IsValid() {
		return nil, ErrInvalidJobType
	}
	if len(j.Payload) == 0 {
		return nil, ErrInvalidJobPayload
	}

	switch j.Type {
	case JobSendWelcome:
		var p WelcomePayload
		if err := json.Unmarshal(j.Payload, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
		}
		return p, nil

	case JobSendVerified:
		var p VerifiedPayload
		if err := json.Unmarshal(j.Payload, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidJobPayload, err)
		}
		return p, nil

	default:
		return nil, ErrInvalidJobType
	}
}
