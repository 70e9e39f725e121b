package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ChannelCandidateUpdated carries every candidate write so the admin monitor
// can re-render without polling.
const ChannelCandidateUpdated = "candidate_updated"

// CandidateEvent is the change-notification payload.
type CandidateEvent struct {
	CandidateID    uint   `json:"candidateId"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	CurrentRound   int    `json:"currentRound"`
	IntegrityScore int    `json:"integrityScore"`
	FinalScore     int    `json:"finalScore"`
	FinalVerdict   string `json:"finalVerdict,omitempty"`
	Reason         string `json:"reason,omitempty"`
}

// Publisher pushes candidate change notifications onto Redis.
type Publisher struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewPublisher(rdb *redis.Client, logger *zap.Logger) *Publisher {
	return &Publisher{rdb: rdb, logger: logger}
}

func (p *Publisher) PublishCandidateUpdate(ctx context.Context, event CandidateEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := p.rdb.Publish(ctx, ChannelCandidateUpdated, payload).Err(); err != nil {
		p.logger.Error("Failed to publish candidate update",
			zap.Uint("candidate_id", event.CandidateID),
			zap.Error(err))
		return err
	}
	return nil
}

// Subscriber feeds candidate change notifications to consumers such as the
// admin live feed.
type Subscriber struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewSubscriber(rdb *redis.Client, logger *zap.Logger) *Subscriber {
	return &Subscriber{rdb: rdb, logger: logger}
}

// Subscribe listens for candidate updates until ctx is cancelled. Malformed
// payloads are logged and skipped.
func (s *Subscriber) Subscribe(ctx context.Context) <-chan CandidateEvent {
	out := make(chan CandidateEvent)

	go func() {
		defer close(out)

		subscriber := s.rdb.Subscribe(ctx, ChannelCandidateUpdated)
		defer subscriber.Close()
		ch := subscriber.Channel()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event CandidateEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					s.logger.Warn("Failed to unmarshal candidate event", zap.Error(err))
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
