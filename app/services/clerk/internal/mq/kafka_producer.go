package mq

import (
	"context"
	"encoding/json"

	"ClerkAI/app/services/clerk/internal/svc"

	"github.com/segmentio/kafka-go"
)

// PublishClerkEvent sends the turn's actions to the actions topic, keyed by
// session so one shopper's events stay ordered.
func PublishClerkEvent(ctx context.Context, sc *svc.ServiceContext, evt ClerkEvent) error {
	if sc.KafkaWriter == nil || len(evt.Actions) == 0 {
		return nil
	}
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return sc.KafkaWriter.WriteMessages(ctx, kafka.Message{Key: []byte(evt.SessionId), Value: body})
}
