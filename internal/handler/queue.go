package handler

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/pkg/kafka"
)

const (
	actionCreateBook   = "create-book"
	actionUpdatePerson = "update-person"
	actionDeletePerson = "delete-person"
)

type Enqueuer interface {
	Enqueue(topic string, v any) error
}

func NewEnqueuer(producer sarama.SyncProducer) Enqueuer {
	return &enqueuerImpl{
		producer: producer,
	}
}

type enqueuerImpl struct {
	producer sarama.SyncProducer
}

func (q *enqueuerImpl) Enqueue(topic string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{Topic: topic, Value: sarama.StringEncoder(data)}
	if _, _, err = q.producer.SendMessage(msg); err != nil {
		return err
	}
	return nil
}

// audit publishes an audit event for a committed mutation. Publish failures
// are logged and never fail the request.
func (h *Handler) audit(action string, actorID int, resource string, resourceID int) {
	event := kafka.EventAudit{
		Action:     action,
		ActorID:    actorID,
		Resource:   resource,
		ResourceID: resourceID,
		At:         time.Now().UTC(),
	}
	if err := h.enqueuer.Enqueue(kafka.AuditTopic, event); err != nil {
		h.log.Error("audit enqueue", zap.String("action", action), zap.Error(err))
	}
}
