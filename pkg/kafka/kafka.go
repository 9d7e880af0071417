package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

const AuditTopic = "bookstore.audit"

// EventAudit records a mutating action for the audit trail.
type EventAudit struct {
	Action     string    `json:"action"`
	ActorID    int       `json:"actorId"`
	Resource   string    `json:"resource"`
	ResourceID int       `json:"resourceId"`
	At         time.Time `json:"at"`
}

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}
