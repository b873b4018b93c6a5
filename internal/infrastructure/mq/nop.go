package mq

import "go.uber.org/zap"

// Nop stands in for RabbitMQ when no broker is configured.
type Nop struct {
	log *zap.Logger
}

func NewNop(logger *zap.Logger) *Nop { return &Nop{log: logger} }

func (n *Nop) Publish(e Event) bool {
	n.log.Debug("event not published, mq disabled", zap.String("action", e.Action), zap.String("entity_id", e.EntityID))
	return true
}
