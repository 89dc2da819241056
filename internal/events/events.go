// Package events публикует доменные события сервиса. Публикация выполняется
// по принципу best effort: ошибка брокера логируется и не прерывает запрос.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/financeiro/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/financeiro/internal/lib/sl"
)

// Ключи маршрутизации событий.
const (
	UserRegistered = "user.registered"
	PlanActivated  = "plan.activated"
	AccountPaid    = "account.paid"
)

// Event — конверт события.
type Event struct {
	Type       string    `json:"type"`
	UserUID    string    `json:"user_uid"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    any       `json:"payload,omitempty"`
}

// Publisher отправляет события.
type Publisher interface {
	Publish(ctx context.Context, eventType, userUID string, payload any)
}

// AMQPPublisher публикует события в topic-обменник RabbitMQ.
type AMQPPublisher struct {
	mu       sync.Mutex
	ch       rabbitmq.Channel
	exchange string
	log      *slog.Logger
	now      func() time.Time
}

// NewAMQPPublisher создаёт публикатора поверх открытого канала.
func NewAMQPPublisher(ch rabbitmq.Channel, exchange string, log *slog.Logger) *AMQPPublisher {
	return &AMQPPublisher{
		ch:       ch,
		exchange: exchange,
		log:      log,
		now:      time.Now,
	}
}

// Publish отправляет событие. Ошибки только логируются.
func (p *AMQPPublisher) Publish(ctx context.Context, eventType, userUID string, payload any) {
	const op = "events.Publish"
	log := p.log.With(slog.String("op", op), slog.String("event", eventType))

	if err := ctx.Err(); err != nil {
		log.Warn("context done, event dropped", sl.Err(err))
		return
	}

	event := Event{
		Type:       eventType,
		UserUID:    userUID,
		OccurredAt: p.now().UTC(),
		Payload:    payload,
	}

	p.mu.Lock()
	err := rabbitmq.PublishMessage(p.ch, p.exchange, eventType, event)
	p.mu.Unlock()
	if err != nil {
		log.Error("failed to publish event", sl.Err(err))
		return
	}
	log.Debug("event published")
}

// NopPublisher только пишет событие в лог. Используется, когда брокер отключён.
type NopPublisher struct {
	log *slog.Logger
}

// NewNopPublisher создаёт NopPublisher.
func NewNopPublisher(log *slog.Logger) *NopPublisher {
	return &NopPublisher{log: log}
}

// Publish пишет событие в лог на уровне debug.
func (p *NopPublisher) Publish(_ context.Context, eventType, userUID string, _ any) {
	p.log.Debug("event not published, broker disabled",
		slog.String("event", eventType),
		slog.String("user_uid", userUID),
	)
}
