package planevents

import (
	"context"
	"fmt"
	"mdtcare-service/internal/app/contracts"
	"mdtcare-service/internal/pkg/constvars"
	"mdtcare-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher pushes plan lifecycle events to a durable RabbitMQ queue so
// downstream consumers (notification dispatch, report export) survive broker
// restarts. A dead-letter queue backs the standard queue for poison messages.
type Publisher struct {
	ch        *amqp.Channel
	log       *zap.Logger
	queueName string
	confirms  chan amqp.Confirmation
	mu        sync.Mutex
}

var (
	publisherInstance *Publisher
	oncePublisher     sync.Once
	oncePublisherErr  error
)

func NewPublisher(conn *amqp.Connection, log *zap.Logger, queueName, deadLetterQueueName string) (contracts.PlanEventPublisher, error) {
	oncePublisher.Do(func() {
		ch, err := conn.Channel()
		if err != nil {
			oncePublisherErr = err
			return
		}

		_, err = ch.QueueDeclare(
			queueName, // name
			true,      // durable
			false,     // autoDelete
			false,     // exclusive
			false,     // noWait
			amqp.Table{
				"x-dead-letter-exchange":    "",
				"x-dead-letter-routing-key": deadLetterQueueName,
			},
		)
		if err != nil {
			oncePublisherErr = err
			return
		}

		_, err = ch.QueueDeclare(
			deadLetterQueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			oncePublisherErr = err
			return
		}

		if err := ch.Confirm(false); err != nil {
			oncePublisherErr = err
			return
		}

		publisherInstance = &Publisher{
			ch:        ch,
			log:       log,
			queueName: queueName,
			confirms:  ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
		}
	})
	if oncePublisherErr != nil {
		return nil, oncePublisherErr
	}
	return publisherInstance, nil
}

// Publish sends the event with persistent delivery and waits for the broker
// confirm before returning.
func (p *Publisher) Publish(ctx context.Context, event contracts.PlanLifecycleEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.log.Info("planevents.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventNameKey, event.Event),
		zap.String(constvars.LoggingPlanIDKey, event.PlanID),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := p.ch.PublishWithContext(ctx, "", p.queueName, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.queueName)
	}

	select {
	case confirmed := <-p.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), p.queueName)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), p.queueName)
	}

	p.log.Info("planevents.Publish confirmed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, p.queueName),
	)
	return nil
}
