package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/stake-ledger/consumer"
	"github.com/babylonlabs-io/stake-ledger/internal/config"
	"github.com/babylonlabs-io/stake-ledger/internal/types"
)

// StakeEventsExchange fans every stake event out to the durable queue and to
// any temporary watcher queues bound to it.
const StakeEventsExchange = "stake_events"

var ErrNotStarted = errors.New("queue manager is not started")

var _ consumer.EventConsumer = (*QueueManager)(nil)

// QueueManager publishes stake events to RabbitMQ and subscribes to them.
type QueueManager struct {
	cfg *config.QueueConfig

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewQueueManager(cfg *config.QueueConfig) (*QueueManager, error) {
	if cfg == nil {
		return nil, errors.New("queue config is required")
	}
	return &QueueManager{cfg: cfg}, nil
}

// Start connects to the broker and declares the exchange and the durable
// stake events queue.
func (qm *QueueManager) Start() error {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	if qm.conn != nil {
		return nil
	}

	conn, err := amqp.Dial(qm.cfg.AmqpURL())
	if err != nil {
		return fmt.Errorf("failed to connect to queue: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.Confirm(false); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	if err := declareTopology(ch, qm.cfg); err != nil {
		conn.Close()
		return err
	}

	qm.conn = conn
	qm.ch = ch

	log.Info().
		Str("queue", qm.cfg.QueueName).
		Str("queue_type", qm.cfg.QueueType).
		Msg("Connected to queue")

	return nil
}

func declareTopology(ch *amqp.Channel, cfg *config.QueueConfig) error {
	err := ch.ExchangeDeclare(StakeEventsExchange, amqp.ExchangeFanout, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", StakeEventsExchange, err)
	}

	_, err = ch.QueueDeclare(
		cfg.QueueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		amqp.Table{"x-queue-type": cfg.QueueType},
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", cfg.QueueName, err)
	}

	if err := ch.QueueBind(cfg.QueueName, "", StakeEventsExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", cfg.QueueName, err)
	}

	return nil
}

// PushStakeEvent publishes ev and waits for the broker to confirm it.
func (qm *QueueManager) PushStakeEvent(ctx context.Context, ev *types.StakeEventMessage) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal stake event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, qm.cfg.QueueProcessingTimeout)
	defer cancel()

	qm.mu.Lock()
	if qm.ch == nil {
		qm.mu.Unlock()
		return ErrNotStarted
	}
	confirmation, err := qm.ch.PublishWithDeferredConfirmWithContext(ctx, StakeEventsExchange, "", true, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Type:         ev.EventType.String(),
		Body:         body,
	})
	qm.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish stake event %s: %w", ev.EventID, err)
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("failed waiting for confirmation of stake event %s: %w", ev.EventID, err)
	}
	if !acked {
		return fmt.Errorf("broker rejected stake event %s", ev.EventID)
	}

	log.Ctx(ctx).Debug().Str("event_id", ev.EventID).Msg("Published stake event")
	return nil
}

// ConsumeStakeEvents binds a temporary queue to the exchange, so watchers see
// every event without taking them from the durable queue.
func (qm *QueueManager) ConsumeStakeEvents(ctx context.Context, handler func(ev *types.StakeEventMessage) error) error {
	qm.mu.Lock()
	conn := qm.conn
	qm.mu.Unlock()
	if conn == nil {
		return ErrNotStarted
	}

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare watcher queue: %w", err)
	}
	if err := ch.QueueBind(q.Name, "", StakeEventsExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind watcher queue: %w", err)
	}

	deliveries, err := ch.ConsumeWithContext(ctx, q.Name, "", true, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume stake events: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("stake events delivery channel closed")
			}

			var ev types.StakeEventMessage
			if err := json.Unmarshal(d.Body, &ev); err != nil {
				log.Ctx(ctx).Warn().Err(err).Str("message_id", d.MessageId).Msg("Skipping malformed stake event")
				continue
			}
			if err := handler(&ev); err != nil {
				return err
			}
		}
	}
}

// Stop gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Stop() error {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	log.Info().Msg("Shutting down queue manager")

	if qm.conn == nil {
		return nil
	}

	err := qm.conn.Close()
	qm.conn = nil
	qm.ch = nil
	if err != nil && !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	return nil
}
