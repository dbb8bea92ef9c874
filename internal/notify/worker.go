package notify

import (
	"context"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/you/hotel-reservations/internal/events"
)

type Config struct {
	RabbitURL   string
	Exchange    string
	Queue       string
	Bindings    []string
	Prefetch    int
	UseDLX      bool
	DLXName     string
	DLXQueue    string
	ServiceName string
}

// Consumer binds a durable queue to the reservation exchange and turns each
// lifecycle event into a notification.
type Consumer struct {
	cfg      Config
	notifier Notifier

	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewConsumer(cfg Config, n Notifier) *Consumer {
	return &Consumer{cfg: cfg, notifier: n}
}

func (c *Consumer) Connect() error {
	conn, err := amqp.Dial(c.cfg.RabbitURL)
	if err != nil {
		return fmt.Errorf("rabbit dial failed: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open channel failed: %w", err)
	}

	args := amqp.Table{}
	if c.cfg.UseDLX {
		args["x-dead-letter-exchange"] = c.cfg.DLXName
	}

	q, err := ch.QueueDeclare(c.cfg.Queue, true, false, false, false, args)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare queue failed: %w", err)
	}

	if err := ch.ExchangeDeclare(c.cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare exchange failed: %w", err)
	}
	for _, key := range c.cfg.Bindings {
		if err := ch.QueueBind(q.Name, key, c.cfg.Exchange, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("bind queue key=%s failed: %w", key, err)
		}
	}

	if c.cfg.UseDLX {
		if err := ch.ExchangeDeclare(c.cfg.DLXName, "topic", true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("declare dlx failed: %w", err)
		}
		if _, err := ch.QueueDeclare(c.cfg.DLXQueue, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("declare dlq failed: %w", err)
		}
		if err := ch.QueueBind(c.cfg.DLXQueue, "#", c.cfg.DLXName, false, nil); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return fmt.Errorf("bind dlq failed: %w", err)
		}
	}

	if c.cfg.Prefetch <= 0 {
		c.cfg.Prefetch = 8
	}
	if err := ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("set qos failed: %w", err)
	}

	c.conn = conn
	c.ch = ch
	return nil
}

func (c *Consumer) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.ConsumeWithContext(ctx, c.cfg.Queue, c.cfg.ServiceName, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume failed: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := c.handleDelivery(d); err != nil {
				// no requeue: a bad payload would spin forever, let the DLX keep it
				log.Printf("[notify] handle error key=%s err=%v -> Nack", d.RoutingKey, err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Consumer) handleDelivery(d amqp.Delivery) error {
	ev, err := events.MustUnmarshal[events.ReservationEvent](d.Body)
	if err != nil {
		return err
	}

	switch d.RoutingKey {
	case events.RKReservationCreated:
		return c.notifier.Notify("Reservation Created",
			fmt.Sprintf("Reservation %s (room=%s) %s, total %s",
				ev.ConfirmationCode, ev.RoomID, StayRange(ev.CheckIn, ev.CheckOut), ev.TotalPrice))

	case events.RKReservationConfirmed:
		return c.notifier.Notify("Reservation Confirmed",
			fmt.Sprintf("Reservation %s has been confirmed.", ev.ConfirmationCode))

	case events.RKReservationCancelled:
		return c.notifier.Notify("Reservation Cancelled",
			fmt.Sprintf("Reservation %s has been cancelled, refund %s.", ev.ConfirmationCode, ev.TotalPrice))

	case events.RKReservationCheckedIn:
		return c.notifier.Notify("Guest Checked In",
			fmt.Sprintf("Guest %s checked in for reservation %s.", ev.GuestEmail, ev.ConfirmationCode))

	case events.RKReservationCheckedOut:
		return c.notifier.Notify("Guest Checked Out",
			fmt.Sprintf("Guest %s checked out of reservation %s.", ev.GuestEmail, ev.ConfirmationCode))

	case events.RKReservationUpdated:
		return c.notifier.Notify("Reservation Updated",
			fmt.Sprintf("Reservation %s is now %s, total %s.",
				ev.ConfirmationCode, StayRange(ev.CheckIn, ev.CheckOut), ev.TotalPrice))

	case events.RKReservationExpired:
		return c.notifier.Notify("Reservation Expired",
			fmt.Sprintf("Reservation %s expired without confirmation.", ev.ConfirmationCode))

	default:
		log.Printf("[notify] skip unknown key=%s", d.RoutingKey)
	}
	return nil
}
