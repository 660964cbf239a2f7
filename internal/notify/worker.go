package notify

import (
	"context"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/supplykingmv/vcard/internal/events"
	"github.com/supplykingmv/vcard/pkg/mq"
)

// Worker drains the cardbook exchange and turns contact / notification
// events into outbound messages. Deliveries are acked only after the
// notifier accepts them; failures are nacked back for redelivery.
type Worker struct {
	consumer *mq.Consumer
	notifier Notifier
}

func NewWorker(consumer *mq.Consumer, notifier Notifier) *Worker {
	return &Worker{consumer: consumer, notifier: notifier}
}

func (w *Worker) Run(ctx context.Context) error {
	msgs, err := w.consumer.Deliveries(ctx)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			if err := w.handle(d); err != nil {
				log.Printf("[notify] handle key=%s err=%v -> Nack&requeue", d.RoutingKey, err)
				_ = d.Nack(false, true)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (w *Worker) handle(d amqp.Delivery) error {
	switch d.RoutingKey {
	case events.RKContactAdded:
		ev, err := events.MustUnmarshal[events.ContactAdded](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("Contact added",
			fmt.Sprintf("%s added %q to the address book.", ev.ActorName, ev.ContactName))

	case events.RKNotificationCreated:
		ev, err := events.MustUnmarshal[events.NotificationCreated](d.Body)
		if err != nil {
			return err
		}
		return w.notifier.Notify("Notification",
			fmt.Sprintf("%s: %s", ev.SenderName, ev.Message))

	default:
		// unknown key: log and ack, nothing to retry
		log.Printf("[notify] skip unknown key=%s", d.RoutingKey)
	}
	return nil
}
