package notify

import (
	"log"

	"github.com/trainermarkt/backend/internal/models"
	"github.com/trainermarkt/backend/pkg/rabbitmq"
)

var routingKeys = map[models.MessageKind]string{
	models.MessageRequestAccepted: "request.accepted",
	models.MessageRequestDeclined: "request.declined",
	models.MessageRequestBooked:   "request.booked",
}

// Notifier mirrors persisted notification messages to the message broker.
// Publishing is best-effort: failures are logged and never surfaced to the
// caller, because the state transition has already committed.
type Notifier interface {
	Notify(msgs []models.Message)
}

type notifier struct {
	publisher *rabbitmq.Publisher
}

func NewNotifier(publisher *rabbitmq.Publisher) Notifier {
	return &notifier{publisher: publisher}
}

func (n *notifier) Notify(msgs []models.Message) {
	if n.publisher == nil {
		return
	}
	for _, msg := range msgs {
		key, ok := routingKeys[msg.Kind]
		if !ok {
			log.Printf("[Notifier] unknown message kind %q, skipping", msg.Kind)
			continue
		}
		if err := n.publisher.Publish(key, msg.PublicID, msg); err != nil {
			log.Printf("[Notifier] failed to publish message %s: %v", msg.PublicID, err)
		}
	}
}
