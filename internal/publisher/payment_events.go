package publisher

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/PraveshYadav900/codenest-website/internal/repository"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the slice of kafka.Writer the poller needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// PaymentEventPoller drains the payment_events outbox and publishes each
// entry to Kafka. Events stay unprocessed until the publish succeeds, so
// a broker outage means retry, not loss.
type PaymentEventPoller struct {
	tick      time.Duration
	batchSize int
	repo      repository.Store
	writer    MessageWriter
}

func NewPaymentEventPoller(repo repository.Store, brokers ...string) *PaymentEventPoller {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "payment-events",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return &PaymentEventPoller{
		tick:      time.Second,
		batchSize: 100,
		repo:      repo,
		writer:    w,
	}
}

func (p *PaymentEventPoller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.processUnpublishedEvents(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *PaymentEventPoller) processUnpublishedEvents(ctx context.Context) {
	events, err := p.repo.GetUnprocessedEvents(ctx, p.batchSize)
	if err != nil {
		log.Printf("failed to fetch payment events: %v", err)
		return
	}

	for _, event := range events {
		errPublish := p.publish(ctx, event)
		if errPublish != nil {
			log.Printf("failed to publish payment event id = %v with error %v", event.ID, errPublish)
			continue
		}

		errMark := p.repo.MarkEventAsProcessed(ctx, event.ID)
		if errMark != nil {
			log.Printf("failed to mark payment event as processed id = %v with error %v", event.ID, errMark)
			continue
		}
	}
}

func (p *PaymentEventPoller) publish(ctx context.Context, event *repository.PaymentEvent) error {
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)), // order id for ordering
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "txn_id", Value: []byte(event.TxnID)},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}
