package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"blogql/internal/cache"
	"blogql/internal/events"
)

// FeedInvalidator consumes post-changed events and drops cached feed pages so
// stale listings expire on write, not only by TTL.
type FeedInvalidator struct {
	conn      *amqp.Connection
	feedCache *cache.FeedCache
	queueName string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewFeedInvalidator(conn *amqp.Connection, feedCache *cache.FeedCache, queueName string) *FeedInvalidator {
	return &FeedInvalidator{
		conn:      conn,
		feedCache: feedCache,
		queueName: queueName,
	}
}

func (w *FeedInvalidator) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var event events.PostEvent
				if err := json.Unmarshal(d.Body, &event); err != nil {
					log.Printf("worker decode post event failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.feedCache.InvalidateAll(workerCtx); err != nil {
					log.Printf("worker invalidate feed cache failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *FeedInvalidator) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
