package kafka

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	applogger "FinSight/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// MessageHandler handles messages from a specific topic.
type MessageHandler interface {
	Topic() string
	Handle(context.Context, []byte) error
}

// Consumer wraps Kafka readers with a worker pool.
type Consumer struct {
	cfg      *ConsumerConfig
	logger   *applogger.Logger
	readers  map[string]*kafka.Reader
	handlers map[string]MessageHandler
	stopChan chan struct{}
	msgChan  chan *message
	wg       sync.WaitGroup
	stopOnce sync.Once
}

type message struct {
	topic string
	data  []byte
	km    kafka.Message
}

// NewConsumer creates a new Kafka consumer.
func NewConsumer(logger *applogger.Logger, opts ...ConsumerOption) (*Consumer, error) {
	cfg := &ConsumerConfig{
		GroupID:     "default",
		WorkerCount: 1,
		BufferSize:  10,
		RetryMax:    3,
		BackoffMin:  50 * time.Millisecond,
		BackoffMax:  2 * time.Second,
		MinBytes:    10e3, // 10KB
		MaxBytes:    10e6, // 10MB
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("brokers are required")
	}
	if logger == nil {
		logger = applogger.Nop()
	}

	return &Consumer{
		cfg:      cfg,
		logger:   logger,
		readers:  make(map[string]*kafka.Reader),
		handlers: make(map[string]MessageHandler),
		stopChan: make(chan struct{}),
		msgChan:  make(chan *message, cfg.BufferSize),
	}, nil
}

// RegisterHandler registers a message handler for a specific topic.
func (c *Consumer) RegisterHandler(handler MessageHandler) {
	topic := handler.Topic()
	if _, ok := c.handlers[topic]; ok {
		c.logger.Warn("handler already registered", applogger.String("topic", topic))
		return
	}
	c.handlers[topic] = handler
}

// Start starts the Kafka consumer and workers.
func (c *Consumer) Start() error {
	for topic := range c.handlers {
		c.readers[topic] = kafka.NewReader(kafka.ReaderConfig{
			Brokers:  c.cfg.Brokers,
			Topic:    topic,
			GroupID:  c.cfg.GroupID,
			MinBytes: c.cfg.MinBytes,
			MaxBytes: c.cfg.MaxBytes,
		})
		c.logger.Info("kafka consumer: registered topic", applogger.String("topic", topic))
	}

	for i := 0; i < c.cfg.WorkerCount; i++ {
		c.wg.Add(1)
		go c.messageWorker()
	}

	for topic, reader := range c.readers {
		c.wg.Add(1)
		go c.consumeMessages(topic, reader)
	}

	c.logger.Info("kafka consumer: started", applogger.Int("workers", c.cfg.WorkerCount))
	return nil
}

// Stop stops the Kafka consumer gracefully.
func (c *Consumer) Stop(ctx context.Context) error {
	var stopErr error

	c.stopOnce.Do(func() {
		close(c.stopChan)
		close(c.msgChan)

		stopErr = c.waitForWg(ctx)

		for topic, reader := range c.readers {
			if err := reader.Close(); err != nil {
				c.logger.Error("error closing reader", applogger.String("topic", topic), applogger.Error(err))
			}
		}
	})

	return stopErr
}

func (c *Consumer) waitForWg(ctx context.Context) error {
	doneChan := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(doneChan)
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("timeout waiting for consumer to stop: %w", ctx.Err())
	case <-doneChan:
		return nil
	}
}

func (c *Consumer) consumeMessages(topic string, reader *kafka.Reader) {
	defer c.wg.Done()

	for {
		select {
		case <-c.stopChan:
			return
		default:
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			msg, err := reader.FetchMessage(ctx)
			cancel()

			if err != nil {
				if !errors.Is(err, context.DeadlineExceeded) {
					c.logger.Error("error reading message", applogger.String("topic", topic), applogger.Error(err))
				}
				continue
			}

			select {
			case c.msgChan <- &message{topic: topic, data: msg.Value, km: msg}:
			case <-c.stopChan:
				return
			}
		}
	}
}

// messageWorker processes messages from the channel with bounded retries.
func (c *Consumer) messageWorker() {
	defer c.wg.Done()

	for msg := range c.msgChan {
		handler, exists := c.handlers[msg.topic]
		if !exists {
			continue
		}
		c.handleWithRetry(handler, msg)
	}
}

func (c *Consumer) handleWithRetry(handler MessageHandler, msg *message) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("panic in message handler",
				applogger.String("topic", msg.topic),
				applogger.Any("panic", r),
			)
		}
	}()

	var err error
	for attempt := 1; ; attempt++ {
		err = handler.Handle(context.Background(), msg.data)
		if err == nil || attempt > c.cfg.RetryMax {
			break
		}
		select {
		case <-time.After(backoffWithJitter(c.cfg.BackoffMin, c.cfg.BackoffMax, attempt)):
		case <-c.stopChan:
			return
		}
	}
	if err != nil {
		c.logger.Error("message handling failed",
			applogger.String("topic", msg.topic),
			applogger.Error(err),
		)
	}

	// Commit even on failure so a poison message cannot wedge the partition.
	if reader := c.readers[msg.topic]; reader != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := reader.CommitMessages(ctx, msg.km); err != nil {
			c.logger.Error("error committing message", applogger.String("topic", msg.topic), applogger.Error(err))
		}
		cancel()
	}
}

func backoffWithJitter(min, max time.Duration, attempt int) time.Duration {
	if min <= 0 {
		min = 50 * time.Millisecond
	}
	if max < min {
		max = min
	}
	exp := min * time.Duration(1<<uint(attempt-1))
	if exp > max {
		exp = max
	}
	jitter := time.Duration(rand.Int63n(int64(exp) / 2))
	return exp - jitter
}
