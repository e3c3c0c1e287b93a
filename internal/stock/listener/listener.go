package listener

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/stock"
	"github.com/fekuna/omnipos-catalog-service/internal/stock/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/apperr"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const EventStockAdjusted = "StockAdjusted"

// MessageReader is satisfied by *broker.KafkaConsumer.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type StockListener struct {
	consumer   MessageReader
	uc         stock.UseCase
	logger     logger.ZapLogger
	retryDelay time.Duration
}

func NewStockListener(consumer MessageReader, uc stock.UseCase, logger logger.ZapLogger) *StockListener {
	return &StockListener{
		consumer:   consumer,
		uc:         uc,
		logger:     logger,
		retryDelay: time.Second,
	}
}

// Start consumes events until ctx is done. An offset is committed only once
// its event was applied or failed for a reason a retry cannot fix, so an
// event that hit a transient failure is redelivered after a restart.
func (l *StockListener) Start(ctx context.Context) {
	l.logger.Info("Starting Stock Kafka Listener")
	for {
		msg, err := l.consumer.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				l.logger.Info("Stopping Stock Kafka Listener")
				return
			}
			l.logger.Error("Failed to read kafka message", zap.Error(err))
			time.Sleep(1 * time.Second)
			continue
		}

		if !l.handle(ctx, msg) {
			l.logger.Info("Stopping Stock Kafka Listener")
			return
		}
		if err := l.consumer.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return
			}
			l.logger.Error("Failed to commit kafka message",
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}
	}
}

// handle applies msg, retrying transient failures, and reports whether its
// offset may be committed. It returns false only when ctx ends first.
func (l *StockListener) handle(ctx context.Context, msg kafka.Message) bool {
	for {
		err := l.processMessage(ctx, msg.Value)
		if err == nil || !retryable(err) {
			return true
		}
		l.logger.Warn("Retrying stock event",
			zap.Int64("offset", msg.Offset),
			zap.Duration("delay", l.retryDelay),
			zap.Error(err),
		)
		select {
		case <-ctx.Done():
			return false
		case <-time.After(l.retryDelay):
		}
	}
}

// retryable reports whether err may succeed on another attempt. Domain
// errors are final; serialization conflicts and infrastructure errors are not.
func retryable(err error) bool {
	switch apperr.KindOf(err) {
	case "", apperr.KindStorageConflict:
		return true
	}
	return false
}

type StockEvent struct {
	EventID   string       `json:"event_id"`
	EventType string       `json:"event_type"`
	Payload   StockPayload `json:"payload"`
	Timestamp time.Time    `json:"timestamp"`
}

type StockPayload struct {
	Code       string          `json:"code"`
	CountDelta int             `json:"count_delta"`
	Price      decimal.Decimal `json:"price"`
}

// processMessage returns nil for events it skips, including malformed ones.
func (l *StockListener) processMessage(ctx context.Context, value []byte) error {
	var event StockEvent
	if err := json.Unmarshal(value, &event); err != nil {
		l.logger.Error("Failed to unmarshal event", zap.Error(err))
		return nil
	}

	if event.EventType != EventStockAdjusted {
		return nil
	}

	l.logger.Info("Processing StockAdjusted event",
		zap.String("event_id", event.EventID),
		zap.String("code", event.Payload.Code),
	)

	_, err := l.uc.UpdateStock(ctx, &dto.UpdateStockInput{
		Code:       event.Payload.Code,
		CountDelta: event.Payload.CountDelta,
		Price:      event.Payload.Price,
	})
	if err != nil {
		l.logger.Error("Failed to apply stock event",
			zap.String("event_id", event.EventID),
			zap.String("code", event.Payload.Code),
			zap.Error(err),
		)
		return err
	}
	return nil
}
