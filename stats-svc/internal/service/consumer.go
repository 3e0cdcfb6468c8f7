package service

import (
	"context"
	"encoding/json"
	"fmt"

	"foodplan/stats-svc/internal/domain"

	"go.uber.org/zap"
)

type Consumer struct {
	Reader MessageReader
	Store  CounterStore
	log    *zap.Logger
}

func NewConsumer(reader MessageReader, store CounterStore, log *zap.Logger) *Consumer {
	return &Consumer{
		Reader: reader,
		Store:  store,
		log:    log,
	}
}

// Start reads planner events until ctx is cancelled.
func (c *Consumer) Start(ctx context.Context) {
	c.log.Info("stats consumer started")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.log.Info("stats consumer stopped")
				return
			}
			c.log.Error("failed to read message", zap.Error(err))
			continue
		}

		var msg domain.KafkaMessage
		if err := json.Unmarshal(message.Value, &msg); err != nil {
			c.log.Warn("skipping malformed message", zap.Int64("offset", message.Offset), zap.Error(err))
			continue
		}

		if err := c.ProcessMessage(ctx, msg); err != nil {
			c.log.Error("failed to process message", zap.String("type", msg.Type), zap.Int("user_id", msg.UserID), zap.Error(err))
		}
	}
}

func (c *Consumer) ProcessMessage(ctx context.Context, msg domain.KafkaMessage) error {
	switch msg.Type {
	case domain.EventMenuGenerated:
		if msg.Date == "" {
			return fmt.Errorf("menu event for user %d has no date", msg.UserID)
		}
		return c.Store.IncrementDishes(ctx, msg.Date, msg.DishIDs)
	case domain.EventSubscriptionCreated:
		if msg.DietType == "" {
			return fmt.Errorf("subscription event for user %d has no diet", msg.UserID)
		}
		return c.Store.IncrementDiet(ctx, msg.DietType)
	default:
		c.log.Debug("ignoring event", zap.String("type", msg.Type))
		return nil
	}
}
