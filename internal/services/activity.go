package services

import (
	"context"

	"agency/internal/amqp"
	"agency/internal/core"
	"agency/internal/log"
	"agency/internal/sheets"
)

// ActivityPublisher announces successful writes. The AMQP client is the
// production implementation.
type ActivityPublisher interface {
	PublishActivity(ctx context.Context, msg *amqp.ActivityMessage) error
}

// sideChannels fans a successful write out to the optional publisher and
// ledger. Failures are logged, never returned: the record store is the
// source of truth.
type sideChannels struct {
	publisher ActivityPublisher
	ledger    sheets.SaleLedger
	logger    *log.Logger
	slog      *log.StructuredLogger
}

func (c *sideChannels) announce(ctx context.Context, entity, action string, id int64) {
	c.slog.LogMutation(ctx, entity, opFor(action), id)

	if c.publisher == nil {
		c.logger.DebugContext(ctx, "AMQP publisher not configured, skipping activity message",
			log.FieldEntity, entity, "action", action)
		return
	}
	if err := c.publisher.PublishActivity(ctx, amqp.NewActivityMessage(entity, action, id)); err != nil {
		c.logger.ErrorContext(ctx, "Failed to publish activity message",
			log.FieldEntity, entity,
			log.FieldEntityID, id,
			"action", action,
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeNetwork)
	}
}

func (c *sideChannels) record(ctx context.Context, s core.Sale) {
	if c.ledger == nil {
		return
	}
	ref, err := c.ledger.AppendSale(ctx, s)
	if err != nil {
		c.logger.ErrorContext(ctx, "Failed to append sale to ledger",
			log.FieldEntityID, s.ID,
			log.FieldError, err,
			log.FieldErrorType, log.ErrorTypeNetwork)
		return
	}
	c.logger.DebugContext(ctx, "Sale mirrored to ledger", log.FieldEntityID, s.ID, "ledger_ref", ref)
}

func opFor(action string) string {
	switch action {
	case amqp.ActionCreated:
		return log.OpCreate
	case amqp.ActionCompleted:
		return log.OpComplete
	case amqp.ActionDeleted:
		return log.OpDelete
	default:
		return action
	}
}
