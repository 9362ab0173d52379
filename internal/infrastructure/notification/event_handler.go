package notification

import (
	"context"
	"fmt"

	"github.com/floorops/backend/internal/domain/inventory"
	"github.com/floorops/backend/internal/domain/loyalty"
	"github.com/floorops/backend/internal/domain/order"
	"github.com/floorops/backend/internal/domain/shared"
	"github.com/floorops/backend/internal/domain/table"
	"go.uber.org/zap"
)

// EventHandler subscribes to domain events and forwards the user-facing ones
// to the notification sink
type EventHandler struct {
	sink   Sink
	logger *zap.Logger
}

// NewEventHandler creates a notification event handler
func NewEventHandler(sink Sink, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		sink:   sink,
		logger: logger,
	}
}

// EventTypes returns the event types translated into notices
func (h *EventHandler) EventTypes() []string {
	return []string{
		inventory.EventStockBelowMinimum,
		order.EventOrderVoided,
		table.EventTableCalling,
		loyalty.EventCouponRedeemed,
	}
}

// Handle translates a domain event into a severity-tagged notice
func (h *EventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *inventory.StockBelowMinimumEvent:
		h.sink.Notify(NewNotice(SeverityWarning,
			fmt.Sprintf("Low stock: %s is down to %s (minimum %s)",
				e.ItemName, e.Quantity, e.MinQuantity)))
	case *order.OrderVoidedEvent:
		h.sink.Notify(NewNotice(SeverityError,
			fmt.Sprintf("Order %s voided: %s", e.AggregateID(), e.Reason)))
	case *table.TableCallingEvent:
		h.sink.Notify(NewNotice(SeverityInfo,
			fmt.Sprintf("Table %s is calling staff", e.TableName)))
	case *loyalty.CouponRedeemedEvent:
		h.sink.Notify(NewNotice(SeveritySuccess,
			fmt.Sprintf("%s redeemed coupon %s for %d points",
				e.CustomerName, e.CouponCode, e.PointCost)))
	default:
		h.logger.Debug("unhandled notification event",
			zap.String("event_type", event.EventType()))
	}
	return nil
}

var _ shared.EventHandler = (*EventHandler)(nil)

// ZapSink logs notices through zap; the default sink when no external
// collaborator is attached
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink creates a zap-backed sink
func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

// Notify implements Sink
func (s *ZapSink) Notify(notice Notice) {
	fields := []zap.Field{
		zap.String("severity", string(notice.Severity)),
		zap.Time("at", notice.Timestamp),
	}
	switch notice.Severity {
	case SeverityWarning:
		s.logger.Warn(notice.Message, fields...)
	case SeverityError:
		s.logger.Error(notice.Message, fields...)
	default:
		s.logger.Info(notice.Message, fields...)
	}
}

var _ Sink = (*ZapSink)(nil)
