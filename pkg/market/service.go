package market

import (
	"context"

	"go.uber.org/zap"
)

// Event routing keys published on order activity.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// Service implements the order placement and fulfillment workflow: stock
// reservation, order creation, role-gated status transitions and the
// notification read-tracking side channel.
type Service struct {
	products ProductStore
	orders   OrderStore
	users    UserStore
	logger   *zap.Logger

	// optional collaborators
	audit  AuditLog
	events EventPublisher
	cache  UnreadCache
}

func NewService(products ProductStore, orders OrderStore, users UserStore, logger *zap.Logger) *Service {
	return &Service{
		products: products,
		orders:   orders,
		users:    users,
		logger:   logger,
	}
}

func (s *Service) SetAuditLog(audit AuditLog) {
	s.audit = audit
}

func (s *Service) SetEventPublisher(events EventPublisher) {
	s.events = events
}

func (s *Service) SetUnreadCache(cache UnreadCache) {
	s.cache = cache
}

// recordActivity writes the audit entry and publishes the integration
// event. Both are fire-and-forget: the order itself has already been
// committed.
func (s *Service) recordActivity(event AuditEvent) {
	ctx := context.Background()

	if s.audit != nil {
		if err := s.audit.Record(ctx, event); err != nil {
			s.logger.Warn("Failed to record audit entry",
				zap.String("action", event.Action),
				zap.String("order_id", event.OrderID),
				zap.Error(err))
		}
	}

	if s.events != nil {
		if err := s.events.Publish(ctx, event.Action, event); err != nil {
			s.logger.Warn("Failed to publish event",
				zap.String("routing_key", event.Action),
				zap.String("order_id", event.OrderID),
				zap.Error(err))
		}
	}
}
