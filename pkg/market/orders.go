package market

import (
	"context"
	"time"

	"github.com/example/snackmarket/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DeliveryCharge is the fixed per-order surcharge in currency units. It is
// always server-authoritative and never taken from the caller.
const DeliveryCharge int64 = 10

type OrderLineInput struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type PlaceOrderInput struct {
	ContactNumber string
	Hostel        string
	RoomNumber    string
	PaymentMethod string
	Lines         []OrderLineInput
}

// PlaceOrder reserves stock for every line and creates the order with its
// item snapshots, per-seller notifications and the initial history entry.
// Stock stays decremented even if the order is later cancelled.
func (s *Service) PlaceOrder(ctx context.Context, actor Identity, in PlaceOrderInput) (*models.Order, error) {
	if err := validatePlaceOrder(in); err != nil {
		return nil, err
	}

	lines := mergeLines(in.Lines)

	snapshots, err := s.products.Reserve(ctx, lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		ID:             uuid.NewString(),
		BuyerID:        actor.UserID,
		BuyerName:      actor.Name,
		BuyerEmail:     actor.Email,
		ContactNumber:  in.ContactNumber,
		Hostel:         in.Hostel,
		RoomNumber:     in.RoomNumber,
		PaymentMethod:  in.PaymentMethod,
		DeliveryCharge: DeliveryCharge,
		Status:         models.StatusPending,
	}

	var subtotal int64
	for _, line := range lines {
		p := snapshots[line.ProductID]
		order.Items = append(order.Items, models.OrderItem{
			ProductID: p.ID,
			Title:     p.Title,
			Price:     p.Price,
			Quantity:  line.Quantity,
			SellerID:  p.SellerID,
		})
		subtotal += p.Price * line.Quantity
	}
	order.TotalAmount = subtotal + DeliveryCharge

	for _, sellerID := range order.SellerIDs() {
		order.Notifications = append(order.Notifications, models.OrderNotification{
			SellerID:   sellerID,
			IsRead:     false,
			NotifiedAt: now,
		})
	}

	order.StatusHistory = []models.OrderStatusEntry{{
		Status:    models.StatusPending,
		UpdatedBy: SystemActor,
		CreatedAt: now,
	}}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID),
		zap.String("buyer_id", order.BuyerID),
		zap.Int64("total_amount", order.TotalAmount),
		zap.Int("item_count", len(order.Items)))

	if s.cache != nil {
		s.cache.InvalidateUnread(ctx, order.SellerIDs()...)
	}

	go s.recordActivity(AuditEvent{
		Action:  EventOrderCreated,
		OrderID: order.ID,
		Actor:   order.BuyerID,
		Data: map[string]interface{}{
			"buyer_id":     order.BuyerID,
			"total_amount": order.TotalAmount,
			"item_count":   len(order.Items),
		},
		CreatedAt: now,
	})

	return order, nil
}

// TransitionStatus applies a role-gated status change and appends the
// history entry. The store serializes concurrent transitions on the same
// order; a lost race surfaces as ErrConflict.
func (s *Service) TransitionStatus(ctx context.Context, actor Identity, orderID string, to models.OrderStatus) (*models.Order, error) {
	if !to.Valid() {
		return nil, validationError("invalid status %q", to)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := checkTransition(actor, order, to); err != nil {
		return nil, err
	}

	updated, err := s.orders.UpdateStatus(ctx, orderID, order.Status, to, actor.ActorLabel())
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order status updated",
		zap.String("order_id", orderID),
		zap.String("from", string(order.Status)),
		zap.String("to", string(to)),
		zap.String("actor", actor.ActorLabel()))

	if s.cache != nil {
		s.cache.InvalidateUnread(ctx, updated.SellerIDs()...)
	}

	go s.recordActivity(AuditEvent{
		Action:  EventOrderStatusChanged,
		OrderID: orderID,
		Actor:   actor.ActorLabel(),
		Data: map[string]interface{}{
			"from": string(order.Status),
			"to":   string(to),
		},
		CreatedAt: time.Now(),
	})

	return updated, nil
}

// OrdersForAdmin returns every order, newest first.
func (s *Service) OrdersForAdmin(ctx context.Context, actor Identity) ([]models.Order, error) {
	if !actor.IsAdmin {
		return nil, ErrUnauthorized
	}
	return s.orders.ListAll(ctx)
}

// OrdersForSeller returns the caller's active queue: orders containing at
// least one of their lines with status pending or confirmed, newest first.
// Viewing the queue marks the caller's unread notifications on those orders
// as read; there is no separate acknowledgement call.
func (s *Service) OrdersForSeller(ctx context.Context, actor Identity) ([]models.Order, error) {
	if actor.Role != models.RoleSeller {
		return nil, ErrUnauthorized
	}

	orders, err := s.orders.ListBySeller(ctx, actor.UserID, models.ActiveStatuses)
	if err != nil {
		return nil, err
	}

	if len(orders) > 0 {
		ids := make([]string, len(orders))
		for i, o := range orders {
			ids[i] = o.ID
		}
		if err := s.orders.MarkNotificationsRead(ctx, actor.UserID, ids); err != nil {
			return nil, err
		}
	}

	if s.cache != nil {
		s.cache.InvalidateUnread(ctx, actor.UserID)
	}

	return orders, nil
}

// OrdersForBuyer returns the caller's full order history, newest first.
func (s *Service) OrdersForBuyer(ctx context.Context, actor Identity) ([]models.Order, error) {
	return s.orders.ListByBuyer(ctx, actor.UserID)
}

// UnreadCount counts orders where the seller has an unread notification and
// the order is still in their active queue. It never marks anything read.
func (s *Service) UnreadCount(ctx context.Context, actor Identity) (int64, error) {
	if actor.Role != models.RoleSeller {
		return 0, ErrUnauthorized
	}

	if s.cache != nil {
		if count, ok := s.cache.GetUnreadCount(ctx, actor.UserID); ok {
			return count, nil
		}
	}

	count, err := s.orders.CountUnread(ctx, actor.UserID, models.ActiveStatuses)
	if err != nil {
		return 0, err
	}

	if s.cache != nil {
		s.cache.SetUnreadCount(ctx, actor.UserID, count)
	}

	return count, nil
}

// OrderAudit returns the audit trail recorded for one order, newest first.
func (s *Service) OrderAudit(ctx context.Context, actor Identity, orderID string, limit int64) ([]AuditEvent, error) {
	if !actor.IsAdmin {
		return nil, ErrUnauthorized
	}
	if s.audit == nil {
		return nil, nil
	}
	return s.audit.Entries(ctx, orderID, limit)
}

func validatePlaceOrder(in PlaceOrderInput) error {
	if in.ContactNumber == "" {
		return validationError("contact number is required")
	}
	if in.RoomNumber == "" {
		return validationError("room number is required")
	}
	if !models.ValidHostel(in.Hostel) {
		return validationError("unknown hostel %q", in.Hostel)
	}
	if !models.ValidPaymentMethod(in.PaymentMethod) {
		return validationError("unknown payment method %q", in.PaymentMethod)
	}
	if len(in.Lines) == 0 {
		return validationError("order has no items")
	}
	for _, line := range in.Lines {
		if line.ProductID == "" {
			return validationError("order line is missing a product id")
		}
		if line.Quantity <= 0 {
			return validationError("quantity for product %s must be positive", line.ProductID)
		}
	}
	return nil
}

// mergeLines combines duplicate product lines so each product is reserved
// exactly once for its combined quantity.
func mergeLines(lines []OrderLineInput) []ReservationLine {
	index := make(map[string]int, len(lines))
	var merged []ReservationLine
	for _, line := range lines {
		if i, ok := index[line.ProductID]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, ReservationLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}
	return merged
}
