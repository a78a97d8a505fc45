package market

import (
	"context"
	"time"

	"github.com/example/snackmarket/pkg/models"
)

// ReservationLine is one product/quantity pair in a stock reservation.
type ReservationLine struct {
	ProductID string
	Quantity  int64
}

// ProductFilter narrows a catalog listing.
type ProductFilter struct {
	Hostel          string
	SellerID        string
	IncludeInactive bool
}

// ProductStore is the inventory side of the persistent store. Reserve must
// be all-or-nothing: either every line is decremented or no product is
// touched, with the decrement applied conditionally so quantity can never
// go negative. On success it returns the product snapshots keyed by id.
type ProductStore interface {
	Reserve(ctx context.Context, lines []ReservationLine) (map[string]models.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	FindOwned(ctx context.Context, id, sellerID string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Save(ctx context.Context, product *models.Product) error
	Deactivate(ctx context.Context, id, sellerID string) error
}

// OrderStore persists order aggregates. UpdateStatus performs a
// compare-and-swap on the previous status and appends the history entry in
// the same transaction; a lost race returns ErrConflict.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	ListByBuyer(ctx context.Context, buyerID string) ([]models.Order, error)
	ListBySeller(ctx context.Context, sellerID string, statuses []models.OrderStatus) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID string, from, to models.OrderStatus, actor string) (*models.Order, error)
	MarkNotificationsRead(ctx context.Context, sellerID string, orderIDs []string) error
	CountUnread(ctx context.Context, sellerID string, statuses []models.OrderStatus) (int64, error)
}

type UserStore interface {
	GetOrCreate(ctx context.Context, email, name string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
}

// AuditEvent is one entry in the external audit trail of order activity.
type AuditEvent struct {
	Action    string                 `json:"action"`
	OrderID   string                 `json:"order_id"`
	Actor     string                 `json:"actor"`
	Data      map[string]interface{} `json:"data"`
	CreatedAt time.Time              `json:"created_at"`
}

type AuditLog interface {
	Record(ctx context.Context, event AuditEvent) error
	Entries(ctx context.Context, orderID string, limit int64) ([]AuditEvent, error)
}

// EventPublisher fans order lifecycle events out to interested consumers.
// Delivery is best effort; the read-flag model on the order itself remains
// the source of truth for seller notifications.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload interface{}) error
}

// UnreadCache is a best-effort cache for seller unread counts. A miss or a
// failed write only costs a store query.
type UnreadCache interface {
	GetUnreadCount(ctx context.Context, sellerID string) (int64, bool)
	SetUnreadCount(ctx context.Context, sellerID string, count int64)
	InvalidateUnread(ctx context.Context, sellerIDs ...string)
}
