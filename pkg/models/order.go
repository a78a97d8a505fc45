package models

import (
	"time"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// ActiveStatuses are the statuses that keep an order in a seller's queue.
var ActiveStatuses = []OrderStatus{StatusPending, StatusConfirmed}

// Payment methods. The method is a label on the order, not a transaction.
const (
	PaymentCash = "Cash"
	PaymentUPI  = "UPI"
)

func ValidPaymentMethod(m string) bool {
	return m == PaymentCash || m == PaymentUPI
}

// Order is the aggregate root for one checkout. Buyer details are
// denormalized at creation time. Items, Notifications and StatusHistory are
// owned by the order and created with it; an order is never deleted.
type Order struct {
	ID             string              `gorm:"primaryKey;type:varchar(36)" json:"id"`
	BuyerID        string              `gorm:"type:varchar(36);not null;index" json:"buyer_id"`
	BuyerName      string              `gorm:"type:varchar(100);not null" json:"buyer_name"`
	BuyerEmail     string              `gorm:"type:varchar(100);not null" json:"buyer_email"`
	ContactNumber  string              `gorm:"type:varchar(20);not null" json:"contact_number"`
	Hostel         string              `gorm:"type:varchar(50);not null" json:"hostel"`
	RoomNumber     string              `gorm:"type:varchar(20);not null" json:"room_number"`
	PaymentMethod  string              `gorm:"type:varchar(20);not null" json:"payment_method"`
	DeliveryCharge int64               `gorm:"not null" json:"delivery_charge"`
	TotalAmount    int64               `gorm:"not null" json:"total_amount"`
	Status         OrderStatus         `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	Items          []OrderItem         `gorm:"foreignKey:OrderID" json:"items"`
	Notifications  []OrderNotification `gorm:"foreignKey:OrderID" json:"sellers_notified"`
	StatusHistory  []OrderStatusEntry  `gorm:"foreignKey:OrderID" json:"status_history"`
	CreatedAt      time.Time           `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

func (Order) TableName() string {
	return "orders"
}

// SellerIDs returns the distinct sellers represented in the order lines, in
// first-appearance order.
func (o *Order) SellerIDs() []string {
	seen := make(map[string]bool, len(o.Items))
	var ids []string
	for _, item := range o.Items {
		if !seen[item.SellerID] {
			seen[item.SellerID] = true
			ids = append(ids, item.SellerID)
		}
	}
	return ids
}

// HasSeller reports whether the seller owns at least one line in the order.
func (o *Order) HasSeller(sellerID string) bool {
	for _, item := range o.Items {
		if item.SellerID == sellerID {
			return true
		}
	}
	return false
}

// OrderItem snapshots a product at order time, so later product edits or
// soft deletes do not alter historical orders.
type OrderItem struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID   string `gorm:"type:varchar(36);not null;index" json:"-"`
	ProductID string `gorm:"type:varchar(36);not null" json:"product_id"`
	Title     string `gorm:"type:varchar(200)" json:"title"`
	Price     int64  `gorm:"not null" json:"price"`
	Quantity  int64  `gorm:"not null" json:"quantity"`
	SellerID  string `gorm:"type:varchar(36);not null;index" json:"seller_id"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// OrderNotification is the per-seller unread flag for one order.
type OrderNotification struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID    string    `gorm:"type:varchar(36);not null;index:idx_notif_order_seller" json:"-"`
	SellerID   string    `gorm:"type:varchar(36);not null;index:idx_notif_order_seller;index" json:"seller_id"`
	IsRead     bool      `gorm:"default:false" json:"is_read"`
	NotifiedAt time.Time `json:"notified_at"`
}

func (OrderNotification) TableName() string {
	return "order_notifications"
}

// OrderStatusEntry is one entry in the append-only status audit trail.
// Entries are never edited or removed.
type OrderStatusEntry struct {
	ID        uint        `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID   string      `gorm:"type:varchar(36);not null;index" json:"-"`
	Status    OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	UpdatedBy string      `gorm:"type:varchar(100);not null" json:"updated_by"`
	CreatedAt time.Time   `json:"updated_at"`
}

func (OrderStatusEntry) TableName() string {
	return "order_status_entries"
}
