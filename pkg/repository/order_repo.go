package repository

import (
	"context"
	"errors"
	"time"

	"github.com/example/snackmarket/pkg/market"
	"github.com/example/snackmarket/pkg/models"
	"gorm.io/gorm"
)

// OrderRepository persists order aggregates together with their items,
// notification entries and status history.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create inserts the order and all owned rows in one transaction.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := r.withAssociations(r.db.WithContext(ctx)).First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, market.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := r.withAssociations(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderRepository) ListByBuyer(ctx context.Context, buyerID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.withAssociations(r.db.WithContext(ctx)).
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListBySeller returns orders that contain at least one of the seller's
// lines, restricted to the given statuses, newest first.
func (r *OrderRepository) ListBySeller(ctx context.Context, sellerID string, statuses []models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	err := r.withAssociations(r.db.WithContext(ctx)).
		Where("id IN (?)", r.db.Model(&models.OrderItem{}).
			Select("order_id").
			Where("seller_id = ?", sellerID)).
		Where("status IN ?", statuses).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus sets the status and appends the history entry in one
// transaction, guarded by a compare-and-swap on the previous status so two
// racing transitions cannot silently overwrite each other.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID string, from, to models.OrderStatus, actor string) (*models.Order, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", orderID, from).
			Updates(map[string]interface{}{
				"status":     to,
				"updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&models.Order{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return market.ErrOrderNotFound
			}
			return market.ErrConflict
		}

		return tx.Create(&models.OrderStatusEntry{
			OrderID:   orderID,
			Status:    to,
			UpdatedBy: actor,
			CreatedAt: time.Now(),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, orderID)
}

// MarkNotificationsRead flips the seller's unread flags on the given
// orders. This is the only notification acknowledgement mechanism.
func (r *OrderRepository) MarkNotificationsRead(ctx context.Context, sellerID string, orderIDs []string) error {
	if len(orderIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.OrderNotification{}).
		Where("seller_id = ? AND order_id IN ? AND is_read = ?", sellerID, orderIDs, false).
		Update("is_read", true).Error
}

// CountUnread counts orders with an unread notification for the seller and
// a status in the given set.
func (r *OrderRepository) CountUnread(ctx context.Context, sellerID string, statuses []models.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Distinct("orders.id").
		Joins("JOIN order_notifications ON order_notifications.order_id = orders.id").
		Where("order_notifications.seller_id = ? AND order_notifications.is_read = ?", sellerID, false).
		Where("orders.status IN ?", statuses).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *OrderRepository) withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items").
		Preload("Notifications").
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_status_entries.id ASC")
		})
}
