package repository

import (
	"context"
	"testing"
	"time"

	"github.com/example/snackmarket/pkg/market"
	"github.com/example/snackmarket/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// seedOrder creates a full aggregate with one item and one unread
// notification per seller, plus the initial history entry.
func seedOrder(t *testing.T, db *gorm.DB, status models.OrderStatus, createdAt time.Time, sellerIDs ...string) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:             uuid.NewString(),
		BuyerID:        "buyer-1",
		BuyerName:      "Asha",
		BuyerEmail:     "asha@example.com",
		ContactNumber:  "9876543210",
		Hostel:         models.HostelHimalaya,
		RoomNumber:     "B-204",
		PaymentMethod:  models.PaymentCash,
		DeliveryCharge: 10,
		Status:         status,
		CreatedAt:      createdAt,
	}
	var subtotal int64
	for i, sellerID := range sellerIDs {
		price := int64(20 * (i + 1))
		order.Items = append(order.Items, models.OrderItem{
			ProductID: uuid.NewString(),
			Title:     "Snack",
			Price:     price,
			Quantity:  1,
			SellerID:  sellerID,
		})
		order.Notifications = append(order.Notifications, models.OrderNotification{
			SellerID:   sellerID,
			IsRead:     false,
			NotifiedAt: createdAt,
		})
		subtotal += price
	}
	order.TotalAmount = subtotal + order.DeliveryCharge
	order.StatusHistory = []models.OrderStatusEntry{{
		Status:    models.StatusPending,
		UpdatedBy: market.SystemActor,
		CreatedAt: createdAt,
	}}
	require.NoError(t, NewOrderRepository(db).Create(context.Background(), order))
	return order
}

func TestOrderRepositoryCreateAndFind(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	repo := NewOrderRepository(db)

	created := seedOrder(t, db, models.StatusPending, time.Now(), "seller-1", "seller-2")

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, int64(70), found.TotalAmount)
	assert.Len(t, found.Items, 2)
	assert.Len(t, found.Notifications, 2)
	require.Len(t, found.StatusHistory, 1)
	assert.Equal(t, models.StatusPending, found.StatusHistory[0].Status)
	assert.Equal(t, market.SystemActor, found.StatusHistory[0].UpdatedBy)

	_, err = repo.FindByID(ctx, "no-such-order")
	assert.ErrorIs(t, err, market.ErrOrderNotFound)
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("swaps the status and appends history", func(t *testing.T) {
		db := testDB(t)
		repo := NewOrderRepository(db)
		order := seedOrder(t, db, models.StatusPending, time.Now(), "seller-1")

		updated, err := repo.UpdateStatus(ctx, order.ID, models.StatusPending, models.StatusConfirmed, "seller-1")
		require.NoError(t, err)

		assert.Equal(t, models.StatusConfirmed, updated.Status)
		require.Len(t, updated.StatusHistory, 2)
		assert.Equal(t, models.StatusConfirmed, updated.StatusHistory[1].Status)
		assert.Equal(t, "seller-1", updated.StatusHistory[1].UpdatedBy)
	})

	t.Run("stale expected status is a conflict", func(t *testing.T) {
		db := testDB(t)
		repo := NewOrderRepository(db)
		order := seedOrder(t, db, models.StatusConfirmed, time.Now(), "seller-1")

		_, err := repo.UpdateStatus(ctx, order.ID, models.StatusPending, models.StatusConfirmed, "seller-1")
		assert.ErrorIs(t, err, market.ErrConflict)

		// no history row may appear for the failed attempt
		current, findErr := repo.FindByID(ctx, order.ID)
		require.NoError(t, findErr)
		assert.Equal(t, models.StatusConfirmed, current.Status)
		assert.Len(t, current.StatusHistory, 1)
	})

	t.Run("unknown order", func(t *testing.T) {
		db := testDB(t)
		repo := NewOrderRepository(db)

		_, err := repo.UpdateStatus(ctx, "no-such-order", models.StatusPending, models.StatusConfirmed, "seller-1")
		assert.ErrorIs(t, err, market.ErrOrderNotFound)
	})
}

func TestOrderRepositoryListBySeller(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	repo := NewOrderRepository(db)

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	older := seedOrder(t, db, models.StatusPending, base, "seller-1")
	newer := seedOrder(t, db, models.StatusConfirmed, base.Add(time.Hour), "seller-1", "seller-2")
	seedOrder(t, db, models.StatusDelivered, base.Add(2*time.Hour), "seller-1")
	seedOrder(t, db, models.StatusPending, base, "seller-2")

	orders, err := repo.ListBySeller(ctx, "seller-1", models.ActiveStatuses)
	require.NoError(t, err)

	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, older.ID, orders[1].ID)
}

func TestOrderRepositoryListByBuyer(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	repo := NewOrderRepository(db)

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	first := seedOrder(t, db, models.StatusDelivered, base, "seller-1")
	second := seedOrder(t, db, models.StatusPending, base.Add(time.Hour), "seller-1")

	other := seedOrder(t, db, models.StatusPending, base, "seller-1")
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", other.ID).Update("buyer_id", "buyer-2").Error)

	orders, err := repo.ListByBuyer(ctx, "buyer-1")
	require.NoError(t, err)

	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestOrderRepositoryNotifications(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	repo := NewOrderRepository(db)

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	pending := seedOrder(t, db, models.StatusPending, base, "seller-1", "seller-2")
	confirmed := seedOrder(t, db, models.StatusConfirmed, base, "seller-1")
	seedOrder(t, db, models.StatusDelivered, base, "seller-1")

	t.Run("counts unread active orders only", func(t *testing.T) {
		count, err := repo.CountUnread(ctx, "seller-1", models.ActiveStatuses)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		count, err = repo.CountUnread(ctx, "seller-2", models.ActiveStatuses)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("marking read clears the count for that seller alone", func(t *testing.T) {
		err := repo.MarkNotificationsRead(ctx, "seller-1", []string{pending.ID, confirmed.ID})
		require.NoError(t, err)

		count, err := repo.CountUnread(ctx, "seller-1", models.ActiveStatuses)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)

		count, err = repo.CountUnread(ctx, "seller-2", models.ActiveStatuses)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("empty id list is a no-op", func(t *testing.T) {
		assert.NoError(t, repo.MarkNotificationsRead(ctx, "seller-1", nil))
	})
}
