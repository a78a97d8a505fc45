package market

import (
	"testing"

	"github.com/example/snackmarket/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestSellerCanTransition(t *testing.T) {
	all := []models.OrderStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusDelivered,
		models.StatusCancelled,
	}

	allowed := map[models.OrderStatus]models.OrderStatus{
		models.StatusPending:   models.StatusConfirmed,
		models.StatusConfirmed: models.StatusDelivered,
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from] == to
			assert.Equalf(t, want, sellerCanTransition(from, to),
				"transition %s -> %s", from, to)
		}
	}
}

func TestCheckTransition(t *testing.T) {
	owned := &models.Order{
		Status: models.StatusPending,
		Items:  []models.OrderItem{{ProductID: "p1", SellerID: "seller-1"}},
	}

	t.Run("admin passes from any state to any state", func(t *testing.T) {
		actor := Identity{UserID: "admin-1", Email: "admin@snackmarket.local", IsAdmin: true}
		terminal := &models.Order{Status: models.StatusCancelled}
		assert.NoError(t, checkTransition(actor, terminal, models.StatusPending))
	})

	t.Run("buyer is rejected", func(t *testing.T) {
		actor := Identity{UserID: "buyer-1", Role: models.RoleBuyer}
		assert.ErrorIs(t, checkTransition(actor, owned, models.StatusConfirmed), ErrUnauthorized)
	})

	t.Run("seller without a line is rejected", func(t *testing.T) {
		actor := Identity{UserID: "seller-2", Role: models.RoleSeller}
		assert.ErrorIs(t, checkTransition(actor, owned, models.StatusConfirmed), ErrUnauthorized)
	})

	t.Run("owning seller follows the transition table", func(t *testing.T) {
		actor := Identity{UserID: "seller-1", Role: models.RoleSeller}
		assert.NoError(t, checkTransition(actor, owned, models.StatusConfirmed))
		assert.ErrorIs(t, checkTransition(actor, owned, models.StatusCancelled), ErrInvalidTransition)
		assert.ErrorIs(t, checkTransition(actor, owned, models.StatusDelivered), ErrInvalidTransition)
	})
}
