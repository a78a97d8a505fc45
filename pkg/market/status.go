package market

import (
	"github.com/example/snackmarket/pkg/models"
)

// SystemActor is the attribution for the initial history entry of every
// order.
const SystemActor = "system"

// sellerNext is the transition table for sellers: confirm a pending order,
// deliver a confirmed one. Everything else is reserved for the admin.
var sellerNext = map[models.OrderStatus]map[models.OrderStatus]bool{
	models.StatusPending:   {models.StatusConfirmed: true},
	models.StatusConfirmed: {models.StatusDelivered: true},
}

func sellerCanTransition(from, to models.OrderStatus) bool {
	return sellerNext[from][to]
}

// checkTransition applies the role gate for a requested status change.
// Admins may set any valid status from any state. Sellers must own at least
// one line in the order and follow sellerNext. Buyers have no transition
// rights.
func checkTransition(actor Identity, order *models.Order, to models.OrderStatus) error {
	if actor.IsAdmin {
		return nil
	}
	if actor.Role != models.RoleSeller {
		return ErrUnauthorized
	}
	if !order.HasSeller(actor.UserID) {
		return ErrUnauthorized
	}
	if !sellerCanTransition(order.Status, to) {
		return ErrInvalidTransition
	}
	return nil
}
