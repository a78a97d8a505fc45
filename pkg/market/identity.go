package market

import (
	"github.com/example/snackmarket/pkg/models"
)

// Identity is the verified caller supplied by the external authentication
// layer. The service trusts it and performs no credential checks of its own;
// every operation takes it explicitly instead of reading ambient state.
type Identity struct {
	UserID  string
	Name    string
	Email   string
	Role    models.Role
	IsAdmin bool
}

// ActorLabel is the attribution recorded in the status history: the admin's
// email for overrides, the seller's id otherwise. Matches the audit trail
// convention used across the marketplace.
func (id Identity) ActorLabel() string {
	if id.IsAdmin {
		return id.Email
	}
	return id.UserID
}
