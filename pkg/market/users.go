package market

import (
	"context"

	"github.com/example/snackmarket/pkg/models"
)

// ProfileInput carries the profile fields a resident may change. Empty
// fields are left untouched. Residents switch between buying and selling by
// changing their role.
type ProfileInput struct {
	Name       string
	Role       models.Role
	Hostel     string
	RoomNumber string
}

func (s *Service) Profile(ctx context.Context, actor Identity) (*models.User, error) {
	return s.users.FindByID(ctx, actor.UserID)
}

func (s *Service) UpdateProfile(ctx context.Context, actor Identity, in ProfileInput) (*models.User, error) {
	if in.Role != "" && !in.Role.Valid() {
		return nil, validationError("unknown role %q", in.Role)
	}
	if in.Hostel != "" && !models.ValidHostel(in.Hostel) {
		return nil, validationError("unknown hostel %q", in.Hostel)
	}

	user, err := s.users.FindByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Role != "" {
		user.Role = in.Role
	}
	if in.Hostel != "" {
		user.Hostel = in.Hostel
	}
	if in.RoomNumber != "" {
		user.RoomNumber = in.RoomNumber
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
