package market

import (
	"context"

	"github.com/example/snackmarket/pkg/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductInput struct {
	Title       string
	Description string
	Price       int64
	Quantity    int64
	ImageURL    string
	Hostel      string
}

// ListProducts returns the buyer-visible catalog, optionally narrowed by
// hostel or seller. Inactive products are excluded unless asked for.
func (s *Service) ListProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	return s.products.List(ctx, filter)
}

// OwnProducts returns the caller's whole catalog, soft-deleted listings
// included, so a seller can review and restore what they took down.
func (s *Service) OwnProducts(ctx context.Context, actor Identity) ([]models.Product, error) {
	if actor.Role != models.RoleSeller {
		return nil, ErrUnauthorized
	}
	return s.products.List(ctx, ProductFilter{
		SellerID:        actor.UserID,
		IncludeInactive: true,
	})
}

func (s *Service) CreateProduct(ctx context.Context, actor Identity, in ProductInput) (*models.Product, error) {
	if actor.Role != models.RoleSeller {
		return nil, ErrUnauthorized
	}
	if err := validateProduct(in); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Quantity:    in.Quantity,
		ImageURL:    in.ImageURL,
		Hostel:      in.Hostel,
		SellerID:    actor.UserID,
		SellerName:  actor.Name,
		IsActive:    true,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID),
		zap.String("seller_id", product.SellerID))

	return product, nil
}

// UpdateProduct edits a listing the caller owns. Historical orders are
// unaffected: they carry their own price/title snapshots.
func (s *Service) UpdateProduct(ctx context.Context, actor Identity, productID string, in ProductInput) (*models.Product, error) {
	if actor.Role != models.RoleSeller {
		return nil, ErrUnauthorized
	}
	if err := validateProduct(in); err != nil {
		return nil, err
	}

	product, err := s.products.FindOwned(ctx, productID, actor.UserID)
	if err != nil {
		return nil, err
	}

	product.Title = in.Title
	product.Description = in.Description
	product.Price = in.Price
	product.Quantity = in.Quantity
	product.ImageURL = in.ImageURL
	product.Hostel = in.Hostel

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft-deletes a listing the caller owns. The row stays so
// order items keep a valid product reference.
func (s *Service) DeleteProduct(ctx context.Context, actor Identity, productID string) error {
	if actor.Role != models.RoleSeller {
		return ErrUnauthorized
	}
	return s.products.Deactivate(ctx, productID, actor.UserID)
}

func validateProduct(in ProductInput) error {
	if in.Title == "" {
		return validationError("title is required")
	}
	if in.Price <= 0 {
		return validationError("price must be positive")
	}
	if in.Quantity < 0 {
		return validationError("quantity cannot be negative")
	}
	if !models.ValidHostel(in.Hostel) {
		return validationError("unknown hostel %q", in.Hostel)
	}
	return nil
}
