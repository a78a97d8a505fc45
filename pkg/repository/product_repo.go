package repository

import (
	"context"
	"errors"

	"github.com/example/snackmarket/pkg/market"
	"github.com/example/snackmarket/pkg/models"
	"gorm.io/gorm"
)

// ProductRepository persists products and owns the stock ledger.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Reserve decrements stock for every line inside one transaction. Phase one
// validates each product so an impossible order fails before anything is
// touched; phase two applies conditional decrements (quantity >= requested)
// as the real enforcement point, so two orders racing for the last unit
// cannot both commit. Any failure rolls the whole reservation back.
func (r *ProductRepository) Reserve(ctx context.Context, lines []market.ReservationLine) (map[string]models.Product, error) {
	snapshots := make(map[string]models.Product, len(lines))

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, line := range lines {
			var product models.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &market.ProductNotFoundError{ProductID: line.ProductID}
				}
				return err
			}
			if !product.IsActive {
				return &market.ProductNotFoundError{ProductID: line.ProductID}
			}
			if product.Quantity < line.Quantity {
				return &market.InsufficientStockError{
					ProductID: product.ID,
					Title:     product.Title,
					Available: product.Quantity,
					Requested: line.Quantity,
				}
			}
			snapshots[product.ID] = product
		}

		for _, line := range lines {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND quantity >= ?", line.ProductID, line.Quantity).
				UpdateColumn("quantity", gorm.Expr("quantity - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// lost the race since the pre-check; report current stock
				product := snapshots[line.ProductID]
				current := product.Quantity
				var latest int64
				if err := tx.Model(&models.Product{}).Select("quantity").
					Where("id = ?", line.ProductID).Scan(&latest).Error; err == nil {
					current = latest
				}
				return &market.InsufficientStockError{
					ProductID: product.ID,
					Title:     product.Title,
					Available: current,
					Requested: line.Quantity,
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (r *ProductRepository) List(ctx context.Context, filter market.ProductFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.Hostel != "" {
		query = query.Where("hostel = ?", filter.Hostel)
	}
	if filter.SellerID != "" {
		query = query.Where("seller_id = ?", filter.SellerID)
	}

	var products []models.Product
	if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) FindOwned(ctx context.Context, id, sellerID string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		First(&product, "id = ? AND seller_id = ?", id, sellerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &market.ProductNotFoundError{ProductID: id}
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *ProductRepository) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// Deactivate soft-deletes an owned listing. The row remains referenceable
// by historical order items.
func (r *ProductRepository) Deactivate(ctx context.Context, id, sellerID string) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("id = ? AND seller_id = ?", id, sellerID).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &market.ProductNotFoundError{ProductID: id}
	}
	return nil
}
