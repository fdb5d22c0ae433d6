package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skomarov/eshop/internal/models"
)

func (r *GormRepo) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem upserts the (product, variant) line and recomputes the cart
// total in one transaction. The cart row is locked for the duration so two
// concurrent adds cannot overwrite each other's line append.
func (r *GormRepo) AddCartItem(ctx context.Context, userID, productID, variantID uuid.UUID, quantity uint) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			cart = models.Cart{UserID: userID, TotalPrice: decimal.Zero}
			if err := tx.Create(&cart).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ? AND variant_id = ?", cart.ID, productID, variantID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			item := models.CartItem{
				CartID:    cart.ID,
				ProductID: productID,
				VariantID: variantID,
				Quantity:  quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		return r.recomputeTotal(tx, &cart)
	})
	if err != nil {
		return nil, err
	}
	return r.GetCart(ctx, userID)
}

// RemoveCartItem removes every line matching the (product, variant) pair.
// When that empties the cart, the cart row itself is deleted and the second
// return value is true.
func (r *GormRepo) RemoveCartItem(ctx context.Context, userID, productID, variantID uuid.UUID) (*models.Cart, bool, error) {
	deleted := false
	var cart models.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ? AND product_id = ? AND variant_id = ?", cart.ID, productID, variantID).
			Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			if err := tx.Delete(&cart).Error; err != nil {
				return err
			}
			deleted = true
			return nil
		}

		return r.recomputeTotal(tx, &cart)
	})
	if err != nil {
		return nil, false, err
	}
	if deleted {
		return nil, true, nil
	}
	out, err := r.GetCart(ctx, userID)
	return out, false, err
}

// ClearCart empties the cart but keeps the cart row with a zero total.
// This is intentionally different from RemoveCartItem's emptying path, which
// deletes the row.
func (r *GormRepo) ClearCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return err
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		cart.TotalPrice = decimal.Zero
		return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
			Update("total_price", decimal.Zero).Error
	})
	if err != nil {
		return nil, err
	}
	cart.Items = nil
	return &cart, nil
}

// recomputeTotal re-derives the cart total from live product prices. Lines
// whose product has been deleted contribute nothing, matching read-side
// degradation.
func (r *GormRepo) recomputeTotal(tx *gorm.DB, cart *models.Cart) error {
	var items []models.CartItem
	if err := tx.Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
		return err
	}

	total := decimal.Zero
	for _, it := range items {
		var p models.Product
		if err := tx.Select("id", "price").First(&p, "id = ?", it.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return err
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	cart.TotalPrice = total
	return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).
		Update("total_price", total).Error
}
