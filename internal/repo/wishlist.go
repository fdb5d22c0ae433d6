package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skomarov/eshop/internal/models"
)

func (r *GormRepo) GetWishlist(ctx context.Context, userID uuid.UUID) (*models.Wishlist, error) {
	var wl models.Wishlist
	if err := r.DB.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&wl).Error; err != nil {
		return nil, err
	}
	return &wl, nil
}

// AddWishlistItem creates the wishlist row on first use. A duplicate product
// surfaces as gorm.ErrDuplicatedKey.
func (r *GormRepo) AddWishlistItem(ctx context.Context, userID, productID uuid.UUID) (*models.Wishlist, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var wl models.Wishlist
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&wl).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			wl = models.Wishlist{UserID: userID}
			if err := tx.Create(&wl).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.WishlistItem{}).
			Where("wishlist_id = ? AND product_id = ?", wl.ID, productID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return gorm.ErrDuplicatedKey
		}

		return tx.Create(&models.WishlistItem{WishlistID: wl.ID, ProductID: productID}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetWishlist(ctx, userID)
}

// RemoveWishlistItem is idempotent for the product, but still requires the
// wishlist row to exist.
func (r *GormRepo) RemoveWishlistItem(ctx context.Context, userID, productID uuid.UUID) (*models.Wishlist, error) {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var wl models.Wishlist
		if err := tx.Where("user_id = ?", userID).First(&wl).Error; err != nil {
			return err
		}
		return tx.Where("wishlist_id = ? AND product_id = ?", wl.ID, productID).
			Delete(&models.WishlistItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetWishlist(ctx, userID)
}

func (r *GormRepo) ClearWishlist(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var wl models.Wishlist
		if err := tx.Where("user_id = ?", userID).First(&wl).Error; err != nil {
			return err
		}
		return tx.Where("wishlist_id = ?", wl.ID).Delete(&models.WishlistItem{}).Error
	})
}
