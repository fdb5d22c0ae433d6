package repo

import (
	"gorm.io/gorm"

	"github.com/skomarov/eshop/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Subcategory{},
		&models.Product{},
		&models.ProductVariant{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Wishlist{},
		&models.WishlistItem{},
	)
}
