package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/skomarov/eshop/internal/models"
)

// CreateOrderFromCart snapshots the user's cart into an order inside one
// transaction: unit prices are frozen from the catalog at this instant, the
// total is copied from the cart's precomputed total, stock is decremented
// best-effort, and the source cart is deleted. A missing or empty cart
// surfaces as gorm.ErrRecordNotFound.
func (r *GormRepo) CreateOrderFromCart(ctx context.Context, userID uuid.UUID, addr models.ShippingAddress) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&cart).Error; err != nil {
			return err
		}

		var items []models.CartItem
		if err := tx.Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return gorm.ErrRecordNotFound
		}

		orderItems := make([]models.OrderItem, 0, len(items))
		for _, it := range items {
			var p models.Product
			if err := tx.First(&p, "id = ?", it.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return err
			}

			orderItems = append(orderItems, models.OrderItem{
				ProductID: it.ProductID,
				VariantID: it.VariantID,
				Quantity:  it.Quantity,
				UnitPrice: p.Price,
			})

			// Best-effort decrement, clamped at zero. Stock never blocks checkout.
			if err := tx.Model(&models.Product{}).Where("id = ?", it.ProductID).
				Update("stock", gorm.Expr("CASE WHEN stock >= ? THEN stock - ? ELSE 0 END", it.Quantity, it.Quantity)).Error; err != nil {
				return err
			}
		}

		order = models.Order{
			UserID:          userID,
			Items:           orderItems,
			TotalAmount:     cart.TotalPrice,
			Status:          models.OrderStatusPending,
			ShippingAddress: addr,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&cart).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) ListOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus sets the new status and nothing else. Transitioning into
// cancelled restores the stock that was decremented at creation.
func (r *GormRepo) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "id = ?", orderID).Error; err != nil {
			return err
		}

		if status == models.OrderStatusCancelled && order.Status != models.OrderStatusCancelled {
			var items []models.OrderItem
			if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
				return err
			}
			for _, it := range items {
				if err := tx.Model(&models.Product{}).Where("id = ?", it.ProductID).
					Update("stock", gorm.Expr("stock + ?", it.Quantity)).Error; err != nil {
					return err
				}
			}
		}

		order.Status = status
		return tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("status", status).Error
	})
	if err != nil {
		return nil, err
	}
	return r.GetOrder(ctx, orderID)
}
