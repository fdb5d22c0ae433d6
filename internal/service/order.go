package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skomarov/eshop/internal/models"
	"github.com/skomarov/eshop/internal/repo"
	"github.com/skomarov/eshop/internal/transport"
)

type OrderService struct {
	Repo *repo.GormRepo
}

// CreateOrder converts the user's cart into an immutable order. Unit prices
// are frozen at this instant; the order total is copied from the cart's
// precomputed total, and a successful checkout always removes the cart.
func (s *OrderService) CreateOrder(ctx context.Context, userID uuid.UUID, addr models.ShippingAddress) (transport.OrderView, error) {
	if addr.Street == "" || addr.City == "" || addr.PostalCode == "" || addr.Country == "" {
		return transport.OrderView{}, fmt.Errorf("%w: shipping address requires street, city, postalCode and country", ErrValidation)
	}

	order, err := s.Repo.CreateOrderFromCart(ctx, userID, addr)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return transport.OrderView{}, ErrCartEmpty
	}
	if err != nil {
		return transport.OrderView{}, err
	}
	return s.enrichOrder(ctx, order)
}

func (s *OrderService) GetUserOrders(ctx context.Context, userID uuid.UUID) ([]transport.OrderView, error) {
	orders, err := s.Repo.ListOrders(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]transport.OrderView, 0, len(orders))
	for i := range orders {
		view, err := s.enrichOrder(ctx, &orders[i])
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, userID, orderID uuid.UUID) (transport.OrderView, error) {
	order, err := s.Repo.GetOrder(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return transport.OrderView{}, fmt.Errorf("%w: order", ErrNotFound)
	}
	if err != nil {
		return transport.OrderView{}, err
	}
	if order.UserID != userID {
		return transport.OrderView{}, fmt.Errorf("%w: order belongs to another user", ErrForbidden)
	}
	return s.enrichOrder(ctx, order)
}

// UpdateOrderStatus is the administrative status update: the status set is a
// flat enum, any listed status may follow any other.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status string) (transport.OrderView, error) {
	if !models.ValidOrderStatus(status) {
		return transport.OrderView{}, fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}

	order, err := s.Repo.UpdateOrderStatus(ctx, orderID, models.OrderStatus(status))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return transport.OrderView{}, fmt.Errorf("%w: order", ErrNotFound)
	}
	if err != nil {
		return transport.OrderView{}, err
	}
	return s.enrichOrder(ctx, order)
}

// enrichOrder resolves display data through the frozen product/variant ids.
// Products deleted since the order was placed degrade to the bare snapshot
// line instead of failing the listing.
func (s *OrderService) enrichOrder(ctx context.Context, order *models.Order) (transport.OrderView, error) {
	ids := make([]uuid.UUID, 0, len(order.Items))
	for _, it := range order.Items {
		ids = append(ids, it.ProductID)
	}

	products, err := s.Repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return transport.OrderView{}, err
	}

	items := make([]transport.OrderItemView, 0, len(order.Items))
	for _, it := range order.Items {
		view := transport.OrderItemView{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
			Price:     it.UnitPrice,
		}
		if p, ok := products[it.ProductID]; ok {
			view.Name = p.Name
			if len(p.Images) > 0 {
				view.Image = p.Images[0]
			}
			if v, ok := p.Variant(it.VariantID); ok {
				view.Size = v.Size
				view.Color = v.Color
			}
		}
		items = append(items, view)
	}

	return transport.OrderView{
		ID:              order.ID,
		UserID:          order.UserID,
		Items:           items,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status,
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}, nil
}
