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

type CartService struct {
	Repo *repo.GormRepo
}

// GetCart returns the user's cart resolved against current product data, or
// the empty-cart shape when none exists. Absence is not an error.
func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (transport.CartResponse, error) {
	cart, err := s.Repo.GetCart(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return transport.EmptyCart(), nil
	}
	if err != nil {
		return transport.CartResponse{}, err
	}
	return s.enrichCart(ctx, cart)
}

func (s *CartService) AddToCart(ctx context.Context, userID, productID, variantID uuid.UUID, quantity uint) (transport.CartResponse, error) {
	if productID == uuid.Nil || variantID == uuid.Nil {
		return transport.CartResponse{}, fmt.Errorf("%w: productId and variantId required", ErrValidation)
	}
	if quantity == 0 {
		quantity = 1
	}

	product, err := s.Repo.GetProduct(ctx, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return transport.CartResponse{}, fmt.Errorf("%w: product", ErrNotFound)
	}
	if err != nil {
		return transport.CartResponse{}, err
	}
	if _, ok := product.Variant(variantID); !ok {
		return transport.CartResponse{}, fmt.Errorf("%w: variant", ErrNotFound)
	}

	cart, err := s.Repo.AddCartItem(ctx, userID, productID, variantID, quantity)
	if err != nil {
		return transport.CartResponse{}, err
	}
	return s.enrichCart(ctx, cart)
}

func (s *CartService) RemoveFromCart(ctx context.Context, userID, productID, variantID uuid.UUID) (transport.CartResponse, error) {
	if productID == uuid.Nil || variantID == uuid.Nil {
		return transport.CartResponse{}, fmt.Errorf("%w: productId and variantId required", ErrValidation)
	}

	cart, deleted, err := s.Repo.RemoveCartItem(ctx, userID, productID, variantID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return transport.CartResponse{}, fmt.Errorf("%w: cart", ErrNotFound)
	}
	if err != nil {
		return transport.CartResponse{}, err
	}
	if deleted {
		return transport.EmptyCart(), nil
	}
	return s.enrichCart(ctx, cart)
}

func (s *CartService) ClearCart(ctx context.Context, userID uuid.UUID) (transport.CartResponse, error) {
	_, err := s.Repo.ClearCart(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return transport.CartResponse{}, fmt.Errorf("%w: cart", ErrNotFound)
	}
	if err != nil {
		return transport.CartResponse{}, err
	}
	return transport.EmptyCart(), nil
}

func (s *CartService) enrichCart(ctx context.Context, cart *models.Cart) (transport.CartResponse, error) {
	ids := make([]uuid.UUID, 0, len(cart.Items))
	for _, it := range cart.Items {
		ids = append(ids, it.ProductID)
	}

	products, err := s.Repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return transport.CartResponse{}, err
	}

	views := make([]transport.CartItemView, 0, len(cart.Items))
	for _, it := range cart.Items {
		view := transport.CartItemView{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			Quantity:  it.Quantity,
		}
		// A deleted product leaves the line unresolved rather than failing the read.
		if p, ok := products[it.ProductID]; ok {
			view.Name = p.Name
			view.Price = p.Price
			if len(p.Images) > 0 {
				view.Image = p.Images[0]
			}
			if v, ok := p.Variant(it.VariantID); ok {
				view.Size = v.Size
				view.Color = v.Color
			}
		}
		views = append(views, view)
	}

	return transport.CartResponse{Items: views, Total: cart.TotalPrice}, nil
}
