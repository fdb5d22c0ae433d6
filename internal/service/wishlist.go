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

type WishlistService struct {
	Repo *repo.GormRepo
}

func (s *WishlistService) GetWishlist(ctx context.Context, userID uuid.UUID) (transport.WishlistResponse, error) {
	wl, err := s.Repo.GetWishlist(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return transport.WishlistResponse{Products: []transport.WishlistProductView{}}, nil
	}
	if err != nil {
		return transport.WishlistResponse{}, err
	}
	return s.enrich(ctx, wl)
}

func (s *WishlistService) AddToWishlist(ctx context.Context, userID, productID uuid.UUID) (transport.WishlistResponse, error) {
	if productID == uuid.Nil {
		return transport.WishlistResponse{}, fmt.Errorf("%w: productId required", ErrValidation)
	}

	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return transport.WishlistResponse{}, fmt.Errorf("%w: product", ErrNotFound)
		}
		return transport.WishlistResponse{}, err
	}

	wl, err := s.Repo.AddWishlistItem(ctx, userID, productID)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return transport.WishlistResponse{}, fmt.Errorf("%w: product already in wishlist", ErrConflict)
	}
	if err != nil {
		return transport.WishlistResponse{}, err
	}
	return s.enrich(ctx, wl)
}

func (s *WishlistService) RemoveFromWishlist(ctx context.Context, userID, productID uuid.UUID) (transport.WishlistResponse, error) {
	if productID == uuid.Nil {
		return transport.WishlistResponse{}, fmt.Errorf("%w: productId required", ErrValidation)
	}

	wl, err := s.Repo.RemoveWishlistItem(ctx, userID, productID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return transport.WishlistResponse{}, fmt.Errorf("%w: wishlist", ErrNotFound)
	}
	if err != nil {
		return transport.WishlistResponse{}, err
	}
	return s.enrich(ctx, wl)
}

func (s *WishlistService) ClearWishlist(ctx context.Context, userID uuid.UUID) error {
	err := s.Repo.ClearWishlist(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: wishlist", ErrNotFound)
	}
	return err
}

func (s *WishlistService) enrich(ctx context.Context, wl *models.Wishlist) (transport.WishlistResponse, error) {
	ids := make([]uuid.UUID, 0, len(wl.Items))
	for _, it := range wl.Items {
		ids = append(ids, it.ProductID)
	}

	products, err := s.Repo.GetProductsByIDs(ctx, ids)
	if err != nil {
		return transport.WishlistResponse{}, err
	}

	views := make([]transport.WishlistProductView, 0, len(wl.Items))
	for _, it := range wl.Items {
		view := transport.WishlistProductView{ProductID: it.ProductID}
		if p, ok := products[it.ProductID]; ok {
			view.Name = p.Name
			if len(p.Images) > 0 {
				view.Image = p.Images[0]
			}
		}
		views = append(views, view)
	}
	return transport.WishlistResponse{Products: views}, nil
}
