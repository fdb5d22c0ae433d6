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

type CatalogService struct {
	Repo *repo.GormRepo
}

func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product", ErrNotFound)
	}
	return prod, err
}

func (s *CatalogService) GetProducts(ctx context.Context, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.GetProducts(ctx, offset, limit)
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	prod := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Images:      req.Images,
		Ratings:     req.Ratings,
	}
	if req.CategoryID != "" {
		cid, err := uuid.Parse(req.CategoryID)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid categoryId", ErrValidation)
		}
		prod.CategoryID = cid
	}
	for _, v := range req.Variants {
		prod.Variants = append(prod.Variants, models.ProductVariant{Size: v.Size, Color: v.Color})
	}

	return s.Repo.CreateProduct(ctx, &prod)
}

func (s *CatalogService) PatchProduct(ctx context.Context, req transport.PatchProductRequest, id uuid.UUID) (*models.Product, error) {
	if req.Price != nil && req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}

	prod, err := s.Repo.PatchProduct(ctx, req, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product", ErrNotFound)
	}
	if errors.Is(err, gorm.ErrInvalidData) {
		return nil, fmt.Errorf("%w: invalid categoryId", ErrValidation)
	}
	return prod, err
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := s.Repo.DeleteProduct(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: product", ErrNotFound)
	}
	return err
}

func (s *CatalogService) SearchProducts(ctx context.Context, q string, offset, limit int) (int64, []models.Product, error) {
	return s.Repo.SearchProducts(ctx, q, offset, limit)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	cat := models.Category{Name: req.Name, Description: req.Description}
	if err := s.Repo.CreateCategory(ctx, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	err := s.Repo.DeleteCategory(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: category", ErrNotFound)
	}
	return err
}

func (s *CatalogService) ListSubcategories(ctx context.Context) ([]models.Subcategory, error) {
	return s.Repo.ListSubcategories(ctx)
}

func (s *CatalogService) CreateSubcategory(ctx context.Context, req transport.CreateSubcategoryRequest) (*models.Subcategory, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}
	cid, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid categoryId", ErrValidation)
	}

	sub := models.Subcategory{Name: req.Name, Description: req.Description, CategoryID: cid}
	if err := s.Repo.CreateSubcategory(ctx, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

func (s *CatalogService) DeleteSubcategory(ctx context.Context, id uuid.UUID) error {
	err := s.Repo.DeleteSubcategory(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: subcategory", ErrNotFound)
	}
	return err
}
