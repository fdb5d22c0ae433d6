package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/skomarov/eshop/internal/models"
)

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Create(cat).Error
}

// DeleteCategory also removes the category's subcategories.
func (r *GormRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Category{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("category_id = ?", id).Delete(&models.Subcategory{}).Error
	})
}

func (r *GormRepo) ListSubcategories(ctx context.Context) ([]models.Subcategory, error) {
	var subs []models.Subcategory
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *GormRepo) CreateSubcategory(ctx context.Context, sub *models.Subcategory) error {
	return r.DB.WithContext(ctx).Create(sub).Error
}

func (r *GormRepo) DeleteSubcategory(ctx context.Context, id uuid.UUID) error {
	res := r.DB.WithContext(ctx).Delete(&models.Subcategory{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
