package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skomarov/eshop/internal/models"
	"github.com/skomarov/eshop/internal/transport"
)

func TestCreateAndListCategories(t *testing.T) {
	env := newTestEnv(t)

	body := transport.CreateCategoryRequest{Name: "shoes", Description: "footwear"}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/categories", body)
	require.NoError(t, env.Category.CreateCategory(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Category
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, "shoes", created.Name)

	rec2, c2 := env.doJSONRequest(http.MethodGet, "/api/categories", nil)
	require.NoError(t, env.Category.GetCategories(c2))

	var listed []models.Category
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	require.Equal(t, created.ID, listed[0].ID)
}

func TestCreateCategoryRequiresName(t *testing.T) {
	env := newTestEnv(t)

	_, c := env.doJSONRequest(http.MethodPost, "/api/categories", transport.CreateCategoryRequest{})
	err := env.Category.CreateCategory(c)
	require.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
}

func TestDeleteCategoryCascadesSubcategories(t *testing.T) {
	env := newTestEnv(t)

	category := models.Category{Name: "clothing"}
	require.NoError(t, env.DB.Create(&category).Error)
	sub := models.Subcategory{Name: "jackets", CategoryID: category.ID}
	require.NoError(t, env.DB.Create(&sub).Error)

	rec, c := env.doJSONRequest(http.MethodDelete, "/api/categories/"+category.ID.String(), nil)
	c.SetParamNames("id")
	c.SetParamValues(category.ID.String())
	require.NoError(t, env.Category.DeleteCategory(c))
	require.Equal(t, http.StatusNoContent, rec.Code)

	var subs int64
	require.NoError(t, env.DB.Model(&models.Subcategory{}).Where("category_id = ?", category.ID).Count(&subs).Error)
	require.Zero(t, subs)
}

func TestCreateSubcategory(t *testing.T) {
	env := newTestEnv(t)

	category := models.Category{Name: "clothing"}
	require.NoError(t, env.DB.Create(&category).Error)

	body := transport.CreateSubcategoryRequest{Name: "jeans", CategoryID: category.ID.String()}
	rec, c := env.doJSONRequest(http.MethodPost, "/api/subcategories", body)
	require.NoError(t, env.Category.CreateSubcategory(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Subcategory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, category.ID, created.CategoryID)
}

func TestCreateSubcategoryInvalidCategory(t *testing.T) {
	env := newTestEnv(t)

	body := transport.CreateSubcategoryRequest{Name: "jeans", CategoryID: "nonsense"}
	_, c := env.doJSONRequest(http.MethodPost, "/api/subcategories", body)
	err := env.Category.CreateSubcategory(c)
	require.Equal(t, http.StatusBadRequest, httpErrorCode(t, err))
}
