package transport

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/skomarov/eshop/internal/models"
)

type AddToCartRequest struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId"`
	Quantity  uint   `json:"quantity"`
}

// CartItemView is a cart line resolved against current product data for
// display. Name/Price/Image come from the catalog at read time.
type CartItemView struct {
	ProductID uuid.UUID       `json:"productId"`
	VariantID uuid.UUID       `json:"variantId"`
	Quantity  uint            `json:"quantity"`
	Name      string          `json:"name,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image,omitempty"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
}

type CartResponse struct {
	Items []CartItemView  `json:"items"`
	Total decimal.Decimal `json:"total"`
}

func EmptyCart() CartResponse {
	return CartResponse{Items: []CartItemView{}, Total: decimal.Zero}
}

type CreateOrderRequest struct {
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
}

type OrderItemView struct {
	ProductID uuid.UUID       `json:"productId"`
	VariantID uuid.UUID       `json:"variantId"`
	Quantity  uint            `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name,omitempty"`
	Image     string          `json:"image,omitempty"`
	Size      string          `json:"size,omitempty"`
	Color     string          `json:"color,omitempty"`
}

type OrderView struct {
	ID              uuid.UUID              `json:"id"`
	UserID          uuid.UUID              `json:"userId"`
	Items           []OrderItemView        `json:"items"`
	TotalAmount     decimal.Decimal        `json:"totalAmount"`
	Status          models.OrderStatus     `json:"status"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type AddToWishlistRequest struct {
	ProductID string `json:"productId"`
}

type WishlistProductView struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name,omitempty"`
	Image     string    `json:"image,omitempty"`
}

type WishlistResponse struct {
	Products []WishlistProductView `json:"products"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"userId"`
}

type VariantRequest struct {
	Size  string `json:"size"`
	Color string `json:"color"`
}

type CreateProductRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	CategoryID  string           `json:"categoryId"`
	Price       decimal.Decimal  `json:"price"`
	Stock       uint             `json:"stock"`
	Images      []string         `json:"images"`
	Ratings     float64          `json:"ratings"`
	Variants    []VariantRequest `json:"variants"`
}

type PatchProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	CategoryID  *string          `json:"categoryId"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *uint            `json:"stock"`
	Images      *[]string        `json:"images"`
	Ratings     *float64         `json:"ratings"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateSubcategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CategoryID  string `json:"categoryId"`
}
