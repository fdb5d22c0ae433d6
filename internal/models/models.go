package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"primaryKey"       json:"id"`
	FirstName    string    `gorm:"not null"         json:"firstName"`
	LastName     string    `gorm:"not null"         json:"lastName"`
	Image        string    `json:"image"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null"         json:"-"`
	Phone        string    `json:"phone"`
	Role         string    `gorm:"not null;default:customer" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Category struct {
	ID          uuid.UUID `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null"   json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Subcategory struct {
	ID          uuid.UUID `gorm:"primaryKey"     json:"id"`
	Name        string    `gorm:"not null"       json:"name"`
	Description string    `json:"description"`
	CategoryID  uuid.UUID `gorm:"index;not null" json:"categoryId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (s *Subcategory) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type Product struct {
	ID          uuid.UUID        `gorm:"primaryKey"            json:"id"`
	Name        string           `gorm:"not null"              json:"name"`
	Description string           `json:"description"`
	CategoryID  uuid.UUID        `gorm:"index"                 json:"categoryId"`
	Price       decimal.Decimal  `gorm:"type:decimal(12,2)"    json:"price"`
	Stock       uint             `gorm:"default:0"             json:"stock"`
	Images      []string         `gorm:"serializer:json"       json:"images"`
	Ratings     float64          `gorm:"default:0"             json:"ratings"`
	Variants    []ProductVariant `gorm:"constraint:OnDelete:CASCADE" json:"variants"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Variant returns the variant with the given id, if the product has one.
func (p *Product) Variant(variantID uuid.UUID) (ProductVariant, bool) {
	for _, v := range p.Variants {
		if v.ID == variantID {
			return v, true
		}
	}
	return ProductVariant{}, false
}

type ProductVariant struct {
	ID        uuid.UUID `gorm:"primaryKey"     json:"id"`
	ProductID uuid.UUID `gorm:"index;not null" json:"productId"`
	Size      string    `json:"size"`
	Color     string    `json:"color"`
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// Cart is the per-user header row; its lines live in CartItem. TotalPrice is
// recomputed from current product prices inside every mutating transaction,
// never trusted from client input.
type Cart struct {
	ID         uuid.UUID       `gorm:"primaryKey"           json:"id"`
	UserID     uuid.UUID       `gorm:"uniqueIndex;not null" json:"userId"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2)"   json:"totalPrice"`
	Items      []CartItem      `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CartItem struct {
	ID        uuid.UUID `gorm:"primaryKey"                                     json:"id"`
	CartID    uuid.UUID `gorm:"uniqueIndex:idx_cart_product_variant;not null"  json:"cartId"`
	ProductID uuid.UUID `gorm:"uniqueIndex:idx_cart_product_variant;not null"  json:"productId"`
	VariantID uuid.UUID `gorm:"uniqueIndex:idx_cart_product_variant;not null"  json:"variantId"`
	Quantity  uint      `gorm:"default:1;check:quantity>0"                     json:"quantity"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type ShippingAddress struct {
	Street     string `gorm:"not null" json:"street"`
	City       string `gorm:"not null" json:"city"`
	PostalCode string `gorm:"not null" json:"postalCode"`
	Country    string `gorm:"not null" json:"country"`
}

// Order is an immutable snapshot of a cart taken at checkout: line prices are
// frozen at creation time and only Status (and UpdatedAt) may change afterwards.
type Order struct {
	ID              uuid.UUID       `gorm:"primaryKey"         json:"id"`
	UserID          uuid.UUID       `gorm:"index;not null"     json:"userId"`
	Items           []OrderItem     `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(12,2)" json:"totalAmount"`
	Status          OrderStatus     `gorm:"not null;default:pending" json:"status"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

type OrderItem struct {
	ID        uuid.UUID       `gorm:"primaryKey"         json:"id"`
	OrderID   uuid.UUID       `gorm:"index;not null"     json:"orderId"`
	ProductID uuid.UUID       `gorm:"not null"           json:"productId"`
	VariantID uuid.UUID       `gorm:"not null"           json:"variantId"`
	Quantity  uint            `gorm:"default:1;check:quantity>0" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"price"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type Wishlist struct {
	ID        uuid.UUID      `gorm:"primaryKey"           json:"id"`
	UserID    uuid.UUID      `gorm:"uniqueIndex;not null" json:"userId"`
	Items     []WishlistItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (w *Wishlist) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

type WishlistItem struct {
	ID         uuid.UUID `gorm:"primaryKey"                                    json:"id"`
	WishlistID uuid.UUID `gorm:"uniqueIndex:idx_wishlist_product;not null"     json:"wishlistId"`
	ProductID  uuid.UUID `gorm:"uniqueIndex:idx_wishlist_product;not null"     json:"productId"`
}

func (i *WishlistItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
