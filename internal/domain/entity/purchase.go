package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tuanvm/stockwise-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Purchase represents an inbound stock order from a supplier. It is created
// pending and either approved (which applies its stock effect) or deleted.
type Purchase struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseNo   string           `gorm:"size:100;unique;not null" json:"purchase_no"`
	Date         time.Time        `gorm:"type:date;not null" json:"date"`
	SupplierID   *uuid.UUID       `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	SupplierName string           `gorm:"size:255" json:"supplier_name"`
	Status       enum.OrderStatus `gorm:"default:0;index" json:"status"`
	GrandTotal   int64            `gorm:"default:0" json:"-"` // Stored in cents
	CreatedByID  *uuid.UUID       `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Supplier  *Supplier      `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	CreatedBy *User          `gorm:"foreignKey:CreatedByID" json:"created_by_user,omitempty"`
	Items     []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items,omitempty"`
}

// MarshalJSON converts the cent-stored total to a decimal for API responses
func (p Purchase) MarshalJSON() ([]byte, error) {
	type Alias Purchase
	return json.Marshal(&struct {
		Alias
		GrandTotal float64 `json:"grand_total"`
	}{
		Alias:      Alias(p),
		GrandTotal: float64(p.GrandTotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new purchase
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseItem represents a line item in a purchase. A nil ProductID marks a
// "new product" line: approval creates the product instead of restocking one.
type PurchaseItem struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PurchaseID uuid.UUID      `gorm:"type:uuid;not null;index" json:"purchase_id"`
	ProductID  *uuid.UUID     `gorm:"type:uuid;index" json:"product_id,omitempty"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	UnitName   string         `gorm:"size:255" json:"unit_name"`
	CategoryID *uuid.UUID     `gorm:"type:uuid" json:"category_id,omitempty"`
	UnitID     *uuid.UUID     `gorm:"type:uuid" json:"unit_id,omitempty"`
	Quantity   int            `gorm:"not null" json:"quantity"`
	Price      int64          `gorm:"not null" json:"-"` // Stored in cents
	Total      int64          `gorm:"not null" json:"-"` // Stored in cents
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Purchase Purchase `gorm:"foreignKey:PurchaseID" json:"-"`
	Product  *Product `gorm:"foreignKey:ProductID" json:"-"`
}

// MarshalJSON converts cent-stored amounts to decimals for API responses
func (pi PurchaseItem) MarshalJSON() ([]byte, error) {
	type Alias PurchaseItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
		Total float64 `json:"total"`
	}{
		Alias: Alias(pi),
		Price: float64(pi.Price) / 100,
		Total: float64(pi.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new purchase item
func (pi *PurchaseItem) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseItem model
func (PurchaseItem) TableName() string {
	return "purchase_items"
}
