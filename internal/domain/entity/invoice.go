package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/tuanvm/stockwise-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice represents an outbound sales order. Unlike purchases, every line
// item must reference an existing product; approval decrements stock.
type Invoice struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo     string           `gorm:"size:100;unique;not null" json:"invoice_no"`
	Date          time.Time        `gorm:"type:date;not null" json:"date"`
	CustomerID    *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName  string           `gorm:"size:255" json:"customer_name"`
	PaymentMethod string           `gorm:"size:50" json:"payment_method"`
	Note          *string          `gorm:"type:text" json:"note,omitempty"`
	Status        enum.OrderStatus `gorm:"default:0;index" json:"status"`
	GrandTotal    int64            `gorm:"default:0" json:"-"` // Stored in cents
	CreatedByID   *uuid.UUID       `gorm:"type:uuid;column:created_by" json:"created_by,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Customer  *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CreatedBy *User         `gorm:"foreignKey:CreatedByID" json:"created_by_user,omitempty"`
	Items     []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// MarshalJSON converts the cent-stored total to a decimal for API responses
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		GrandTotal float64 `json:"grand_total"`
	}{
		Alias:      Alias(i),
		GrandTotal: float64(i.GrandTotal) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem represents a line item in a sales invoice
type InvoiceItem struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID      `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductID uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	UnitName  string         `gorm:"size:255" json:"unit_name"`
	Quantity  int            `gorm:"not null" json:"quantity"`
	Price     int64          `gorm:"not null" json:"-"` // Stored in cents
	Total     int64          `gorm:"not null" json:"-"` // Stored in cents
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

// MarshalJSON converts cent-stored amounts to decimals for API responses
func (ii InvoiceItem) MarshalJSON() ([]byte, error) {
	type Alias InvoiceItem
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"price"`
		Total float64 `json:"total"`
	}{
		Alias: Alias(ii),
		Price: float64(ii.Price) / 100,
		Total: float64(ii.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new invoice item
func (ii *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if ii.ID == uuid.Nil {
		ii.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
