package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "pending"
	StatusPaid     = "paid"
	StatusRejected = "rejected"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null"             json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `gorm:"index"                json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"      json:"id"`
	Name        string    `gorm:"not null"                  json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null;check:price >= 0" json:"price"`
	Stock       uint      `json:"stock"`
	CategoryID  uuid.UUID `gorm:"type:uuid;index;not null"  json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID"     json:"category,omitempty"`
	ImageURL    string    `json:"image_url"`
	CreatedAt   time.Time `gorm:"index"                     json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

type Bank struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	BankName      string    `gorm:"not null"             json:"bank_name"`
	AccountName   string    `gorm:"not null"             json:"account_name"`
	AccountNumber string    `gorm:"not null"             json:"account_number"`
	CreatedAt     time.Time `gorm:"index"                json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (b *Bank) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type Transaction struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey"     json:"id"`
	CustomerName    string            `gorm:"not null"                 json:"customer_name"`
	CustomerContact string            `gorm:"not null"                 json:"customer_contact"`
	CustomerAddress string            `gorm:"not null"                 json:"customer_address"`
	TotalPayment    float64           `json:"total_payment"`
	PaymentProof    string            `gorm:"not null"                 json:"payment_proof"`
	Status          string            `gorm:"not null;default:pending" json:"status"`
	Items           []TransactionItem `gorm:"foreignKey:TransactionID" json:"purchased_items"`
	CreatedAt       time.Time         `gorm:"index"                    json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

type TransactionItem struct {
	ID            uint      `gorm:"primaryKey"               json:"id"`
	TransactionID uuid.UUID `gorm:"type:uuid;index;not null" json:"transaction_id"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null"       json:"product_id"`
	Qty           uint      `gorm:"not null;check:qty > 0"   json:"qty"`
}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"not null"             json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null"             json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
