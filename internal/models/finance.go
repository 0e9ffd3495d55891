package models

import (
	"time"

	"gorm.io/datatypes"
)

// Account holds a running balance. Only transaction creation changes it.
type Account struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Balance   float64   `gorm:"not null;default:0" json:"balance"`
	Type      string    `gorm:"size:64" json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Transaction is money leaving an account. Tags are read through transaction_tags.
type Transaction struct {
	ID          string         `gorm:"type:char(36);primaryKey" json:"id"`
	AccountID   string         `gorm:"type:char(36);not null;index" json:"account_id"`
	Amount      float64        `gorm:"not null" json:"amount"`
	Date        datatypes.Date `gorm:"index" json:"date"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	TagNames    []string       `gorm:"-" json:"tags"`
}

// Tag is a globally unique label, keyed by name.
type Tag struct {
	Name      string    `gorm:"primaryKey;size:255" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TransactionTag links a transaction to a tag. The composite key forbids duplicate links.
type TransactionTag struct {
	TransactionID string `gorm:"type:char(36);primaryKey"`
	TagName       string `gorm:"primaryKey;size:255;index"`
}

// TableName overrides the table name for Account
func (Account) TableName() string {
	return "accounts"
}

// TableName overrides the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

// TableName overrides the table name for Tag
func (Tag) TableName() string {
	return "tags"
}

// TableName overrides the table name for TransactionTag
func (TransactionTag) TableName() string {
	return "transaction_tags"
}
