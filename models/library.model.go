package models

import (
	"time"

	"gorm.io/gorm"
)

// LibraryItem is a digital-library document or book, optionally paid
type LibraryItem struct {
	gorm.Model
	Title         string  `json:"title"`
	Slug          string  `json:"slug" gorm:"uniqueIndex"`
	Description   string  `json:"description"`
	Author        string  `json:"author"`
	Category      string  `json:"category"`
	Format        string  `json:"format" gorm:"default:'PDF'"`
	CoverImage    string  `json:"cover_image"`
	FileURL       string  `json:"file_url"`
	Price         float64 `json:"price" gorm:"default:0"`
	Currency      string  `json:"currency" gorm:"default:'BDT'"`
	IsMembersOnly bool    `json:"is_members_only" gorm:"default:false"`
	IsDeleted     bool    `gorm:"default:false" json:"-"`
}

// LibraryPurchase is one user's claim on one paid library item. Unlike
// Enrollment, a repeat purchase attempt upserts onto the same row instead of
// being rejected.
type LibraryPurchase struct {
	gorm.Model
	UserID        uint       `json:"user_id" gorm:"index:idx_purchase_user_item,unique;not null"`
	ItemID        uint       `json:"item_id" gorm:"index:idx_purchase_user_item,unique;not null"`
	Amount        float64    `json:"amount" gorm:"default:0"`
	Currency      string     `json:"currency" gorm:"default:'BDT'"`
	PaymentMethod string     `json:"payment_method" gorm:"type:varchar(20);default:'manual'"`
	PaymentStatus string     `json:"payment_status" gorm:"type:varchar(20);default:'pending';index"`
	TransactionID string     `json:"transaction_id" gorm:"index"`
	PhoneNumber   string     `json:"phone_number"`
	Note          string     `json:"note"`
	ApprovedBy    *uint      `json:"approved_by"`
	ApprovedAt    *time.Time `json:"approved_at"`

	User User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Item LibraryItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}
