package models

import (
	"strings"
	"time"
)

type Bank struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:100;not null" json:"name"`
	ShortName string `gorm:"size:20" json:"short_name"`
	Type      string `gorm:"type:enum('bank','ewallet');default:'bank'" json:"type"`
	Code      string `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Status    string `gorm:"type:enum('Active','Inactive');default:'Active'" json:"status"`
}

func (Bank) TableName() string {
	return "banks"
}

// PayoutProfile holds the payment details a user must register before any
// withdrawal is permitted. One per user.
type PayoutProfile struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	BankID        uint      `gorm:"not null;index" json:"bank_id"`
	AccountName   string    `gorm:"size:100;not null" json:"account_name"`
	AccountNumber string    `gorm:"size:50;not null" json:"account_number"`
	Bank          *Bank     `gorm:"foreignKey:BankID" json:"bank,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (PayoutProfile) TableName() string {
	return "payout_profiles"
}

// Complete reports whether the profile can actually receive a payout.
func (p *PayoutProfile) Complete() bool {
	return p != nil &&
		strings.TrimSpace(p.AccountName) != "" &&
		strings.TrimSpace(p.AccountNumber) != ""
}
