package models

import "time"

const (
	WithdrawalStatusPending  = "Pending"
	WithdrawalStatusSuccess  = "Success"
	WithdrawalStatusRejected = "Rejected"
)

// Withdrawal is a payout request. The balance is debited when the request
// is created; an admin rejection refunds it.
type Withdrawal struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	PayoutProfileID uint           `gorm:"not null;index" json:"payout_profile_id"`
	Amount          float64        `gorm:"type:decimal(15,2);not null" json:"amount"`
	OrderID         string         `gorm:"size:191;not null;uniqueIndex" json:"order_id"`
	Status          string         `gorm:"type:enum('Pending','Success','Rejected');default:'Pending'" json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	PayoutProfile   *PayoutProfile `gorm:"foreignKey:PayoutProfileID" json:"payout_profile,omitempty"`
}

func (Withdrawal) TableName() string {
	return "withdrawals"
}
