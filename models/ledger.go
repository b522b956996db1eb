package models

import (
	"time"

	"gorm.io/gorm"
)

// HistoryLimit caps the per-user ledger; inserting past it evicts the
// oldest entries.
const HistoryLimit = 50

// LedgerEntry is one balance-affecting (or credit-affecting, with a zero
// amount) event in a user's history. Append-only from the user's side.
type LedgerEntry struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	OrderID     string    `gorm:"size:191;not null;uniqueIndex" json:"order_id"`
	Description string    `gorm:"size:255;not null" json:"description"`
	Amount      float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

func (LedgerEntry) TableName() string {
	return "ledger_entries"
}

// LogHistory appends a ledger entry and evicts rows past HistoryLimit. It
// runs on the handle it is given so callers can keep it inside their
// transaction.
func LogHistory(tx *gorm.DB, entry *LedgerEntry) error {
	if err := tx.Create(entry).Error; err != nil {
		return err
	}
	return TrimHistory(tx, entry.UserID)
}

// TrimHistory deletes a user's ledger rows beyond the newest HistoryLimit.
func TrimHistory(tx *gorm.DB, userID uint) error {
	var ids []uint
	if err := tx.Model(&LedgerEntry{}).
		Where("user_id = ?", userID).
		Order("id DESC").
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	evict := EvictBeyond(ids, HistoryLimit)
	if len(evict) == 0 {
		return nil
	}
	return tx.Delete(&LedgerEntry{}, evict).Error
}

// EvictBeyond returns the ids past the newest limit entries. ids must be
// ordered newest first; the returned slice is the oldest ones, the ones
// the cap pushes out.
func EvictBeyond(ids []uint, limit int) []uint {
	if limit < 0 {
		limit = 0
	}
	if len(ids) <= limit {
		return nil
	}
	return ids[limit:]
}
