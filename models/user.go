package models

import (
	"errors"
	"math"
	"time"
)

const (
	UserStatusActive  = "Active"
	UserStatusBlocked = "Blocked"
)

// Errors returned by the account-math helpers below.
var (
	ErrQuotaExceeded       = errors.New("daily quota exceeded")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrInsufficientBalance = errors.New("insufficient balance")
)

// DateLayout is the calendar-day granularity used by the daily quota
// monitor. All rollover comparisons happen in UTC.
const DateLayout = "2006-01-02"

type User struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Email               string    `gorm:"size:191;uniqueIndex;not null" json:"email"`
	Password            string    `gorm:"size:255;not null" json:"-"`
	Status              string    `gorm:"type:enum('Active','Blocked');default:'Active'" json:"status"`
	Balance             float64   `gorm:"type:decimal(15,2);default:0" json:"balance"`
	Credits             int       `gorm:"not null;default:0" json:"credits"`
	CreditsPurchased    int       `gorm:"not null;default:0" json:"credits_purchased"`
	Tier                string    `gorm:"type:enum('Basic','Gold','Platinum','Diamond');default:'Basic'" json:"tier"`
	TasksCompletedToday int       `gorm:"not null;default:0" json:"tasks_completed_today"`
	TasksAssignedToday  int       `gorm:"not null;default:0" json:"tasks_assigned_today"`
	DailyTaskQuota      int       `gorm:"not null;default:5" json:"daily_task_quota"`
	LastActivityDate    string    `gorm:"size:10;not null" json:"last_activity_date"`
	CreatedAt           time.Time `json:"-"`
	UpdatedAt           time.Time `json:"-"`
}

func (User) TableName() string {
	return "users"
}

// Today returns the current UTC calendar date in DateLayout.
func Today() string {
	return time.Now().UTC().Format(DateLayout)
}

// ApplyDailyRollover advances the user's daily counters to today. It is a
// no-op unless LastActivityDate is strictly earlier than today, so calling
// it repeatedly within the same day is safe. When a new day begins, a user
// who completed fewer tasks than their quota on the prior day is blocked.
// Returns true when any field changed and the caller must persist the user.
func (u *User) ApplyDailyRollover(today string) bool {
	if u.LastActivityDate >= today {
		return false
	}
	if u.Status == UserStatusActive && u.DailyTaskQuota > 0 && u.TasksCompletedToday < u.DailyTaskQuota {
		u.Status = UserStatusBlocked
	}
	u.TasksCompletedToday = 0
	u.TasksAssignedToday = 0
	u.LastActivityDate = today
	return true
}

// ApplyReserve debits the tier's credit cost and counts the assignment
// against today's quota. The caller persists Credits and
// TasksAssignedToday on success; on error nothing changed.
func (u *User) ApplyReserve(spec TierSpec) error {
	if u.TasksAssignedToday >= u.DailyTaskQuota {
		return ErrQuotaExceeded
	}
	if u.Credits < spec.CreditCost {
		return ErrInsufficientCredits
	}
	u.Credits -= spec.CreditCost
	u.TasksAssignedToday++
	return nil
}

// ApplyEarning credits the balance with an approved task's tier earning.
func (u *User) ApplyEarning(amount float64) {
	u.Balance = round2(u.Balance + amount)
}

// ApplyWithdrawal debits the balance for a withdrawal request.
func (u *User) ApplyWithdrawal(amount float64) error {
	if u.Balance < amount {
		return ErrInsufficientBalance
	}
	u.Balance = round2(u.Balance - amount)
	return nil
}

// ApplyRefund restores a rejected withdrawal's amount.
func (u *User) ApplyRefund(amount float64) {
	u.Balance = round2(u.Balance + amount)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RolloverChanges is the per-field update set matching ApplyDailyRollover,
// for callers that persist with Updates instead of Save.
func (u *User) RolloverChanges() map[string]interface{} {
	return map[string]interface{}{
		"status":                u.Status,
		"tasks_completed_today": u.TasksCompletedToday,
		"tasks_assigned_today":  u.TasksAssignedToday,
		"last_activity_date":    u.LastActivityDate,
	}
}
