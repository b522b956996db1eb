package models

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Marketplace pool statuses. Assigned templates were moved out of the pool
// by admin bulk assignment and are no longer reservable.
const (
	PoolStatusActive   = "Active"
	PoolStatusInactive = "Inactive"
	PoolStatusAssigned = "Assigned"
)

// User task lifecycle statuses.
const (
	TaskStatusAvailable = "available"
	TaskStatusStarted   = "started"
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
)

// MarketplaceTask is an admin-curated task template. Users never own a
// template; reserving one clones it into their own collection.
type MarketplaceTask struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Type         string    `gorm:"size:100;not null;index" json:"type"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	Instructions string    `gorm:"type:text" json:"instructions"`
	Link         string    `gorm:"size:255" json:"link"`
	Tier         string    `gorm:"type:enum('Basic','Gold','Platinum','Diamond');default:'Basic'" json:"tier"`
	Status       string    `gorm:"type:enum('Active','Inactive','Assigned');default:'Active'" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (MarketplaceTask) TableName() string {
	return "marketplace_tasks"
}

// UserTask is a user's clone of a marketplace template. Every descriptive
// field is copied at clone time; later edits to the template or to another
// user's clone never reach this row.
type UserTask struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"not null;uniqueIndex:idx_user_template" json:"user_id"`
	MarketplaceTaskID uint      `gorm:"not null;uniqueIndex:idx_user_template" json:"marketplace_task_id"`
	Type              string    `gorm:"size:100;not null" json:"type"`
	Description       string    `gorm:"type:text;not null" json:"description"`
	Instructions      string    `gorm:"type:text" json:"instructions"`
	Link              string    `gorm:"size:255" json:"link"`
	Tier              string    `gorm:"type:enum('Basic','Gold','Platinum','Diamond');default:'Basic'" json:"tier"`
	Status            string    `gorm:"type:enum('available','started','pending','completed');default:'available'" json:"status"`
	Submission        string    `gorm:"type:text" json:"submission,omitempty"`
	ProofURL          string    `gorm:"size:255" json:"proof_url,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (UserTask) TableName() string {
	return "user_tasks"
}

// Clone produces the user-owned copy of a template with status available.
func (t *MarketplaceTask) Clone(userID uint) UserTask {
	return UserTask{
		UserID:            userID,
		MarketplaceTaskID: t.ID,
		Type:              t.Type,
		Description:       t.Description,
		Instructions:      t.Instructions,
		Link:              t.Link,
		Tier:              t.Tier,
		Status:            TaskStatusAvailable,
	}
}

// taskEdges lists the only legal lifecycle moves. completed is terminal;
// pending can fall back to started on admin rejection.
var taskEdges = map[string][]string{
	TaskStatusAvailable: {TaskStatusStarted},
	TaskStatusStarted:   {TaskStatusPending},
	TaskStatusPending:   {TaskStatusCompleted, TaskStatusStarted},
	TaskStatusCompleted: nil,
}

// ValidTransition reports whether a task may move between the two statuses.
// Anything not in the edge table, including skipping states, is rejected.
func ValidTransition(from, to string) bool {
	for _, next := range taskEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// MinSubmissionLen is the shortest acceptable proof text, in runes, after
// trimming surrounding whitespace.
const MinSubmissionLen = 10

// ValidateSubmission trims the proof text and reports whether it is long
// enough to submit.
func ValidateSubmission(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, utf8.RuneCountInString(s) >= MinSubmissionLen
}
