package models

import "testing"

func TestApplyDailyRollover_BlocksQuotaMiss(t *testing.T) {
	u := User{
		Status:              UserStatusActive,
		TasksCompletedToday: 3,
		TasksAssignedToday:  4,
		DailyTaskQuota:      5,
		LastActivityDate:    "2026-08-27",
	}
	changed := u.ApplyDailyRollover("2026-08-28")
	if !changed {
		t.Fatal("expected rollover to report a change")
	}
	if u.Status != UserStatusBlocked {
		t.Errorf("user under quota should be blocked, got %s", u.Status)
	}
	if u.TasksCompletedToday != 0 || u.TasksAssignedToday != 0 {
		t.Error("daily counters should reset")
	}
	if u.LastActivityDate != "2026-08-28" {
		t.Errorf("last activity date = %s", u.LastActivityDate)
	}
}

func TestApplyDailyRollover_QuotaMetStaysActive(t *testing.T) {
	u := User{
		Status:              UserStatusActive,
		TasksCompletedToday: 5,
		DailyTaskQuota:      5,
		LastActivityDate:    "2026-08-27",
	}
	u.ApplyDailyRollover("2026-08-28")
	if u.Status != UserStatusActive {
		t.Fatalf("user meeting quota must stay active, got %s", u.Status)
	}
}

func TestApplyDailyRollover_IdempotentSameDay(t *testing.T) {
	u := User{
		Status:              UserStatusActive,
		TasksCompletedToday: 2,
		DailyTaskQuota:      5,
		LastActivityDate:    "2026-08-28",
	}
	if u.ApplyDailyRollover("2026-08-28") {
		t.Fatal("rollover on the same day must be a no-op")
	}
	if u.TasksCompletedToday != 2 || u.Status != UserStatusActive {
		t.Fatal("no-op rollover must not touch state")
	}
}

func TestApplyDailyRollover_ZeroQuotaNeverBlocks(t *testing.T) {
	u := User{
		Status:           UserStatusActive,
		DailyTaskQuota:   0,
		LastActivityDate: "2026-08-27",
	}
	u.ApplyDailyRollover("2026-08-28")
	if u.Status != UserStatusActive {
		t.Fatal("quota of zero disables the suspension rule")
	}
}

func TestApplyDailyRollover_AlreadyBlockedStaysBlocked(t *testing.T) {
	u := User{
		Status:              UserStatusBlocked,
		TasksCompletedToday: 9,
		DailyTaskQuota:      5,
		LastActivityDate:    "2026-08-27",
	}
	u.ApplyDailyRollover("2026-08-28")
	if u.Status != UserStatusBlocked {
		t.Fatal("rollover must not unblock a blocked user")
	}
}
