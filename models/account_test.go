package models

import (
	"errors"
	"testing"
)

func TestApplyReserve_DebitsCreditCost(t *testing.T) {
	spec := TierSpecFor(TierGold)
	u := User{Credits: 5, DailyTaskQuota: 5}

	if err := u.ApplyReserve(spec); err != nil {
		t.Fatalf("ApplyReserve() = %v", err)
	}
	if u.Credits != 5-spec.CreditCost {
		t.Errorf("credits = %d, want %d", u.Credits, 5-spec.CreditCost)
	}
	if u.TasksAssignedToday != 1 {
		t.Errorf("tasks assigned today = %d, want 1", u.TasksAssignedToday)
	}
}

func TestApplyReserve_SecondReservationRunsOut(t *testing.T) {
	spec := TierSpecFor(TierBasic)
	u := User{Credits: spec.CreditCost, DailyTaskQuota: 5}

	if err := u.ApplyReserve(spec); err != nil {
		t.Fatalf("first reservation failed: %v", err)
	}
	err := u.ApplyReserve(spec)
	if !errors.Is(err, ErrInsufficientCredits) {
		t.Fatalf("second reservation error = %v, want ErrInsufficientCredits", err)
	}
	if u.Credits != 0 || u.TasksAssignedToday != 1 {
		t.Error("failed reservation must not touch credits or counters")
	}
}

func TestApplyReserve_QuotaExceeded(t *testing.T) {
	u := User{Credits: 100, DailyTaskQuota: 2, TasksAssignedToday: 2}

	err := u.ApplyReserve(TierSpecFor(TierBasic))
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("error = %v, want ErrQuotaExceeded", err)
	}
	if u.Credits != 100 {
		t.Error("quota failure must not debit credits")
	}
}

func TestApplyWithdrawal_DebitAndRefundRoundTrip(t *testing.T) {
	u := User{Balance: 25.50}

	if err := u.ApplyWithdrawal(10.30); err != nil {
		t.Fatalf("ApplyWithdrawal() = %v", err)
	}
	if u.Balance != 15.20 {
		t.Errorf("balance after debit = %.2f, want 15.20", u.Balance)
	}

	u.ApplyRefund(10.30)
	if u.Balance != 25.50 {
		t.Errorf("balance after refund = %.2f, want 25.50", u.Balance)
	}
}

func TestApplyWithdrawal_InsufficientBalance(t *testing.T) {
	u := User{Balance: 5}

	err := u.ApplyWithdrawal(5.01)
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("error = %v, want ErrInsufficientBalance", err)
	}
	if u.Balance != 5 {
		t.Error("failed withdrawal must not touch the balance")
	}
}

func TestApplyEarning_RoundsToCents(t *testing.T) {
	u := User{Balance: 0.10}
	u.ApplyEarning(0.25)
	u.ApplyEarning(0.25)
	if u.Balance != 0.60 {
		t.Errorf("balance = %v, want 0.60", u.Balance)
	}
}
