package users

import (
	"testing"

	"taskvine/utils"
)

// A zero amount must pass struct validation so the handler's own check
// answers with the invalid_amount code.
func TestWithdrawalRequestAllowsZeroThroughValidation(t *testing.T) {
	if err := utils.ValidateStruct(&WithdrawalRequest{Amount: 0}); err != nil {
		t.Fatalf("WithdrawalRequest with zero amount: %v", err)
	}
}
