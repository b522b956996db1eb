package admins

import (
	"testing"

	"taskvine/utils"
)

// Zero amounts must survive struct validation so the handlers can answer
// with the invalid_amount code instead of a generic required-field error.
func TestAmountRequestsAllowZeroThroughValidation(t *testing.T) {
	if err := utils.ValidateStruct(&GrantCreditsRequest{Credits: 0}); err != nil {
		t.Errorf("GrantCreditsRequest with zero credits: %v", err)
	}
	if err := utils.ValidateStruct(&FundBalanceRequest{Amount: 0}); err != nil {
		t.Errorf("FundBalanceRequest with zero amount: %v", err)
	}
	if err := utils.ValidateStruct(&AssignRequest{UserID: 7, Quantity: 0}); err != nil {
		t.Errorf("AssignRequest with zero quantity: %v", err)
	}
}

func TestAssignRequestStillRequiresUser(t *testing.T) {
	if err := utils.ValidateStruct(&AssignRequest{Quantity: 3}); err == nil {
		t.Fatal("expected missing user_id to fail validation")
	}
}
