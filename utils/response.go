package utils

import (
	"encoding/json"
	"net/http"
)

// Machine-readable error codes surfaced in APIResponse.Code so clients do
// not have to parse messages.
const (
	CodeInvalidAmount        = "invalid_amount"
	CodeInsufficientBalance  = "insufficient_balance"
	CodeInsufficientCredits  = "insufficient_credits"
	CodeQuotaExceeded        = "quota_exceeded"
	CodeAccountSuspended     = "account_suspended"
	CodeInvalidSubmission    = "invalid_submission"
	CodeMissingPayoutProfile = "missing_payout_profile"
	CodeUserNotFound         = "user_not_found"
	CodeInsufficientPool     = "insufficient_pool_tasks"
	CodeAuthError            = "auth_error"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Code    string      `json:"code,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// WriteError writes a failed envelope with a taxonomy code attached.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, APIResponse{Success: false, Message: message, Code: code})
}
