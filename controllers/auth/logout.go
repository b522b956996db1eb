package auth

import (
	"log"
	"net/http"
	"strings"
	"time"

	"taskvine/database"
	"taskvine/middleware"
	"taskvine/models"
	"taskvine/utils"
)

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// LogoutHandler revokes the current access token and, when supplied, the
// session's refresh token.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var req LogoutRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	revokeCurrentAccessToken(r)

	if req.RefreshToken != "" {
		if err := database.DB.Model(&models.RefreshToken{}).
			Where("id = ?", req.RefreshToken).
			Update("revoked", true).Error; err != nil {
			log.Printf("[logout] revoke refresh token error: %v", err)
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Logged out"})
}

// LogoutAllHandler revokes every refresh token the user holds plus the
// current access token. Other live access tokens expire on their own.
func LogoutAllHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserID(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized")
		return
	}

	revokeCurrentAccessToken(r)

	if err := database.DB.Model(&models.RefreshToken{}).
		Where("user_id = ? AND revoked = ?", userID, false).
		Update("revoked", true).Error; err != nil {
		log.Printf("[logout-all] revoke refresh tokens error for user %d: %v", userID, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "All sessions ended"})
}

// revokeCurrentAccessToken blacklists the jti of the bearer token on the
// request for the remainder of its lifetime. Best effort.
func revokeCurrentAccessToken(r *http.Request) {
	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if raw == "" {
		return
	}
	_, claims, err := utils.ValidateAccessToken(raw)
	if err != nil {
		return
	}
	jti, _ := claims["jti"].(string)
	ttl := 15 * time.Minute
	if exp, ok := claims["exp"].(float64); ok {
		if left := time.Until(time.Unix(int64(exp), 0)); left > 0 {
			ttl = left
		}
	}
	if err := utils.RevokeJTI(jti, ttl); err != nil {
		log.Printf("[logout] revoke jti error: %v", err)
	}
}
