package middleware

import (
	"context"
	"net/http"
	"strings"

	"taskvine/database"
	"taskvine/models"
	"taskvine/utils"
)

// AdminAuthMiddleware verifies the request carries an admin token and that
// the admin still exists and is active.
func AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized: no token provided")
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		_, claims, err := utils.ValidateAccessToken(tokenString)
		if err != nil {
			utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized: invalid token")
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != "admin" {
			utils.WriteError(w, http.StatusForbidden, utils.CodeAuthError, "Forbidden: admin access required")
			return
		}

		var adminID int64
		if v, ok := claims["id"].(float64); ok {
			adminID = int64(v)
		}

		var admin models.Admin
		if err := database.DB.First(&admin, adminID).Error; err != nil {
			utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized: admin not found")
			return
		}
		if !admin.IsActive {
			utils.WriteError(w, http.StatusForbidden, utils.CodeAuthError, "Forbidden")
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserIDKey, uint(admin.ID))
		ctx = context.WithValue(ctx, utils.UserRoleKey, "admin")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
