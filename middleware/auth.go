package middleware

import (
	"context"
	"net/http"
	"strings"

	"taskvine/utils"
)

// AuthMiddleware validates the bearer token and injects the user id and
// role into the request context. Admin tokens are rejected here; the admin
// panel has its own routes and middleware.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Unauthorized")
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
		_, claims, err := utils.ValidateAccessToken(tokenStr)
		if err != nil {
			if strings.Contains(err.Error(), "expired") {
				utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Session expired, please sign in again")
				return
			}
			utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Invalid token")
			return
		}

		var userID uint
		if v, ok := claims["id"].(float64); ok {
			userID = uint(v)
		}
		role, _ := claims["role"].(string)

		if role == "admin" {
			utils.WriteError(w, http.StatusForbidden, utils.CodeAuthError, "Access denied")
			return
		}
		if userID == 0 {
			utils.WriteError(w, http.StatusUnauthorized, utils.CodeAuthError, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserIDKey, userID)
		ctx = context.WithValue(ctx, utils.UserRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
