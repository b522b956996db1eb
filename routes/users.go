package routes

import (
	"net/http"
	"time"

	"taskvine/controllers"
	"taskvine/controllers/auth"
	"taskvine/controllers/users"
	"taskvine/middleware"

	"github.com/gorilla/mux"
)

// UsersRoutes registers the user-facing routes on the given subrouter.
func UsersRoutes(api *mux.Router) {
	// Login/register limiter: 60 per IP per 5 minutes
	loginLimiter := middleware.NewIPRateLimiter(60, 5*time.Minute)
	// Session limiter: 120 reads / 60 writes per user per minute
	userLimiter := middleware.NewUserRateLimiter(120, 60, 60)

	// Register & login
	api.Handle("/register", loginLimiter.Middleware(http.HandlerFunc(auth.RegisterHandler))).Methods(http.MethodPost)
	api.Handle("/login", loginLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)
	api.Handle("/refresh", loginLimiter.Middleware(http.HandlerFunc(auth.RefreshHandler))).Methods(http.MethodPost)
	api.Handle("/logout", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(auth.LogoutHandler)))).Methods(http.MethodPost)
	api.Handle("/logout-all", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(auth.LogoutAllHandler)))).Methods(http.MethodPost)

	// Account
	api.Handle("/users/info", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.InfoHandler)))).Methods(http.MethodGet)
	api.Handle("/users/change-password", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.ChangePasswordHandler)))).Methods(http.MethodPost)
	api.Handle("/users/history", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.HistoryHandler)))).Methods(http.MethodGet)

	// Tasks
	api.Handle("/users/tasks/marketplace", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.MarketplaceHandler)))).Methods(http.MethodGet)
	api.Handle("/users/tasks", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.TaskListHandler)))).Methods(http.MethodGet)
	api.Handle("/users/tasks/reserve", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.ReserveHandler)))).Methods(http.MethodPost)
	api.Handle("/users/tasks/{id:[0-9]+}/start", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.StartTaskHandler)))).Methods(http.MethodPost)
	api.Handle("/users/tasks/{id:[0-9]+}/submit", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.SubmitTaskHandler)))).Methods(http.MethodPost)

	// Proof uploads
	api.Handle("/users/uploads/proof", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.UploadProofHandler)))).Methods(http.MethodPost)

	// Payout methods & profile
	api.Handle("/banks", http.HandlerFunc(controllers.BankListHandler)).Methods(http.MethodGet)
	api.Handle("/users/payout-profile", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.PayoutProfileHandler)))).Methods(http.MethodGet)
	api.Handle("/users/payout-profile", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.SavePayoutProfileHandler)))).Methods(http.MethodPut)

	// Withdrawals
	api.Handle("/users/withdrawal", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.WithdrawalHandler)))).Methods(http.MethodPost)
	api.Handle("/users/withdrawal", middleware.AuthMiddleware(userLimiter.Middleware(http.HandlerFunc(users.WithdrawalListHandler)))).Methods(http.MethodGet)
}
