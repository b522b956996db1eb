package routes

import (
	"net/http"
	"time"

	"taskvine/controllers/admins"
	"taskvine/middleware"

	"github.com/gorilla/mux"
)

// SetAdminRoutes registers the admin panel routes on the given subrouter.
func SetAdminRoutes(api *mux.Router) {
	// Admin login limiter: 5 attempts per IP per minute
	adminLoginLimiter := middleware.NewIPRateLimiter(5, time.Minute)

	api.Handle("/admin/login", adminLoginLimiter.Middleware(http.HandlerFunc(admins.Login))).Methods(http.MethodPost)

	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.AdminAuthMiddleware)

	adminRouter.Handle("/dashboard", http.HandlerFunc(admins.Dashboard)).Methods(http.MethodGet)

	// Admin account
	adminRouter.Handle("/info", http.HandlerFunc(admins.Info)).Methods(http.MethodGet)
	adminRouter.Handle("/profile", http.HandlerFunc(admins.UpdateProfile)).Methods(http.MethodPut)
	adminRouter.Handle("/change-password", http.HandlerFunc(admins.ChangePassword)).Methods(http.MethodPost)

	// User management
	adminRouter.Handle("/users", http.HandlerFunc(admins.GetUsers)).Methods(http.MethodGet)
	adminRouter.Handle("/users/{id:[0-9]+}", http.HandlerFunc(admins.GetUser)).Methods(http.MethodGet)
	adminRouter.Handle("/users/{id:[0-9]+}", http.HandlerFunc(admins.UpdateUser)).Methods(http.MethodPut)
	adminRouter.Handle("/users/{id:[0-9]+}/credits", http.HandlerFunc(admins.GrantCredits)).Methods(http.MethodPost)
	adminRouter.Handle("/users/{id:[0-9]+}/fund", http.HandlerFunc(admins.FundBalance)).Methods(http.MethodPost)

	// Marketplace pool
	adminRouter.Handle("/tasks", http.HandlerFunc(admins.GetTasks)).Methods(http.MethodGet)
	adminRouter.Handle("/tasks", http.HandlerFunc(admins.CreateTask)).Methods(http.MethodPost)
	adminRouter.Handle("/tasks/generate", http.HandlerFunc(admins.GenerateTask)).Methods(http.MethodPost)
	adminRouter.Handle("/tasks/{id:[0-9]+}", http.HandlerFunc(admins.UpdateTask)).Methods(http.MethodPut)
	adminRouter.Handle("/tasks/{id:[0-9]+}", http.HandlerFunc(admins.DeleteTask)).Methods(http.MethodDelete)
	adminRouter.Handle("/user-tasks", http.HandlerFunc(admins.GetUserTasks)).Methods(http.MethodGet)

	// Bulk assignment
	adminRouter.Handle("/assign", http.HandlerFunc(admins.AssignTasks)).Methods(http.MethodPost)

	// Submission review
	adminRouter.Handle("/submissions", http.HandlerFunc(admins.GetSubmissions)).Methods(http.MethodGet)
	adminRouter.Handle("/submissions/{id:[0-9]+}/approve", http.HandlerFunc(admins.ApproveSubmission)).Methods(http.MethodPost)
	adminRouter.Handle("/submissions/{id:[0-9]+}/reject", http.HandlerFunc(admins.RejectSubmission)).Methods(http.MethodPost)

	// Withdrawals
	adminRouter.Handle("/withdrawals", http.HandlerFunc(admins.GetWithdrawals)).Methods(http.MethodGet)
	adminRouter.Handle("/withdrawals/{id:[0-9]+}/approve", http.HandlerFunc(admins.ApproveWithdrawal)).Methods(http.MethodPost)
	adminRouter.Handle("/withdrawals/{id:[0-9]+}/reject", http.HandlerFunc(admins.RejectWithdrawal)).Methods(http.MethodPost)

	// Categories
	adminRouter.Handle("/categories", http.HandlerFunc(admins.GetCategories)).Methods(http.MethodGet)
	adminRouter.Handle("/categories", http.HandlerFunc(admins.CreateCategory)).Methods(http.MethodPost)
	adminRouter.Handle("/categories/{id:[0-9]+}", http.HandlerFunc(admins.UpdateCategory)).Methods(http.MethodPut)
	adminRouter.Handle("/categories/{id:[0-9]+}", http.HandlerFunc(admins.DeleteCategory)).Methods(http.MethodDelete)

	// Payout methods
	adminRouter.Handle("/banks", http.HandlerFunc(admins.GetBanks)).Methods(http.MethodGet)
	adminRouter.Handle("/banks", http.HandlerFunc(admins.CreateBank)).Methods(http.MethodPost)
	adminRouter.Handle("/banks/{id:[0-9]+}", http.HandlerFunc(admins.UpdateBank)).Methods(http.MethodPut)

	// Settings
	adminRouter.Handle("/settings", http.HandlerFunc(admins.GetSettings)).Methods(http.MethodGet)
	adminRouter.Handle("/settings", http.HandlerFunc(admins.UpdateSettings)).Methods(http.MethodPut)
}
