package app

import (
	"github.com/gorilla/mux"
	"github.com/kharcha/kharcha/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// User management
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user/current", deps.UserHandler.UpdateUser).Methods("PUT")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET").Queries("username", "{username}")

	// Income
	r.HandleFunc("/api/income", deps.IncomeHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/income", deps.IncomeHandler.Create).Methods("POST")
	r.HandleFunc("/api/income/{id}", deps.IncomeHandler.Update).Methods("PUT")
	r.HandleFunc("/api/income/{id}", deps.IncomeHandler.Delete).Methods("DELETE")

	// Expenses
	r.HandleFunc("/api/expense", deps.ExpenseHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/expense", deps.ExpenseHandler.Create).Methods("POST")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Update).Methods("PUT")
	r.HandleFunc("/api/expense/{id}", deps.ExpenseHandler.Delete).Methods("DELETE")

	// Savings
	r.HandleFunc("/api/savings", deps.SavingsHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/savings", deps.SavingsHandler.CreateManual).Methods("POST")
	r.HandleFunc("/api/savings/{id}", deps.SavingsHandler.DeleteManual).Methods("DELETE")

	// Savings goals
	r.HandleFunc("/api/goal", deps.GoalHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/goal", deps.GoalHandler.Create).Methods("POST")
	r.HandleFunc("/api/goal/{id}", deps.GoalHandler.Update).Methods("PUT")
	r.HandleFunc("/api/goal/{id}", deps.GoalHandler.Delete).Methods("DELETE")

	// Budgets
	r.HandleFunc("/api/budget", deps.BudgetHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/budget", deps.BudgetHandler.Create).Methods("POST")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Update).Methods("PUT")
	r.HandleFunc("/api/budget/{id}", deps.BudgetHandler.Delete).Methods("DELETE")

	// Categories
	r.HandleFunc("/api/category", deps.CategoryHandler.ListByKind).Methods("GET").Queries("kind", "{kind}")
	r.HandleFunc("/api/category", deps.CategoryHandler.Create).Methods("POST")
	r.HandleFunc("/api/category/{id}", deps.CategoryHandler.Delete).Methods("DELETE")

	// Reminders
	r.HandleFunc("/api/reminder", deps.ReminderHandler.GetAll).Methods("GET")
	r.HandleFunc("/api/reminder", deps.ReminderHandler.Create).Methods("POST")
	r.HandleFunc("/api/reminder/{id}", deps.ReminderHandler.Update).Methods("PUT")
	r.HandleFunc("/api/reminder/{id}", deps.ReminderHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/reminder/{id}/complete", deps.ReminderHandler.Complete).Methods("POST")
	r.HandleFunc("/api/reminder/dispatch", deps.ReminderHandler.Dispatch).Methods("POST")

	// Dashboard
	r.HandleFunc("/api/dashboard", deps.DashboardHandler.GetSummary).Methods("GET")

	// Reports
	r.HandleFunc("/api/report", deps.ReportHandler.GetReport).Methods("GET")
	r.HandleFunc("/api/report/download", deps.ReportHandler.Download).Methods("GET")
}
