package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kharcha/kharcha/internal/config"
	"github.com/kharcha/kharcha/internal/database"
	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/budget"
	"github.com/kharcha/kharcha/pkg/category"
	"github.com/kharcha/kharcha/pkg/dashboard"
	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/kharcha/kharcha/pkg/goal"
	"github.com/kharcha/kharcha/pkg/income"
	"github.com/kharcha/kharcha/pkg/reminder"
	"github.com/kharcha/kharcha/pkg/report"
	"github.com/kharcha/kharcha/pkg/savings"
	"github.com/kharcha/kharcha/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	UserService user.Service
	UserHandler *user.Handler

	IncomeRepo    income.Repo
	IncomeService income.Service
	IncomeHandler *income.Handler

	ExpenseRepo    expense.Repo
	ExpenseService expense.Service
	ExpenseHandler *expense.Handler

	SavingsRepo    savings.Repo
	SavingsReactor savings.Reactor
	SavingsService savings.Service
	SavingsHandler *savings.Handler

	GoalRepo    goal.Repo
	GoalService goal.Service
	GoalHandler *goal.Handler

	BudgetRepo    budget.Repo
	BudgetService budget.Service
	BudgetHandler *budget.Handler

	CategoryRepo    category.Repo
	CategoryService category.Service
	CategoryHandler *category.Handler

	ReminderRepo       reminder.Repo
	ReminderService    reminder.Service
	ReminderNotifier   reminder.Notifier
	ReminderDispatcher *reminder.Dispatcher
	ReminderHandler    *reminder.Handler

	DashboardService dashboard.Service
	DashboardHandler *dashboard.Handler

	ReportService report.Service
	ReportHandler *report.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	txRunner := database.PoolTxRunner{Pool: db}

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.SavingsRepo = savings.NewSavingsRepo(db)
	deps.SavingsReactor = savings.NewReactor(deps.SavingsRepo)
	deps.SavingsService = savings.NewSavingsService(deps.SavingsRepo)
	deps.SavingsHandler = savings.NewHandler(deps.SavingsService)

	deps.IncomeRepo = income.NewIncomeRepo(db)
	deps.IncomeService = income.NewIncomeService(txRunner, deps.IncomeRepo, deps.SavingsReactor)
	deps.IncomeHandler = income.NewHandler(deps.IncomeService)

	deps.ExpenseRepo = expense.NewExpenseRepo(db)
	deps.ExpenseService = expense.NewExpenseService(deps.ExpenseRepo)
	deps.ExpenseHandler = expense.NewHandler(deps.ExpenseService)

	deps.GoalRepo = goal.NewGoalRepo(db)
	deps.GoalService = goal.NewGoalService(deps.GoalRepo)
	deps.GoalHandler = goal.NewHandler(deps.GoalService)

	deps.BudgetRepo = budget.NewBudgetRepo(db)
	deps.BudgetService = budget.NewBudgetService(deps.BudgetRepo, deps.Clock)
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService)

	deps.CategoryRepo = category.NewCategoryRepo(db)
	deps.CategoryService = category.NewCategoryService(deps.CategoryRepo)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.ReminderRepo = reminder.NewReminderRepo(db)
	deps.ReminderService = reminder.NewReminderService(deps.ReminderRepo)
	deps.ReminderNotifier = reminder.NewSMTPNotifier(cfg.Mail)
	deps.ReminderDispatcher = reminder.NewDispatcher(deps.ReminderRepo, deps.ReminderNotifier, deps.Clock)
	deps.ReminderHandler = reminder.NewHandler(deps.ReminderService, deps.ReminderDispatcher)

	deps.DashboardService = dashboard.NewDashboardService(
		deps.IncomeRepo,
		deps.ExpenseRepo,
		deps.SavingsRepo,
		deps.BudgetRepo,
		deps.ReminderRepo,
		deps.Clock,
	)
	deps.DashboardHandler = dashboard.NewHandler(deps.DashboardService)

	deps.ReportService = report.NewReportService(deps.IncomeRepo, deps.ExpenseRepo, deps.Clock)
	deps.ReportHandler = report.NewHandler(deps.ReportService, report.NewPDFRenderer())

	return deps
}
