package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kharcha/kharcha/internal/utils"
	"github.com/kharcha/kharcha/pkg/budget"
	"github.com/kharcha/kharcha/pkg/expense"
	"github.com/kharcha/kharcha/pkg/income"
	"github.com/kharcha/kharcha/pkg/reminder"
	"github.com/kharcha/kharcha/pkg/savings"
	"github.com/kharcha/kharcha/pkg/user"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const (
	seriesDays  = 7
	recentFetch = 10
	recentLimit = 5
)

type Service interface {
	GetSummary(ctx context.Context) (Summary, error)
}

// ServiceImpl aggregates across the other repositories. Day boundaries are
// computed in the user's configured timezone; an unknown or empty timezone
// falls back to UTC.
type ServiceImpl struct {
	incomeRepo   income.Repo
	expenseRepo  expense.Repo
	savingsRepo  savings.Repo
	budgetRepo   budget.Repo
	reminderRepo reminder.Repo
	clock        utils.Clock
}

func NewDashboardService(
	incomeRepo income.Repo,
	expenseRepo expense.Repo,
	savingsRepo savings.Repo,
	budgetRepo budget.Repo,
	reminderRepo reminder.Repo,
	clock utils.Clock,
) *ServiceImpl {
	return &ServiceImpl{
		incomeRepo:   incomeRepo,
		expenseRepo:  expenseRepo,
		savingsRepo:  savingsRepo,
		budgetRepo:   budgetRepo,
		reminderRepo: reminderRepo,
		clock:        clock,
	}
}

func (s *ServiceImpl) GetSummary(ctx context.Context) (Summary, error) {
	currentUser, err := user.CurrentUser(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to get current user: %w", err)
	}
	userId := currentUser.Id

	loc := userLocation(currentUser)
	now := s.clock.Now().In(loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	tomorrowStart := todayStart.AddDate(0, 0, 1)
	yesterdayStart := todayStart.AddDate(0, 0, -1)
	last30Start := todayStart.AddDate(0, 0, -29)
	seriesStart := todayStart.AddDate(0, 0, -(seriesDays - 1))

	var summary Summary

	if summary.IncomeTotal, err = s.incomeRepo.SumAll(ctx, userId); err != nil {
		return Summary{}, err
	}
	if summary.ExpenseTotal, err = s.expenseRepo.SumAll(ctx, userId); err != nil {
		return Summary{}, err
	}
	if summary.AutomatedSavingsTotal, err = s.savingsRepo.SumAutomatic(ctx, userId); err != nil {
		return Summary{}, err
	}
	summary.SavingsTotal = summary.IncomeTotal.Sub(summary.ExpenseTotal)
	summary.UnallocatedSavings = summary.SavingsTotal.Sub(summary.AutomatedSavingsTotal)

	if summary.SpentToday, err = s.expenseRepo.SumBetween(ctx, userId, todayStart, tomorrowStart); err != nil {
		return Summary{}, err
	}
	if summary.SpentYesterday, err = s.expenseRepo.SumBetween(ctx, userId, yesterdayStart, todayStart); err != nil {
		return Summary{}, err
	}
	if summary.SpentLast30Days, err = s.expenseRepo.SumBetween(ctx, userId, last30Start, tomorrowStart); err != nil {
		return Summary{}, err
	}

	incomes, err := s.incomeRepo.ListBetween(ctx, userId, seriesStart, tomorrowStart)
	if err != nil {
		return Summary{}, err
	}
	expenses, err := s.expenseRepo.ListBetween(ctx, userId, seriesStart, tomorrowStart)
	if err != nil {
		return Summary{}, err
	}
	summary.IncomeSeries = dailySeries(seriesStart, loc, len(incomes), func(i int) (time.Time, decimal.Decimal) {
		return incomes[i].OccurredAt, incomes[i].Amount
	})
	summary.ExpenseSeries = dailySeries(seriesStart, loc, len(expenses), func(i int) (time.Time, decimal.Decimal) {
		return expenses[i].OccurredAt, expenses[i].Amount
	})

	if summary.CategoryBreakdown, err = s.expenseRepo.TotalsByCategory(ctx, userId, nil, nil); err != nil {
		return Summary{}, err
	}

	if summary.RecentTransactions, err = s.recentTransactions(ctx, userId); err != nil {
		return Summary{}, err
	}

	if summary.ActivePockets, err = s.activePockets(ctx, userId, todayStart); err != nil {
		return Summary{}, err
	}

	if summary.IncompleteReminders, err = s.reminderRepo.FindIncomplete(ctx, userId); err != nil {
		return Summary{}, err
	}

	return summary, nil
}

// recentTransactions merges the latest incomes and expenses into one feed,
// newest first, capped at five entries.
func (s *ServiceImpl) recentTransactions(ctx context.Context, userId int) ([]Transaction, error) {
	incomes, err := s.incomeRepo.Recent(ctx, userId, recentFetch)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.Recent(ctx, userId, recentFetch)
	if err != nil {
		return nil, err
	}

	transactions := make([]Transaction, 0, len(incomes)+len(expenses))
	for _, entry := range incomes {
		transactions = append(transactions, Transaction{
			Type:       TransactionIncome,
			ID:         entry.ID,
			Label:      entry.Source,
			Amount:     entry.Amount,
			OccurredAt: entry.OccurredAt,
		})
	}
	for _, entry := range expenses {
		transactions = append(transactions, Transaction{
			Type:       TransactionExpense,
			ID:         entry.ID,
			Label:      entry.Category,
			Amount:     entry.Amount,
			OccurredAt: entry.OccurredAt,
		})
	}
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].OccurredAt.After(transactions[j].OccurredAt)
	})
	if len(transactions) > recentLimit {
		transactions = transactions[:recentLimit]
	}
	return transactions, nil
}

// activePockets annotates each active budget with its spend, restricted to
// the budget's own window, and groups the result by period.
func (s *ServiceImpl) activePockets(ctx context.Context, userId int, today time.Time) ([]PocketGroup, error) {
	active, err := s.budgetRepo.FindActive(ctx, userId, today)
	if err != nil {
		return nil, err
	}

	grouped := map[budget.Period][]Pocket{}
	for _, b := range active {
		var from, to *time.Time
		if !b.StartDate.IsZero() {
			start := b.StartDate
			from = &start
		}
		if !b.EndDate.IsZero() {
			end := b.EndDate.AddDate(0, 0, 1)
			to = &end
		}
		spent, err := s.expenseRepo.SumByCategoryBetween(ctx, userId, b.Category, from, to)
		if err != nil {
			return nil, err
		}
		grouped[b.Period] = append(grouped[b.Period], Pocket{
			Budget:    b,
			Spent:     spent,
			Remaining: b.LimitAmount.Sub(spent),
		})
	}

	var groups []PocketGroup
	for _, period := range []budget.Period{budget.PeriodWeekly, budget.PeriodMonthly} {
		if pockets, ok := grouped[period]; ok {
			groups = append(groups, PocketGroup{Period: period, Pockets: pockets})
		}
	}
	return groups, nil
}

// dailySeries buckets entries into one point per day, oldest first, zero-
// filled so the result always has an entry for each of the last seven days.
func dailySeries(start time.Time, loc *time.Location, n int, entry func(int) (time.Time, decimal.Decimal)) []DailyPoint {
	points := make([]DailyPoint, seriesDays)
	for i := range points {
		points[i] = DailyPoint{Date: start.AddDate(0, 0, i), Total: decimal.Zero}
	}
	for i := 0; i < n; i++ {
		occurredAt, amount := entry(i)
		local := occurredAt.In(loc)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		offset := daysBetween(start, day)
		if offset < 0 || offset >= seriesDays {
			continue
		}
		points[offset].Total = points[offset].Total.Add(amount)
	}
	return points
}

func daysBetween(from, to time.Time) int {
	if to.Before(from) {
		return -1
	}
	days := 0
	for d := from; d.Before(to) && days <= seriesDays; d = d.AddDate(0, 0, 1) {
		days++
	}
	return days
}

func userLocation(u user.User) *time.Location {
	if u.Settings.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(u.Settings.Timezone)
	if err != nil {
		log.Warnf("unknown timezone %q for user %d, falling back to UTC", u.Settings.Timezone, u.Id)
		return time.UTC
	}
	return loc
}
