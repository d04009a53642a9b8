package sqlconfig

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Balance holds the running totals of one user.
type Balance struct {
	UserID       string          `db:"user_id"`
	IncomeTotal  decimal.Decimal `db:"income_total"`
	ExpenseTotal decimal.Decimal `db:"expense_total"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

//go:generate mockery --name IBalanceTable --output mock_IBalanceTable.go
type IBalanceTable interface {
	Ensure(ctx context.Context, userID string) error
	Find(ctx context.Context, userID string) (*Balance, error)
	FindForUpdate(ctx context.Context, userID string) (*Balance, error)
	UpdateTotals(ctx context.Context, userID string, incomeTotal, expenseTotal decimal.Decimal) error
}
