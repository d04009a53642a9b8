package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/bytebank-server/internal/storage"
	"github.com/carson-networks/bytebank-server/internal/storage/sqlconfig"
)

const (
	TypeExpense = "expense"
	TypeIncome  = "income"
)

// CreateTransaction inserts a transaction and adds its amount to the user's
// running balance.
type CreateTransaction struct {
	UserID          string
	Type            string
	Category        string
	Amount          decimal.Decimal
	Description     string
	TransactionDate time.Time

	// CreatedID is set once Perform succeeds.
	CreatedID uuid.UUID
}

func (t *CreateTransaction) Perform(ctx context.Context, writer *storage.Writer) error {
	if t.Type != TypeExpense && t.Type != TypeIncome {
		return fmt.Errorf("unknown transaction type %q", t.Type)
	}
	if !t.Amount.IsPositive() {
		return errors.New("amount must be positive")
	}

	id, err := writer.Transactions.Insert(ctx, &sqlconfig.TransactionCreate{
		UserID:          t.UserID,
		Type:            t.Type,
		Category:        t.Category,
		Amount:          t.Amount,
		Description:     t.Description,
		TransactionDate: t.TransactionDate,
	})
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	if err := writer.Balances.Ensure(ctx, t.UserID); err != nil {
		return fmt.Errorf("ensure balance: %w", err)
	}
	balance, err := writer.Balances.FindForUpdate(ctx, t.UserID)
	if err != nil {
		return fmt.Errorf("lock balance: %w", err)
	}
	if balance == nil {
		return errors.New("balance not found")
	}

	income, expense := balance.IncomeTotal, balance.ExpenseTotal
	if t.Type == TypeIncome {
		income = income.Add(t.Amount)
	} else {
		expense = expense.Add(t.Amount)
	}
	if err := writer.Balances.UpdateTotals(ctx, t.UserID, income, expense); err != nil {
		return fmt.Errorf("update balance: %w", err)
	}

	t.CreatedID = id
	return nil
}
