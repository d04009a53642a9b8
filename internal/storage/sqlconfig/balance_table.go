package sqlconfig

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"
)

const balancesTableName = "balances"

var _ IBalanceTable = (*BalancesTable)(nil)

type BalancesTable struct {
	exec bob.Executor
}

func NewBalancesTable(exec bob.Executor) *BalancesTable {
	return &BalancesTable{exec: exec}
}

// Ensure creates a zero balance row for userID unless one exists.
func (t *BalancesTable) Ensure(ctx context.Context, userID string) error {
	query := psql.Insert(
		im.Into(balancesTableName, "user_id"),
		im.Values(psql.Arg(userID)),
		im.OnConflict("user_id").DoNothing(),
	)
	_, err := bob.Exec(ctx, t.exec, query)
	return err
}

// Find returns the user's balance, or nil when nothing was ever recorded.
func (t *BalancesTable) Find(ctx context.Context, userID string) (*Balance, error) {
	return t.find(ctx, userID)
}

// FindForUpdate locks the user's balance row until the surrounding
// transaction ends.
func (t *BalancesTable) FindForUpdate(ctx context.Context, userID string) (*Balance, error) {
	return t.find(ctx, userID, sm.ForUpdate())
}

func (t *BalancesTable) find(ctx context.Context, userID string, extra ...bob.Mod[*dialect.SelectQuery]) (*Balance, error) {
	queryMods := append([]bob.Mod[*dialect.SelectQuery]{
		sm.Columns("user_id", "income_total", "expense_total", "updated_at"),
		sm.From(balancesTableName),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	}, extra...)

	row, err := bob.One(ctx, t.exec, psql.Select(queryMods...), scan.StructMapper[*Balance]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (t *BalancesTable) UpdateTotals(ctx context.Context, userID string, incomeTotal, expenseTotal decimal.Decimal) error {
	query := psql.Update(
		um.Table(balancesTableName),
		um.SetCol("income_total").ToArg(incomeTotal),
		um.SetCol("expense_total").ToArg(expenseTotal),
		um.SetCol("updated_at").To(psql.Raw("now()")),
		um.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
	)
	_, err := bob.Exec(ctx, t.exec, query)
	return err
}
