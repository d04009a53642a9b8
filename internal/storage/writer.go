package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/carson-networks/bytebank-server/internal/storage/sqlconfig"
)

// Finisher ends a database transaction.
type Finisher interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer groups the tables of one database transaction.
type Writer struct {
	tx           Finisher
	Transactions sqlconfig.ITransactionTable
	Balances     sqlconfig.IBalanceTable
}

func NewWriter(tx bob.Tx) *Writer {
	return &Writer{
		tx:           tx,
		Transactions: sqlconfig.NewTransactionsTable(tx),
		Balances:     sqlconfig.NewBalancesTable(tx),
	}
}

// NewWriterFrom assembles a Writer from parts, for callers that supply their
// own tables.
func NewWriterFrom(tx Finisher, transactions sqlconfig.ITransactionTable, balances sqlconfig.IBalanceTable) *Writer {
	return &Writer{
		tx:           tx,
		Transactions: transactions,
		Balances:     balances,
	}
}

func (w *Writer) Commit(ctx context.Context) error {
	return w.tx.Commit(ctx)
}

func (w *Writer) Rollback(ctx context.Context) error {
	return w.tx.Rollback(ctx)
}
