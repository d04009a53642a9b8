package storage

import (
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/bytebank-server/internal/storage/sqlconfig"
)

type Reader struct {
	Transactions sqlconfig.ITransactionTable
	Balances     sqlconfig.IBalanceTable
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{
		Transactions: sqlconfig.NewTransactionsTable(exec),
		Balances:     sqlconfig.NewBalancesTable(exec),
	}
}
