package transaction

import (
	"time"

	"github.com/carson-networks/bytebank-server/internal/service"
)

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID              string `json:"id" doc:"Transaction UUID"`
	Type            string `json:"type" enum:"expense,income" doc:"Transaction kind"`
	Category        string `json:"category" doc:"Category id"`
	Amount          string `json:"amount" doc:"Decimal amount with two fraction digits"`
	Description     string `json:"description" doc:"Free-text label"`
	TransactionDate string `json:"transactionDate" doc:"RFC3339 transaction date"`
	ReceiptObject   string `json:"receiptObject,omitempty" doc:"Stored receipt object, if one was uploaded"`
	CreatedAt       string `json:"createdAt" doc:"RFC3339 creation time"`
}

func fromService(tx service.Transaction) Transaction {
	return Transaction{
		ID:              tx.ID.String(),
		Type:            tx.Type,
		Category:        tx.Category,
		Amount:          tx.Amount.StringFixed(2),
		Description:     tx.Description,
		TransactionDate: tx.TransactionDate.Format(time.RFC3339),
		ReceiptObject:   tx.ReceiptObject,
		CreatedAt:       tx.CreatedAt.Format(time.RFC3339),
	}
}
