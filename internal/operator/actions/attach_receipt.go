package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bytebank-server/internal/storage"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// AttachReceipt records an uploaded receipt object on a transaction owned by
// UserID. Replaced is set to the object the row pointed at before, if any.
type AttachReceipt struct {
	TransactionID uuid.UUID
	UserID        string
	Object        string

	Replaced string
}

func (a *AttachReceipt) Perform(ctx context.Context, writer *storage.Writer) error {
	row, err := writer.Transactions.FindByIDForUpdate(ctx, a.TransactionID)
	if err != nil {
		return fmt.Errorf("find transaction: %w", err)
	}
	if row == nil || row.UserID != a.UserID {
		return ErrTransactionNotFound
	}

	updated, err := writer.Transactions.SetReceipt(ctx, a.TransactionID, a.UserID, a.Object)
	if err != nil {
		return fmt.Errorf("set receipt: %w", err)
	}
	if !updated {
		return ErrTransactionNotFound
	}

	if row.ReceiptObject != nil && *row.ReceiptObject != a.Object {
		a.Replaced = *row.ReceiptObject
	}
	return nil
}
