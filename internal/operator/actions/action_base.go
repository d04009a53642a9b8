package actions

import (
	"context"

	"github.com/carson-networks/bytebank-server/internal/storage"
)

// IAction is one unit of work performed inside a single database transaction.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}
