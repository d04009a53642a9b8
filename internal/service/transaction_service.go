package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/carson-networks/bytebank-server/internal/entry"
	"github.com/carson-networks/bytebank-server/internal/events"
	"github.com/carson-networks/bytebank-server/internal/logging"
	"github.com/carson-networks/bytebank-server/internal/operator/actions"
	"github.com/carson-networks/bytebank-server/internal/receipts"
	"github.com/carson-networks/bytebank-server/internal/storage"
	"github.com/carson-networks/bytebank-server/internal/storage/sqlconfig"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

var (
	ErrTransactionNotFound = actions.ErrTransactionNotFound
	ErrReceiptsDisabled    = errors.New("service: receipt storage is not configured")
)

// ActionProcessor runs write actions inside a database transaction.
type ActionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// EventPublisher announces recorded transactions.
type EventPublisher interface {
	PublishTransactionCreated(ctx context.Context, msg *events.TransactionCreatedMessage) error
}

// TransactionServiceConfig wires a TransactionService. Publisher and
// Receipts are optional.
type TransactionServiceConfig struct {
	Reader             *storage.Reader
	Operator           ActionProcessor
	Publisher          EventPublisher
	Receipts           receipts.Uploader
	Logger             logrus.FieldLogger
	BreakerMaxFailures int
	BreakerOpenTimeout time.Duration
}

// TransactionService handles transaction business logic.
type TransactionService struct {
	reader    *storage.Reader
	operator  ActionProcessor
	publisher EventPublisher
	receipts  receipts.Uploader
	logger    logrus.FieldLogger
	breaker   *gobreaker.CircuitBreaker
}

var _ entry.TransactionCreator = (*TransactionService)(nil)

// NewTransactionService creates a new TransactionService.
func NewTransactionService(cfg TransactionServiceConfig) *TransactionService {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	openTimeout := cfg.BreakerOpenTimeout
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}
	return &TransactionService{
		reader:    cfg.Reader,
		operator:  cfg.Operator,
		publisher: cfg.Publisher,
		receipts:  cfg.Receipts,
		logger:    logger,
		breaker:   newBreaker("postgres", cfg.BreakerMaxFailures, openTimeout, logger),
	}
}

// CreateTransaction records a validated entry for userID and updates the
// user's balance in the same database transaction.
func (s *TransactionService) CreateTransaction(ctx context.Context, userID string, payload entry.Payload) error {
	amount, err := decimal.NewFromString(payload.Amount)
	if err != nil {
		return fmt.Errorf("parse amount %q: %w", payload.Amount, err)
	}

	action := &actions.CreateTransaction{
		UserID:          userID,
		Type:            string(payload.Type),
		Category:        payload.Category,
		Amount:          amount,
		Description:     payload.Description,
		TransactionDate: payload.Date,
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		defer logData.AddTiming("createTransactionMs")()
	}
	err = guard(s.breaker, func() error {
		return s.operator.Process(ctx, action)
	})
	if err != nil {
		return err
	}

	s.publishCreated(ctx, userID, action)
	return nil
}

func (s *TransactionService) publishCreated(ctx context.Context, userID string, action *actions.CreateTransaction) {
	if s.publisher == nil {
		return
	}
	msg := &events.TransactionCreatedMessage{
		ID:       action.CreatedID.String(),
		UserID:   userID,
		Type:     action.Type,
		Category: action.Category,
		Amount:   action.Amount.StringFixed(2),
		Date:     action.TransactionDate,
	}
	if err := s.publisher.PublishTransactionCreated(ctx, msg); err != nil {
		s.logger.WithError(err).WithField("transactionID", msg.ID).Warn("TransactionService.CreateTransaction.publish")
	}
}

// ListTransactions returns a page of the user's transactions using
// cursor-based pagination. A non-empty txType restricts the page to
// expense or income rows.
func (s *TransactionService) ListTransactions(ctx context.Context, userID, txType string, cursor *TransactionCursor) ([]Transaction, *TransactionCursor, error) {
	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		limit = cursor.Limit
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}
	if limit < 1 || limit > maxLimit {
		limit = defaultLimit
	}

	filter := &sqlconfig.TransactionFilter{
		UserID:          userID,
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}
	if txType != "" {
		filter.Type = &txType
	}

	var rows []*sqlconfig.Transaction
	err := guard(s.breaker, func() error {
		var err error
		rows, err = s.reader.Transactions.List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *TransactionCursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &TransactionCursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = Transaction{
			ID:              row.ID,
			Type:            row.Type,
			Category:        row.Category,
			Amount:          row.Amount,
			Description:     row.Description,
			TransactionDate: row.TransactionDate,
			CreatedAt:       row.CreatedAt,
		}
		if row.ReceiptObject != nil {
			convertedTransactions[i].ReceiptObject = *row.ReceiptObject
		}
	}

	return convertedTransactions, nextCursor, nil
}

// GetBalance returns the user's totals. Users without transactions have a
// zero balance.
func (s *TransactionService) GetBalance(ctx context.Context, userID string) (Balance, error) {
	var row *sqlconfig.Balance
	err := guard(s.breaker, func() error {
		var err error
		row, err = s.reader.Balances.Find(ctx, userID)
		return err
	})
	if err != nil {
		return Balance{}, err
	}
	if row == nil {
		return Balance{Income: decimal.Zero, Expense: decimal.Zero, Net: decimal.Zero}, nil
	}
	return Balance{
		Income:  row.IncomeTotal,
		Expense: row.ExpenseTotal,
		Net:     row.IncomeTotal.Sub(row.ExpenseTotal),
	}, nil
}

// AttachReceipt uploads a receipt file and links it to the user's
// transaction. It returns the stored object name.
func (s *TransactionService) AttachReceipt(ctx context.Context, userID string, transactionID uuid.UUID, contentType string, data []byte) (string, error) {
	if s.receipts == nil {
		return "", ErrReceiptsDisabled
	}
	mediaType, err := receipts.CheckUpload(contentType, len(data))
	if err != nil {
		return "", err
	}

	uploadID, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("generate upload id: %w", err)
	}
	object := receipts.ObjectName(userID, transactionID, uploadID)
	if err := s.receipts.Upload(ctx, object, mediaType, data); err != nil {
		return "", fmt.Errorf("upload receipt: %w", err)
	}

	action := &actions.AttachReceipt{
		TransactionID: transactionID,
		UserID:        userID,
		Object:        object,
	}
	// the upload is done; recording it must not be abandoned halfway
	recordCtx := context.WithoutCancel(ctx)
	err = guard(s.breaker, func() error {
		return s.operator.Process(recordCtx, action)
	})
	if err != nil {
		// only the object uploaded above is removed; the row keeps its previous receipt
		s.deleteReceipt(ctx, object)
		return "", err
	}

	if action.Replaced != "" {
		s.deleteReceipt(ctx, action.Replaced)
	}
	return object, nil
}

func (s *TransactionService) deleteReceipt(ctx context.Context, object string) {
	if err := s.receipts.Delete(context.WithoutCancel(ctx), object); err != nil {
		s.logger.WithError(err).WithField("object", object).Warn("TransactionService.AttachReceipt.cleanup")
	}
}
