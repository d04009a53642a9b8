package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/bytebank-server/internal/entry"
	"github.com/carson-networks/bytebank-server/internal/events"
	"github.com/carson-networks/bytebank-server/internal/operator/actions"
	"github.com/carson-networks/bytebank-server/internal/receipts"
	"github.com/carson-networks/bytebank-server/internal/storage"
	"github.com/carson-networks/bytebank-server/internal/storage/sqlconfig"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, action actions.IAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishTransactionCreated(ctx context.Context, msg *events.TransactionCreatedMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, object string, contentType string, data []byte) error {
	args := m.Called(ctx, object, contentType, data)
	return args.Error(0)
}

func (m *mockUploader) Delete(ctx context.Context, object string) error {
	args := m.Called(ctx, object)
	return args.Error(0)
}

type testDeps struct {
	transactions *sqlconfig.MockITransactionTable
	balances     *sqlconfig.MockIBalanceTable
	operator     *mockProcessor
	publisher    *mockPublisher
	uploader     *mockUploader
}

func newTestService(t *testing.T) (*TransactionService, *testDeps) {
	t.Helper()
	deps := &testDeps{
		transactions: sqlconfig.NewMockITransactionTable(t),
		balances:     sqlconfig.NewMockIBalanceTable(t),
		operator:     new(mockProcessor),
		publisher:    new(mockPublisher),
		uploader:     new(mockUploader),
	}
	logger, _ := test.NewNullLogger()
	svc := NewTransactionService(TransactionServiceConfig{
		Reader:             &storage.Reader{Transactions: deps.transactions, Balances: deps.balances},
		Operator:           deps.operator,
		Publisher:          deps.publisher,
		Receipts:           deps.uploader,
		Logger:             logger,
		BreakerMaxFailures: 3,
		BreakerOpenTimeout: time.Minute,
	})
	return svc, deps
}

var lunchPayload = entry.Payload{
	Type:        entry.KindExpense,
	Category:    "food",
	Amount:      "12.50",
	Description: "Lunch",
	Date:        time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC),
}

// -- CreateTransaction tests --

func TestCreateTransaction_Success(t *testing.T) {
	svc, deps := newTestService(t)
	createdID := uuid.Must(uuid.NewV4())

	deps.operator.On("Process", mock.Anything, mock.MatchedBy(func(a actions.IAction) bool {
		c, ok := a.(*actions.CreateTransaction)
		return ok &&
			c.UserID == "user-1" &&
			c.Type == actions.TypeExpense &&
			c.Category == "food" &&
			c.Amount.Equal(decimal.RequireFromString("12.50")) &&
			c.Description == "Lunch" &&
			c.TransactionDate.Equal(lunchPayload.Date)
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*actions.CreateTransaction).CreatedID = createdID
	}).Return(nil).Once()

	deps.publisher.On("PublishTransactionCreated", mock.Anything, mock.MatchedBy(func(m *events.TransactionCreatedMessage) bool {
		return m.ID == createdID.String() && m.UserID == "user-1" && m.Amount == "12.50" && m.Type == "expense"
	})).Return(nil).Once()

	require.NoError(t, svc.CreateTransaction(context.Background(), "user-1", lunchPayload))
	deps.operator.AssertExpectations(t)
	deps.publisher.AssertExpectations(t)
}

func TestCreateTransaction_PublishFailureIsNotFatal(t *testing.T) {
	svc, deps := newTestService(t)
	deps.operator.On("Process", mock.Anything, mock.Anything).Return(nil)
	deps.publisher.On("PublishTransactionCreated", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	assert.NoError(t, svc.CreateTransaction(context.Background(), "user-1", lunchPayload))
}

func TestCreateTransaction_WithoutPublisher(t *testing.T) {
	svc, deps := newTestService(t)
	svc.publisher = nil
	deps.operator.On("Process", mock.Anything, mock.Anything).Return(nil)

	assert.NoError(t, svc.CreateTransaction(context.Background(), "user-1", lunchPayload))
	deps.publisher.AssertNotCalled(t, "PublishTransactionCreated", mock.Anything, mock.Anything)
}

func TestCreateTransaction_StorageError(t *testing.T) {
	svc, deps := newTestService(t)
	deps.operator.On("Process", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	err := svc.CreateTransaction(context.Background(), "user-1", lunchPayload)
	assert.EqualError(t, err, "connection refused")
	deps.publisher.AssertNotCalled(t, "PublishTransactionCreated", mock.Anything, mock.Anything)
}

func TestCreateTransaction_BadAmount(t *testing.T) {
	svc, deps := newTestService(t)
	payload := lunchPayload
	payload.Amount = "twelve"

	assert.Error(t, svc.CreateTransaction(context.Background(), "user-1", payload))
	deps.operator.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestCreateTransaction_BreakerOpensAfterFailures(t *testing.T) {
	svc, deps := newTestService(t)
	deps.operator.On("Process", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Times(3)

	for i := 0; i < 3; i++ {
		assert.Error(t, svc.CreateTransaction(context.Background(), "user-1", lunchPayload))
	}

	err := svc.CreateTransaction(context.Background(), "user-1", lunchPayload)
	assert.ErrorIs(t, err, ErrUnavailable)
	deps.operator.AssertNumberOfCalls(t, "Process", 3)
}

// -- ListTransactions tests --

func makeStorageRows(n int, createdAt time.Time) []*sqlconfig.Transaction {
	rows := make([]*sqlconfig.Transaction, n)
	for i := range rows {
		rows[i] = &sqlconfig.Transaction{
			ID:              uuid.Must(uuid.NewV4()),
			UserID:          "user-1",
			Type:            "expense",
			Category:        "food",
			Amount:          decimal.RequireFromString("5.00"),
			Description:     "Item",
			TransactionDate: createdAt,
			CreatedAt:       createdAt,
		}
	}
	return rows
}

func TestListTransactions_NoResults(t *testing.T) {
	svc, deps := newTestService(t)

	deps.transactions.EXPECT().List(mock.Anything, mock.Anything).
		Return([]*sqlconfig.Transaction{}, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), "user-1", "", nil)

	assert.NoError(t, err)
	assert.Nil(t, txs)
	assert.Nil(t, nextCursor)
}

func TestListTransactions_SinglePage(t *testing.T) {
	svc, deps := newTestService(t)

	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	rows := makeStorageRows(2, now)
	object := "receipts/user-1/" + rows[0].ID.String()
	rows[0].ReceiptObject = &object

	deps.transactions.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *sqlconfig.TransactionFilter) bool {
		return f.UserID == "user-1" && f.Limit == defaultLimit && f.Offset == 0 && f.MaxCreationTime == nil && f.Type == nil
	})).Return(rows, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), "user-1", "", nil)

	assert.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.Nil(t, nextCursor)

	tx := txs[0]
	assert.Equal(t, rows[0].ID, tx.ID)
	assert.Equal(t, "expense", tx.Type)
	assert.Equal(t, "food", tx.Category)
	assert.True(t, rows[0].Amount.Equal(tx.Amount))
	assert.Equal(t, rows[0].Description, tx.Description)
	assert.Equal(t, object, tx.ReceiptObject)
	assert.Equal(t, "", txs[1].ReceiptObject)
}

func TestListTransactions_HasNextPage(t *testing.T) {
	svc, deps := newTestService(t)

	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	rows := makeStorageRows(defaultLimit+1, now)

	deps.transactions.EXPECT().List(mock.Anything, mock.Anything).Return(rows, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), "user-1", "", nil)

	assert.NoError(t, err)
	assert.Len(t, txs, defaultLimit, "truncated to default limit")

	require.NotNil(t, nextCursor)
	assert.Equal(t, defaultLimit, nextCursor.Position)
	assert.Equal(t, defaultLimit, nextCursor.Limit)
	assert.Equal(t, now, nextCursor.MaxCreationTime, "derived from first row")
}

func TestListTransactions_WithCursor(t *testing.T) {
	svc, deps := newTestService(t)

	cursorTime := time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC)
	rowTime := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	rows := makeStorageRows(3, rowTime)

	deps.transactions.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *sqlconfig.TransactionFilter) bool {
		return f.Limit == 2 &&
			f.Offset == 20 &&
			f.MaxCreationTime != nil &&
			f.MaxCreationTime.Equal(cursorTime)
	})).Return(rows, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), "user-1", "", &TransactionCursor{
		Position:        20,
		Limit:           2,
		MaxCreationTime: cursorTime,
	})

	assert.NoError(t, err)
	assert.Len(t, txs, 2)

	require.NotNil(t, nextCursor)
	assert.Equal(t, 22, nextCursor.Position)
	assert.Equal(t, 2, nextCursor.Limit)
	assert.Equal(t, cursorTime, nextCursor.MaxCreationTime, "echoed from cursor, not overridden by row data")
}

func TestListTransactions_OversizedLimitFallsBack(t *testing.T) {
	svc, deps := newTestService(t)

	deps.transactions.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *sqlconfig.TransactionFilter) bool {
		return f.Limit == defaultLimit
	})).Return(nil, nil)

	_, _, err := svc.ListTransactions(context.Background(), "user-1", "", &TransactionCursor{Limit: 5000})
	assert.NoError(t, err)
}

func TestListTransactions_StorageError(t *testing.T) {
	svc, deps := newTestService(t)

	deps.transactions.EXPECT().List(mock.Anything, mock.Anything).
		Return(nil, errors.New("database unavailable"))

	txs, nextCursor, err := svc.ListTransactions(context.Background(), "user-1", "", nil)

	assert.EqualError(t, err, "database unavailable")
	assert.Nil(t, txs)
	assert.Nil(t, nextCursor)
}

// -- GetBalance tests --

func TestGetBalance(t *testing.T) {
	svc, deps := newTestService(t)

	deps.balances.EXPECT().Find(mock.Anything, "user-1").Return(&sqlconfig.Balance{
		UserID:       "user-1",
		IncomeTotal:  decimal.RequireFromString("5000.00"),
		ExpenseTotal: decimal.RequireFromString("1250.75"),
	}, nil)

	balance, err := svc.GetBalance(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "5000.00", balance.Income.StringFixed(2))
	assert.Equal(t, "1250.75", balance.Expense.StringFixed(2))
	assert.Equal(t, "3749.25", balance.Net.StringFixed(2))
}

func TestGetBalance_NoRowIsZero(t *testing.T) {
	svc, deps := newTestService(t)
	deps.balances.EXPECT().Find(mock.Anything, "new-user").Return(nil, nil)

	balance, err := svc.GetBalance(context.Background(), "new-user")
	require.NoError(t, err)
	assert.True(t, balance.Net.IsZero())
}

// -- AttachReceipt tests --

func receiptObjectOf(userID string, txID uuid.UUID) interface{} {
	prefix := "receipts/" + userID + "/" + txID.String() + "/"
	return mock.MatchedBy(func(object string) bool {
		return strings.HasPrefix(object, prefix) && len(object) > len(prefix)
	})
}

func TestAttachReceipt_Success(t *testing.T) {
	svc, deps := newTestService(t)
	txID := uuid.Must(uuid.NewV4())
	data := []byte("%PDF-1.7")

	var uploaded string
	deps.uploader.On("Upload", mock.Anything, receiptObjectOf("user-1", txID), "application/pdf", data).
		Run(func(args mock.Arguments) { uploaded = args.String(1) }).
		Return(nil).Once()
	deps.operator.On("Process", mock.Anything, mock.MatchedBy(func(a *actions.AttachReceipt) bool {
		return a.TransactionID == txID && a.UserID == "user-1" && a.Object == uploaded
	})).Return(nil).Once()

	got, err := svc.AttachReceipt(context.Background(), "user-1", txID, "application/pdf", data)
	require.NoError(t, err)
	assert.Equal(t, uploaded, got)
	deps.uploader.AssertExpectations(t)
	deps.uploader.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAttachReceipt_EachUploadGetsItsOwnObject(t *testing.T) {
	svc, deps := newTestService(t)
	txID := uuid.Must(uuid.NewV4())

	deps.uploader.On("Upload", mock.Anything, receiptObjectOf("user-1", txID), "image/png", mock.Anything).Return(nil).Twice()
	deps.operator.On("Process", mock.Anything, mock.Anything).Return(nil).Twice()
	deps.uploader.On("Delete", mock.Anything, mock.Anything).Return(nil).Maybe()

	first, err := svc.AttachReceipt(context.Background(), "user-1", txID, "image/png", []byte("a"))
	require.NoError(t, err)
	second, err := svc.AttachReceipt(context.Background(), "user-1", txID, "image/png", []byte("b"))
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestAttachReceipt_ReplacingDeletesPreviousObject(t *testing.T) {
	svc, deps := newTestService(t)
	txID := uuid.Must(uuid.NewV4())
	previous := "receipts/user-1/" + txID.String() + "/old"

	deps.uploader.On("Upload", mock.Anything, receiptObjectOf("user-1", txID), "image/png", mock.Anything).Return(nil).Once()
	deps.operator.On("Process", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { args.Get(1).(*actions.AttachReceipt).Replaced = previous }).
		Return(nil).Once()
	deps.uploader.On("Delete", mock.Anything, previous).Return(nil).Once()

	got, err := svc.AttachReceipt(context.Background(), "user-1", txID, "image/png", []byte("new"))
	require.NoError(t, err)
	assert.NotEqual(t, previous, got)
	deps.uploader.AssertExpectations(t)
}

func TestAttachReceipt_FailedReattachKeepsPreviousObject(t *testing.T) {
	svc, deps := newTestService(t)
	txID := uuid.Must(uuid.NewV4())
	previous := "receipts/user-1/" + txID.String() + "/old"

	var uploaded string
	deps.uploader.On("Upload", mock.Anything, receiptObjectOf("user-1", txID), "image/png", mock.Anything).
		Run(func(args mock.Arguments) { uploaded = args.String(1) }).
		Return(nil).Once()
	deps.operator.On("Process", mock.Anything, mock.Anything).Return(errors.New("connection refused")).Once()
	deps.uploader.On("Delete", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := svc.AttachReceipt(context.Background(), "user-1", txID, "image/png", []byte("new"))
	require.Error(t, err)

	deps.uploader.AssertCalled(t, "Delete", mock.Anything, uploaded)
	deps.uploader.AssertNotCalled(t, "Delete", mock.Anything, previous)
}

func TestAttachReceipt_RecordingIgnoresCallerCancel(t *testing.T) {
	svc, deps := newTestService(t)
	txID := uuid.Must(uuid.NewV4())
	ctx, cancel := context.WithCancel(context.Background())

	deps.uploader.On("Upload", mock.Anything, mock.Anything, "image/png", mock.Anything).
		Run(func(args mock.Arguments) { cancel() }).
		Return(nil).Once()
	deps.operator.On("Process", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), mock.Anything).
		Return(nil).Once()

	_, err := svc.AttachReceipt(ctx, "user-1", txID, "image/png", []byte("x"))
	require.NoError(t, err)
	deps.uploader.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAttachReceipt_UnknownTransactionRemovesUpload(t *testing.T) {
	svc, deps := newTestService(t)
	txID := uuid.Must(uuid.NewV4())

	var uploaded string
	deps.uploader.On("Upload", mock.Anything, receiptObjectOf("user-1", txID), "image/png", mock.Anything).
		Run(func(args mock.Arguments) { uploaded = args.String(1) }).
		Return(nil).Once()
	deps.operator.On("Process", mock.Anything, mock.Anything).Return(actions.ErrTransactionNotFound).Once()
	deps.uploader.On("Delete", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := svc.AttachReceipt(context.Background(), "user-1", txID, "image/png", []byte{0x89, 'P', 'N', 'G'})
	assert.ErrorIs(t, err, ErrTransactionNotFound)
	deps.uploader.AssertCalled(t, "Delete", mock.Anything, uploaded)
}

func TestAttachReceipt_RejectedBeforeUpload(t *testing.T) {
	svc, deps := newTestService(t)

	_, err := svc.AttachReceipt(context.Background(), "user-1", uuid.Must(uuid.NewV4()), "text/plain", []byte("hi"))
	assert.ErrorIs(t, err, receipts.ErrUnsupportedContentType)
	deps.uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAttachReceipt_Disabled(t *testing.T) {
	svc, _ := newTestService(t)
	svc.receipts = nil

	_, err := svc.AttachReceipt(context.Background(), "user-1", uuid.Must(uuid.NewV4()), "image/png", []byte("x"))
	assert.ErrorIs(t, err, ErrReceiptsDisabled)
}

func TestListTransactions_TypeFilter(t *testing.T) {
	svc, deps := newTestService(t)

	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	rows := makeStorageRows(1, now)

	deps.transactions.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *sqlconfig.TransactionFilter) bool {
		return f.UserID == "user-1" && f.Type != nil && *f.Type == "expense"
	})).Return(rows, nil)

	txs, _, err := svc.ListTransactions(context.Background(), "user-1", "expense", nil)

	assert.NoError(t, err)
	assert.Len(t, txs, 1)
}
