package transaction

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/bytebank-server/internal/entry"
	"github.com/carson-networks/bytebank-server/internal/logging"
	"github.com/carson-networks/bytebank-server/internal/receipts"
	"github.com/carson-networks/bytebank-server/internal/service"
)

// UploadReceiptInput is the Huma input for attaching a receipt.
type UploadReceiptInput struct {
	ID          string `path:"id" format:"uuid" doc:"Transaction UUID"`
	ContentType string `header:"Content-Type" doc:"image/jpeg, image/png or application/pdf"`
	RawBody     []byte
}

// UploadReceiptResponse is the response body for attaching a receipt.
type UploadReceiptResponse struct {
	ReceiptObject string `json:"receiptObject" doc:"Stored receipt object"`
}

// UploadReceiptOutput is the Huma output for attaching a receipt.
type UploadReceiptOutput struct {
	Body UploadReceiptResponse
}

type receiptAttacher interface {
	AttachReceipt(ctx context.Context, userID string, transactionID uuid.UUID, contentType string, data []byte) (string, error)
}

// UploadReceiptHandler handles PUT /v1/transaction/{id}/receipt.
type UploadReceiptHandler struct {
	TransactionService receiptAttacher
	Sessions           entry.SessionProvider
}

// NewUploadReceiptHandler creates a new UploadReceiptHandler.
func NewUploadReceiptHandler(svc receiptAttacher, sessions entry.SessionProvider) *UploadReceiptHandler {
	return &UploadReceiptHandler{TransactionService: svc, Sessions: sessions}
}

// Register registers the receipt upload endpoint with the Huma API.
func (h *UploadReceiptHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:  "upload-receipt",
		Method:       http.MethodPut,
		Path:         "/v1/transaction/{id}/receipt",
		Summary:      "Attach receipt",
		Description:  "Stores a receipt file for one of the authenticated user's transactions.",
		Tags:         []string{"Transactions"},
		MaxBodyBytes: receipts.MaxReceiptSize,
	}, h.handle)
}

func (h *UploadReceiptHandler) handle(ctx context.Context, input *UploadReceiptInput) (*UploadReceiptOutput, error) {
	user := h.Sessions.CurrentUser(ctx)
	if user == nil || user.UserID == "" {
		return nil, huma.NewError(http.StatusUnauthorized, entry.ErrUnauthenticated.Message)
	}

	transactionID, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid transaction id", err)
	}

	logData := logging.GetLogData(ctx)
	if logData != nil {
		logData.AddData("receiptBytes", len(input.RawBody))
		defer logData.AddTiming("attachReceiptMs")()
	}

	object, err := h.TransactionService.AttachReceipt(ctx, user.UserID, transactionID, input.ContentType, input.RawBody)
	switch {
	case errors.Is(err, service.ErrTransactionNotFound):
		return nil, huma.NewError(http.StatusNotFound, "transaction not found")
	case errors.Is(err, receipts.ErrUnsupportedContentType):
		return nil, huma.NewError(http.StatusUnsupportedMediaType, "receipt must be a JPEG, PNG or PDF file")
	case errors.Is(err, receipts.ErrEmptyReceipt):
		return nil, huma.NewError(http.StatusBadRequest, "receipt is empty")
	case errors.Is(err, receipts.ErrReceiptTooLarge):
		return nil, huma.NewError(http.StatusRequestEntityTooLarge, "receipt is too large")
	case errors.Is(err, service.ErrReceiptsDisabled):
		return nil, huma.NewError(http.StatusNotImplemented, "receipt storage is not configured")
	case errors.Is(err, service.ErrUnavailable):
		return nil, huma.NewError(http.StatusServiceUnavailable, "storage temporarily unavailable")
	case err != nil:
		return nil, huma.NewError(http.StatusInternalServerError, "failed to attach receipt", err)
	}

	return &UploadReceiptOutput{Body: UploadReceiptResponse{ReceiptObject: object}}, nil
}
