package receipts

import (
	"context"
	"errors"
	"fmt"
	"mime"

	"github.com/gofrs/uuid/v5"
)

const MaxReceiptSize = 5 << 20

var (
	ErrUnsupportedContentType = errors.New("receipts: unsupported content type")
	ErrEmptyReceipt           = errors.New("receipts: empty receipt")
	ErrReceiptTooLarge        = errors.New("receipts: receipt too large")
)

var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"application/pdf": true,
}

// Uploader stores receipt files.
type Uploader interface {
	Upload(ctx context.Context, object string, contentType string, data []byte) error
	Delete(ctx context.Context, object string) error
}

// ObjectName is where one uploaded receipt of a user's transaction is
// stored. Every upload gets its own uploadID so a new upload never
// overwrites the receipt the row currently points at.
func ObjectName(userID string, transactionID, uploadID uuid.UUID) string {
	return fmt.Sprintf("receipts/%s/%s/%s", userID, transactionID, uploadID)
}

// CheckUpload validates a receipt before upload and returns the bare media
// type of contentType.
func CheckUpload(contentType string, size int) (string, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !allowedContentTypes[mediaType] {
		return "", ErrUnsupportedContentType
	}
	if size == 0 {
		return "", ErrEmptyReceipt
	}
	if size > MaxReceiptSize {
		return "", ErrReceiptTooLarge
	}
	return mediaType, nil
}
