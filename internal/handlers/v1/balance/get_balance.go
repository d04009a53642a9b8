package balance

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/bytebank-server/internal/entry"
	"github.com/carson-networks/bytebank-server/internal/service"
)

// GetBalanceResponse carries a user's running totals.
type GetBalanceResponse struct {
	Income  string `json:"income" doc:"Sum of recorded income"`
	Expense string `json:"expense" doc:"Sum of recorded expenses"`
	Net     string `json:"net" doc:"Income minus expenses"`
}

type GetBalanceOutput struct {
	Body GetBalanceResponse
}

type balanceGetter interface {
	GetBalance(ctx context.Context, userID string) (service.Balance, error)
}

// GetBalanceHandler handles GET /v1/balance.
type GetBalanceHandler struct {
	TransactionService balanceGetter
	Sessions           entry.SessionProvider
}

func NewGetBalanceHandler(svc balanceGetter, sessions entry.SessionProvider) *GetBalanceHandler {
	return &GetBalanceHandler{TransactionService: svc, Sessions: sessions}
}

// Register registers the balance endpoint with the Huma API.
func (h *GetBalanceHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-balance",
		Method:      http.MethodGet,
		Path:        "/v1/balance",
		Summary:     "Get balance",
		Description: "Returns the authenticated user's income, expense and net totals.",
		Tags:        []string{"Balance"},
	}, h.handle)
}

func (h *GetBalanceHandler) handle(ctx context.Context, input *struct{}) (*GetBalanceOutput, error) {
	user := h.Sessions.CurrentUser(ctx)
	if user == nil || user.UserID == "" {
		return nil, huma.NewError(http.StatusUnauthorized, entry.ErrUnauthenticated.Message)
	}

	balance, err := h.TransactionService.GetBalance(ctx, user.UserID)
	if errors.Is(err, service.ErrUnavailable) {
		return nil, huma.NewError(http.StatusServiceUnavailable, "storage temporarily unavailable")
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to load balance", err)
	}

	return &GetBalanceOutput{Body: GetBalanceResponse{
		Income:  balance.Income.StringFixed(2),
		Expense: balance.Expense.StringFixed(2),
		Net:     balance.Net.StringFixed(2),
	}}, nil
}
