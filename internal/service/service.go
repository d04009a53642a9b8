package service

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
}

// NewService creates a new Service from the transaction service config.
func NewService(cfg TransactionServiceConfig) *Service {
	return &Service{
		Transaction: NewTransactionService(cfg),
	}
}
