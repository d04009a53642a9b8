package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/bytebank-server/internal/entry"
	"github.com/carson-networks/bytebank-server/internal/handlers/v1/balance"
	"github.com/carson-networks/bytebank-server/internal/handlers/v1/category"
	"github.com/carson-networks/bytebank-server/internal/handlers/v1/entries"
	"github.com/carson-networks/bytebank-server/internal/handlers/v1/status"
	"github.com/carson-networks/bytebank-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/bytebank-server/internal/logging"
	"github.com/carson-networks/bytebank-server/internal/service"
	"github.com/carson-networks/bytebank-server/internal/session"
)

const shutdownTimeout = 15 * time.Second

type Rest struct {
	Logger       *logrus.Logger
	Port         string
	Service      *service.Service
	Sessions     *session.Store
	StatusChecks map[string]status.Check
}

// Handler builds the router with every endpoint registered.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.StatusChecks)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("ByteBank API", "1.0.0"))
	api.UseMiddleware(logging.Middleware(r.Logger))
	api.UseMiddleware(session.Middleware(api, r.Sessions, r.Logger))

	sessions := session.ContextProvider{}
	txService := r.Service.Transaction

	for _, cfg := range []entry.KindConfig{entry.ExpenseConfig, entry.IncomeConfig} {
		entries.NewCreateEntryHandler(cfg, sessions, txService, r.Logger).Register(api)
	}
	category.NewListCategoriesHandler().Register(api)
	balance.NewGetBalanceHandler(txService, sessions).Register(api)
	transaction.NewListTransactionsHandler(txService, sessions).Register(api)
	transaction.NewUploadReceiptHandler(txService, sessions).Register(api)

	return mux
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
