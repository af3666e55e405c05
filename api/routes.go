package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/account"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/budget"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/category"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/notification"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/status"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/subscription"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/transaction"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
}

func (r *Rest) Serve() {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("finance-tracker", "1.0.0"))
	r.register(api)

	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           logging.Middleware(r.Logger, mux),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	r.Logger.Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}

func (r *Rest) register(api huma.API) {
	transaction.NewCreateTransactionHandler(r.Service.Transaction, r.Service.Notification, r.Service.Account).Register(api)
	transaction.NewGetTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewUpdateTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewDeleteTransactionHandler(r.Service.Transaction).Register(api)
	transaction.NewImportTransactionsHandler(r.Service.Transaction).Register(api)
	transaction.NewListTransactionsHandler(r.Service.Transaction).Register(api)

	account.NewCreateAccountHandler(r.Service.Account).Register(api)
	account.NewGetAccountHandler(r.Service.Account).Register(api)
	account.NewListAccountsHandler(r.Service.Account).Register(api)
	account.NewReconcileAccountHandler(r.Service.Account).Register(api)

	category.NewCreateCategoryHandler(r.Service.Category).Register(api)
	category.NewListCategoriesHandler(r.Service.Category).Register(api)
	category.NewDeleteCategoryHandler(r.Service.Category).Register(api)

	subscription.NewCreateSubscriptionHandler(r.Service.Subscription).Register(api)
	subscription.NewListSubscriptionsHandler(r.Service.Subscription).Register(api)
	subscription.NewUpdateSubscriptionHandler(r.Service.Subscription).Register(api)
	subscription.NewDeleteSubscriptionHandler(r.Service.Subscription).Register(api)

	budget.NewCreateBudgetHandler(r.Service.Budget).Register(api)
	budget.NewListBudgetsHandler(r.Service.Budget).Register(api)
	budget.NewBudgetUsageHandler(r.Service.Budget).Register(api)
	budget.NewDeleteBudgetHandler(r.Service.Budget).Register(api)

	notification.NewCreateNotificationHandler(r.Service.Notification).Register(api)
	notification.NewListNotificationsHandler(r.Service.Notification).Register(api)
	notification.NewUpdateNotificationHandler(r.Service.Notification).Register(api)
	notification.NewDeleteNotificationHandler(r.Service.Notification).Register(api)
}
