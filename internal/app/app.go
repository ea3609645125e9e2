package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/backend-labs/checkout/internal/dal/cartclient"
	"github.com/corray333/backend-labs/checkout/internal/dal/customerclient"
	"github.com/corray333/backend-labs/checkout/internal/dal/postgres"
	"github.com/corray333/backend-labs/checkout/internal/dal/rabbitmq"
	orderrepo "github.com/corray333/backend-labs/checkout/internal/dal/repositories/order/postgres"
	tokenrepo "github.com/corray333/backend-labs/checkout/internal/dal/repositories/token/postgres"
	"github.com/corray333/backend-labs/checkout/internal/otel"
	"github.com/corray333/backend-labs/checkout/internal/service/services/ordersvc"
	"github.com/corray333/backend-labs/checkout/internal/service/services/paymentsvc"
	"github.com/corray333/backend-labs/checkout/internal/service/services/vaultsvc"
	httptransport "github.com/corray333/backend-labs/checkout/internal/transport/http"
	"github.com/corray333/backend-labs/checkout/internal/worker/notifier"
	"github.com/corray333/backend-labs/checkout/pkg/cache"
	"github.com/corray333/backend-labs/checkout/pkg/cardcrypto"
	"github.com/spf13/viper"
)

// App represents the application.
type App struct {
	orderSvc       *ordersvc.OrderService
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	notifier       *notifier.Worker
	otelShutdown   func(ctx context.Context) error
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelShutdown := otel.MustInitOtel()

	postgresClient := postgres.MustNewClient()
	rabbitClient := rabbitmq.MustNewClient()

	notifierWorker := notifier.NewWorker(rabbitClient)

	encryptor := cardcrypto.MustNewEncryptor(os.Getenv("CHECKOUT_ENCRYPTION_KEY"))

	vaultSvc := vaultsvc.MustNewVaultService(
		vaultsvc.WithTokenRepository(tokenrepo.NewTokenRepository(postgresClient)),
		vaultsvc.WithEncryptor(encryptor),
	)

	paymentSvc := paymentsvc.MustNewPaymentService(
		paymentsvc.WithVault(vaultSvc),
		paymentsvc.WithNotifier(notifierWorker),
	)

	redisCache := cache.NewRedisCache(viper.GetString("redis.addr"), "checkout-svc")

	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithOrderRepository(orderrepo.NewOrderRepository(postgresClient)),
		ordersvc.WithCartGateway(cartclient.NewClient()),
		ordersvc.WithCustomerDirectory(customerclient.NewClient(customerclient.WithCache(redisCache))),
		ordersvc.WithAuthorizer(paymentSvc),
		ordersvc.WithNotifier(notifierWorker),
	)

	transport := httptransport.NewHTTPTransport(orderSvc)
	transport.RegisterRoutes()

	return &App{
		orderSvc:       orderSvc,
		transport:      transport,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		notifier:       notifierWorker,
		otelShutdown:   otelShutdown,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.notifier.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorker()

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelShutdown(ctx); err != nil {
		slog.Error("Tracer shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
