package cmd

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/checkmarble/asset-lists/api"
	"github.com/checkmarble/asset-lists/infra"
	"github.com/checkmarble/asset-lists/repositories"
	"github.com/checkmarble/asset-lists/usecases"
	"github.com/checkmarble/asset-lists/utils"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
)

func splitOrigins(s string) []string {
	origins := []string{}
	for o := range strings.SplitSeq(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func RunServer(config CompiledConfig) error {
	// This is where we read the environment variables and set up the configuration for the application.
	apiConfig := api.Configuration{
		Env:                 utils.GetEnv("ENV", "development"),
		AppName:             "asset-lists",
		AppVersion:          config.Version,
		Port:                utils.GetRequiredEnv[string]("PORT"),
		AllowedOrigins:      splitOrigins(utils.GetEnv("ALLOWED_ORIGINS", "")),
		RequestLoggingLevel: utils.GetEnv("REQUEST_LOGGING_LEVEL", "all"),
		DefaultTimeout:      time.Duration(utils.GetEnv("DEFAULT_TIMEOUT_SECOND", 5)) * time.Second,
	}
	pgConfig := pgConfigFromEnv()
	serverConfig := ServerConfig{
		jwtSigningKey:      utils.GetRequiredEnv[string]("AUTHENTICATION_JWT_SIGNING_KEY"),
		loggingFormat:      utils.GetEnv("LOGGING_FORMAT", "text"),
		sentryDsn:          utils.GetEnv("SENTRY_DSN", ""),
		storeRetryAttempts: utils.GetEnv("STORE_RETRY_ATTEMPTS", repositories.DEFAULT_TRANSACTION_RETRY_ATTEMPTS),
	}

	logger := utils.NewLogger(serverConfig.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	if err := serverConfig.Validate(); err != nil {
		logger.ErrorContext(ctx, "invalid server configuration", "error", err.Error())
		return err
	}

	infra.SetupSentry(serverConfig.sentryDsn, apiConfig.Env, apiConfig.AppVersion)
	defer sentry.Flush(3 * time.Second)

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(), pgConfig.MaxPoolConnections)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	defer pool.Close()

	// insert-only client: the change notifications are worked by the worker process
	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{})
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	jwtRepository := repositories.NewJWTRepository(serverConfig.jwtSigningKey)
	repositories := repositories.NewRepositories(
		pool,
		repositories.WithRiverClient(riverClient),
		repositories.WithTransactionRetryCount(uint(serverConfig.storeRetryAttempts)),
	)

	uc := usecases.NewUsecases(repositories,
		usecases.WithAppName(apiConfig.AppName),
		usecases.WithApiVersion(apiConfig.AppVersion),
	)

	auth := utils.NewAuthentication(jwtRepository)
	router := api.InitRouterMiddlewares(ctx, apiConfig)
	server := api.NewServer(router, apiConfig, uc, auth)

	notify, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.InfoContext(ctx, "starting server", slog.String("port", apiConfig.Port),
			slog.String("version", apiConfig.AppVersion))
		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			utils.LogAndReportSentryError(ctx, errors.Wrap(err, "Error while serving the app"))
		}
		logger.InfoContext(ctx, "server returned")
	}()

	<-notify.Done()
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		utils.LogAndReportSentryError(
			ctx,
			errors.Wrap(err, "Error while shutting down the server"),
		)
		return err
	}

	return nil
}
