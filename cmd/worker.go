package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/checkmarble/asset-lists/infra"
	"github.com/checkmarble/asset-lists/jobs"
	"github.com/checkmarble/asset-lists/models"
	"github.com/checkmarble/asset-lists/repositories"
	"github.com/checkmarble/asset-lists/usecases"
	"github.com/checkmarble/asset-lists/utils"

	"github.com/cockroachdb/errors"
	"github.com/getsentry/sentry-go"
	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivertype"
)

func RunTaskQueue(config CompiledConfig) error {
	pgConfig := pgConfigFromEnv()
	workerConfig := WorkerConfig{
		appName:             "asset-lists",
		env:                 utils.GetEnv("ENV", "development"),
		loggingFormat:       utils.GetEnv("LOGGING_FORMAT", "text"),
		sentryDsn:           utils.GetEnv("SENTRY_DSN", ""),
		maxWorkers:          utils.GetEnv("LIST_CHANGE_MAX_WORKERS", 10),
		cloudRunProbePort:   utils.GetEnv("CLOUD_RUN_PROBE_PORT", ""),
		storeRetryAttempts:  utils.GetEnv("STORE_RETRY_ATTEMPTS", repositories.DEFAULT_TRANSACTION_RETRY_ATTEMPTS),
		fetchPollIntervalMs: utils.GetEnv("FETCH_POLL_INTERVAL_MS", 100),
	}

	logger := utils.NewLogger(workerConfig.loggingFormat)
	ctx := utils.StoreLoggerInContext(context.Background(), logger)

	if err := workerConfig.Validate(); err != nil {
		logger.ErrorContext(ctx, "invalid worker configuration", "error", err.Error())
		return err
	}

	infra.SetupSentry(workerConfig.sentryDsn, workerConfig.env, config.Version)
	defer sentry.Flush(3 * time.Second)

	pool, err := infra.NewPostgresConnectionPool(ctx, pgConfig.GetConnectionString(), pgConfig.MaxPoolConnections)
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	defer pool.Close()

	workers := river.NewWorkers()
	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		FetchPollInterval: time.Duration(workerConfig.fetchPollIntervalMs) * time.Millisecond,
		Queues: map[string]river.QueueConfig{
			models.LIST_CHANGE_QUEUE_NAME: {MaxWorkers: workerConfig.maxWorkers},
		},

		// Must be larger than the time it takes to process a job. Increase it if we want to use longer-lived jobs.
		RescueStuckJobsAfter: 1 * time.Minute,
		Middleware: []rivertype.Middleware{
			jobs.NewSentryMiddleware(),
			jobs.NewLoggerMiddleware(logger),
			jobs.NewRecoveredMiddleware(),
		},
		Workers: workers,
	})
	if err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}

	repositories := repositories.NewRepositories(
		pool,
		repositories.WithRiverClient(riverClient),
		repositories.WithTransactionRetryCount(uint(workerConfig.storeRetryAttempts)),
	)
	uc := usecases.NewUsecases(repositories,
		usecases.WithAppName(workerConfig.appName),
		usecases.WithApiVersion(config.Version),
	)
	river.AddWorker(workers, uc.NewListChangeWorker())

	if err := riverClient.Start(ctx); err != nil {
		utils.LogAndReportSentryError(ctx, err)
		return err
	}
	logger.InfoContext(ctx, "task queue started", "queue", models.LIST_CHANGE_QUEUE_NAME)

	// run a non-blocking basic http server to respond to Cloud Run http probes, to respect the Cloud Run contract
	if workerConfig.cloudRunProbePort != "" {
		go func() {
			http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("OK"))
			})
			if err := http.ListenAndServe(":"+workerConfig.cloudRunProbePort, nil); err != nil {
				utils.LogAndReportSentryError(ctx, err)
			}
		}()
	}

	// Teardown sequence
	sigintOrTerm := make(chan os.Signal, 1)
	signal.Notify(sigintOrTerm, syscall.SIGINT, syscall.SIGTERM)

	go cleanStop(ctx, sigintOrTerm, riverClient)

	<-riverClient.Stopped()
	logger.InfoContext(ctx, "River client stopped")

	return nil
}

// cleanStop waits for SIGINT/SIGTERM and tries a soft stop that lets running jobs finish. A second
// signal, or the soft stop timeout, turns it into a hard stop that cancels the jobs contexts.
func cleanStop(ctx context.Context, sigintOrTerm chan os.Signal, riverClient *river.Client[pgx.Tx]) {
	logger := utils.LoggerFromContext(ctx)
	<-sigintOrTerm
	logger.InfoContext(ctx, "Received SIGINT/SIGTERM; initiating soft stop (try to wait for jobs to finish)")

	softStopCtx, softStopCtxCancel := context.WithTimeout(ctx, 5*time.Second)
	defer softStopCtxCancel()

	go func() {
		select {
		case <-sigintOrTerm:
			logger.InfoContext(ctx, "Received SIGINT/SIGTERM again; initiating hard stop (cancel everything)")
			softStopCtxCancel()
		case <-softStopCtx.Done():
			logger.InfoContext(ctx, "Soft stop timeout; initiating hard stop (cancel everything)")
		}
	}()

	err := riverClient.Stop(softStopCtx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, context.Canceled) {
		logger.ErrorContext(ctx, "Soft stop failed", "error", err)
		panic(err)
	}
	if err == nil {
		logger.InfoContext(ctx, "Soft stop succeeded")
		return
	}

	hardStopCtx, hardStopCtxCancel := context.WithTimeout(ctx, 10*time.Second)
	defer hardStopCtxCancel()

	// a job blocking despite its context being cancelled would make the hard stop time out too
	err = riverClient.StopAndCancel(hardStopCtx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) {
		logger.InfoContext(ctx, "Hard stop timeout; ignoring stop procedure and exiting unsafely")
	} else if err != nil {
		panic(err)
	}
}
