// Package server owns the process lifecycle: boot the shared infrastructure,
// start the background machinery (queue workers, scheduler, websocket hub,
// optional gRPC health endpoint), serve HTTP, and shut everything down
// cleanly on SIGINT/SIGTERM.
package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/thanhvudev/furnimart/app/jobs"
	"github.com/thanhvudev/furnimart/app/listeners"
	"github.com/thanhvudev/furnimart/app/models"
	"github.com/thanhvudev/furnimart/app/routes"
	"github.com/thanhvudev/furnimart/config"
	"github.com/thanhvudev/furnimart/pkg/cache"
	"github.com/thanhvudev/furnimart/pkg/database"
	grpcserver "github.com/thanhvudev/furnimart/pkg/grpc"
	"github.com/thanhvudev/furnimart/pkg/logger"
	"github.com/thanhvudev/furnimart/pkg/metrics"
	"github.com/thanhvudev/furnimart/pkg/notification"
	"github.com/thanhvudev/furnimart/pkg/orm"
	"github.com/thanhvudev/furnimart/pkg/queue"
	"github.com/thanhvudev/furnimart/pkg/schedule"
	"github.com/thanhvudev/furnimart/pkg/storage"
)

var pendingOrdersGauge = metrics.NewGauge("furnimart", "pending_orders",
	"Orders currently awaiting approval.", nil)

// closeLogSink flushes the optional Mongo log sink on shutdown.
var closeLogSink func()

// Boot loads config and connects the shared infrastructure. Redis being down
// is survivable (sessions and cache degrade); the database is not.
func Boot() error {
	if err := config.Load(); err != nil {
		return err
	}
	if err := database.Connect(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		logger.Warn("redis unavailable, sessions and cache disabled", "error", err)
	}
	storage.Connect()
	notification.SetSlackWebhook(config.Get("SLACK_WEBHOOK_URL", ""))

	if uri := config.Get("LOG_MONGO_URI", ""); uri != "" {
		closeSink, err := logger.EnableMongoSink(uri,
			config.Get("LOG_MONGO_DB", "furnimart"),
			config.Get("LOG_MONGO_COLLECTION", "logs"))
		if err != nil {
			logger.Warn("mongo log sink unavailable", "error", err)
		} else {
			closeLogSink = closeSink
		}
	}
	return nil
}

// Start serves handler until the process receives SIGINT or SIGTERM.
func Start(handler http.Handler) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Background machinery.
	go routes.OrderFeed.Run()
	listeners.Register(routes.OrderFeed)

	jobs.RegisterAll()
	if cache.RDB != nil {
		queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	}
	workers, _ := strconv.Atoi(config.Get("QUEUE_WORKERS", "4"))
	if workers < 1 {
		workers = 1
	}
	queue.StartWorkers(ctx, workers)

	RegisterScheduledTasks()
	schedule.Start(ctx)

	// Optional gRPC health endpoint for orchestration probes.
	if port := config.Get("GRPC_PORT", ""); port != "" {
		srv, _, err := grpcserver.Start(port)
		if err != nil {
			logger.Error("grpc start failed", "error", err)
		} else {
			defer grpcserver.Stop(srv)
		}
	}

	addr := ":" + config.AppPort()
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", addr, "env", config.AppEnv())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if closeLogSink != nil {
		defer closeLogSink()
	}
	return httpServer.Shutdown(shutdownCtx)
}

// RegisterScheduledTasks sets up the recurring jobs: the pending-order gauge
// feeding the alerting dashboards. Exported so `furnimart schedule:run` can
// run the scheduler in its own process.
func RegisterScheduledTasks() {
	schedule.Every(5).Minutes().Name("pending-orders-gauge").WithoutOverlapping().Run(func() {
		n, err := orm.DB().Model(&models.Order{}).Where("status = ?", models.StatusPending).Count()
		if err != nil {
			logger.Warn("pending order snapshot failed", "error", err)
			return
		}
		pendingOrdersGauge.WithLabelValues().Set(float64(n))
	})
}
