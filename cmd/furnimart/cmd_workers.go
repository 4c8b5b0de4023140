package main

import (
	"context"
	"fmt"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thanhvudev/furnimart/app/jobs"
	"github.com/thanhvudev/furnimart/config"
	"github.com/thanhvudev/furnimart/internal/server"
	"github.com/thanhvudev/furnimart/pkg/cache"
	"github.com/thanhvudev/furnimart/pkg/logger"
	"github.com/thanhvudev/furnimart/pkg/queue"
	"github.com/thanhvudev/furnimart/pkg/schedule"
)

var queueWorkersFlag int

// furnimart queue:work, process queued jobs in a dedicated process.
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := config.Load(); err != nil {
			return err
		}
		if err := cache.Connect(); err != nil {
			logger.Warn("redis unavailable, using in-memory queue", "error", err)
		}

		jobs.RegisterAll()
		if cache.RDB != nil {
			queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		}

		workers := queueWorkersFlag
		if workers < 1 {
			workers, _ = strconv.Atoi(config.Get("QUEUE_WORKERS", "4"))
		}
		if workers < 1 {
			workers = 1
		}

		fmt.Printf("Queue worker started (%d workers). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\nQueue worker stopped.")
		return nil
	},
}

// furnimart schedule:run, run the task scheduler in a dedicated process.
var scheduleRunCmd = &cobra.Command{
	Use:   "schedule:run",
	Short: "Start the task scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := bootDB(); err != nil {
			return err
		}
		server.RegisterScheduledTasks()

		tasks := schedule.List()
		if len(tasks) == 0 {
			fmt.Println("No scheduled tasks registered.")
		} else {
			fmt.Println("Registered scheduled tasks:")
			for _, t := range tasks {
				fmt.Println("  •", t)
			}
		}

		fmt.Println("Scheduler started. Press Ctrl+C to stop.")
		schedule.Start(ctx)

		<-ctx.Done()
		fmt.Println("\nScheduler stopped.")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 0, "Number of concurrent workers (defaults to QUEUE_WORKERS)")
}
