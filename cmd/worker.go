package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rauf-alluviam/auto-rack-sub000/config"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/cache"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/database"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/repository"
	"github.com/rauf-alluviam/auto-rack-sub000/internal/service"

	"github.com/go-co-op/gocron/v2"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start the background worker",
	Long:  `Start the background worker that keeps the seller dashboard cache warm`,
	RunE:  runWorker,
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	repo := repository.NewRepository(db)

	svc, err := service.NewService(service.ServiceConfig{
		Repository:       repo,
		Cache:            redisClient,
		Logger:           log,
		DashboardTTL:     time.Duration(cfg.Dashboard.CacheTTLSeconds) * time.Second,
		RecentOrderCount: cfg.Dashboard.RecentOrderCount,
	})
	if err != nil {
		return err
	}

	interval := time.Duration(cfg.Dashboard.RefreshSeconds) * time.Second
	if interval <= 0 {
		interval = time.Minute
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := svc.RefreshDashboard(ctx); err != nil {
				log.WithError(err).Error("Failed to refresh dashboard cache")
			}
		}),
	)
	if err != nil {
		return err
	}

	log.WithField("interval", interval.String()).Info("Starting dashboard refresh worker")
	scheduler.Start()

	// Warm the cache immediately instead of waiting a full interval
	if err := svc.RefreshDashboard(ctx); err != nil {
		log.WithError(err).Warn("Initial dashboard refresh failed")
	}

	<-ctx.Done()

	log.Info("Worker shutting down gracefully")
	return scheduler.Shutdown()
}
