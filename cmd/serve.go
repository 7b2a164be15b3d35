package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "gig-market.com/gig-market/internal/configs"
	httpapi "gig-market.com/gig-market/internal/http"
	"gig-market.com/gig-market/internal/notify"
	repository "gig-market.com/gig-market/internal/repositories"
	"gig-market.com/gig-market/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the gig marketplace HTTP API and the notification dispatcher",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			log.Println(".env file not found, using environment variables")
		}

		cfg := config.Load()

		database := config.NewDatabase(cfg.DatabaseDSN)

		userRepo := repository.NewUserRepository(database)
		gigRepo := repository.NewGigRepository(database)
		bidRepo := repository.NewBidRepository(database)

		var broker notify.Broker
		if cfg.RedisAddr != "" {
			redisClient := config.NewRedisClient(cfg.RedisAddr)
			defer redisClient.Close()
			broker = notify.NewRedisBroker(redisClient)
		} else {
			log.Println("REDIS_ADDR not set, using in-process notification broker")
			broker = notify.NewMemoryBroker()
		}

		dispatcher := notify.NewDispatcher(broker, cfg.NotifyQueueSize)

		authService := services.NewAuthService(userRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
		gigService := services.NewGigService(gigRepo, bidRepo)
		bidService := services.NewBidService(bidRepo, gigRepo)
		hireService := services.NewHireService(gigRepo, bidRepo, userRepo, dispatcher)

		e := echo.New()

		handler := httpapi.NewHandler(
			authService,
			gigService,
			bidService,
			hireService,
			time.Duration(cfg.TokenTTLHours)*time.Hour,
			cfg.SecureCookie,
		)
		httpapi.Register(e, handler, authService, cfg.RateLimit)

		go func() {
			log.Printf("HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				log.Printf("server stopped: %v", err)
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		ctx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(ctx)
		dispatcher.Shutdown(ctx)

		log.Println("HTTP server and notification dispatcher shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
