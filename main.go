package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	awsgo_config "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"parking_booking/internal/api"
	"parking_booking/internal/api/handler"
	"parking_booking/internal/catalog"
	"parking_booking/internal/config"
	"parking_booking/internal/iot"
	"parking_booking/internal/queue"
	"parking_booking/internal/repository"
	"parking_booking/internal/repository/memory"
	"parking_booking/internal/repository/postgresql"
	"parking_booking/internal/repository/redisstore"
	"parking_booking/internal/service"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()
	log.Println("Configuration loaded.")

	// 2. Location catalog
	var locationRepo repository.LocationRepository
	var db *sql.DB
	switch cfg.CatalogSource {
	case config.CatalogPostgres:
		var err error
		db, err = postgresql.NewDB(cfg)
		if err != nil {
			log.Fatalf("Could not connect to database: %v", err)
		}
		defer closeDB(db)
		log.Println("Connected to database, serving catalog from postgres.")
		locationRepo = postgresql.NewPgLocationRepository(db)
	default:
		locationRepo = memory.NewLocationRepository(catalog.Seed())
		log.Println("Serving the built-in location catalog.")
	}

	// 3. Booking flow store
	var flowRepo repository.BookingFlowRepository
	var expiring []repository.ExpiringRepository
	if cfg.RedisAddr != "" {
		rdb, err := redisstore.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatalf("Could not connect to redis: %v", err)
		}
		defer rdb.Close()
		flowRepo = redisstore.NewBookingFlowRepository(rdb, cfg.FlowTTL)
		log.Printf("Booking flows stored in redis at %s (ttl %s).", cfg.RedisAddr, cfg.FlowTTL)
	} else {
		flowRepo = memory.NewBookingFlowRepository()
		log.Println("Booking flows kept in memory.")
	}
	if r, ok := flowRepo.(repository.ExpiringRepository); ok {
		expiring = append(expiring, r)
	}

	// 4. Booking event publisher
	var publisher service.BookingPublisher
	if cfg.AMQPURL != "" {
		p, err := queue.NewPublisher(cfg.AMQPURL)
		if err != nil {
			log.Printf("WARNING: RabbitMQ unavailable, booking.confirmed will not be published: %v", err)
		} else {
			defer p.Close()
			publisher = p
		}
	} else {
		log.Println("WARNING: AMQP_URL not set. booking.confirmed will not be published.")
	}

	// init websocket manager
	webSocketManager := handler.NewWebSocketManager()
	go webSocketManager.Start()
	defer webSocketManager.Stop()
	log.Println("WebSocket manager started.")

	// 5. Services
	parkingService := service.NewParkingService(locationRepo)
	flowService := service.NewBookingFlowService(flowRepo, locationRepo)
	paymentRepo := memory.NewPaymentRepository()
	if r, ok := paymentRepo.(repository.ExpiringRepository); ok {
		expiring = append(expiring, r)
	}
	paymentService := service.NewPaymentService(paymentRepo, locationRepo,
		cfg.PaymentDelay, webSocketManager, publisher)
	statusBoard := service.NewStatusBoard(cfg.StatusSlotCount, webSocketManager)
	if db != nil {
		statusBoard.UseEventLog(postgresql.NewPgDeviceEventLogRepository(db))
	}

	var statusSource service.StatusSource = statusBoard
	if cfg.StatusURL != "" {
		statusSource = service.NewHTTPStatusSource(cfg.StatusURL)
		log.Printf("Voice commands read slot status from %s", cfg.StatusURL)
	}
	voiceService := service.NewVoiceService(statusSource)

	driftCtx, cancelDrift := context.WithTimeout(context.Background(), 10*time.Second)
	if _, err := parkingService.CheckCatalogDrift(driftCtx); err != nil {
		log.Printf("Catalog drift check failed: %v", err)
	}
	cancelDrift()

	// 6. SQS consumer feeding the status board
	var wg sync.WaitGroup
	consumerCtx, cancelConsumer := context.WithCancel(context.Background())

	go startCleanupJob(consumerCtx, expiring, cfg.FlowTTL)

	if cfg.SQSStatusQueueURL == "" {
		log.Println("WARNING: SQS_STATUS_QUEUE_URL not set. The status board only takes HTTP updates.")
	} else {
		awsSDKCfg, err := awsgo_config.LoadDefaultConfig(context.TODO(), awsgo_config.WithRegion(cfg.AWSRegion))
		if err != nil {
			log.Fatalf("Could not load AWS SDK config: %v", err)
		}
		log.Println("AWS SDK config loaded for region:", cfg.AWSRegion)

		sqsConsumer := iot.NewSQSConsumer(sqs.NewFromConfig(awsSDKCfg), cfg.SQSStatusQueueURL, statusBoard)
		wg.Add(1)
		go func() {
			defer wg.Done()
			sqsConsumer.Start(consumerCtx)
			log.Println("SQS consumer stopped.")
		}()
	}

	// 7. HTTP router
	router := api.SetupRouter(api.Services{
		Parking:     parkingService,
		BookingFlow: flowService,
		Payment:     paymentService,
		Status:      statusBoard,
		Voice:       voiceService,
		WebSocket:   webSocketManager,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancelConsumer()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shut down: %v", err)
	}

	if cfg.SQSStatusQueueURL != "" {
		log.Println("Waiting for SQS consumer to stop (up to 5 seconds)...")
		c := make(chan struct{})
		go func() {
			defer close(c)
			wg.Wait()
		}()
		select {
		case <-c:
			log.Println("SQS consumer stopped cleanly.")
		case <-time.After(5 * time.Second):
			log.Println("SQS consumer did not stop in time.")
		}
	}

	log.Println("Server stopped.")
}

// startCleanupJob sweeps the in-memory stores once a minute, dropping
// records idle for longer than retention.
func startCleanupJob(ctx context.Context, repos []repository.ExpiringRepository, retention time.Duration) {
	if len(repos) == 0 {
		return
	}
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		cutoff := time.Now().Add(-retention)
		for _, repo := range repos {
			sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
			count, err := repo.CleanupExpired(sweepCtx, cutoff)
			cancel()
			if err != nil {
				log.Printf("Error cleaning up expired records: %v", err)
			} else if count > 0 {
				log.Printf("Cleaned up %d expired records", count)
			}
		}
	}
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}
