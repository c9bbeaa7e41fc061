package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/peterw/leadreach/internal/infra/database"
	"github.com/peterw/leadreach/internal/infra/http/handlers"
	"github.com/peterw/leadreach/internal/infra/http/middleware"
	"github.com/peterw/leadreach/internal/infra/integration/apollo"
	"github.com/peterw/leadreach/internal/infra/integration/hunter"
	"github.com/peterw/leadreach/internal/infra/integration/supaauth"
	"github.com/peterw/leadreach/internal/infra/mail"
	"github.com/peterw/leadreach/internal/infra/queue"
	"github.com/peterw/leadreach/internal/infra/ratelimit"
	"github.com/peterw/leadreach/internal/usecase"
)

const (
	bulkSendLimit  = 10
	bulkSendWindow = time.Hour
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	eventRepo := database.NewEventRepository(db)
	credsRepo := database.NewCredentialsRepository(db)

	// 2. Rate limiter: Redis-backed when REDIS_URL is set, in-memory
	// fixed window otherwise.
	var limiter ratelimit.Limiter
	var redisClient *redis.Client
	if url := os.Getenv("REDIS_URL"); url != "" {
		redisClient, err = ratelimit.ConnectRedis(context.Background(), url)
		if err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		limiter = ratelimit.NewRedisLimiter(redisClient, bulkSendLimit, bulkSendWindow)
	} else {
		limiter = ratelimit.NewFixedWindowLimiter(bulkSendLimit, bulkSendWindow)
	}

	// 3. Integration clients
	hunterClient := hunter.NewClient()
	apolloClient := apollo.NewClient()
	authClient := supaauth.NewClient(os.Getenv("SUPABASE_URL"), os.Getenv("SUPABASE_ANON_KEY"))

	// 4. Optional enrichment pipeline
	var producer queue.EnrichmentPublisherInterface
	var rabbitConn *amqp.Connection
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		rabbitMQ, err := queue.NewRabbitMQ(url)
		if err != nil {
			log.Fatalf("rabbitmq connection failed: %v", err)
		}
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		rabbitConn = rabbitMQ.Conn
		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		worker := queue.NewWorker(rabbitMQ.Ch, apolloClient, leadRepo)
		go worker.Start(queue.QueueName)
	}

	// 5. Dispatch use case
	envCreds := usecase.EnvCredentials{
		SendFrom:     os.Getenv("SEND_EMAIL_FROM"),
		AppPassword:  os.Getenv("APP_PASSWORD"),
		SendgridKey:  os.Getenv("SENDGRID_API_KEY"),
		SendgridFrom: os.Getenv("SENDGRID_FROM_EMAIL"),
		HunterKey:    os.Getenv("HUNTER_API_KEY"),
		ApolloKey:    os.Getenv("APOLLO_API_KEY"),
	}

	delaySeconds, err := strconv.Atoi(os.Getenv("DELAY_SECONDS"))
	if err != nil || delaySeconds <= 0 {
		delaySeconds = 60
	}

	appURL := os.Getenv("PUBLIC_APP_URL")
	if appURL == "" {
		appURL = "http://localhost:3000"
	}

	senderFactory := func(creds *usecase.ResolvedCredentials) (usecase.EmailSender, error) {
		return mail.NewSender(creds.Provider, creds.SendFrom, creds.AppPassword, creds.SendgridKey)
	}

	dispatchUC := usecase.NewBulkDispatchUseCase(
		leadRepo,
		eventRepo,
		hunterClient,
		senderFactory,
		usecase.NewFixedDelayThrottler(time.Duration(delaySeconds)*time.Second),
		producer,
		envCreds,
		appURL,
	)

	// 6. Handlers
	bulkSendHandler := handlers.NewBulkSendHandler(dispatchUC, limiter)
	verifyHandler := handlers.NewVerifyHandler(hunterClient, envCreds.HunterKey)
	enrichHandler := handlers.NewEnrichHandler(apolloClient, envCreds.ApolloKey)
	findLeadsHandler := handlers.NewFindLeadsHandler(apolloClient, envCreds.ApolloKey)
	trackHandler := handlers.NewTrackHandler(eventRepo)
	credsHandler := handlers.NewCredentialsHandler(authClient, credsRepo)
	healthHandler := handlers.NewHealthHandler(db, rabbitConn, redisClient)

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"X-API-Key", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(os.Getenv("API_SECRET_KEY"), os.Getenv("APP_ENV")))
		r.Post("/api/bulk-send", bulkSendHandler.Handle)
		r.Post("/api/verify-email", verifyHandler.Handle)
		r.Post("/api/enrich-lead", enrichHandler.Handle)
		r.Post("/api/find-leads", findLeadsHandler.Handle)
	})

	r.Get("/api/track", trackHandler.Handle)
	r.Get("/api/user-credentials", credsHandler.Handle)
	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("leadreach API listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}

func allowedOrigins() []string {
	raw := os.Getenv("ALLOWED_ORIGINS")
	if raw == "" {
		return []string{"*"}
	}

	origins := strings.Split(raw, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}
