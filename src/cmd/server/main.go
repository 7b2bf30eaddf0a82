package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"portalnoticias/src/helper/env"
	"portalnoticias/src/infra/kafka"
	"portalnoticias/src/infra/postgres"
	"portalnoticias/src/infra/redis"
	"portalnoticias/src/repositories"
	"portalnoticias/src/server"
	"portalnoticias/src/services/dashboard"
	"portalnoticias/src/services/events"
	"portalnoticias/src/services/interaction"
	"portalnoticias/src/services/moderation"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

func main() {
	// Configurar logger
	log.SetOutput(os.Stdout)
	log.Println("Starting API server with Uber Fx...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newSQLClient,
			newRedisClient,
			newKafkaClient,
			newEventPublisher,
			newClienteRepository,
			newCategoriaRepository,
			newNoticiaRepository,
			newInteracaoRepository,
			newEventoRepository,
			newDashboardQueryRepository,
			newCachedDashboardRepository,
			newModerationService,
			newInteractionService,
			newDashboardService,
			newServer,
		),

		// Invocations
		fx.Invoke(registerServerHooks),
	)

	// Start the application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Wait for app to exit gracefully
	<-app.Done()
}

func newLogger() *slog.Logger {
	logLevel := env.GetString("LOG_LEVEL", "info")
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// newSQLClient configures and returns a pgxpool connection pool
func newSQLClient() (*pgxpool.Pool, error) {
	dbHost := env.MustGetString("DB_HOST")
	dbPort := env.GetString("DB_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 25)

	return postgres.NewPostgresClient(dbHost, dbPort, dbname, dbUser, dbPassword, maxConnections)
}

// newRedisClient é opcional: sem REDIS_HOSTS o dashboard roda sem cache.
func newRedisClient() *redis.RedisClient {
	redisHosts := env.GetString("REDIS_HOSTS", "")
	if redisHosts == "" {
		return nil
	}

	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 50)
	redisDefaultTTLSeconds := env.GetInt("REDIS_DEFAULT_TTL_SECONDS", 120)
	redisDefaultTTL := time.Duration(redisDefaultTTLSeconds) * time.Second

	return redis.NewRedisClient(redisHosts, redisPoolSize, redisDefaultTTL)
}

// newKafkaClient é opcional: sem KAFKA_BROKERS a API sobe sem eventos,
// só com o estado persistido no banco.
func newKafkaClient() (*kafka.KafkaClient, error) {
	brokers := env.GetString("KAFKA_BROKERS", "")
	if brokers == "" {
		return nil, nil
	}

	groupID := env.GetString("KAFKA_API_GROUP_ID", "portal-noticias-api")

	return kafka.NewKafkaClient(brokers, groupID)
}

func newEventPublisher(logger *slog.Logger, kafkaClient *kafka.KafkaClient) *events.Publisher {
	topic := env.GetString("KAFKA_MODERACAO_EVENTOS_TOPIC", "portal.moderacao.eventos")
	return events.NewPublisher(logger, kafkaClient, topic)
}

func newClienteRepository(pool *pgxpool.Pool) *repositories.ClienteRepository {
	return repositories.NewClienteRepository(pool)
}

func newCategoriaRepository(pool *pgxpool.Pool) *repositories.CategoriaRepository {
	return repositories.NewCategoriaRepository(pool)
}

func newNoticiaRepository(pool *pgxpool.Pool) *repositories.NoticiaRepository {
	return repositories.NewNoticiaRepository(pool)
}

func newInteracaoRepository(pool *pgxpool.Pool) *repositories.InteracaoRepository {
	return repositories.NewInteracaoRepository(pool)
}

func newEventoRepository(pool *pgxpool.Pool) *repositories.EventoRepository {
	return repositories.NewEventoRepository(pool)
}

func newDashboardQueryRepository(pool *pgxpool.Pool) *repositories.DashboardQueryRepository {
	return repositories.NewDashboardQueryRepository(pool)
}

func newCachedDashboardRepository(
	dashboardQueryRepository *repositories.DashboardQueryRepository,
	redisClient *redis.RedisClient,
) *repositories.CachedDashboardRepository {
	return repositories.NewCachedDashboardRepository(dashboardQueryRepository, redisClient)
}

func newModerationService(
	noticiaRepository *repositories.NoticiaRepository,
	categoriaRepository *repositories.CategoriaRepository,
	publisher *events.Publisher,
) *moderation.ModerationService {
	return moderation.NewModerationService(noticiaRepository, categoriaRepository, publisher)
}

func newInteractionService(
	interacaoRepository *repositories.InteracaoRepository,
	publisher *events.Publisher,
) *interaction.InteractionService {
	return interaction.NewInteractionService(interacaoRepository, publisher)
}

func newDashboardService(
	cachedDashboardRepository *repositories.CachedDashboardRepository,
	eventoRepository *repositories.EventoRepository,
) *dashboard.DashboardService {
	return dashboard.NewDashboardService(cachedDashboardRepository, eventoRepository)
}

func newServer(
	logger *slog.Logger,
	moderationService *moderation.ModerationService,
	interactionService *interaction.InteractionService,
	dashboardService *dashboard.DashboardService,
	clienteRepository *repositories.ClienteRepository,
) *server.Server {

	port := 8888 // default value
	if portStr := os.Getenv("SERVER_ADDR"); portStr != "" {
		if val, err := strconv.Atoi(portStr); err == nil {
			port = val
		}
	}

	server := server.NewServer(logger, port, moderationService, interactionService, dashboardService, clienteRepository)

	return server
}

// registerServerHooks registers lifecycle hooks for the HTTP server
func registerServerHooks(lc fx.Lifecycle, srv *server.Server, kafkaClient *kafka.KafkaClient) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Start server in a separate goroutine
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Create timeout context for graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			log.Println("Shutting down server...")
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server forced to shutdown: %v", err)
				return err
			}

			if kafkaClient != nil {
				if err := kafkaClient.Close(); err != nil {
					log.Printf("Failed to close Kafka client: %v", err)
				}
			}

			log.Println("Server exited gracefully")
			return nil
		},
	})
}
