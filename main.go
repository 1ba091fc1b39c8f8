package main

import (
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"portfolio-backend/api"
	"portfolio-backend/database"
	"portfolio-backend/models"
	"portfolio-backend/services"
)

func main() {
	log.Info().Msg("Initializing app...")

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("no .env file loaded, using existing environment variables")
	}

	connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", ""),
		getEnv("DB_NAME", "portfolio"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_SSLMODE", "disable"),
	)

	gormLogger := logger.New(
		stdlog.New(os.Stdout, "\r\n", stdlog.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// Route reads through the replica when one is configured; writes and
	// transactions stay pinned to the primary.
	if replicaDSN := os.Getenv("DB_REPLICA_DSN"); replicaDSN != "" {
		err := db.Use(dbresolver.Register(dbresolver.Config{
			Replicas:          []gorm.Dialector{postgres.Open(replicaDSN)},
			TraceResolverMode: true,
		}))
		if err != nil {
			log.Fatal().Err(err).Msg("Error registering database replica")
		}
	}

	if strings.EqualFold(os.Getenv("GENERATE_MODELS"), "true") {
		log.Info().Msg("Generating models and query helpers...")
		if err := models.GenerateModels(db); err != nil {
			log.Fatal().Err(err).Msg("Model generation failed")
		}
		return
	}

	if err := models.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Error running database migration")
	}

	currentDB := database.New(db)

	var email api.EmailSender
	if emailService, err := services.NewEmailServiceFromEnv(); err != nil {
		log.Warn().Err(err).Msg("Contact email disabled")
	} else {
		email = emailService
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB, email)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Error().Err(fatalErr).Msg("Closing server")

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

// getEnv returns the value of the environment variable key or a fallback value.
func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
