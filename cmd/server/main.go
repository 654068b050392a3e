package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/hostelmess/polls/internal/adapters/bus/pgbus"
	"github.com/hostelmess/polls/internal/adapters/handler/http"
	"github.com/hostelmess/polls/internal/adapters/identity"
	"github.com/hostelmess/polls/internal/adapters/repository/postgres"
	"github.com/hostelmess/polls/internal/core/services"
	"github.com/hostelmess/polls/internal/logging"
)

func main() {
	logging.BootstrapLogger()

	if err := godotenv.Load(); err != nil {
		logging.Log.Info("No .env file found")
	}

	connStr := dbConnString()
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		logging.Log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logging.Log.Fatal(err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logging.Log.Warn("JWT_SECRET not set")
	}

	pollRepo := postgres.NewPollRepository(db)
	ballotRepo := postgres.NewBallotRepository(db)
	bus := pgbus.New(db, connStr)
	provider := identity.NewJWTProvider([]byte(jwtSecret))

	pollService := services.NewPollService(pollRepo, ballotRepo, bus)
	summaryService := services.NewSummaryService(pollRepo, ballotRepo)

	pollHandler := http.NewPollHandler(pollService)
	voteHandler := http.NewVoteHandler(pollService)
	summaryHandler := http.NewSummaryHandler(summaryService)
	handler := http.NewHandler(pollHandler, voteHandler, summaryHandler, provider)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Surface change traffic in the server log; portal sessions hold
	// their own subscriptions.
	if err := bus.Subscribe(ctx, func(pollID uuid.UUID) {
		logging.Log.Debugf("poll %s changed", pollID)
	}); err != nil {
		logging.Log.Fatal(err)
	}

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}
	server := &stdhttp.Server{Addr: addr, Handler: handler}

	go func() {
		logging.Log.Infof("listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logging.Log.Fatal(err)
		}
	}()

	<-ctx.Done()
	logging.Log.Info("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Log.Fatal(err)
	}
}

func dbConnString() string {
	dbName := os.Getenv("POSTGRES_DB")
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbName)
}
