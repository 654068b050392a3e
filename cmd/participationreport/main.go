package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/hostelmess/polls/internal/adapters/repository/postgres"
	"github.com/hostelmess/polls/internal/core/services"
	"github.com/hostelmess/polls/internal/logging"
)

// Prints the cross-poll participation summary the admin dashboard shows,
// as JSON on stdout. Meant for cron-driven reporting to the mess office.
func main() {
	logging.BootstrapLogger()

	if err := godotenv.Load(); err != nil {
		logging.Log.Info("No .env file found")
	}

	var dbHost, dbPort, dbUser, dbPass, dbName string

	flag.StringVar(&dbHost, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	flag.StringVar(&dbPort, "db-port", os.Getenv("POSTGRES_PORT"), "Database port")
	flag.StringVar(&dbUser, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	flag.StringVar(&dbPass, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	flag.StringVar(&dbName, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	flag.Parse()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		logging.Log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logging.Log.Fatal(err)
	}

	pollRepo := postgres.NewPollRepository(db)
	ballotRepo := postgres.NewBallotRepository(db)
	summaryService := services.NewSummaryService(pollRepo, ballotRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	summary, err := summaryService.Summarize(ctx)
	if err != nil {
		logging.Log.Fatalf("Error summarizing participation: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(summary); err != nil {
		logging.Log.Fatal(err)
	}
}
