package test_utils

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cardcal/cardcal/internal/config"
	"github.com/cardcal/cardcal/internal/database"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const (
	dbName     = "cardcal"
	dbUser     = "test_cardcal"
	dbPassword = "test_cardcal"
)

func preparePostgresContainer() (*postgres.PostgresContainer, error) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(
		ctx, "postgres:18.1-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("failed to start container: %s", err)
		return nil, err
	}
	return pgContainer, nil
}

// TestWithDB starts a Postgres instance, applies all migrations and returns the
// connection settings together with a cleanup function terminating the container.
func TestWithDB() (config.Database, func()) {
	ctx := context.Background()

	container, err := preparePostgresContainer()
	if err != nil {
		log.Printf("Failed to start postgres container: %v", err)
		os.Exit(1)
	}

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "5432/tcp")

	log.Infof("Postgres container started at %s:%d", host, port.Int())

	cfg := config.Database{
		Host:  host,
		Port:  port.Int(),
		User:  dbUser,
		Pass:  dbPassword,
		Name:  dbName,
		Table: "card",
	}

	err = database.Migrate(cfg)
	if err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	return cfg, func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			log.Errorf("failed to terminate container: %v", err)
		}
	}
}

// ResetCards replaces the content of the card table with the given rows.
// A nil name or due date is stored as NULL.
func ResetCards(ctx context.Context, cfg config.Database, rows ...CardRow) error {
	conn, err := database.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close(ctx)

	if _, err := conn.Exec(ctx, "TRUNCATE TABLE card"); err != nil {
		return fmt.Errorf("failed to truncate card table: %w", err)
	}

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue("INSERT INTO card (name, due_date) VALUES ($1, $2)", row.Name, row.DueDate)
	}
	return conn.SendBatch(ctx, batch).Close()
}

type CardRow struct {
	Name    *string
	DueDate *time.Time
}
