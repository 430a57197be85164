package card

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

var ErrStoreUnavailable = errors.New("card store unavailable")

type Repository interface {
	FindDue(ctx context.Context) ([]Card, error)
}

// Connector opens a fresh connection for a single repository call.
type Connector func(ctx context.Context) (*pgx.Conn, error)

type RepositoryImpl struct {
	connect    Connector
	table      string
	orderByDue bool
}

func NewRepository(connect Connector, table string, orderByDue bool) *RepositoryImpl {
	return &RepositoryImpl{connect: connect, table: table, orderByDue: orderByDue}
}

func (r *RepositoryImpl) query() string {
	query := `SELECT name, due_date FROM ` + tableIdentifier(r.table) + ` WHERE due_date IS NOT NULL`
	if r.orderByDue {
		query += ` ORDER BY due_date`
	}
	return query
}

// FindDue returns every card with a due date. The connection is opened for this call only
// and closed before returning.
func (r *RepositoryImpl) FindDue(ctx context.Context) ([]Card, error) {
	conn, err := r.connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	defer func() {
		if closeErr := conn.Close(ctx); closeErr != nil {
			log.Errorf("failed to close database connection: %v", closeErr)
		}
	}()

	rows, err := conn.Query(ctx, r.query())
	if err != nil {
		return nil, fmt.Errorf("%w: could not query cards: %w", ErrStoreUnavailable, err)
	}

	cards, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Card, error) {
		var name sql.NullString
		var dueDate time.Time
		if err := row.Scan(&name, &dueDate); err != nil {
			return Card{}, err
		}
		return Card{Name: name.String, DueDate: dueDate}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: could not scan cards: %w", ErrStoreUnavailable, err)
	}

	log.Debugf("found %d cards with a due date", len(cards))
	return cards, nil
}

// tableIdentifier quotes a possibly schema-qualified table name.
func tableIdentifier(table string) string {
	return pgx.Identifier(strings.Split(table, ".")).Sanitize()
}
