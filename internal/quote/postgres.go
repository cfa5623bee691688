package quote

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/hardik88t/puredry/internal/domain"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
)

//go:embed migrations/*.sql
var postgresMigrations embed.FS

type Credentials struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (c *Credentials) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, sslMode)
}

// PostgresSubmitter records quote requests in the quote_requests table.
type PostgresSubmitter struct {
	db *sqlx.DB
}

func NewPostgresSubmitter(cred *Credentials) (*PostgresSubmitter, error) {
	db, err := sqlx.Open("postgres", cred.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	return &PostgresSubmitter{db: db}, nil
}

func (s *PostgresSubmitter) RunMigrations() error {
	src, err := iofs.New(postgresMigrations, "migrations")
	if err != nil {
		return fmt.Errorf("could not open migration source: %w", err)
	}

	driver, err := postgres.WithInstance(s.db.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

func (s *PostgresSubmitter) Close() error {
	return s.db.Close()
}

func (s *PostgresSubmitter) Submit(ctx context.Context, req *domain.QuoteRequest) (string, error) {
	customer, err := json.Marshal(req.CustomerInfo)
	if err != nil {
		return "", fmt.Errorf("failed to marshal customer info: %w", err)
	}
	requirements, err := json.Marshal(req.Requirements)
	if err != nil {
		return "", fmt.Errorf("failed to marshal requirements: %w", err)
	}
	items, err := json.Marshal(req.CartItems)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cart items: %w", err)
	}

	query := `
		INSERT INTO quote_requests (
			id, status, customer_email, customer_info, requirements, cart_items,
			estimated_total, currency, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = s.db.ExecContext(ctx, query,
		req.ID,
		string(req.Status),
		req.CustomerInfo.Email,
		customer,
		requirements,
		items,
		decimal.NewFromFloat(req.EstimatedTotal),
		req.Currency,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert quote request: %w", err)
	}
	return req.ID, nil
}

type quoteRow struct {
	ID             string          `db:"id"`
	Status         string          `db:"status"`
	CustomerInfo   []byte          `db:"customer_info"`
	Requirements   []byte          `db:"requirements"`
	CartItems      []byte          `db:"cart_items"`
	EstimatedTotal decimal.Decimal `db:"estimated_total"`
	Currency       string          `db:"currency"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

// List returns stored requests oldest first.
func (s *PostgresSubmitter) List(ctx context.Context) ([]domain.QuoteRequest, error) {
	query := `
		SELECT id, status, customer_info, requirements, cart_items,
		       estimated_total, currency, created_at, updated_at
		FROM quote_requests
		ORDER BY created_at, id
	`

	var rows []quoteRow
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to query quote requests: %w", err)
	}

	quotes := make([]domain.QuoteRequest, 0, len(rows))
	for _, row := range rows {
		q := domain.QuoteRequest{
			ID:             row.ID,
			Status:         domain.QuoteStatus(row.Status),
			EstimatedTotal: row.EstimatedTotal.InexactFloat64(),
			Currency:       row.Currency,
			CreatedAt:      row.CreatedAt.UTC(),
			UpdatedAt:      row.UpdatedAt.UTC(),
		}
		if err := json.Unmarshal(row.CustomerInfo, &q.CustomerInfo); err != nil {
			return nil, fmt.Errorf("failed to decode customer info for %s: %w", row.ID, err)
		}
		if err := json.Unmarshal(row.Requirements, &q.Requirements); err != nil {
			return nil, fmt.Errorf("failed to decode requirements for %s: %w", row.ID, err)
		}
		if err := json.Unmarshal(row.CartItems, &q.CartItems); err != nil {
			return nil, fmt.Errorf("failed to decode cart items for %s: %w", row.ID, err)
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// UpdateStatus moves a stored request along the quote lifecycle.
func (s *PostgresSubmitter) UpdateStatus(ctx context.Context, id string, to domain.QuoteStatus) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var current string
	err = tx.GetContext(ctx, &current, `SELECT status FROM quote_requests WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrQuoteNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load quote status: %w", err)
	}

	from := domain.QuoteStatus(current)
	if !domain.CanTransitionTo(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE quote_requests SET status = $1, updated_at = $2 WHERE id = $3`,
		string(to), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update quote status: %w", err)
	}
	return tx.Commit()
}
