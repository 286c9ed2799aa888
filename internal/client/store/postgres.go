package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"crmsimples/internal/client/models"
	"crmsimples/pkg/requestcontext"
	"crmsimples/pkg/sentinel"
)

const clientColumns = "id, name, email, phone, cpf, status, created_at, updated_at"

// Postgres persists clients in PostgreSQL. The schema carries UNIQUE
// constraints on cpf and email, so concurrent writers that both pass the
// service existence checks still cannot commit duplicates.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed client store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (s *Postgres) Insert(ctx context.Context, client *models.Client) (*models.Client, error) {
	now := requestcontext.Now(ctx)
	stored := *client
	stored.ID = uuid.New()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	query := `
		INSERT INTO clients (` + clientColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		stored.ID, stored.Name, stored.Email, nullString(stored.Phone),
		stored.CPF, string(stored.Status), stored.CreatedAt, stored.UpdatedAt,
	)
	if err != nil {
		return nil, mapPqError("insert client", err)
	}
	return &stored, nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	client, err := scanClient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find client by id: %w", err)
	}
	return client, nil
}

func (s *Postgres) FindAll(ctx context.Context) ([]*models.Client, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+clientColumns+` FROM clients`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	return collectClients(rows)
}

func (s *Postgres) FindFiltered(ctx context.Context, status, name string) ([]*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE 1=1`
	args := []any{}

	if strings.TrimSpace(status) != "" {
		args = append(args, strings.TrimSpace(status))
		query += fmt.Sprintf(" AND LOWER(status) = LOWER($%d)", len(args))
	}
	if strings.TrimSpace(name) != "" {
		args = append(args, strings.TrimSpace(name))
		query += fmt.Sprintf(" AND name ILIKE '%%' || $%d || '%%'", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filter clients: %w", err)
	}
	defer rows.Close()
	return collectClients(rows)
}

func (s *Postgres) ExistsByCPF(ctx context.Context, cpf string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM clients WHERE cpf = $1)`, cpf).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check cpf exists: %w", err)
	}
	return exists, nil
}

func (s *Postgres) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM clients WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

func (s *Postgres) ExistsByEmailExcluding(ctx context.Context, email string, id uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM clients WHERE email = $1 AND id <> $2)`, email, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists excluding id: %w", err)
	}
	return exists, nil
}

func (s *Postgres) Save(ctx context.Context, client *models.Client) (*models.Client, error) {
	query := `
		UPDATE clients
		SET name = $2, email = $3, phone = $4, status = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := s.db.ExecContext(ctx, query,
		client.ID, client.Name, client.Email, nullString(client.Phone),
		string(client.Status), client.UpdatedAt,
	)
	if err != nil {
		return nil, mapPqError("save client", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("save client: %w", err)
	}
	if affected == 0 {
		return nil, sentinel.ErrNotFound
	}
	stored := *client
	return &stored, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (*models.Client, error) {
	var (
		client models.Client
		phone  sql.NullString
		status string
	)
	err := row.Scan(&client.ID, &client.Name, &client.Email, &phone,
		&client.CPF, &status, &client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		return nil, err
	}
	client.Phone = phone.String
	client.Status = models.Status(status)
	return &client, nil
}

func collectClients(rows *sql.Rows) ([]*models.Client, error) {
	clients := make([]*models.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return clients, nil
}

// mapPqError translates unique-constraint violations into sentinel.ErrConflict
// so the service can report which uniqueness rule fired without depending on
// the driver.
func mapPqError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%s (%s): %w", op, pqErr.Constraint, sentinel.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
