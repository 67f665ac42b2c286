package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/contasapp/banco_backend/internal/apperrors"
	"github.com/contasapp/banco_backend/internal/core/domain"
	portsrepo "github.com/contasapp/banco_backend/internal/core/ports/repositories"
	"github.com/contasapp/banco_backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxClientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository creates a new repository for client data.
func NewClientRepository(pool *pgxpool.Pool) portsrepo.ClientRepositoryFacade {
	return &PgxClientRepository{pool: pool}
}

// Ensure PgxClientRepository implements portsrepo.ClientRepositoryFacade
var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

func toModelClient(d domain.Client) models.Client {
	return models.Client{
		ClientID:     d.ClientID,
		CPF:          d.CPF,
		Name:         d.Name,
		Email:        d.Email,
		BirthDate:    d.BirthDate,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}

func toDomainClient(m models.Client) domain.Client {
	return domain.Client{
		ClientID:     m.ClientID,
		CPF:          m.CPF,
		Name:         m.Name,
		Email:        m.Email,
		BirthDate:    m.BirthDate,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
	}
}

// SaveClient inserts a new client. CPF and email are guarded by UNIQUE
// constraints; violations surface as apperrors.ErrDuplicate naming the field.
func (r *PgxClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	modelClient := toModelClient(client)

	query := `
		INSERT INTO clients (client_id, cpf, name, email, birth_date, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.pool.Exec(ctx, query,
		modelClient.ClientID,
		modelClient.CPF,
		modelClient.Name,
		modelClient.Email,
		modelClient.BirthDate,
		modelClient.PasswordHash,
		modelClient.CreatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			field := "cpf"
			if strings.Contains(pgErr.ConstraintName, "email") {
				field = "email"
			}
			return fmt.Errorf("%w: client with this %s already exists", apperrors.ErrDuplicate, field)
		}
		return fmt.Errorf("failed to save client %s: %w", modelClient.ClientID, err)
	}
	return nil
}

// FindClientByID retrieves a client by its ID.
func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `
		SELECT client_id, cpf, name, email, birth_date, password_hash, created_at
		FROM clients
		WHERE client_id = $1;
	`
	return r.queryClient(ctx, query, clientID)
}

// FindClientByCPF retrieves a client by CPF, the login identifier.
func (r *PgxClientRepository) FindClientByCPF(ctx context.Context, cpf string) (*domain.Client, error) {
	query := `
		SELECT client_id, cpf, name, email, birth_date, password_hash, created_at
		FROM clients
		WHERE cpf = $1;
	`
	return r.queryClient(ctx, query, cpf)
}

func (r *PgxClientRepository) queryClient(ctx context.Context, query string, arg string) (*domain.Client, error) {
	var modelClient models.Client

	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&modelClient.ClientID,
		&modelClient.CPF,
		&modelClient.Name,
		&modelClient.Email,
		&modelClient.BirthDate,
		&modelClient.PasswordHash,
		&modelClient.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}

	domainClient := toDomainClient(modelClient)
	return &domainClient, nil
}
