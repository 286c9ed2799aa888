// Package service implements the client registry: every business rule around
// client persistence lives here. Handlers validate request shape, stores
// persist; this package decides.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"crmsimples/internal/client/metrics"
	"crmsimples/internal/client/models"
	"crmsimples/pkg/cpf"
	dErrors "crmsimples/pkg/domainerrors"
	"crmsimples/pkg/requestcontext"
	"crmsimples/pkg/sentinel"
)

// ClientStore is the persistence collaborator. Implementations must enforce
// CPF and email uniqueness at the storage layer: the existence checks below
// are check-then-act and two concurrent requests can both pass them, so the
// store's own constraints are the consistency backstop.
type ClientStore interface {
	Insert(ctx context.Context, client *models.Client) (*models.Client, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	FindAll(ctx context.Context) ([]*models.Client, error)
	FindFiltered(ctx context.Context, status, name string) ([]*models.Client, error)
	ExistsByCPF(ctx context.Context, cpf string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByEmailExcluding(ctx context.Context, email string, id uuid.UUID) (bool, error)
	Save(ctx context.Context, client *models.Client) (*models.Client, error)
}

// UpdateParams is a partial update: nil fields mean "no change", never
// "clear field".
type UpdateParams struct {
	Name   *string
	Email  *string
	Phone  *string
	CPF    *string
	Status *string
}

// Service orchestrates client record management.
type Service struct {
	store   ClientStore
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Service.
type Option func(s *Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the client module metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service backed by the given store.
func New(store ClientStore, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates and persists a new client record.
//
// Check order is fixed for deterministic error reporting: CPF format, CPF
// uniqueness, email uniqueness. The CPF is stored normalized (digits only)
// and the status defaults to PROSPECT when blank.
func (s *Service) Create(ctx context.Context, client *models.Client) (*models.Client, error) {
	start := time.Now()

	if !cpf.Valid(client.CPF) {
		return nil, dErrors.New(dErrors.CodeInvalidCPF, "CPF inválido")
	}
	client.CPF = cpf.Normalize(client.CPF)

	taken, err := s.store.ExistsByCPF(ctx, client.CPF)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check cpf uniqueness")
	}
	if taken {
		return nil, dErrors.New(dErrors.CodeConflict, "CPF já cadastrado")
	}

	taken, err = s.store.ExistsByEmail(ctx, client.Email)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check email uniqueness")
	}
	if taken {
		return nil, dErrors.New(dErrors.CodeConflict, "Email já cadastrado")
	}

	client.Status = models.DefaultStatus(string(client.Status))

	created, err := s.store.Insert(ctx, client)
	if err != nil {
		// The storage constraint caught a race the existence checks missed.
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "CPF ou email já cadastrado")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist client")
	}

	s.logger.InfoContext(ctx, "client created",
		"request_id", requestcontext.RequestID(ctx),
		"client_id", created.ID,
		"status", created.Status,
	)
	if s.metrics != nil {
		s.metrics.IncrementClientsCreated()
		s.metrics.ObserveCreate(start)
	}
	return created, nil
}

// GetByID returns the client with the given id. Absence is a normal outcome
// reported as CodeNotFound.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	client, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Cliente não encontrado")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load client")
	}
	return client, nil
}

// List returns every record, including soft-deleted (INACTIVE) ones. Order
// is store-defined.
func (s *Service) List(ctx context.Context) ([]*models.Client, error) {
	start := time.Now()
	clients, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list clients")
	}
	if s.metrics != nil {
		s.metrics.ObserveList(start)
	}
	return clients, nil
}

// ListFiltered restricts the listing to an exact case-insensitive status
// match and/or a case-insensitive name substring match. Blank filters are
// ignored; with neither, it behaves like List.
func (s *Service) ListFiltered(ctx context.Context, status, name string) ([]*models.Client, error) {
	start := time.Now()
	clients, err := s.store.FindFiltered(ctx, status, name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to filter clients")
	}
	if s.metrics != nil {
		s.metrics.ObserveList(start)
	}
	return clients, nil
}

// Update applies a partial update to an existing client.
//
// The CPF can never change after creation: a patch carrying a CPF whose
// normalized value differs from the stored one is rejected, even when the new
// value is itself checksum-valid. A patch carrying the same CPF in any
// formatting is a silent no-op on that field. Email changes are checked for
// uniqueness excluding the record itself.
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch UpdateParams) (*models.Client, error) {
	start := time.Now()

	client, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Cliente não encontrado")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load client")
	}

	if patch.CPF != nil && cpf.Normalize(*patch.CPF) != client.CPF {
		return nil, dErrors.New(dErrors.CodeImmutable, "CPF não pode ser alterado")
	}

	if patch.Email != nil && *patch.Email != client.Email {
		taken, err := s.store.ExistsByEmailExcluding(ctx, *patch.Email, id)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check email uniqueness")
		}
		if taken {
			return nil, dErrors.New(dErrors.CodeConflict, "Email já cadastrado para outro cliente")
		}
		client.Email = *patch.Email
	}

	if patch.Name != nil {
		client.Name = *patch.Name
	}
	if patch.Phone != nil {
		client.Phone = *patch.Phone
	}
	if patch.Status != nil {
		client.Status = models.Status(*patch.Status)
	}

	client.UpdatedAt = requestcontext.Now(ctx)

	updated, err := s.store.Save(ctx, client)
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "Email já cadastrado para outro cliente")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save client")
	}

	s.logger.InfoContext(ctx, "client updated",
		"request_id", requestcontext.RequestID(ctx),
		"client_id", updated.ID,
	)
	if s.metrics != nil {
		s.metrics.ObserveUpdate(start)
	}
	return updated, nil
}

// SoftDelete marks the client INACTIVE and refreshes its UpdatedAt. The
// record stays in the store. Deleting an already-INACTIVE record succeeds and
// simply re-stamps UpdatedAt.
func (s *Service) SoftDelete(ctx context.Context, id uuid.UUID) error {
	client, err := s.store.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "Cliente não encontrado")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load client")
	}

	client.Status = models.StatusInactive
	client.UpdatedAt = requestcontext.Now(ctx)

	if _, err := s.store.Save(ctx, client); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save client")
	}

	s.logger.InfoContext(ctx, "client soft-deleted",
		"request_id", requestcontext.RequestID(ctx),
		"client_id", client.ID,
	)
	if s.metrics != nil {
		s.metrics.IncrementClientsSoftDeleted()
	}
	return nil
}
