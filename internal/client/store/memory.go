// Package store provides ClientStore implementations. The in-memory store
// backs unit tests and local development; the Postgres store is the
// production backend. Both enforce CPF and email uniqueness at the storage
// layer as the backstop against check-then-act races in the service.
package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"crmsimples/internal/client/models"
	"crmsimples/pkg/requestcontext"
	"crmsimples/pkg/sentinel"
)

// InMemory is a mutex-guarded ClientStore. Uniqueness indexes mirror the
// UNIQUE constraints of the Postgres schema.
type InMemory struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]*models.Client
	byCPF   map[string]uuid.UUID
	byEmail map[string]uuid.UUID
}

// NewInMemory constructs an empty in-memory client store.
func NewInMemory() *InMemory {
	return &InMemory{
		clients: make(map[uuid.UUID]*models.Client),
		byCPF:   make(map[string]uuid.UUID),
		byEmail: make(map[string]uuid.UUID),
	}
}

// Insert persists a new client, assigning its ID and timestamps.
func (s *InMemory) Insert(ctx context.Context, client *models.Client) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byCPF[client.CPF]; taken {
		return nil, fmt.Errorf("cpf %s: %w", client.CPF, sentinel.ErrConflict)
	}
	if _, taken := s.byEmail[client.Email]; taken {
		return nil, fmt.Errorf("email %s: %w", client.Email, sentinel.ErrConflict)
	}

	now := requestcontext.Now(ctx)
	stored := *client
	stored.ID = uuid.New()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	s.clients[stored.ID] = &stored
	s.byCPF[stored.CPF] = stored.ID
	s.byEmail[stored.Email] = stored.ID

	return copyClient(&stored), nil
}

// FindByID returns the client with the given id, or sentinel.ErrNotFound.
func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	client, ok := s.clients[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copyClient(client), nil
}

// FindAll returns every record, including INACTIVE ones. Order is undefined.
func (s *InMemory) FindAll(_ context.Context) ([]*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clients := make([]*models.Client, 0, len(s.clients))
	for _, client := range s.clients {
		clients = append(clients, copyClient(client))
	}
	return clients, nil
}

// FindFiltered returns records matching the given constraints: exact
// case-insensitive status, case-insensitive name substring, AND when both are
// present. Blank constraints are ignored.
func (s *InMemory) FindFiltered(_ context.Context, status, name string) ([]*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status = strings.TrimSpace(status)
	name = strings.TrimSpace(name)

	clients := make([]*models.Client, 0)
	for _, client := range s.clients {
		if status != "" && !strings.EqualFold(string(client.Status), status) {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(client.Name), strings.ToLower(name)) {
			continue
		}
		clients = append(clients, copyClient(client))
	}
	return clients, nil
}

// ExistsByCPF reports whether a record with the normalized CPF exists.
func (s *InMemory) ExistsByCPF(_ context.Context, cpf string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byCPF[cpf]
	return ok, nil
}

// ExistsByEmail reports whether a record with the email exists.
func (s *InMemory) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byEmail[email]
	return ok, nil
}

// ExistsByEmailExcluding reports whether a record other than id owns email.
func (s *InMemory) ExistsByEmailExcluding(_ context.Context, email string, id uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owner, ok := s.byEmail[email]
	return ok && owner != id, nil
}

// Save persists changes to an existing client, re-indexing on email change.
func (s *InMemory) Save(_ context.Context, client *models.Client) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.clients[client.ID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	if owner, taken := s.byEmail[client.Email]; taken && owner != client.ID {
		return nil, fmt.Errorf("email %s: %w", client.Email, sentinel.ErrConflict)
	}

	if current.Email != client.Email {
		delete(s.byEmail, current.Email)
		s.byEmail[client.Email] = client.ID
	}

	stored := *client
	s.clients[stored.ID] = &stored
	return copyClient(&stored), nil
}

func copyClient(client *models.Client) *models.Client {
	c := *client
	return &c
}
