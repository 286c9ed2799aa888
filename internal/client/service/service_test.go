package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"crmsimples/internal/client/models"
	"crmsimples/internal/client/store"
	dErrors "crmsimples/pkg/domainerrors"
	"crmsimples/pkg/requestcontext"
)

type RegistrySuite struct {
	suite.Suite
	store   *store.InMemory
	service *Service
	ctx     context.Context
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.store = store.NewInMemory()
	s.service = New(s.store)
	s.ctx = context.Background()
}

func (s *RegistrySuite) candidate() *models.Client {
	return &models.Client{
		Name:  "Joana Silva",
		Email: "joana@x.com",
		CPF:   "123.456.789-09",
	}
}

func (s *RegistrySuite) mustCreate(client *models.Client) *models.Client {
	s.T().Helper()
	created, err := s.service.Create(s.ctx, client)
	s.Require().NoError(err)
	return created
}

func str(v string) *string { return &v }

func (s *RegistrySuite) TestCreate() {
	created := s.mustCreate(s.candidate())

	s.Run("normalizes cpf and defaults status to PROSPECT", func() {
		s.Equal("12345678909", created.CPF)
		s.Equal(models.StatusProspect, created.Status)
		s.NotEqual(uuid.Nil, created.ID)
		s.False(created.CreatedAt.IsZero())
		s.Equal(created.CreatedAt, created.UpdatedAt)
	})

	s.Run("keeps an explicit status", func() {
		client := &models.Client{Name: "Ana Lima", Email: "ana@x.com", CPF: "529.982.247-25", Status: models.StatusActive}
		s.Equal(models.StatusActive, s.mustCreate(client).Status)
	})

	s.Run("rejects invalid cpf checksum", func() {
		client := &models.Client{Name: "Rui Dias", Email: "rui@x.com", CPF: "123.456.789-00"}
		_, err := s.service.Create(s.ctx, client)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeInvalidCPF))
		s.Equal("CPF inválido", dErrors.MessageOf(err))
	})

	s.Run("rejects repeated-digit cpf", func() {
		client := &models.Client{Name: "Rui Dias", Email: "rui@x.com", CPF: "111.111.111-11"}
		_, err := s.service.Create(s.ctx, client)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeInvalidCPF))
	})

	s.Run("rejects duplicate cpf regardless of formatting", func() {
		// Stored record holds 12345678909; submit the same digits unformatted.
		dup := &models.Client{Name: "Outra Joana", Email: "outra@x.com", CPF: "12345678909"}
		_, err := s.service.Create(s.ctx, dup)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Equal("CPF já cadastrado", dErrors.MessageOf(err))
	})

	s.Run("rejects duplicate email", func() {
		dup := &models.Client{Name: "Outra Joana", Email: "joana@x.com", CPF: "111.444.777-35"}
		_, err := s.service.Create(s.ctx, dup)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Equal("Email já cadastrado", dErrors.MessageOf(err))
	})

	s.Run("cpf format is checked before uniqueness", func() {
		dup := &models.Client{Name: "Outra Joana", Email: "joana@x.com", CPF: "not-a-cpf"}
		_, err := s.service.Create(s.ctx, dup)
		s.Require().True(dErrors.HasCode(err, dErrors.CodeInvalidCPF))
	})
}

func (s *RegistrySuite) TestGetByID() {
	s.Run("returns the record when present", func() {
		created := s.mustCreate(s.candidate())
		found, err := s.service.GetByID(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Equal(created.ID, found.ID)
	})

	s.Run("reports absence as not found", func() {
		_, err := s.service.GetByID(s.ctx, uuid.New())
		s.Require().True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal("Cliente não encontrado", dErrors.MessageOf(err))
	})
}

func (s *RegistrySuite) TestList() {
	created := s.mustCreate(s.candidate())
	s.Require().NoError(s.service.SoftDelete(s.ctx, created.ID))

	// Soft-deleted records are not hidden from the default listing.
	clients, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(clients, 1)
	s.Equal(models.StatusInactive, clients[0].Status)
}

func (s *RegistrySuite) TestListFiltered() {
	active := s.candidate()
	active.Status = models.StatusActive
	s.mustCreate(active)
	s.mustCreate(&models.Client{Name: "Pedro Souza", Email: "pedro@x.com", CPF: "52998224725", Status: models.StatusActive})

	clients, err := s.service.ListFiltered(s.ctx, "active", "jo")
	s.Require().NoError(err)
	s.Require().Len(clients, 1)
	s.Equal("Joana Silva", clients[0].Name)
}

func (s *RegistrySuite) TestUpdate() {
	created := s.mustCreate(s.candidate())

	s.Run("reports unknown id as not found", func() {
		_, err := s.service.Update(s.ctx, uuid.New(), UpdateParams{Name: str("Nova")})
		s.Require().True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("changing cpf is rejected even for a valid value", func() {
		_, err := s.service.Update(s.ctx, created.ID, UpdateParams{CPF: str("529.982.247-25")})
		s.Require().True(dErrors.HasCode(err, dErrors.CodeImmutable))
		s.Equal("CPF não pode ser alterado", dErrors.MessageOf(err))
	})

	s.Run("same cpf in any formatting is a silent no-op", func() {
		updated, err := s.service.Update(s.ctx, created.ID, UpdateParams{
			CPF:  str("123.456.789-09"),
			Name: str("Joana S. Pereira"),
		})
		s.Require().NoError(err)
		s.Equal("12345678909", updated.CPF)
		s.Equal("Joana S. Pereira", updated.Name)
	})

	s.Run("email change to one owned by another record is rejected", func() {
		s.mustCreate(&models.Client{Name: "Pedro Souza", Email: "pedro@x.com", CPF: "52998224725"})

		_, err := s.service.Update(s.ctx, created.ID, UpdateParams{Email: str("pedro@x.com")})
		s.Require().True(dErrors.HasCode(err, dErrors.CodeConflict))
		s.Equal("Email já cadastrado para outro cliente", dErrors.MessageOf(err))
	})

	s.Run("own current email is accepted", func() {
		updated, err := s.service.Update(s.ctx, created.ID, UpdateParams{Email: str("joana@x.com")})
		s.Require().NoError(err)
		s.Equal("joana@x.com", updated.Email)
	})

	s.Run("absent fields are left unchanged", func() {
		before, err := s.service.GetByID(s.ctx, created.ID)
		s.Require().NoError(err)

		updated, err := s.service.Update(s.ctx, created.ID, UpdateParams{Phone: str("(11) 91234-5678")})
		s.Require().NoError(err)
		s.Equal("(11) 91234-5678", updated.Phone)
		s.Equal(before.Name, updated.Name)
		s.Equal(before.Email, updated.Email)
		s.Equal(before.Status, updated.Status)
	})

	s.Run("refreshes updated_at from request time", func() {
		later := created.CreatedAt.Add(time.Hour)
		ctx := requestcontext.WithTime(s.ctx, later)

		updated, err := s.service.Update(ctx, created.ID, UpdateParams{Name: str("Nova Joana")})
		s.Require().NoError(err)
		s.Equal(later, updated.UpdatedAt)
		s.Equal(created.CreatedAt, updated.CreatedAt)
	})
}

func (s *RegistrySuite) TestSoftDelete() {
	s.Run("reports unknown id as not found", func() {
		err := s.service.SoftDelete(s.ctx, uuid.New())
		s.Require().True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("marks the record INACTIVE without removing it", func() {
		created := s.mustCreate(s.candidate())

		s.Require().NoError(s.service.SoftDelete(s.ctx, created.ID))

		found, err := s.service.GetByID(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusInactive, found.Status)
	})

	s.Run("is idempotent and re-stamps updated_at", func() {
		created := s.mustCreate(&models.Client{Name: "Pedro Souza", Email: "pedro@x.com", CPF: "52998224725"})

		first := created.UpdatedAt.Add(time.Minute)
		s.Require().NoError(s.service.SoftDelete(requestcontext.WithTime(s.ctx, first), created.ID))

		second := first.Add(time.Minute)
		s.Require().NoError(s.service.SoftDelete(requestcontext.WithTime(s.ctx, second), created.ID))

		found, err := s.service.GetByID(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusInactive, found.Status)
		s.True(found.UpdatedAt.After(first), "updated_at must strictly increase across repeated deletes")
	})
}
