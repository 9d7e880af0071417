package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/internal/model"
	"github.com/Astemirdum/bookstore-service/internal/repository"
)

type PersonService struct {
	log     *zap.Logger
	persons repository.PersonRepository
}

func NewPersonService(persons repository.PersonRepository, log *zap.Logger) *PersonService {
	return &PersonService{
		log:     log,
		persons: persons,
	}
}

func (s *PersonService) GetPerson(ctx context.Context, id int) (model.Person, error) {
	return s.persons.Get(ctx, id)
}

func (s *PersonService) ListPersons(ctx context.Context) ([]model.Person, error) {
	return s.persons.List(ctx)
}

func (s *PersonService) SearchPersons(ctx context.Context, searchTerm string) ([]model.Person, error) {
	return s.persons.Search(ctx, searchTerm)
}

func (s *PersonService) UpdatePerson(ctx context.Context, person model.UpdatePerson) error {
	return s.persons.Update(ctx, person)
}

// DeletePerson removes the person and its user identity as one unit.
func (s *PersonService) DeletePerson(ctx context.Context, id int) error {
	return s.persons.DeleteWithUser(ctx, id)
}
