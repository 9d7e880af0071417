package handler

import (
	"context"

	"github.com/Astemirdum/bookstore-service/internal/model"
	"github.com/Astemirdum/bookstore-service/internal/service"
	"github.com/Astemirdum/bookstore-service/pkg/auth"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var (
	_ BookService   = (*service.BookService)(nil)
	_ PersonService = (*service.PersonService)(nil)
	_ AuthService   = (*service.AuthService)(nil)
)

type BookService interface {
	ListBooks(ctx context.Context) ([]model.Book, error)
	SearchBooks(ctx context.Context, query string) ([]model.Book, error)
	ListGenres(ctx context.Context) ([]model.Genre, error)
	GetBookView(ctx context.Context, id int, principal auth.Principal) (model.BookView, error)
	CreateBook(ctx context.Context, book model.NewBook) (int, error)
	AddComment(ctx context.Context, bookID, userID int, text string) (int, error)
	RateBook(ctx context.Context, bookID, userID, rating int) error
}

type PersonService interface {
	GetPerson(ctx context.Context, id int) (model.Person, error)
	ListPersons(ctx context.Context) ([]model.Person, error)
	SearchPersons(ctx context.Context, searchTerm string) ([]model.Person, error)
	UpdatePerson(ctx context.Context, person model.UpdatePerson) error
	DeletePerson(ctx context.Context, id int) error
}

type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (int, error)
	Login(ctx context.Context, req model.AuthRequest) (model.AuthResponse, error)
}
