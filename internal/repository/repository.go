package repository

import (
	sq "github.com/Masterminds/squirrel"
)

//go:generate go run github.com/golang/mock/mockgen -package mock_repository -destination mocks/mock.go github.com/Astemirdum/bookstore-service/internal/repository BookRepository,GenreRepository,CommentRepository,RatingRepository,PersonRepository,UserRepository

const (
	bookTableName          = `books`
	genreTableName         = `genres`
	bookGenresTableName    = `books_genres`
	commentTableName       = `comments`
	ratingTableName        = `ratings`
	personTableName        = `persons`
	userTableName          = `users`
	userAuthorityTableName = `user_authorities`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
