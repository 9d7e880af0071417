package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/internal/model"
)

type GenreRepository interface {
	List(ctx context.Context) ([]model.Genre, error)
	ListForBook(ctx context.Context, bookID int) ([]model.Genre, error)
}

type genreRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewGenreRepository(db *sqlx.DB, log *zap.Logger) *genreRepository {
	return &genreRepository{
		db:  db,
		log: log.Named("genre-repo"),
	}
}

func (r *genreRepository) List(ctx context.Context) ([]model.Genre, error) {
	query, args, err := qb.Select("id", "name").
		From(genreTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var genres []model.Genre
	if err := r.db.SelectContext(ctx, &genres, query, args...); err != nil {
		return nil, err
	}
	return genres, nil
}

func (r *genreRepository) ListForBook(ctx context.Context, bookID int) ([]model.Genre, error) {
	query, args, err := qb.Select("g.id", "g.name").
		From(genreTableName+" g").
		Join(fmt.Sprintf("%s bg on g.id = bg.genre_id", bookGenresTableName)).
		Where(sq.Eq{"bg.book_id": bookID}).
		OrderBy("g.id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var genres []model.Genre
	if err := r.db.SelectContext(ctx, &genres, query, args...); err != nil {
		return nil, err
	}
	return genres, nil
}
