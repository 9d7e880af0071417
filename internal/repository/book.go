package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/internal/errs"
	"github.com/Astemirdum/bookstore-service/internal/model"
)

type BookRepository interface {
	List(ctx context.Context) ([]model.Book, error)
	Get(ctx context.Context, id int) (model.Book, error)
	Search(ctx context.Context, query string) ([]model.Book, error)
	Create(ctx context.Context, book model.NewBook, genres []model.Genre) (int, error)
}

type bookRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewBookRepository(db *sqlx.DB, log *zap.Logger) *bookRepository {
	return &bookRepository{
		db:  db,
		log: log.Named("book-repo"),
	}
}

func (r *bookRepository) List(ctx context.Context) ([]model.Book, error) {
	query, args, err := qb.Select("id", "title", "author", "description", "published_year").
		From(bookTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) Get(ctx context.Context, id int) (model.Book, error) {
	query, args, err := qb.Select("id", "title", "author", "description", "published_year").
		From(bookTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *bookRepository) Search(ctx context.Context, q string) ([]model.Book, error) {
	query, args, err := qb.Select("id", "title", "author", "description", "published_year").
		From(bookTableName).
		Where(sq.Or{
			sq.ILike{"title": "%" + q + "%"},
			sq.ILike{"author": "%" + q + "%"},
		}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, err
	}
	return books, nil
}

// Create inserts the book and its genre associations in one transaction.
func (r *bookRepository) Create(ctx context.Context, book model.NewBook, genres []model.Genre) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //nolint:errcheck

	query, args, err := qb.Insert(bookTableName).
		Columns("title", "author", "description", "published_year").
		Values(book.Title, book.Author, book.Description, book.PublishedYear).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.log.Error("Create book", zap.String("q", query), zap.Any("args", args))
		return 0, err
	}

	ins := qb.Insert(bookGenresTableName).Columns("book_id", "genre_id")
	for _, genre := range genres {
		ins = ins.Values(id, genre.ID)
	}
	query, args, err = ins.ToSql()
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}
