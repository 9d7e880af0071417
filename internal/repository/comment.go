package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/internal/model"
)

type CommentRepository interface {
	ListForBook(ctx context.Context, bookID int) ([]model.Comment, error)
	Create(ctx context.Context, bookID, userID int, text string) (int, error)
}

type commentRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewCommentRepository(db *sqlx.DB, log *zap.Logger) *commentRepository {
	return &commentRepository{
		db:  db,
		log: log.Named("comment-repo"),
	}
}

// ListForBook returns comments in creation order.
func (r *commentRepository) ListForBook(ctx context.Context, bookID int) ([]model.Comment, error) {
	query, args, err := qb.Select("id", "book_id", "user_id", "comment", "created_at").
		From(commentTableName).
		Where(sq.Eq{"book_id": bookID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var comments []model.Comment
	if err := r.db.SelectContext(ctx, &comments, query, args...); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Create(ctx context.Context, bookID, userID int, text string) (int, error) {
	query, args, err := qb.Insert(commentTableName).
		Columns("book_id", "user_id", "comment").
		Values(bookID, userID, text).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		r.log.Error("Create comment", zap.String("q", query), zap.Any("args", args))
		return 0, err
	}
	return id, nil
}
