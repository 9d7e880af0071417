package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/internal/model"
)

type RatingRepository interface {
	ListForBook(ctx context.Context, bookID int) ([]model.Rating, error)
	OverallForBook(ctx context.Context, bookID int) (float64, error)
	Upsert(ctx context.Context, rating model.Rating) error
}

type ratingRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRatingRepository(db *sqlx.DB, log *zap.Logger) *ratingRepository {
	return &ratingRepository{
		db:  db,
		log: log.Named("rating-repo"),
	}
}

func (r *ratingRepository) ListForBook(ctx context.Context, bookID int) ([]model.Rating, error) {
	query, args, err := qb.Select("book_id", "user_id", "rating").
		From(ratingTableName).
		Where(sq.Eq{"book_id": bookID}).
		OrderBy("user_id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var ratings []model.Rating
	if err := r.db.SelectContext(ctx, &ratings, query, args...); err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) OverallForBook(ctx context.Context, bookID int) (float64, error) {
	q := `
select coalesce(avg(rating), 0) from ratings
where book_id = $1`
	var overall float64
	if err := r.db.QueryRowContext(ctx, q, bookID).Scan(&overall); err != nil {
		return 0, err
	}
	return overall, nil
}

// Upsert keeps the one-rating-per-(book,user) invariant in the store.
func (r *ratingRepository) Upsert(ctx context.Context, rating model.Rating) error {
	query, args, err := qb.Insert(ratingTableName).
		Columns("book_id", "user_id", "rating").
		Values(rating.BookID, rating.UserID, rating.Rating).
		Suffix("on conflict (book_id, user_id) do update set rating = excluded.rating").
		ToSql()
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.log.Error("Upsert rating", zap.String("q", query), zap.Any("args", args))
		return err
	}
	return nil
}
