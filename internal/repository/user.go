package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/internal/errs"
	"github.com/Astemirdum/bookstore-service/internal/model"
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (model.User, error)
	Authorities(ctx context.Context, userID int) ([]string, error)
	Create(ctx context.Context, user model.User, person model.Person, authorities []string) (int, error)
}

type userRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewUserRepository(db *sqlx.DB, log *zap.Logger) *userRepository {
	return &userRepository{
		db:  db,
		log: log.Named("user-repo"),
	}
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	query, args, err := qb.Select("id", "username", "password", "email").
		From(userTableName).
		Where(sq.Eq{"username": username}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrNotFound
		}
		return model.User{}, err
	}
	return user, nil
}

func (r *userRepository) Authorities(ctx context.Context, userID int) ([]string, error) {
	query, args, err := qb.Select("authority").
		From(userAuthorityTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("authority").
		ToSql()
	if err != nil {
		return nil, err
	}

	var authorities []string
	if err := r.db.SelectContext(ctx, &authorities, query, args...); err != nil {
		return nil, err
	}
	return authorities, nil
}

// Create inserts the user, its person record and authority grants as one unit.
func (r *userRepository) Create(ctx context.Context, user model.User, person model.Person, authorities []string) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //nolint:errcheck

	query, args, err := qb.Insert(userTableName).
		Columns("username", "password", "email").
		Values(user.Username, user.Password, user.Email).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, errs.ErrUserExists
		}
		return 0, err
	}

	query, args, err = qb.Insert(personTableName).
		Columns("id", "first_name", "last_name", "email", "phone").
		Values(id, person.FirstName, person.LastName, person.Email, person.Phone).
		ToSql()
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, err
	}

	if len(authorities) > 0 {
		ins := qb.Insert(userAuthorityTableName).Columns("user_id", "authority")
		for _, a := range authorities {
			ins = ins.Values(id, a)
		}
		query, args, err = ins.ToSql()
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}
