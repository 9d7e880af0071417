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

type PersonRepository interface {
	Get(ctx context.Context, id int) (model.Person, error)
	List(ctx context.Context) ([]model.Person, error)
	Search(ctx context.Context, searchTerm string) ([]model.Person, error)
	Update(ctx context.Context, person model.UpdatePerson) error
	DeleteWithUser(ctx context.Context, id int) error
}

type personRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewPersonRepository(db *sqlx.DB, log *zap.Logger) *personRepository {
	return &personRepository{
		db:  db,
		log: log.Named("person-repo"),
	}
}

func (r *personRepository) Get(ctx context.Context, id int) (model.Person, error) {
	query, args, err := qb.Select("id", "first_name", "last_name", "email", "phone").
		From(personTableName).
		Where(sq.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Person{}, err
	}

	var person model.Person
	if err := r.db.GetContext(ctx, &person, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Person{}, errs.ErrNotFound
		}
		return model.Person{}, err
	}
	return person, nil
}

func (r *personRepository) List(ctx context.Context) ([]model.Person, error) {
	query, args, err := qb.Select("id", "first_name", "last_name", "email", "phone").
		From(personTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var persons []model.Person
	if err := r.db.SelectContext(ctx, &persons, query, args...); err != nil {
		return nil, err
	}
	return persons, nil
}

func (r *personRepository) Search(ctx context.Context, searchTerm string) ([]model.Person, error) {
	query, args, err := qb.Select("id", "first_name", "last_name", "email", "phone").
		From(personTableName).
		Where(sq.Or{
			sq.ILike{"first_name": "%" + searchTerm + "%"},
			sq.ILike{"last_name": "%" + searchTerm + "%"},
		}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var persons []model.Person
	if err := r.db.SelectContext(ctx, &persons, query, args...); err != nil {
		return nil, err
	}
	return persons, nil
}

func (r *personRepository) Update(ctx context.Context, person model.UpdatePerson) error {
	query, args, err := qb.Update(personTableName).
		Set("first_name", person.FirstName).
		Set("last_name", person.LastName).
		Set("email", person.Email).
		Set("phone", person.Phone).
		Where(sq.Eq{"id": person.ID}).
		ToSql()
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.Error("Update person", zap.String("q", query), zap.Any("args", args))
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// DeleteWithUser removes the person and its paired user identity in one
// transaction. Either both rows go or neither does.
func (r *personRepository) DeleteWithUser(ctx context.Context, id int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	query, args, err := qb.Delete(personTableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.ErrNotFound
	}

	query, args, err = qb.Delete(userAuthorityTableName).Where(sq.Eq{"user_id": id}).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	query, args, err = qb.Delete(userTableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return err
	}

	return tx.Commit()
}
