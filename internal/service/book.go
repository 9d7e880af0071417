package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Astemirdum/bookstore-service/internal/errs"
	"github.com/Astemirdum/bookstore-service/internal/model"
	"github.com/Astemirdum/bookstore-service/internal/repository"
	"github.com/Astemirdum/bookstore-service/pkg/auth"
)

type BookService struct {
	log      *zap.Logger
	books    repository.BookRepository
	genres   repository.GenreRepository
	comments repository.CommentRepository
	ratings  repository.RatingRepository
	persons  repository.PersonRepository
}

func NewBookService(
	books repository.BookRepository,
	genres repository.GenreRepository,
	comments repository.CommentRepository,
	ratings repository.RatingRepository,
	persons repository.PersonRepository,
	log *zap.Logger,
) *BookService {
	return &BookService{
		log:      log,
		books:    books,
		genres:   genres,
		comments: comments,
		ratings:  ratings,
		persons:  persons,
	}
}

func (s *BookService) ListBooks(ctx context.Context) ([]model.Book, error) {
	return s.books.List(ctx)
}

func (s *BookService) SearchBooks(ctx context.Context, query string) ([]model.Book, error) {
	return s.books.Search(ctx, query)
}

func (s *BookService) ListGenres(ctx context.Context) ([]model.Genre, error) {
	return s.genres.List(ctx)
}

// GetBookView assembles the detail page aggregate: the book, its genres,
// ratings plus the overall average, and comments resolved against their
// authors. Any failed fetch fails the whole assembly; nothing partial is
// returned. The principal's own rating, if present, is attached last.
func (s *BookService) GetBookView(ctx context.Context, id int, principal auth.Principal) (model.BookView, error) {
	book, err := s.books.Get(ctx, id)
	if err != nil {
		return model.BookView{}, err
	}
	view := model.BookView{Book: book}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		genres, err := s.genres.ListForBook(gctx, id)
		if err != nil {
			return err
		}
		view.Genres = genres
		return nil
	})
	g.Go(func() error {
		ratings, err := s.ratings.ListForBook(gctx, id)
		if err != nil {
			return err
		}
		view.Ratings = ratings
		return nil
	})
	g.Go(func() error {
		overall, err := s.ratings.OverallForBook(gctx, id)
		if err != nil {
			return err
		}
		view.OverallRating = overall
		return nil
	})
	g.Go(func() error {
		comments, err := s.comments.ListForBook(gctx, id)
		if err != nil {
			return err
		}
		view.Comments = comments
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.BookView{}, err
	}

	view.ViewComments = make([]model.ViewComment, 0, len(view.Comments))
	for _, comment := range view.Comments {
		person, err := s.persons.Get(ctx, comment.UserID)
		if err != nil {
			return model.BookView{}, errors.Wrapf(err, "resolve comment author %d", comment.UserID)
		}
		view.ViewComments = append(view.ViewComments, model.ViewComment{
			Author:  person.DisplayName(),
			Comment: comment.Comment,
		})
	}

	for _, rating := range view.Ratings {
		if rating.UserID == principal.ID {
			r := rating.Rating
			view.UserRating = &r
			break
		}
	}

	return view, nil
}

// CreateBook resolves every submitted genre id against the known genre set
// and fails the whole create on the first unknown id. No row is written on a
// validation failure.
func (s *BookService) CreateBook(ctx context.Context, book model.NewBook) (int, error) {
	known, err := s.genres.List(ctx)
	if err != nil {
		return 0, err
	}
	byID := make(map[int]model.Genre, len(known))
	for _, genre := range known {
		byID[genre.ID] = genre
	}

	genres := make([]model.Genre, 0, len(book.Genres))
	for _, id := range book.Genres {
		genre, ok := byID[id]
		if !ok {
			return 0, errors.Wrapf(errs.ErrValidation, "unknown genre id %d", id)
		}
		genres = append(genres, genre)
	}

	return s.books.Create(ctx, book, genres)
}

func (s *BookService) AddComment(ctx context.Context, bookID, userID int, text string) (int, error) {
	if _, err := s.books.Get(ctx, bookID); err != nil {
		return 0, err
	}
	return s.comments.Create(ctx, bookID, userID, text)
}

func (s *BookService) RateBook(ctx context.Context, bookID, userID, rating int) error {
	if _, err := s.books.Get(ctx, bookID); err != nil {
		return err
	}
	return s.ratings.Upsert(ctx, model.Rating{BookID: bookID, UserID: userID, Rating: rating})
}
